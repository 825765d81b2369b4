/*
Package toolchain provides a registry of C/C++ compiler profiles: the executable
names, flags and archiver/linker commands a build system needs to drive a compiler
in place of its default one.

Profiles are registered by toolchain packages, usually from their init function,
so a build system opts in to a toolchain with a blank import:

	import _ "github.com/tmaxmax/ccprofile/pkg/toolchain/intel"

A profile is then looked up by its identifier and resolved against the search path:

	tc, err := toolchain.Use("intelem")
	if err != nil {
		return err
	}
	cmd, err := tc.Command(ctx, toolchain.RoleCompiler, toolchain.BuildRelease, "-c", "foo.c")

Resolution never fails because an executable is missing. The error is reported
when a command is prepared, which is the point where the build system needs it.
*/
package toolchain

import (
	"os"
	"strings"
)

func isValidImplementationName(name string) bool {
	return !strings.ContainsAny(name, string([]rune{os.PathSeparator, os.PathListSeparator, ' ', '\t'}))
}
