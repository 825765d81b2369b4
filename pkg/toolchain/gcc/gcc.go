/*
Package gcc provides the profile of the default C compiler of POSIX systems,
driven the way GCC is.

It registers the unix toolchain.
*/
package gcc

import "github.com/tmaxmax/ccprofile/pkg/toolchain"

// ID is the identifier of the profile.
const ID = "unix"

// NewProfile returns the profile of the system C compiler. cc is preferred,
// gcc is used when cc is missing.
func NewProfile() toolchain.Profile {
	return toolchain.MustProfile(toolchain.ProfileConfig{
		ID:          ID,
		Description: "system C compiler (cc/gcc)",
		Platform:    toolchain.PlatformPOSIX,
		Arch:        toolchain.ArchNative,
		Candidates:  []string{"cc", "gcc"},
		Compiler:    toolchain.Command{Name: "cc"},
		Archiver:    toolchain.ParseCommand("ar -cr"),
		SharedFlag:  "-shared",
	})
}

func init() {
	toolchain.RegisterProfile(NewProfile())
}
