package intel_test

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tmaxmax/ccprofile/pkg/toolchain"
	"github.com/tmaxmax/ccprofile/pkg/toolchain/intel"
)

func posixExecutables(compiler ...string) toolchain.Executables {
	cc := toolchain.Command{Name: compiler[0], Args: compiler[1:]}

	return toolchain.Executables{
		Compiler:    cc,
		CompilerSO:  cc,
		CompilerCXX: cc,
		Archiver:    toolchain.Command{Name: "xiar", Args: []string{"cru"}},
		LinkerExe:   cc,
		LinkerSO:    cc.WithArgs("-shared"),
	}
}

var windowsExecutables = toolchain.Executables{
	Compiler:    toolchain.Command{Name: "icl.exe"},
	CompilerSO:  toolchain.Command{Name: "icl.exe"},
	CompilerCXX: toolchain.Command{Name: "icl.exe"},
	Archiver:    toolchain.Command{Name: "xilib"},
	LinkerExe:   toolchain.Command{Name: "xilink"},
	LinkerSO:    toolchain.Command{Name: "xilink", Args: []string{"/DLL"}},
}

var (
	release = []string{"/nologo", "/O3", "/MD", "/W3", "/Qstd=c99"}
	debug   = []string{"/nologo", "/Od", "/MDd", "/W3", "/Qstd=c99", "/Z7", "/D_DEBUG"}
)

func TestProfiles(t *testing.T) {
	type test struct {
		id           string
		platform     toolchain.Platform
		arch         toolchain.Arch
		candidates   []string
		executables  toolchain.Executables
		releaseFlags []string
		debugFlags   []string
	}

	tests := []test{
		{
			id:           "intel",
			platform:     toolchain.PlatformPOSIX,
			arch:         toolchain.ArchX86,
			candidates:   []string{"icc", "ecc"},
			executables:  posixExecutables("icc", "-fPIC"),
			releaseFlags: []string{"-fPIC"},
			debugFlags:   []string{"-fPIC"},
		},
		{
			id:           "intele",
			platform:     toolchain.PlatformPOSIX,
			arch:         toolchain.ArchIA64,
			candidates:   []string{"icc", "ecc"},
			executables:  posixExecutables("icc", "-fPIC"),
			releaseFlags: []string{"-fPIC"},
			debugFlags:   []string{"-fPIC"},
		},
		{
			id:           "intelem",
			platform:     toolchain.PlatformPOSIX,
			arch:         toolchain.ArchX86_64,
			candidates:   []string{"icc"},
			executables:  posixExecutables("icc", "-m64", "-fPIC"),
			releaseFlags: []string{"-m64", "-fPIC"},
			debugFlags:   []string{"-m64", "-fPIC"},
		},
		{
			id:           "intelw",
			platform:     toolchain.PlatformWindows,
			arch:         toolchain.ArchX86,
			candidates:   []string{"icl.exe"},
			executables:  windowsExecutables,
			releaseFlags: release,
			debugFlags:   debug,
		},
		{
			id:           "intelemw",
			platform:     toolchain.PlatformWindows,
			arch:         toolchain.ArchX86_64,
			candidates:   []string{"icl.exe"},
			executables:  windowsExecutables,
			releaseFlags: release,
			debugFlags:   debug,
		},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			p, err := toolchain.Default().Lookup(tt.id)
			require.NoErrorf(t, err, "Profile %q is not registered", tt.id)

			require.Equal(t, tt.id, p.ID())
			require.Equal(t, tt.platform, p.Platform())
			require.Equal(t, tt.arch, p.Arch())
			require.Equal(t, tt.candidates, p.Candidates())
			require.Equal(t, tt.executables, p.Executables())
			require.Equal(t, tt.releaseFlags, p.Flags(toolchain.BuildRelease))
			require.Equal(t, tt.debugFlags, p.Flags(toolchain.BuildDebug))

			_, err = toolchain.Default().LookupFor(tt.id, tt.platform)
			require.NoError(t, err)

			other := toolchain.PlatformWindows
			if tt.platform == toolchain.PlatformWindows {
				other = toolchain.PlatformPOSIX
			}
			_, err = toolchain.Default().LookupFor(tt.id, other)
			require.True(t, errors.Is(err, toolchain.ErrToolchainNotFound))
		})
	}
}

func TestProfiles_Constructors(t *testing.T) {
	ids := []string{intel.IDIntel, intel.IDItanium, intel.IDEM64T, intel.IDWindows, intel.IDEM64TWindows}

	profiles := intel.Profiles()
	require.Len(t, profiles, len(ids))

	for i, p := range profiles {
		require.Equal(t, ids[i], p.ID())

		registered, err := toolchain.Default().Lookup(p.ID())
		require.NoError(t, err)
		require.Equal(t, p, registered)
	}
}

type fakeFinder map[string]bool

func (f fakeFinder) Find(name string) (string, error) {
	if f[name] {
		return "/opt/intel/bin/" + name, nil
	}
	return "", fmt.Errorf("%q: %w", name, exec.ErrNotFound)
}

func TestResolve_IccBeforeEcc(t *testing.T) {
	type test struct {
		name        string
		installed   fakeFinder
		expectFound string
	}

	tests := []test{
		{name: "Both", installed: fakeFinder{"icc": true, "ecc": true}, expectFound: "icc"},
		{name: "OnlyIcc", installed: fakeFinder{"icc": true}, expectFound: "icc"},
		{name: "OnlyEcc", installed: fakeFinder{"ecc": true}, expectFound: "ecc"},
		{name: "None", installed: fakeFinder{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := toolchain.Resolve(intel.NewItanium(), tt.installed)
			require.Equal(t, tt.expectFound, tc.Found())

			argv, err := tc.Argv(toolchain.RoleLinkerSO, toolchain.BuildRelease, "-o", "libm.so")
			if tt.expectFound == "" {
				require.True(t, errors.Is(err, toolchain.ErrExecutableNotFound), "unexpected error %v", err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, []string{"/opt/intel/bin/" + tt.expectFound, "-fPIC", "-shared", "-o", "libm.so"}, argv)
		})
	}
}

func TestResolve_Windows(t *testing.T) {
	tc := toolchain.Resolve(intel.NewEM64TWindows(), fakeFinder{"icl.exe": true, "xilib": true, "xilink": true})

	argv, err := tc.Argv(toolchain.RoleCompiler, toolchain.BuildRelease, "/c", "a.c")
	require.NoError(t, err)
	require.Equal(t, append(append([]string{"/opt/intel/bin/icl.exe"}, release...), "/c", "a.c"), argv)

	argv, err = tc.Argv(toolchain.RoleCompiler, toolchain.BuildDebug, "/c", "a.c")
	require.NoError(t, err)
	require.Equal(t, append(append([]string{"/opt/intel/bin/icl.exe"}, debug...), "/c", "a.c"), argv)
	require.NotContains(t, argv, "/O3")
	require.NotContains(t, argv, "/MD")

	argv, err = tc.Argv(toolchain.RoleArchiver, toolchain.BuildRelease, "/OUT:m.lib")
	require.NoError(t, err)
	require.Equal(t, []string{"/opt/intel/bin/xilib", "/OUT:m.lib"}, argv)

	argv, err = tc.Argv(toolchain.RoleLinkerExe, toolchain.BuildRelease)
	require.NoError(t, err)
	require.Equal(t, []string{"/opt/intel/bin/xilink"}, argv)
}

func TestUsePreferred_CCFlags(t *testing.T) {
	type test struct {
		cc         string
		expectID   string
		expectArgv []string
	}

	tests := []test{
		{cc: "icc", expectID: intel.IDIntel, expectArgv: []string{"/opt/intel/bin/icc", "-fPIC", "-c", "a.c"}},
		{cc: "icc -m64", expectID: intel.IDEM64T, expectArgv: []string{"/opt/intel/bin/icc", "-m64", "-fPIC", "-c", "a.c"}},
		{cc: "icc -fPIC -O3", expectID: intel.IDIntel, expectArgv: []string{"/opt/intel/bin/icc", "-fPIC", "-O3", "-c", "a.c"}},
	}

	for _, tt := range tests {
		t.Run(tt.cc, func(t *testing.T) {
			t.Setenv("CC", tt.cc)

			r := &toolchain.Resolver{Finder: fakeFinder{"icc": true}, Platform: toolchain.PlatformPOSIX}

			tc, err := r.UsePreferred(context.Background())
			require.NoError(t, err)
			require.Equal(t, tt.expectID, tc.Profile().ID())

			argv, err := tc.Argv(toolchain.RoleCompiler, toolchain.BuildRelease, "-c", "a.c")
			require.NoError(t, err)
			require.Equal(t, tt.expectArgv, argv)
		})
	}
}
