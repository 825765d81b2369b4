package toolchain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tmaxmax/ccprofile/pkg/toolchain"
)

func posixConfig() toolchain.ProfileConfig {
	return toolchain.ProfileConfig{
		ID:         "fake",
		Platform:   toolchain.PlatformPOSIX,
		Arch:       toolchain.ArchX86_64,
		Candidates: []string{"fcc", "fcc-legacy"},
		Compiler:   toolchain.Command{Name: "fcc", Args: []string{"-m64"}},
		Archiver:   toolchain.ParseCommand("far rc"),
		SharedFlag: "-shared",
	}
}

func windowsConfig() toolchain.ProfileConfig {
	return toolchain.ProfileConfig{
		ID:         "fakew",
		Platform:   toolchain.PlatformWindows,
		Candidates: []string{"fcl.exe"},
		SharedFlag: "/DLL",
		MSVC: &toolchain.MSVCTools{
			Lib:                 "flib",
			Link:                "flink",
			CompileOptions:      []string{"/O2"},
			CompileOptionsDebug: []string{"/Od", "/Z7"},
		},
	}
}

func TestNewProfile_POSIX(t *testing.T) {
	p, err := toolchain.NewProfile(posixConfig())
	require.NoError(t, err)

	cc := toolchain.Command{Name: "fcc", Args: []string{"-m64"}}

	require.Equal(t, toolchain.Executables{
		Compiler:    cc,
		CompilerSO:  cc,
		CompilerCXX: cc,
		Archiver:    toolchain.Command{Name: "far", Args: []string{"rc"}},
		LinkerExe:   cc,
		LinkerSO:    toolchain.Command{Name: "fcc", Args: []string{"-m64", "-shared"}},
	}, p.Executables())
	require.Equal(t, []string{"-m64"}, p.Flags(toolchain.BuildRelease))
	require.Equal(t, []string{"-m64"}, p.Flags(toolchain.BuildDebug))
	require.Equal(t, []string{"fcc", "fcc-legacy"}, p.Candidates())

	_, ok := p.MSVC()
	require.False(t, ok)
}

func TestNewProfile_Windows(t *testing.T) {
	p, err := toolchain.NewProfile(windowsConfig())
	require.NoError(t, err)

	cl := toolchain.Command{Name: "fcl.exe"}

	require.Equal(t, toolchain.Executables{
		Compiler:    cl,
		CompilerSO:  cl,
		CompilerCXX: cl,
		Archiver:    toolchain.Command{Name: "flib"},
		LinkerExe:   toolchain.Command{Name: "flink"},
		LinkerSO:    toolchain.Command{Name: "flink", Args: []string{"/DLL"}},
	}, p.Executables())
	require.Equal(t, []string{"/O2"}, p.Flags(toolchain.BuildRelease))
	require.Equal(t, []string{"/Od", "/Z7"}, p.Flags(toolchain.BuildDebug))

	tools, ok := p.MSVC()
	require.True(t, ok)
	require.Equal(t, "flib", tools.Lib)
	require.Equal(t, "flink", tools.Link)
}

func TestNewProfile_Invalid(t *testing.T) {
	type test struct {
		name   string
		modify func(*toolchain.ProfileConfig)
	}

	tests := []test{
		{
			name:   "EmptyID",
			modify: func(c *toolchain.ProfileConfig) { c.ID = "" },
		},
		{
			name:   "IDWithSpace",
			modify: func(c *toolchain.ProfileConfig) { c.ID = "fake cc" },
		},
		{
			name:   "NoCandidates",
			modify: func(c *toolchain.ProfileConfig) { c.Candidates = nil },
		},
		{
			name:   "EmptyCandidate",
			modify: func(c *toolchain.ProfileConfig) { c.Candidates = []string{"fcc", ""} },
		},
		{
			name:   "NoArchiver",
			modify: func(c *toolchain.ProfileConfig) { c.Archiver = toolchain.Command{} },
		},
		{
			name:   "MSVCOnPOSIX",
			modify: func(c *toolchain.ProfileConfig) { c.MSVC = &toolchain.MSVCTools{Lib: "lib", Link: "link"} },
		},
		{
			name:   "WindowsWithoutMSVC",
			modify: func(c *toolchain.ProfileConfig) { c.Platform = toolchain.PlatformWindows },
		},
		{
			name:   "UnknownPlatform",
			modify: func(c *toolchain.ProfileConfig) { c.Platform = toolchain.PlatformUnknown },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := posixConfig()
			tt.modify(&cfg)

			_, err := toolchain.NewProfile(cfg)
			require.Error(t, err)
			require.True(t, errors.Is(err, toolchain.ErrInvalidProfile), "unexpected error %v", err)
		})
	}
}

func TestNewProfile_ExecutablesOverride(t *testing.T) {
	cfg := posixConfig()
	cfg.Archiver = toolchain.Command{}
	cfg.Executables = &toolchain.Executables{
		Compiler: toolchain.Command{Name: "fcc"},
		Archiver: toolchain.ParseCommand("far -q"),
	}

	p, err := toolchain.NewProfile(cfg)
	require.NoError(t, err)
	require.Equal(t, *cfg.Executables, p.Executables())
}

func TestProfile_Immutable(t *testing.T) {
	cfg := windowsConfig()
	p := toolchain.MustProfile(cfg)

	cfg.Candidates[0] = "changed"
	cfg.MSVC.CompileOptions[0] = "changed"

	p.Candidates()[0] = "changed"
	p.Flags(toolchain.BuildDebug)[0] = "changed"
	p.Executables().LinkerSO.Args[0] = "changed"

	tools, _ := p.MSVC()
	tools.CompileOptions[0] = "changed"

	require.Equal(t, []string{"fcl.exe"}, p.Candidates())
	require.Equal(t, []string{"/O2"}, p.Flags(toolchain.BuildRelease))
	require.Equal(t, []string{"/Od", "/Z7"}, p.Flags(toolchain.BuildDebug))
	require.Equal(t, []string{"/DLL"}, p.Executables().LinkerSO.Args)
}

func TestMSVCTools_Options(t *testing.T) {
	tools := toolchain.MSVCTools{
		CompileOptions:      []string{"/O3", "/MD"},
		CompileOptionsDebug: []string{"/Od", "/MDd"},
	}

	release := tools.Options(toolchain.BuildRelease)
	debug := tools.Options(toolchain.BuildDebug)

	require.Equal(t, []string{"/O3", "/MD"}, release)
	require.Equal(t, []string{"/Od", "/MDd"}, debug)

	for _, flag := range debug {
		require.NotContains(t, release, flag)
	}
}

func TestCommand(t *testing.T) {
	c := toolchain.ParseCommand("  xiar   cru ")
	require.Equal(t, toolchain.Command{Name: "xiar", Args: []string{"cru"}}, c)
	require.Equal(t, "xiar cru", c.String())
	require.Equal(t, []string{"xiar", "cru"}, c.Argv())

	with := c.WithArgs("libfoo.a", "foo.o")
	require.Equal(t, "xiar cru libfoo.a foo.o", with.String())
	require.Equal(t, []string{"cru"}, c.Args)

	require.Equal(t, toolchain.Command{Name: "icc"}, toolchain.ParseCommand("icc"))
	require.Equal(t, toolchain.Command{Name: "icc"}, toolchain.ParseCommand("icc").WithArgs())
	require.True(t, toolchain.ParseCommand(" ").IsZero())
	require.Nil(t, toolchain.Command{}.Argv())
}

func TestParsePlatform(t *testing.T) {
	type test struct {
		input     string
		expect    toolchain.Platform
		expectErr bool
	}

	tests := []test{
		{input: "posix", expect: toolchain.PlatformPOSIX},
		{input: "Linux", expect: toolchain.PlatformPOSIX},
		{input: "windows", expect: toolchain.PlatformWindows},
		{input: "win32", expect: toolchain.PlatformWindows},
		{input: "plan9", expectErr: true},
		{input: "", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := toolchain.ParsePlatform(tt.input)
			if tt.expectErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.expect, p)
			}
		})
	}
}

func TestParseBuildMode(t *testing.T) {
	m, err := toolchain.ParseBuildMode("")
	require.NoError(t, err)
	require.Equal(t, toolchain.BuildRelease, m)

	m, err = toolchain.ParseBuildMode("Debug")
	require.NoError(t, err)
	require.Equal(t, toolchain.BuildDebug, m)

	_, err = toolchain.ParseBuildMode("profile")
	require.Error(t, err)
}
