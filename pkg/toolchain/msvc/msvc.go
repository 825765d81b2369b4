/*
Package msvc provides the profile of Microsoft's C/C++ compiler, the default
compiler on Windows.

It registers the msvc toolchain.
*/
package msvc

import "github.com/tmaxmax/ccprofile/pkg/toolchain"

// ID is the identifier of the profile.
const ID = "msvc"

// NewProfile returns the profile of cl.exe.
func NewProfile() toolchain.Profile {
	return toolchain.MustProfile(toolchain.ProfileConfig{
		ID:          ID,
		Description: "Microsoft C/C++ compiler",
		Platform:    toolchain.PlatformWindows,
		Arch:        toolchain.ArchNative,
		Candidates:  []string{"cl.exe"},
		SharedFlag:  "/DLL",
		MSVC: &toolchain.MSVCTools{
			Lib:                 "lib.exe",
			Link:                "link.exe",
			CompileOptions:      []string{"/nologo", "/Ox", "/MD", "/W3", "/DNDEBUG"},
			CompileOptionsDebug: []string{"/nologo", "/Od", "/MDd", "/W3", "/Z7", "/D_DEBUG"},
		},
	})
}

func init() {
	toolchain.RegisterProfile(NewProfile())
}
