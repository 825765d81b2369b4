/*
Package intel provides the profiles of the Intel C/C++ compilers: icc on POSIX
systems and icl on Windows. The profiles are compatible with code built by GCC
and MSVC respectively, so the Intel compiler can replace the default one without
changing the rest of the build.

It registers the intel, intele, intelem, intelw and intelemw toolchains.
*/
package intel

import "github.com/tmaxmax/ccprofile/pkg/toolchain"

const (
	// IDIntel is icc targeting 32-bit x86.
	IDIntel = "intel"
	// IDItanium is icc on Itanium, where the compiler used to be called ecc.
	IDItanium = "intele"
	// IDEM64T is icc targeting x86_64.
	IDEM64T = "intelem"
	// IDWindows is icl targeting 32-bit x86, compatible with MSVC.
	IDWindows = "intelw"
	// IDEM64TWindows is icl targeting x86_64, compatible with MSVC.
	IDEM64TWindows = "intelemw"
)

const (
	cc       = "icc"
	ccLegacy = "ecc"
	cl       = "icl.exe"
	lib      = "xilib"
	link     = "xilink"
	archiver = "xiar cru"
	shared   = "-shared"
	pic      = "-fPIC"
)

var (
	compileOptions      = []string{"/nologo", "/O3", "/MD", "/W3", "/Qstd=c99"}
	compileOptionsDebug = []string{"/nologo", "/Od", "/MDd", "/W3", "/Qstd=c99", "/Z7", "/D_DEBUG"}
)

// NewIntel returns the profile of icc for 32-bit x86. ecc is accepted when icc is missing.
func NewIntel() toolchain.Profile {
	return toolchain.MustProfile(toolchain.ProfileConfig{
		ID:          IDIntel,
		Description: "Intel C compiler, compatible with GCC",
		Platform:    toolchain.PlatformPOSIX,
		Arch:        toolchain.ArchX86,
		Candidates:  []string{cc, ccLegacy},
		Compiler:    toolchain.Command{Name: cc, Args: []string{pic}},
		Archiver:    toolchain.ParseCommand(archiver),
		SharedFlag:  shared,
	})
}

// NewItanium returns the profile of the Intel compiler on Itanium. The compiler is
// called icc on current releases, so ecc is only probed after it.
func NewItanium() toolchain.Profile {
	return toolchain.MustProfile(toolchain.ProfileConfig{
		ID:          IDItanium,
		Description: "Intel C compiler for Itanium, compatible with GCC",
		Platform:    toolchain.PlatformPOSIX,
		Arch:        toolchain.ArchIA64,
		Candidates:  []string{cc, ccLegacy},
		Compiler:    toolchain.Command{Name: cc, Args: []string{pic}},
		Archiver:    toolchain.ParseCommand(archiver),
		SharedFlag:  shared,
	})
}

// NewEM64T returns the profile of icc for x86_64.
func NewEM64T() toolchain.Profile {
	return toolchain.MustProfile(toolchain.ProfileConfig{
		ID:          IDEM64T,
		Description: "Intel x86_64 C compiler, compatible with a 64-bit GCC",
		Platform:    toolchain.PlatformPOSIX,
		Arch:        toolchain.ArchX86_64,
		Candidates:  []string{cc},
		Compiler:    toolchain.Command{Name: cc, Args: []string{"-m64", pic}},
		Archiver:    toolchain.ParseCommand(archiver),
		SharedFlag:  shared,
	})
}

func newWindows(id, description string, arch toolchain.Arch) toolchain.Profile {
	return toolchain.MustProfile(toolchain.ProfileConfig{
		ID:          id,
		Description: description,
		Platform:    toolchain.PlatformWindows,
		Arch:        arch,
		Candidates:  []string{cl},
		SharedFlag:  "/DLL",
		MSVC: &toolchain.MSVCTools{
			Lib:                 lib,
			Link:                link,
			CompileOptions:      compileOptions,
			CompileOptionsDebug: compileOptionsDebug,
		},
	})
}

// NewWindows returns the profile of icl for 32-bit x86.
func NewWindows() toolchain.Profile {
	return newWindows(IDWindows, "Intel C compiler, compatible with MSVC", toolchain.ArchX86)
}

// NewEM64TWindows returns the profile of icl for x86_64.
func NewEM64TWindows() toolchain.Profile {
	return newWindows(IDEM64TWindows, "Intel x86_64 C compiler, compatible with a 64-bit MSVC", toolchain.ArchX86_64)
}

// Profiles returns all the Intel profiles, POSIX ones first.
func Profiles() []toolchain.Profile {
	return []toolchain.Profile{NewIntel(), NewItanium(), NewEM64T(), NewWindows(), NewEM64TWindows()}
}

func init() {
	for _, p := range Profiles() {
		toolchain.RegisterProfile(p)
	}
}
