package toolchain

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform is the family of host operating systems a profile targets.
// Profiles are tagged with a Platform instead of being conditionally defined,
// so every profile exists on every host but only the matching ones are selectable.
type Platform int

const (
	// PlatformUnknown is the zero value. Where a Platform is optional it means
	// "the platform of the running process".
	PlatformUnknown Platform = iota
	// PlatformPOSIX covers Linux, the BSDs, macOS and other Unix-like systems,
	// where the compiler is driven like cc.
	PlatformPOSIX
	// PlatformWindows is driven like MSVC's cl.exe.
	PlatformWindows

	platformPOSIXString   = "posix"
	platformWindowsString = "windows"
)

func (p Platform) String() string {
	switch p {
	case PlatformUnknown:
		return "unknown"
	case PlatformPOSIX:
		return platformPOSIXString
	case PlatformWindows:
		return platformWindowsString
	default:
		return fmt.Sprintf("Platform(%d)", int(p))
	}
}

// ParsePlatform converts a platform name to a Platform. Besides "posix" and "windows"
// it accepts "win32", "nt" and the common Unix GOOS values.
func ParsePlatform(input string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case platformWindowsString, "win32", "nt":
		return PlatformWindows, nil
	case platformPOSIXString, "unix", "linux", "darwin", "freebsd", "netbsd", "openbsd", "dragonfly", "solaris", "illumos", "aix":
		return PlatformPOSIX, nil
	default:
		return PlatformUnknown, fmt.Errorf("toolchain: unknown platform %q", input)
	}
}

// DetectPlatform returns the platform of the running process.
func DetectPlatform() Platform {
	return platformForGOOS(runtime.GOOS)
}

func (p Platform) orHost() Platform {
	if p == PlatformUnknown {
		return DetectPlatform()
	}
	return p
}

func platformForGOOS(goos string) Platform {
	if goos == "windows" {
		return PlatformWindows
	}
	return PlatformPOSIX
}

// Arch is the target architecture of a profile.
type Arch int

const (
	// ArchNative is whatever the compiler targets by default.
	ArchNative Arch = iota
	ArchX86
	ArchX86_64
	// ArchIA64 is Itanium.
	ArchIA64
)

func (a Arch) String() string {
	switch a {
	case ArchNative:
		return "native"
	case ArchX86:
		return "x86"
	case ArchX86_64:
		return "x86_64"
	case ArchIA64:
		return "ia64"
	default:
		return fmt.Sprintf("Arch(%d)", int(a))
	}
}

// BuildMode selects between the release and debug flag sets of a profile.
type BuildMode int

const (
	BuildRelease BuildMode = iota
	BuildDebug
)

func (m BuildMode) String() string {
	if m == BuildDebug {
		return "debug"
	}
	return "release"
}

// ParseBuildMode converts "release" or "debug" to a BuildMode. The empty string is release.
func ParseBuildMode(input string) (BuildMode, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "release":
		return BuildRelease, nil
	case "debug":
		return BuildDebug, nil
	default:
		return 0, fmt.Errorf("toolchain: unknown build mode %q", input)
	}
}
