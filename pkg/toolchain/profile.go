package toolchain

// Executables holds the commands a compiler driver runs for each of its jobs.
type Executables struct {
	// Compiler compiles C sources to objects.
	Compiler Command
	// CompilerSO compiles C sources that end up in a shared library.
	CompilerSO Command
	// CompilerCXX compiles C++ sources.
	CompilerCXX Command
	// Archiver creates static libraries.
	Archiver Command
	// LinkerExe links executables.
	LinkerExe Command
	// LinkerSO links shared libraries.
	LinkerSO Command
}

func (e Executables) clone() Executables {
	return Executables{
		Compiler:    e.Compiler.clone(),
		CompilerSO:  e.CompilerSO.clone(),
		CompilerCXX: e.CompilerCXX.clone(),
		Archiver:    e.Archiver.clone(),
		LinkerExe:   e.LinkerExe.clone(),
		LinkerSO:    e.LinkerSO.clone(),
	}
}

// MSVCTools are the extra settings of a profile driven like MSVC: a separate
// librarian and linker, and distinct compile options for release and debug builds.
type MSVCTools struct {
	// Lib is the librarian used to create static libraries.
	Lib string
	// Link is the linker.
	Link string
	// CompileOptions are passed to the compiler in release builds.
	CompileOptions []string
	// CompileOptionsDebug are passed to the compiler in debug builds.
	CompileOptionsDebug []string
}

// Options returns the compile options for the given build mode. Exactly one
// of the two option sets is returned.
func (m MSVCTools) Options(mode BuildMode) []string {
	if mode == BuildDebug {
		return append([]string(nil), m.CompileOptionsDebug...)
	}
	return append([]string(nil), m.CompileOptions...)
}

func (m *MSVCTools) clone() *MSVCTools {
	if m == nil {
		return nil
	}
	return &MSVCTools{
		Lib:                 m.Lib,
		Link:                m.Link,
		CompileOptions:      append([]string(nil), m.CompileOptions...),
		CompileOptionsDebug: append([]string(nil), m.CompileOptionsDebug...),
	}
}

// ProfileConfig is the input to NewProfile.
type ProfileConfig struct {
	// ID is the toolchain identifier the profile is registered under, e.g. "intelem".
	ID          string
	Description string
	Platform    Platform
	Arch        Arch
	// Candidates are the executable names probed on the search path, in order.
	// The first one found wins.
	Candidates []string
	// Compiler is the compiler command line. On POSIX it defaults to the first candidate.
	// On Windows its arguments are ignored; use MSVC.CompileOptions instead.
	Compiler Command
	// Archiver is the static library command on POSIX. Windows profiles use MSVC.Lib.
	Archiver Command
	// SharedFlag is appended to the compiler command to link shared libraries on POSIX,
	// or to the linker on Windows.
	SharedFlag string
	// Executables overrides the commands derived from Compiler, Archiver and SharedFlag.
	Executables *Executables
	// MSVC must be set for Windows profiles and must be nil for POSIX profiles.
	MSVC *MSVCTools
}

// Profile is an immutable description of how to drive one compiler on one platform.
// Its accessors return copies, so a registered profile cannot be modified.
type Profile struct {
	id          string
	description string
	platform    Platform
	arch        Arch
	candidates  []string
	executables Executables
	sharedFlag  string
	msvc        *MSVCTools
}

// NewProfile validates the configuration and builds a Profile from it.
func NewProfile(cfg ProfileConfig) (Profile, error) {
	if cfg.ID == "" || !isValidImplementationName(cfg.ID) {
		return Profile{}, invalidProfile(cfg.ID, "identifier is empty or has invalid characters")
	}

	if len(cfg.Candidates) == 0 {
		return Profile{}, invalidProfile(cfg.ID, "no candidate executables")
	}

	for _, c := range cfg.Candidates {
		if c == "" {
			return Profile{}, invalidProfile(cfg.ID, "empty candidate executable")
		}
	}

	p := Profile{
		id:          cfg.ID,
		description: cfg.Description,
		platform:    cfg.Platform,
		arch:        cfg.Arch,
		candidates:  append([]string(nil), cfg.Candidates...),
		sharedFlag:  cfg.SharedFlag,
	}

	compiler := cfg.Compiler.clone()
	if compiler.IsZero() {
		compiler = Command{Name: cfg.Candidates[0]}
	}

	switch cfg.Platform {
	case PlatformPOSIX:
		if cfg.MSVC != nil {
			return Profile{}, invalidProfile(cfg.ID, "MSVC tools set on a %s profile", cfg.Platform)
		}

		if cfg.Archiver.IsZero() && cfg.Executables == nil {
			return Profile{}, invalidProfile(cfg.ID, "no archiver")
		}

		p.executables = Executables{
			Compiler:    compiler,
			CompilerSO:  compiler.clone(),
			CompilerCXX: compiler.clone(),
			Archiver:    cfg.Archiver.clone(),
			LinkerExe:   compiler.clone(),
			LinkerSO:    compiler.WithArgs(nonEmpty(cfg.SharedFlag)...),
		}
	case PlatformWindows:
		if cfg.MSVC == nil || cfg.MSVC.Lib == "" || cfg.MSVC.Link == "" {
			return Profile{}, invalidProfile(cfg.ID, "%s profiles need a librarian and a linker", cfg.Platform)
		}

		p.msvc = cfg.MSVC.clone()

		cc := Command{Name: compiler.Name}
		p.executables = Executables{
			Compiler:    cc,
			CompilerSO:  cc,
			CompilerCXX: cc,
			Archiver:    Command{Name: cfg.MSVC.Lib},
			LinkerExe:   Command{Name: cfg.MSVC.Link},
			LinkerSO:    Command{Name: cfg.MSVC.Link}.WithArgs(nonEmpty(cfg.SharedFlag)...),
		}
	default:
		return Profile{}, invalidProfile(cfg.ID, "unknown platform %s", cfg.Platform)
	}

	if cfg.Executables != nil {
		p.executables = cfg.Executables.clone()
	}

	if p.executables.Compiler.IsZero() {
		return Profile{}, invalidProfile(cfg.ID, "no compiler")
	}

	return p, nil
}

// MustProfile is like NewProfile but panics on error. It is meant for
// package-level profile tables.
func MustProfile(cfg ProfileConfig) Profile {
	p, err := NewProfile(cfg)
	if err != nil {
		panic(err)
	}
	return p
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

// ID returns the toolchain identifier.
func (p Profile) ID() string { return p.id }

func (p Profile) Description() string { return p.description }

func (p Profile) Platform() Platform { return p.platform }

func (p Profile) Arch() Arch { return p.arch }

// IsZero reports whether p is the zero Profile, which is never registered.
func (p Profile) IsZero() bool { return p.id == "" }

// Candidates returns the executable names probed on the search path, in priority order.
func (p Profile) Candidates() []string {
	return append([]string(nil), p.candidates...)
}

// Executables returns the driver commands of the profile.
func (p Profile) Executables() Executables {
	return p.executables.clone()
}

// CompilerArgs returns the fixed arguments of the compiler command.
func (p Profile) CompilerArgs() []string {
	return append([]string(nil), p.executables.Compiler.Args...)
}

// SharedFlag returns the flag that makes the linker produce a shared library.
func (p Profile) SharedFlag() string { return p.sharedFlag }

// MSVC returns the MSVC style settings. The boolean is false for POSIX profiles.
func (p Profile) MSVC() (MSVCTools, bool) {
	if p.msvc == nil {
		return MSVCTools{}, false
	}
	return *p.msvc.clone(), true
}

// Flags returns the compiler flags for the build mode. POSIX profiles have a
// single flag set, Windows profiles choose between the release and debug options.
func (p Profile) Flags(mode BuildMode) []string {
	if p.msvc != nil {
		return p.msvc.Options(mode)
	}
	return p.CompilerArgs()
}

func (p Profile) String() string {
	return p.id + " (" + p.platform.String() + "/" + p.arch.String() + ")"
}
