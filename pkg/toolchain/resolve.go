package toolchain

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// Role is one of the jobs of a compiler driver.
type Role int

const (
	RoleCompiler Role = iota
	RoleCompilerSO
	RoleCompilerCXX
	RoleArchiver
	RoleLinkerExe
	RoleLinkerSO
)

var roleNames = [...]string{
	RoleCompiler:    "compiler",
	RoleCompilerSO:  "compiler_so",
	RoleCompilerCXX: "compiler_cxx",
	RoleArchiver:    "archiver",
	RoleLinkerExe:   "linker_exe",
	RoleLinkerSO:    "linker_so",
}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleNames[r]
}

// ParseRole converts a role name such as "compiler_so" to a Role.
func ParseRole(input string) (Role, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(input)), "-", "_")
	for r, n := range roleNames {
		if n == name {
			return Role(r), nil
		}
	}
	return 0, fmt.Errorf("toolchain: unknown role %q", input)
}

func (r Role) compiles() bool {
	return r == RoleCompiler || r == RoleCompilerSO || r == RoleCompilerCXX
}

// Command returns the command for a role. The boolean is false for unknown roles.
func (e Executables) Command(role Role) (Command, bool) {
	switch role {
	case RoleCompiler:
		return e.Compiler, true
	case RoleCompilerSO:
		return e.CompilerSO, true
	case RoleCompilerCXX:
		return e.CompilerCXX, true
	case RoleArchiver:
		return e.Archiver, true
	case RoleLinkerExe:
		return e.LinkerExe, true
	case RoleLinkerSO:
		return e.LinkerSO, true
	default:
		return Command{}, false
	}
}

var execCommandContext = exec.CommandContext

// A Toolchain is a profile resolved against a search path.
type Toolchain struct {
	profile Profile
	// path of the compiler, empty if no candidate was found.
	path string
	// candidate the path was found for.
	found string
	// tools maps the names of the other driver executables to their paths.
	// Tools that were not found are run by name.
	tools map[string]string
	// extra flags passed to the compiler, taken from CC.
	extra []string
}

// Profile returns the profile the toolchain was resolved from.
func (t *Toolchain) Profile() Profile {
	return t.profile
}

// Resolved reports whether one of the profile's candidate executables was found.
func (t *Toolchain) Resolved() bool {
	return t.path != ""
}

// Found returns the candidate name that was found, or the empty string.
func (t *Toolchain) Found() string {
	return t.found
}

// Executable returns the path of the compiler. It fails with an *ExecutableNotFoundError
// if none of the candidates was found during resolution.
func (t *Toolchain) Executable() (string, error) {
	if t.path == "" {
		return "", &ExecutableNotFoundError{ID: t.profile.id, Candidates: t.profile.Candidates()}
	}
	return t.path, nil
}

// Argv returns the full argument vector for running the given role: the resolved
// executable, the profile's fixed arguments, any flags taken from CC, the compile options for the build mode
// on MSVC-style profiles, and then args.
func (t *Toolchain) Argv(role Role, mode BuildMode, args ...string) ([]string, error) {
	exes := t.profile.executables

	c, ok := exes.Command(role)
	if !ok {
		return nil, fmt.Errorf("toolchain: %s: unknown role %s", t.profile.id, role)
	}

	if c.IsZero() {
		return nil, fmt.Errorf("toolchain: %s: no %s command", t.profile.id, role)
	}

	switch {
	case c.Name == exes.Compiler.Name:
		path, err := t.Executable()
		if err != nil {
			return nil, err
		}
		c = Command{Name: path, Args: c.Args}.WithArgs(t.extra...)
	case t.tools[c.Name] != "":
		c = Command{Name: t.tools[c.Name], Args: c.Args}
	}

	if role.compiles() && t.profile.msvc != nil {
		c = c.WithArgs(t.profile.msvc.Options(mode)...)
	}

	return c.WithArgs(args...).Argv(), nil
}

// Command prepares, but does not start, the command for the given role.
// It fails with an *ExecutableNotFoundError if the compiler was not found.
func (t *Toolchain) Command(ctx context.Context, role Role, mode BuildMode, args ...string) (*exec.Cmd, error) {
	argv, err := t.Argv(role, mode, args...)
	if err != nil {
		return nil, err
	}

	return execCommandContext(ctx, argv[0], argv[1:]...), nil
}

// Resolver resolves profiles to toolchains.
type Resolver struct {
	// Finder locates executables. If nil, the PATH environment variable is used.
	Finder Finder
	// Registry profiles are looked up in. If nil, the default registry is used.
	Registry *Registry
	// Platform of the host. If unset, it is detected.
	Platform Platform
	// Logger receives a debug record for every probe. If nil, nothing is logged.
	Logger *slog.Logger
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func (r *Resolver) finder() Finder {
	if r.Finder == nil {
		return SearchPathFromEnv()
	}
	return r.Finder
}

func (r *Resolver) registry() *Registry {
	if r.Registry == nil {
		return Default()
	}
	return r.Registry
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger == nil {
		return discardLogger
	}
	return r.Logger
}

// Resolve probes the profile's candidate executables in order and returns a toolchain
// for the first one found. If none is found the toolchain is still returned; the error
// is reported by Executable, Argv and Command.
func (r *Resolver) Resolve(p Profile) *Toolchain {
	return r.resolve(p, p.candidates)
}

func (r *Resolver) resolve(p Profile, candidates []string) *Toolchain {
	finder := r.finder()
	log := r.logger().With(slog.String("toolchain", p.id))

	t := &Toolchain{profile: p}

	for _, name := range candidates {
		path, err := finder.Find(name)
		if err != nil {
			log.Debug("candidate not found", slog.String("name", name), slog.Any("error", err))
			continue
		}

		log.Debug("candidate found", slog.String("name", name), slog.String("path", path))
		t.path, t.found = path, name
		break
	}

	if t.path == "" {
		log.Debug("no candidate found, deferring error to invocation", slog.Any("candidates", candidates))
	}

	exes := p.executables
	for _, c := range []Command{exes.CompilerSO, exes.CompilerCXX, exes.Archiver, exes.LinkerExe, exes.LinkerSO} {
		if c.IsZero() || c.Name == exes.Compiler.Name {
			continue
		}
		if _, ok := t.tools[c.Name]; ok {
			continue
		}
		if t.tools == nil {
			t.tools = map[string]string{}
		}

		path, err := finder.Find(c.Name)
		if err != nil {
			log.Debug("tool not found, using bare name", slog.String("name", c.Name))
			path = ""
		}
		t.tools[c.Name] = path
	}

	return t
}

// Use looks up the profile registered under id for the host platform and resolves it.
func (r *Resolver) Use(id string) (*Toolchain, error) {
	p, err := r.registry().LookupFor(id, r.Platform.orHost())
	if err != nil {
		return nil, err
	}

	return r.Resolve(p), nil
}

// Resolve resolves a profile using the given finder. A nil finder searches PATH.
func Resolve(p Profile, finder Finder) *Toolchain {
	r := Resolver{Finder: finder}
	return r.Resolve(p)
}
