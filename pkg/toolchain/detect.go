package toolchain

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DetectToolchains resolves every profile registered for the host platform and returns
// the toolchains whose compiler was found, in registration order.
func (r *Resolver) DetectToolchains(ctx context.Context) ([]*Toolchain, error) {
	profiles := r.registry().Profiles(r.Platform.orHost())
	resolved := make([]*Toolchain, len(profiles))

	g, gctx := errgroup.WithContext(ctx)

	for i := range profiles {
		i := i

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			resolved[i] = r.Resolve(profiles[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var found []*Toolchain

	for _, t := range resolved {
		if t.Resolved() {
			found = append(found, t)
		}
	}

	return found, nil
}

// UsePreferred selects the toolchain named by the CC environment variable. CC may hold
// a toolchain identifier, or a compiler name or path matching one of a profile's candidates,
// in which case that executable is used. Flags in CC select among the matching profiles the one
// whose compiler already passes most of them; the rest are added to every compiler command.
// If CC is empty or matches nothing, the first detected
// toolchain is used. If no toolchain was detected, it returns an error.
func (r *Resolver) UsePreferred(ctx context.Context) (*Toolchain, error) {
	if cc := strings.TrimSpace(os.Getenv("CC")); cc != "" {
		if t, ok := r.fromCC(cc); ok {
			return t, nil
		}
	}

	found, err := r.DetectToolchains(ctx)
	if err != nil {
		return nil, err
	}

	if len(found) == 0 {
		return nil, &NotFoundError{ID: "", Platform: r.Platform.orHost()}
	}

	return found[0], nil
}

func (r *Resolver) fromCC(cc string) (*Toolchain, bool) {
	platform := r.Platform.orHost()

	// CC may carry flags, e.g. "icc -m64".
	c := ParseCommand(cc)

	if p, err := r.registry().LookupFor(c.Name, platform); err == nil {
		t := r.Resolve(p)
		t.extra = extraArgs(p, c.Args)
		return t, true
	}

	base := candidateBase(c.Name)

	var (
		best  Profile
		score = -1
	)

	for _, p := range r.registry().Profiles(platform) {
		for _, name := range p.candidates {
			if candidateBase(name) != base {
				continue
			}
			if s := len(c.Args) - len(extraArgs(p, c.Args)); s > score {
				best, score = p, s
			}
			break
		}
	}

	if score < 0 {
		return nil, false
	}

	t := r.resolve(best, []string{c.Name})
	if !t.Resolved() {
		return nil, false
	}
	t.extra = extraArgs(best, c.Args)

	return t, true
}

func candidateBase(name string) string {
	return strings.ToLower(strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)))
}

// extraArgs returns the flags of args the profile's compiler does not already pass.
func extraArgs(p Profile, args []string) []string {
	own := map[string]bool{}
	for _, a := range p.executables.Compiler.Args {
		own[a] = true
	}

	var extra []string
	for _, a := range args {
		if !own[a] {
			extra = append(extra, a)
		}
	}

	return extra
}

var (
	hostResolver  Resolver
	hostCache     sync.Map // map[string]*Toolchain
	hostCacheInit sync.Mutex
)

// Use looks up the profile registered under id in the default registry for the host
// platform and resolves it against PATH. Results are cached for the lifetime of the process.
func Use(id string) (*Toolchain, error) {
	if t, ok := hostCache.Load(id); ok {
		return t.(*Toolchain), nil
	}

	hostCacheInit.Lock()
	defer hostCacheInit.Unlock()

	if t, ok := hostCache.Load(id); ok {
		return t.(*Toolchain), nil
	}

	t, err := hostResolver.Use(id)
	if err != nil {
		return nil, err
	}

	hostCache.Store(id, t)
	return t, nil
}

// DetectToolchains returns the toolchains of the default registry whose compiler
// is found on PATH.
func DetectToolchains(ctx context.Context) ([]*Toolchain, error) {
	return hostResolver.DetectToolchains(ctx)
}

// UsePreferred is Resolver.UsePreferred on the default registry and PATH.
func UsePreferred(ctx context.Context) (*Toolchain, error) {
	return hostResolver.UsePreferred(ctx)
}
