package toolchain

import (
	"fmt"
	"sync"
)

// A Registry maps toolchain identifiers to profiles. Profiles can only be added:
// once an identifier is registered it keeps its profile for the lifetime of the registry.
// The zero value is ready to use.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]Profile
	ids      []string // provide ordered iteration for the map
}

// NewRegistry returns a registry holding the given profiles.
func NewRegistry(profiles ...Profile) (*Registry, error) {
	r := &Registry{}
	for _, p := range profiles {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a profile. It fails if the profile is the zero Profile or if
// its identifier is already registered.
func (r *Registry) Register(p Profile) error {
	if p.IsZero() {
		return fmt.Errorf("toolchain: cannot register the zero profile: %w", ErrInvalidProfile)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[p.id]; ok {
		return fmt.Errorf("toolchain: profile %q is already registered", p.id)
	}

	if r.profiles == nil {
		r.profiles = map[string]Profile{}
	}

	r.profiles[p.id] = p
	r.ids = append(r.ids, p.id)

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(p Profile) {
	if err := r.Register(p); err != nil {
		panic(err)
	}
}

// Lookup returns the profile registered under id, regardless of its platform.
func (r *Registry) Lookup(id string) (Profile, error) {
	r.mu.RLock()
	p, ok := r.profiles[id]
	r.mu.RUnlock()

	if !ok {
		return Profile{}, &NotFoundError{ID: id}
	}

	return p, nil
}

// LookupFor returns the profile registered under id if it targets the given platform.
// A profile for another platform is reported as not found.
func (r *Registry) LookupFor(id string, platform Platform) (Profile, error) {
	r.mu.RLock()
	p, ok := r.profiles[id]
	r.mu.RUnlock()

	if !ok {
		return Profile{}, &NotFoundError{ID: id, Platform: platform}
	}

	if p.platform != platform {
		available := p.platform
		return Profile{}, &NotFoundError{ID: id, Platform: platform, Available: &available}
	}

	return p, nil
}

// IDs returns the registered identifiers in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.ids...)
}

// Profiles returns the profiles targeting the given platform, in registration order.
func (r *Registry) Profiles(platform Platform) []Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found []Profile

	for _, id := range r.ids {
		if p := r.profiles[id]; p.platform == platform {
			found = append(found, p)
		}
	}

	return found
}

// All returns every registered profile in registration order.
func (r *Registry) All() []Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := make([]Profile, 0, len(r.ids))
	for _, id := range r.ids {
		found = append(found, r.profiles[id])
	}

	return found
}

var defaultRegistry Registry

// Default returns the process-wide registry the package level functions operate on.
func Default() *Registry {
	return &defaultRegistry
}

// RegisterProfile adds a profile to the default registry. It is meant to be called
// from the init function of a toolchain package. If the profile is invalid or a profile
// with the same identifier already exists, this function panics.
func RegisterProfile(p Profile) {
	if err := defaultRegistry.Register(p); err != nil {
		panic(err)
	}
}

// LookupProfile returns the profile registered under id in the default registry,
// provided it targets the host platform.
func LookupProfile(id string) (Profile, error) {
	return defaultRegistry.LookupFor(id, DetectPlatform())
}

// ProfileIDs returns the identifiers registered in the default registry.
func ProfileIDs() []string {
	return defaultRegistry.IDs()
}

// ProfilesFor returns the profiles of the default registry that target the platform.
func ProfilesFor(platform Platform) []Profile {
	return defaultRegistry.Profiles(platform)
}
