package toolchain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrToolchainNotFound is returned when no profile is registered under an identifier
	// for the requested platform.
	ErrToolchainNotFound = errors.New("toolchain not found")
	// ErrExecutableNotFound is returned when none of a profile's candidate executables
	// could be found on the search path.
	ErrExecutableNotFound = errors.New("executable not found")
	// ErrInvalidProfile is returned by NewProfile and Registry.Register for malformed profiles.
	ErrInvalidProfile = errors.New("invalid profile")
)

// NotFoundError describes a failed profile lookup.
type NotFoundError struct {
	ID string
	// Platform the lookup was made for.
	Platform Platform
	// Available is set when the identifier exists but targets another platform.
	Available *Platform
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("toolchain: none detected for %s: %v", e.Platform, ErrToolchainNotFound)
	}
	if e.Available != nil {
		return fmt.Sprintf("toolchain: %q targets %s, not %s: %v", e.ID, *e.Available, e.Platform, ErrToolchainNotFound)
	}
	return fmt.Sprintf("toolchain: %q: %v, forgotten import?", e.ID, ErrToolchainNotFound)
}

func (e *NotFoundError) Unwrap() error {
	return ErrToolchainNotFound
}

// ExecutableNotFoundError is returned when a toolchain is invoked but none of its
// candidate executables resolved.
type ExecutableNotFoundError struct {
	ID         string
	Candidates []string
}

func (e *ExecutableNotFoundError) Error() string {
	return fmt.Sprintf("toolchain: %s: %v (tried %s)", e.ID, ErrExecutableNotFound, strings.Join(e.Candidates, ", "))
}

func (e *ExecutableNotFoundError) Unwrap() error {
	return ErrExecutableNotFound
}

func invalidProfile(id, format string, args ...interface{}) error {
	return fmt.Errorf("toolchain: profile %q: %w: %s", id, ErrInvalidProfile, fmt.Sprintf(format, args...))
}
