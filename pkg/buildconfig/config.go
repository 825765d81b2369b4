/*
Package buildconfig loads the part of a build configuration that selects the
C compiler toolchain.

The configuration is read from a single file, named explicitly or by the
CCPROFILE_CONFIG environment variable. YAML, TOML and JSON (with comments)
files are accepted; the format is chosen by the file extension.
*/
package buildconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/tmaxmax/ccprofile/pkg/toolchain"
)

// EnvConfig is the environment variable holding the configuration path used by Load.
const EnvConfig = "CCPROFILE_CONFIG"

// DefaultToolchain is the toolchain selected when the configuration does not name one.
const DefaultToolchain = "intel"

// ErrNoConfig is returned by Load when EnvConfig is not set.
var ErrNoConfig = errors.New(EnvConfig + " environment variable not set")

// Config selects and customizes a toolchain.
type Config struct {
	// Toolchain is the identifier of the profile to use, e.g. "intelem".
	Toolchain string `yaml:"toolchain" toml:"toolchain" json:"toolchain"`
	// Mode is "release" or "debug". Empty means release.
	Mode string `yaml:"mode,omitempty" toml:"mode,omitempty" json:"mode,omitempty"`
	// Platform overrides the detected host platform: "posix" or "windows".
	Platform string `yaml:"platform,omitempty" toml:"platform,omitempty" json:"platform,omitempty"`
	// SearchPath lists directories searched for the compiler before PATH.
	SearchPath []string `yaml:"search_path,omitempty" toml:"search_path,omitempty" json:"search_path,omitempty"`
	// ExtraFlags are appended to the profile's compiler flags.
	ExtraFlags []string `yaml:"extra_flags,omitempty" toml:"extra_flags,omitempty" json:"extra_flags,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Toolchain: DefaultToolchain,
		Mode:      toolchain.BuildRelease.String(),
	}
}

// Load reads the configuration file named by the EnvConfig environment variable.
// There is no fallback: if the variable is unset, ErrNoConfig is returned.
func Load() (*Config, error) {
	path := os.Getenv(EnvConfig)
	if path == "" {
		return nil, ErrNoConfig
	}

	return LoadFile(path)
}

// LoadFile reads and validates a configuration file. Fields missing from the
// file keep their Default values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("buildconfig: %w", err)
	}

	cfg := Default()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".json", ".jsonc":
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	default:
		return nil, fmt.Errorf("buildconfig: %s: unsupported format %q", path, ext)
	}

	if err != nil {
		return nil, fmt.Errorf("buildconfig: failed to parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("buildconfig: %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that the toolchain is named and that mode and platform have known values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Toolchain) == "" {
		return errors.New("no toolchain selected")
	}

	if _, err := c.BuildMode(); err != nil {
		return err
	}

	if _, err := c.HostPlatform(); err != nil {
		return err
	}

	return nil
}

// BuildMode returns the parsed Mode.
func (c *Config) BuildMode() (toolchain.BuildMode, error) {
	return toolchain.ParseBuildMode(c.Mode)
}

// HostPlatform returns the parsed Platform, or the detected one if it is empty.
func (c *Config) HostPlatform() (toolchain.Platform, error) {
	if c.Platform == "" {
		return toolchain.DetectPlatform(), nil
	}
	return toolchain.ParsePlatform(c.Platform)
}

// Finder returns the search path to resolve the toolchain with: the configured
// directories followed by PATH.
func (c *Config) Finder() toolchain.SearchPath {
	env := toolchain.SearchPathFromEnv()
	if len(c.SearchPath) == 0 {
		return env
	}
	return env.Prepend(c.SearchPath...)
}

// Resolver returns a resolver for the configured platform and search path.
func (c *Config) Resolver(registry *toolchain.Registry) (*toolchain.Resolver, error) {
	platform, err := c.HostPlatform()
	if err != nil {
		return nil, err
	}

	return &toolchain.Resolver{
		Finder:   c.Finder(),
		Registry: registry,
		Platform: platform,
	}, nil
}

// Flags returns the compiler flags of the profile for the configured mode, followed by ExtraFlags.
func (c *Config) Flags(p toolchain.Profile) ([]string, error) {
	mode, err := c.BuildMode()
	if err != nil {
		return nil, err
	}

	return append(p.Flags(mode), c.ExtraFlags...), nil
}
