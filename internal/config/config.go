// Package config loads the optional nixstrap configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/nixstrap/internal/messages"
)

// Defaults shipped with the binary; config.toml keys override them.
const (
	DefaultNixpkgsBranch     = "nixos-24.05"
	DefaultHomeManagerBranch = "release-24.05"
	DefaultStateVersion      = "24.05"
)

// DefaultPackages is the fixed package list installed into the user environment.
var DefaultPackages = []string{"git", "ripgrep", "fd", "jq", "htop"}

// Config holds the generation parameters.
type Config struct {
	Username          string   `toml:"username"`
	NixpkgsBranch     string   `toml:"nixpkgs-branch"`
	HomeManagerBranch string   `toml:"home-manager-branch"`
	Platform          string   `toml:"platform"`
	StateVersion      string   `toml:"state-version"`
	Packages          []string `toml:"packages"`
}

// Default returns the built-in configuration with the platform autodetected.
func Default() *Config {
	return &Config{
		NixpkgsBranch:     DefaultNixpkgsBranch,
		HomeManagerBranch: DefaultHomeManagerBranch,
		Platform:          DetectPlatform(),
		StateVersion:      DefaultStateVersion,
		Packages:          append([]string(nil), DefaultPackages...),
	}
}

// DetectPlatform maps the Go runtime to a Nix platform double.
func DetectPlatform() string {
	arch := runtime.GOARCH
	switch arch {
	case "amd64":
		arch = "x86_64"
	case "arm64":
		arch = "aarch64"
	case "386":
		arch = "i686"
	}
	return arch + "-" + runtime.GOOS
}

// DefaultPath returns the per-user config.toml path, honoring XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, "nixstrap", "config.toml"), nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf(messages.ConfigResolveHomeErrFmt, err)
	}
	return filepath.Join(home, ".config", "nixstrap", "config.toml"), nil
}

var stateVersionPattern = regexp.MustCompile(`^\d{2}\.\d{2}$`)

// Validate checks the resolved configuration. source names the file in errors.
func (c *Config) Validate(source string) error {
	if strings.TrimSpace(c.NixpkgsBranch) == "" {
		return fmt.Errorf(messages.ConfigEmptyFieldFmt, source, "nixpkgs-branch")
	}
	if strings.TrimSpace(c.HomeManagerBranch) == "" {
		return fmt.Errorf(messages.ConfigEmptyFieldFmt, source, "home-manager-branch")
	}
	if strings.TrimSpace(c.Platform) == "" {
		return fmt.Errorf(messages.ConfigEmptyFieldFmt, source, "platform")
	}
	if !stateVersionPattern.MatchString(c.StateVersion) {
		return fmt.Errorf(messages.ConfigInvalidStateVersionFmt, source, c.StateVersion)
	}
	if len(c.Packages) == 0 {
		return fmt.Errorf(messages.ConfigEmptyFieldFmt, source, "packages")
	}
	for _, pkg := range c.Packages {
		if strings.TrimSpace(pkg) == "" {
			return fmt.Errorf(messages.ConfigEmptyPackageFmt, source)
		}
	}
	return nil
}

// Load reads the config file at path, overlaying its keys on the defaults.
// A missing file is not an error; the defaults apply unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigReadErrFmt, path, err)
	}
	if err := parseInto(cfg, data, path); err != nil {
		return nil, err
	}
	// An explicit empty platform means autodetect, same as omitting the key.
	if strings.TrimSpace(cfg.Platform) == "" {
		cfg.Platform = DetectPlatform()
	}
	if err := cfg.Validate(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault reads the config from the default per-user location.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}
