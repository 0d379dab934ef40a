// Package flake materializes the home-manager flake configuration pair.
package flake

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/nixstrap/internal/config"
	"github.com/conn-castle/nixstrap/internal/fsutil"
	"github.com/conn-castle/nixstrap/internal/identity"
	"github.com/conn-castle/nixstrap/internal/messages"
	"github.com/conn-castle/nixstrap/internal/templates"
)

// File names generated into the flake directory.
const (
	FlakeFile = "flake.nix"
	HomeFile  = "home.nix"
)

// Params carries every value substituted into the generated files.
type Params struct {
	Username          string
	HomeDir           string
	NixpkgsBranch     string
	HomeManagerBranch string
	Platform          string
	StateVersion      string
	Packages          []string
}

// ParamsFrom combines the loaded configuration with the resolved identity.
func ParamsFrom(cfg *config.Config, id identity.Identity) (Params, error) {
	if strings.TrimSpace(id.Username) == "" {
		return Params{}, identity.ErrEmptyUsername
	}
	home, err := homedir.Dir()
	if err != nil {
		return Params{}, fmt.Errorf(messages.FlakeResolveHomeErrFmt, err)
	}
	return Params{
		Username:          id.Username,
		HomeDir:           home,
		NixpkgsBranch:     cfg.NixpkgsBranch,
		HomeManagerBranch: cfg.HomeManagerBranch,
		Platform:          cfg.Platform,
		StateVersion:      cfg.StateVersion,
		Packages:          cfg.Packages,
	}, nil
}

// DefaultDir returns the flake output directory, honoring XDG_CONFIG_HOME.
func DefaultDir() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, "home-manager"), nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf(messages.FlakeResolveHomeErrFmt, err)
	}
	return filepath.Join(home, ".config", "home-manager"), nil
}

// System abstracts filesystem operations needed by Generate.
type System interface {
	MkdirAll(path string, perm os.FileMode) error
	ReadFile(name string) ([]byte, error)
	WriteFileAtomic(filename string, data []byte, perm os.FileMode) error
}

// RealSystem implements System using the OS filesystem.
type RealSystem struct{}

// MkdirAll creates a directory named path, along with any necessary parents.
func (RealSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// ReadFile reads the named file and returns the contents.
func (RealSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFileAtomic writes data to a file atomically by writing to a temp file and renaming.
func (RealSystem) WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return fsutil.WriteFileAtomic(filename, data, perm)
}

// Result reports the generated file locations.
type Result struct {
	FlakePath string
	HomePath  string
}

// Generate renders flake.nix and home.nix into dir, fully overwriting any
// previous content. When an existing file differs from the new rendering, a
// unified diff is printed to out before the overwrite so the operator sees
// what the regeneration changes.
func Generate(sys System, dir string, p Params, out io.Writer) (Result, error) {
	if strings.TrimSpace(p.Username) == "" {
		return Result{}, identity.ErrEmptyUsername
	}
	if err := sys.MkdirAll(dir, 0o755); err != nil {
		return Result{}, fmt.Errorf(messages.FlakeCreateDirErrFmt, dir, err)
	}

	rendered, err := Rendered(p)
	if err != nil {
		return Result{}, err
	}
	result := Result{
		FlakePath: filepath.Join(dir, FlakeFile),
		HomePath:  filepath.Join(dir, HomeFile),
	}
	for _, name := range []string{FlakeFile, HomeFile} {
		path := filepath.Join(dir, name)
		if err := writeWithPreview(sys, path, rendered[name], out); err != nil {
			return Result{}, err
		}
	}
	return result, nil
}

// Rendered returns the contents Generate would write for p, keyed by file
// name. Doctor compares these against the on-disk files to detect drift.
func Rendered(p Params) (map[string][]byte, error) {
	if strings.TrimSpace(p.Username) == "" {
		return nil, identity.ErrEmptyUsername
	}
	rendered := make(map[string][]byte, 2)
	for _, name := range []string{FlakeFile, HomeFile} {
		data, err := templates.Render(name+".tmpl", p)
		if err != nil {
			return nil, err
		}
		rendered[name] = data
	}
	return rendered, nil
}

// writeWithPreview writes data to path, printing a diff against any existing
// differing content first.
func writeWithPreview(sys System, path string, data []byte, out io.Writer) error {
	existing, err := sys.ReadFile(path)
	switch {
	case err == nil:
		if string(existing) == string(data) {
			return nil
		}
		if out != nil {
			fmt.Fprintf(out, messages.FlakeDiffHeaderFmt, path)
			fmt.Fprint(out, udiff.Unified(path, path+" (new)", string(existing), string(data)))
		}
	case errors.Is(err, os.ErrNotExist):
		// First generation; nothing to preview.
	default:
		return fmt.Errorf(messages.FlakeReadErrFmt, path, err)
	}
	if err := sys.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf(messages.FlakeWriteErrFmt, path, err)
	}
	return nil
}
