// Package nixconf maintains the user-level nix.conf feature declarations.
package nixconf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/nixstrap/internal/messages"
)

// Keys for the settings the bootstrap declares.
const (
	KeyExperimentalFeatures = "experimental-features"
	KeyAcceptFlakeConfig    = "accept-flake-config"
)

// Values for the settings the bootstrap declares.
const (
	ValueExperimentalFeatures = "nix-command flakes"
	ValueAcceptFlakeConfig    = "true"
)

// Setting is a single key = value declaration in nix.conf.
type Setting struct {
	Key   string
	Value string
}

// Declarations returns the ordered settings nixstrap writes to nix.conf.
func Declarations() []Setting {
	return []Setting{
		{Key: KeyExperimentalFeatures, Value: ValueExperimentalFeatures},
		{Key: KeyAcceptFlakeConfig, Value: ValueAcceptFlakeConfig},
	}
}

// NixConfigEnv returns the declarations formatted for the NIX_CONFIG
// environment variable. The file only affects future sessions; the env
// override makes the capabilities visible to the current invocation.
func NixConfigEnv() string {
	var b strings.Builder
	for _, s := range Declarations() {
		fmt.Fprintf(&b, "%s = %s\n", s.Key, s.Value)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// ExtraFlags returns the declarations as explicit nix CLI flags.
func ExtraFlags() []string {
	return []string{
		"--extra-experimental-features", ValueExperimentalFeatures,
		"--" + KeyAcceptFlakeConfig,
	}
}

// DefaultPath returns the per-user nix.conf path, honoring XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, "nix", "nix.conf"), nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf(messages.NixconfResolveHomeErrFmt, err)
	}
	return filepath.Join(home, ".config", "nix", "nix.conf"), nil
}

// Patch returns content with every line matching an updated key removed and
// the updates appended, one declaration per key. Applying Patch twice with
// the same updates yields identical output.
func Patch(content string, updates []Setting) string {
	keys := make(map[string]bool, len(updates))
	for _, s := range updates {
		keys[s.Key] = true
	}

	var kept []string
	if content != "" {
		for _, line := range strings.Split(content, "\n") {
			key, ok := parseKey(line)
			if ok && keys[key] {
				continue
			}
			kept = append(kept, line)
		}
	}

	// Drop trailing blank lines so the appended block sits flush at the end.
	for len(kept) > 0 && strings.TrimSpace(kept[len(kept)-1]) == "" {
		kept = kept[:len(kept)-1]
	}

	var b strings.Builder
	for _, line := range kept {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	for _, s := range updates {
		fmt.Fprintf(&b, "%s = %s\n", s.Key, s.Value)
	}
	return b.String()
}

// Declared reports whether content carries an active declaration of the
// setting with the expected value. Commented-out lines do not count.
func Declared(content string, s Setting) bool {
	for _, line := range strings.Split(content, "\n") {
		key, ok := parseKey(line)
		if !ok || key != s.Key {
			continue
		}
		_, value, _ := strings.Cut(line, "=")
		if strings.TrimSpace(value) == s.Value {
			return true
		}
	}
	return false
}

// parseKey extracts the setting key from a nix.conf line.
// Comment and blank lines report no key.
func parseKey(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", false
	}
	idx := strings.Index(trimmed, "=")
	if idx <= 0 {
		return "", false
	}
	key := strings.TrimSpace(trimmed[:idx])
	if key == "" {
		return "", false
	}
	return key, true
}

// System abstracts filesystem operations needed by Ensure.
// The interface is package-local, mirroring the per-package seams used
// elsewhere, so tests can fail individual operations.
type System interface {
	MkdirAll(path string, perm os.FileMode) error
	ReadFile(name string) ([]byte, error)
	WriteFileAtomic(filename string, data []byte, perm os.FileMode) error
}

// Ensure rewrites the nix.conf at path so it contains each declaration
// exactly once, creating the containing directory and file when absent.
// The write goes through an atomic temp-file replace so an interrupt leaves
// either the old or the new complete content.
func Ensure(sys System, path string) error {
	if err := sys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf(messages.NixconfCreateDirErrFmt, filepath.Dir(path), err)
	}

	content := ""
	data, err := sys.ReadFile(path)
	switch {
	case err == nil:
		content = string(data)
	case errors.Is(err, os.ErrNotExist):
		// Missing file is the common first-run case; start from empty.
	default:
		return fmt.Errorf(messages.NixconfReadErrFmt, path, err)
	}

	patched := Patch(content, Declarations())
	if patched == content {
		return nil
	}
	if err := sys.WriteFileAtomic(path, []byte(patched), 0o644); err != nil {
		return fmt.Errorf(messages.NixconfWriteErrFmt, path, err)
	}
	return nil
}
