// Package identity resolves the username the generated configuration targets.
package identity

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"strings"

	"github.com/conn-castle/nixstrap/internal/messages"
	"github.com/conn-castle/nixstrap/internal/prompt"
)

// ErrEmptyUsername indicates no usable username could be resolved.
// The apply stage must never run without one.
var ErrEmptyUsername = errors.New(messages.IdentityEmptyUsername)

// Identity is the configured identity, threaded from the generation stage
// into the apply stage.
type Identity struct {
	Username string
}

// System abstracts user detection.
type System interface {
	CurrentUser() (*user.User, error)
	Getenv(key string) string
}

// RealSystem implements System using the OS.
type RealSystem struct{}

// CurrentUser returns the current OS user.
func (RealSystem) CurrentUser() (*user.User, error) {
	return user.Current()
}

// Getenv returns the value of the environment variable named by key.
func (RealSystem) Getenv(key string) string {
	return os.Getenv(key)
}

// Sanitize strips all whitespace from a candidate username.
func Sanitize(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// DetectDefault returns the sanitized system username, or empty when none is
// detectable. os/user is preferred; USER and LOGNAME cover static binaries
// on systems without cgo user lookups.
func DetectDefault(sys System) string {
	if u, err := sys.CurrentUser(); err == nil {
		if name := Sanitize(u.Username); name != "" {
			return name
		}
	}
	for _, key := range []string{"USER", "LOGNAME"} {
		if name := Sanitize(sys.Getenv(key)); name != "" {
			return name
		}
	}
	return ""
}

// Resolve determines the identity: an explicit override wins, otherwise the
// operator is prompted with the detected default pre-filled (empty input
// adopts the default). A nil ui skips the prompt and uses the default.
// An empty sanitized result is fatal.
func Resolve(sys System, ui prompt.UI, override string) (Identity, error) {
	if name := Sanitize(override); name != "" {
		return Identity{Username: name}, nil
	}
	if strings.TrimSpace(override) != "" {
		// Override was provided but whitespace-only.
		return Identity{}, ErrEmptyUsername
	}

	fallback := DetectDefault(sys)
	if ui == nil {
		if fallback == "" {
			return Identity{}, ErrEmptyUsername
		}
		return Identity{Username: fallback}, nil
	}

	typed := ""
	title := fmt.Sprintf(messages.IdentityPromptFmt, fallback)
	if err := ui.Input(title, fallback, &typed); err != nil {
		return Identity{}, err
	}
	name := Sanitize(typed)
	if name == "" {
		name = fallback
	}
	if name == "" {
		return Identity{}, ErrEmptyUsername
	}
	return Identity{Username: name}, nil
}
