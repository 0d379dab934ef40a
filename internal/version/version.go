// Package version normalizes nixstrap release version strings.
package version

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/conn-castle/nixstrap/internal/messages"
)

var semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// IsDev reports whether the build version denotes a development build.
func IsDev(v string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == "dev" || strings.HasSuffix(trimmed, "-dev")
}

// Normalize strips an optional leading v and validates X.Y.Z form.
func Normalize(v string) (string, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(v), "v")
	if !semverPattern.MatchString(trimmed) {
		return "", fmt.Errorf(messages.VersionInvalidFmt, v)
	}
	return trimmed, nil
}
