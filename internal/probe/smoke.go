package probe

import (
	"fmt"

	"github.com/conn-castle/nixstrap/internal/messages"
	"github.com/conn-castle/nixstrap/internal/nixconf"
)

// SmokeTestTarget is the known-good flake reference queried to confirm the
// experimental capabilities work when passed explicitly.
const SmokeTestTarget = "github:NixOS/nixpkgs"

// SmokeTest runs a read-only flake query with the capabilities as explicit
// flags. The nix.conf edit only affects future sessions, so the flags prove
// the capability is reachable right now. Callers treat failure as a warning;
// the file write remains the authoritative action.
func SmokeTest(sys System, exe string) error {
	args := append(nixconf.ExtraFlags(), "flake", "metadata", "--json", SmokeTestTarget)
	if _, err := sys.CommandOutput(exe, args...); err != nil {
		return fmt.Errorf(messages.ProbeSmokeTestFailedFmt, SmokeTestTarget, err)
	}
	return nil
}
