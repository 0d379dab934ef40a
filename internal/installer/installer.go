// Package installer installs nix via the vendor install script and adopts
// its shell environment into the current process.
package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/nixstrap/internal/messages"
	"github.com/conn-castle/nixstrap/internal/probe"
)

// ErrNoProfileScript indicates no integration script was found after install.
var ErrNoProfileScript = errors.New(messages.InstallerNoProfileScript)

// ErrToolUnresolvable indicates nix is still missing after sourcing a profile script.
var ErrToolUnresolvable = errors.New(messages.InstallerToolUnresolvable)

// ConsentFunc asks the operator a yes/no question and returns the answer.
type ConsentFunc func(prompt string, defaultYes bool) (bool, error)

// Options controls the install flow.
type Options struct {
	// Consent asks for permission before the privileged /nix setup.
	// A nil Consent declines the setup.
	Consent ConsentFunc
}

// ProfileScriptCandidates returns the known integration-script locations in
// priority order. Installer versions and modes (daemon vs single-user) place
// the script at different, mutually exclusive paths; checking a fixed order
// tolerates that variability without knowing which mode ran.
func ProfileScriptCandidates() ([]string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, fmt.Errorf(messages.InstallerResolveHomeErrFmt, err)
	}
	return []string{
		"/nix/var/nix/profiles/default/etc/profile.d/nix-daemon.sh",
		"/etc/profile.d/nix.sh",
		filepath.Join(home, ".nix-profile", "etc", "profile.d", "nix.sh"),
	}, nil
}

var profileCandidatesFunc = ProfileScriptCandidates

// FindProfileScript returns the first candidate path that exists.
func FindProfileScript(sys System) (string, bool, error) {
	candidates, err := profileCandidatesFunc()
	if err != nil {
		return "", false, err
	}
	for _, candidate := range candidates {
		if _, err := sys.Stat(candidate); err == nil {
			return candidate, true, nil
		}
	}
	return "", false, nil
}

// Adopt makes an already installed nix usable in the current process by
// sourcing the first known integration script. A missing script is reported
// to the caller as found=false, not as an error: the session may already
// carry the environment.
func Adopt(sys System) (string, bool, error) {
	script, found, err := FindProfileScript(sys)
	if err != nil || !found {
		return "", found, err
	}
	if err := SourceProfileScript(sys, script); err != nil {
		return script, true, err
	}
	return script, true, nil
}

// Install runs the full install flow for an absent tool: optional privileged
// /nix setup (with operator consent), vendor install script download and
// execution, then integration-script sourcing so the tool is usable without
// restarting the session.
func Install(ctx context.Context, sys System, opts Options, out io.Writer, errOut io.Writer) error {
	consented, err := askConsent(opts.Consent)
	if err != nil {
		return err
	}
	if consented {
		if err := prepareNixDir(sys, out, errOut); err != nil {
			// The vendor installer can still pick its own mode; degrade to a warning.
			fmt.Fprintf(errOut, messages.InstallerPrepareDirWarnFmt, err)
		}
	} else {
		fmt.Fprintln(out, messages.InstallerSetupDeclined)
	}

	scriptPath, cleanup, err := downloadInstallScript(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Fprintf(out, messages.InstallerRunningFmt, InstallScriptURL)
	if err := sys.RunCommand(out, errOut, "sh", scriptPath); err != nil {
		return fmt.Errorf(messages.InstallerRunFailedFmt, err)
	}

	script, found, err := FindProfileScript(sys)
	if err != nil {
		return err
	}
	if !found {
		return ErrNoProfileScript
	}
	fmt.Fprintf(out, messages.InstallerSourcingFmt, script)
	if err := SourceProfileScript(sys, script); err != nil {
		return err
	}
	if _, err := sys.LookPath(probe.Tool); err != nil {
		return ErrToolUnresolvable
	}
	return nil
}

// askConsent resolves the privileged-setup decision. No consent function
// means the caller cannot prompt; proceed unprivileged.
func askConsent(consent ConsentFunc) (bool, error) {
	if consent == nil {
		return false, nil
	}
	return consent(messages.InstallerConsentPrompt, true)
}

// prepareNixDir creates /nix owned by the invoking user so the vendor
// installer can run in single-user mode without further privileges.
func prepareNixDir(sys System, out io.Writer, errOut io.Writer) error {
	user := sys.Getenv("USER")
	if user == "" {
		user = sys.Getenv("LOGNAME")
	}
	if user == "" {
		return errors.New(messages.InstallerNoUserForChown)
	}
	if err := sys.RunCommand(out, errOut, "sudo", "mkdir", "-m", "0755", "-p", "/nix"); err != nil {
		return fmt.Errorf(messages.InstallerMkdirNixFailedFmt, err)
	}
	if err := sys.RunCommand(out, errOut, "sudo", "chown", user, "/nix"); err != nil {
		return fmt.Errorf(messages.InstallerChownNixFailedFmt, err)
	}
	return nil
}
