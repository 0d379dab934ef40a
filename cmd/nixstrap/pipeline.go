package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/conn-castle/nixstrap/internal/apply"
	"github.com/conn-castle/nixstrap/internal/config"
	"github.com/conn-castle/nixstrap/internal/flake"
	"github.com/conn-castle/nixstrap/internal/identity"
	"github.com/conn-castle/nixstrap/internal/installer"
	"github.com/conn-castle/nixstrap/internal/messages"
	"github.com/conn-castle/nixstrap/internal/nixconf"
	"github.com/conn-castle/nixstrap/internal/probe"
	"github.com/conn-castle/nixstrap/internal/prompt"
)

// Seams for tests.
var (
	probeFunc           = probe.Probe
	adoptFunc           = installer.Adopt
	installFunc         = installer.Install
	confPathFunc        = nixconf.DefaultPath
	ensureConfFunc      = nixconf.Ensure
	resolveExecFunc     = apply.ResolveExecutable
	smokeTestFunc       = probe.SmokeTest
	loadConfigFunc      = config.LoadDefault
	resolveIdentityFunc = identity.Resolve
	flakeDirFunc        = flake.DefaultDir
	generateFunc        = flake.Generate
	switchFunc          = apply.Switch
)

var newUIFunc = func() prompt.UI { return prompt.NewHuhUI() }

// interactiveUI returns the prompt UI for operator questions, or nil when
// prompting is impossible or suppressed. A nil UI means defaults apply.
func interactiveUI(assumeYes bool) prompt.UI {
	if assumeYes || !isTerminal() {
		return nil
	}
	return newUIFunc()
}

// consentFor builds the privileged-setup consent callback. --yes grants
// without asking; a non-terminal session cannot ask and proceeds
// unprivileged. A cancelled form aborts; any other form failure (session
// wrappers that pass the terminal check but cannot host the form) falls
// back to a plain stdin prompt.
func consentFor(cmd *cobra.Command, assumeYes bool) installer.ConsentFunc {
	if assumeYes {
		return func(string, bool) (bool, error) { return true, nil }
	}
	ui := interactiveUI(false)
	if ui == nil {
		return nil
	}
	return func(question string, defaultYes bool) (bool, error) {
		granted := defaultYes
		err := ui.Confirm(question, &granted)
		if err == nil {
			return granted, nil
		}
		if errors.Is(err, prompt.ErrCancelled) {
			return false, err
		}
		return promptYesNo(cmd.InOrStdin(), cmd.ErrOrStderr(), question, defaultYes)
	}
}

// ensureTool makes nix usable in this process: adopt the environment when
// the tool is already installed, install it otherwise. A missing
// integration script alongside a working tool is only a warning.
func ensureTool(ctx context.Context, out io.Writer, errOut io.Writer, consent installer.ConsentFunc) error {
	report := probeFunc(probe.RealSystem{})
	if report.Present {
		if report.Version != "" {
			fmt.Fprintf(out, messages.UpNixPresentFmt, report.Version)
		} else {
			fmt.Fprint(out, messages.UpNixPresentNoVer)
		}
		script, found, err := adoptFunc(installer.RealSystem{})
		if err != nil {
			return err
		}
		if found {
			fmt.Fprintf(out, messages.UpAdoptedScriptFmt, script)
		} else {
			fmt.Fprint(errOut, messages.UpNoScriptWarn)
		}
		return nil
	}

	fmt.Fprint(out, messages.UpNixAbsent)
	opts := installer.Options{Consent: consent}
	if err := installFunc(ctx, installer.RealSystem{}, opts, out, errOut); err != nil {
		return err
	}
	if after := probeFunc(probe.RealSystem{}); after.Version != "" {
		fmt.Fprintf(out, messages.UpInstalledVerFmt, after.Version)
	}
	return nil
}

// enableFeatures rewrites nix.conf with the flake feature set and runs the
// flake smoke test. The rewritten file is authoritative; a failing smoke
// test (offline hosts, flaky caches) only warns.
func enableFeatures(out io.Writer, errOut io.Writer) error {
	path, err := confPathFunc()
	if err != nil {
		return err
	}
	if err := ensureConfFunc(nixconf.RealSystem{}, path); err != nil {
		return err
	}
	fmt.Fprintf(out, messages.UpFeaturesFmt, path)

	exe, err := resolveExecFunc(apply.RealSystem{})
	if err != nil {
		fmt.Fprintf(errOut, messages.UpSmokeWarnFmt, err)
		return nil
	}
	if err := smokeTestFunc(probe.RealSystem{}, exe); err != nil {
		fmt.Fprintf(errOut, messages.UpSmokeWarnFmt, err)
	}
	return nil
}

// generateConfig loads the config, resolves the identity, and renders the
// flake files. The returned request is ready for the switch stage.
func generateConfig(out io.Writer, ui prompt.UI, usernameOverride string) (apply.Request, error) {
	cfg, err := loadConfigFunc()
	if err != nil {
		return apply.Request{}, err
	}
	override := usernameOverride
	if override == "" {
		override = cfg.Username
	}
	id, err := resolveIdentityFunc(identity.RealSystem{}, ui, override)
	if err != nil {
		return apply.Request{}, err
	}
	params, err := flake.ParamsFrom(cfg, id)
	if err != nil {
		return apply.Request{}, err
	}
	dir, err := flakeDirFunc()
	if err != nil {
		return apply.Request{}, err
	}
	res, err := generateFunc(flake.RealSystem{}, dir, params, out)
	if err != nil {
		return apply.Request{}, err
	}
	fmt.Fprintf(out, messages.UpGeneratedFmt, res.FlakePath, res.HomePath)
	return apply.Request{
		Identity:          id,
		FlakeDir:          dir,
		HomeManagerBranch: cfg.HomeManagerBranch,
	}, nil
}

// applyConfig runs the switch. A failed switch prints the manual-recovery
// block and exits non-zero without a stack of wrapped errors; the captured
// output has already streamed to the operator.
func applyConfig(out io.Writer, errOut io.Writer, req apply.Request) error {
	fmt.Fprintf(out, messages.UpApplyingFmt, req.FlakeTarget())
	res, err := switchFunc(apply.RealSystem{}, req, out, errOut)
	if err != nil {
		return err
	}
	if !res.OK {
		fmt.Fprint(errOut, apply.Remediation(req))
		return &SilentExitError{Code: 1}
	}
	fmt.Fprint(out, messages.UpApplyDone)
	return nil
}
