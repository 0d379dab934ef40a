package main

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/conn-castle/nixstrap/internal/apply"
	"github.com/conn-castle/nixstrap/internal/config"
	"github.com/conn-castle/nixstrap/internal/flake"
	"github.com/conn-castle/nixstrap/internal/identity"
	"github.com/conn-castle/nixstrap/internal/installer"
	"github.com/conn-castle/nixstrap/internal/nixconf"
	"github.com/conn-castle/nixstrap/internal/probe"
	"github.com/conn-castle/nixstrap/internal/prompt"
	"github.com/conn-castle/nixstrap/internal/update"
)

// resetSeams restores every overridable package seam after a test.
func resetSeams(t *testing.T) {
	t.Helper()
	origProbe := probeFunc
	origAdopt := adoptFunc
	origInstall := installFunc
	origConfPath := confPathFunc
	origEnsureConf := ensureConfFunc
	origResolveExec := resolveExecFunc
	origSmokeTest := smokeTestFunc
	origLoadConfig := loadConfigFunc
	origResolveIdentity := resolveIdentityFunc
	origFlakeDir := flakeDirFunc
	origGenerate := generateFunc
	origSwitch := switchFunc
	origIsTerminal := isTerminal
	origUpdateCheck := updateCheckFunc
	origConfigPath := configPathFunc
	origNixCheck := doctorNixCheck
	origFeaturesCheck := doctorFeaturesCheck
	origFlakeChecks := doctorFlakeChecks
	origStaleChecks := doctorStaleChecks
	origNewUI := newUIFunc
	t.Cleanup(func() {
		probeFunc = origProbe
		adoptFunc = origAdopt
		installFunc = origInstall
		confPathFunc = origConfPath
		ensureConfFunc = origEnsureConf
		resolveExecFunc = origResolveExec
		smokeTestFunc = origSmokeTest
		loadConfigFunc = origLoadConfig
		resolveIdentityFunc = origResolveIdentity
		flakeDirFunc = origFlakeDir
		generateFunc = origGenerate
		switchFunc = origSwitch
		isTerminal = origIsTerminal
		updateCheckFunc = origUpdateCheck
		configPathFunc = origConfigPath
		doctorNixCheck = origNixCheck
		doctorFeaturesCheck = origFeaturesCheck
		doctorFlakeChecks = origFlakeChecks
		doctorStaleChecks = origStaleChecks
		newUIFunc = origNewUI
	})
}

// stubHappyPipeline wires every seam for a bootstrap run that succeeds end
// to end with nix already installed. Individual tests override the pieces
// they exercise.
func stubHappyPipeline(t *testing.T) {
	t.Helper()
	resetSeams(t)
	isTerminal = func() bool { return false }
	probeFunc = func(probe.System) probe.Report {
		return probe.Report{Present: true, Path: "/usr/bin/nix", Version: "nix (Nix) 2.18.1"}
	}
	adoptFunc = func(installer.System) (string, bool, error) {
		return "/etc/profile.d/nix.sh", true, nil
	}
	installFunc = func(context.Context, installer.System, installer.Options, io.Writer, io.Writer) error {
		t.Fatal("install must not run when nix is present")
		return nil
	}
	confPathFunc = func() (string, error) { return "/home/kalle/.config/nix/nix.conf", nil }
	ensureConfFunc = func(nixconf.System, string) error { return nil }
	resolveExecFunc = func(apply.System) (string, error) { return "/usr/bin/nix", nil }
	smokeTestFunc = func(probe.System, string) error { return nil }
	loadConfigFunc = func() (*config.Config, error) { return config.Default(), nil }
	resolveIdentityFunc = func(identity.System, prompt.UI, string) (identity.Identity, error) {
		return identity.Identity{Username: "kalle"}, nil
	}
	flakeDirFunc = func() (string, error) { return "/home/kalle/.config/home-manager", nil }
	generateFunc = func(_ flake.System, dir string, _ flake.Params, _ io.Writer) (flake.Result, error) {
		return flake.Result{FlakePath: dir + "/flake.nix", HomePath: dir + "/home.nix"}, nil
	}
	switchFunc = func(_ apply.System, _ apply.Request, _ io.Writer, _ io.Writer) (apply.Result, error) {
		return apply.Result{OK: true, Output: "activated"}, nil
	}
	updateCheckFunc = func(context.Context, string) (update.CheckResult, error) {
		return update.CheckResult{Current: "1.0.0", Latest: "1.0.0"}, nil
	}
}

// runCommand executes the CLI with the given args, capturing both streams.
func runCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut strings.Builder
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}
