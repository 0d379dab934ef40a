package main

import (
	"context"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/nixstrap/internal/doctor"
	"github.com/conn-castle/nixstrap/internal/update"
)

func stubDoctorChecks(t *testing.T) {
	t.Helper()
	stubHappyPipeline(t)
	color.NoColor = true
	doctorNixCheck = func() doctor.Result {
		return doctor.Result{
			CheckName: "Nix",
			Status:    doctor.StatusOK,
			Message:   "nix found at /usr/bin/nix (nix (Nix) 2.18.1)",
		}
	}
	doctorFeaturesCheck = func() doctor.Result {
		return doctor.Result{
			CheckName: "Features",
			Status:    doctor.StatusOK,
			Message:   "experimental features declared in /home/kalle/.config/nix/nix.conf",
		}
	}
	doctorFlakeChecks = func() []doctor.Result {
		return []doctor.Result{
			{CheckName: "Config", Status: doctor.StatusOK, Message: "flake.nix present"},
			{CheckName: "Config", Status: doctor.StatusOK, Message: "home.nix present"},
		}
	}
	doctorStaleChecks = func() []doctor.Result { return nil }
}

func TestDoctorAllChecksPass(t *testing.T) {
	stubDoctorChecks(t)

	out, _, err := runCommand(t, "", "doctor")

	require.NoError(t, err)
	assert.Contains(t, out, "[ OK ] Nix: nix found at /usr/bin/nix")
	assert.Contains(t, out, "[ OK ] Features: experimental features declared")
	assert.Contains(t, out, "[ OK ] Update: up to date (1.0.0)")
	assert.Contains(t, out, "Everything looks good.")
}

func TestDoctorFailingCheckExitsNonZero(t *testing.T) {
	stubDoctorChecks(t)
	doctorNixCheck = func() doctor.Result {
		return doctor.Result{
			CheckName:      "Nix",
			Status:         doctor.StatusFail,
			Message:        "nix is not installed",
			Recommendation: "Run 'nixstrap up' to install nix and bootstrap the environment",
		}
	}

	out, _, err := runCommand(t, "", "doctor")

	var silent *SilentExitError
	require.ErrorAs(t, err, &silent)
	assert.Equal(t, 1, silent.Code)
	assert.Contains(t, out, "[FAIL] Nix: nix is not installed")
	assert.Contains(t, out, "-> Run 'nixstrap up'")
	assert.Contains(t, out, "Doctor found problems.")
}

func TestDoctorWarnDoesNotFail(t *testing.T) {
	stubDoctorChecks(t)
	doctorFlakeChecks = func() []doctor.Result {
		return []doctor.Result{{
			CheckName:      "Config",
			Status:         doctor.StatusWarn,
			Message:        "generated file flake.nix is missing",
			Recommendation: "Run 'nixstrap generate' to regenerate the configuration",
		}}
	}

	out, _, err := runCommand(t, "", "doctor")

	require.NoError(t, err)
	assert.Contains(t, out, "[WARN] Config: generated file flake.nix is missing")
	assert.Contains(t, out, "Everything looks good.")
}

func TestDoctorUpdateCheckFailureIsWarning(t *testing.T) {
	stubDoctorChecks(t)
	updateCheckFunc = func(context.Context, string) (update.CheckResult, error) {
		return update.CheckResult{}, errors.New("fetch latest release: timeout")
	}

	out, _, err := runCommand(t, "", "doctor")

	require.NoError(t, err)
	assert.Contains(t, out, "[WARN] Update: update check failed")
}

func TestDoctorReportsAvailableUpdate(t *testing.T) {
	stubDoctorChecks(t)
	updateCheckFunc = func(context.Context, string) (update.CheckResult, error) {
		return update.CheckResult{Current: "1.0.0", Latest: "1.2.0", Outdated: true}, nil
	}

	out, _, err := runCommand(t, "", "doctor")

	require.NoError(t, err)
	assert.Contains(t, out, "[WARN] Update: update available: 1.2.0 (current 1.0.0)")
	assert.Contains(t, out, "-> Download the latest release")
}

func TestDoctorReportsStaleFlake(t *testing.T) {
	stubDoctorChecks(t)
	doctorStaleChecks = func() []doctor.Result {
		return []doctor.Result{{
			CheckName:      "Config",
			Status:         doctor.StatusWarn,
			Message:        "generated file flake.nix does not match the current config",
			Recommendation: "Run 'nixstrap generate' to regenerate the configuration",
		}}
	}

	out, _, err := runCommand(t, "", "doctor")

	require.NoError(t, err)
	assert.Contains(t, out, "[WARN] Config: generated file flake.nix does not match the current config")
	assert.Contains(t, out, "-> Run 'nixstrap generate'")
}
