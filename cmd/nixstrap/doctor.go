package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/nixstrap/internal/doctor"
	"github.com/conn-castle/nixstrap/internal/flake"
	"github.com/conn-castle/nixstrap/internal/identity"
	"github.com/conn-castle/nixstrap/internal/messages"
	"github.com/conn-castle/nixstrap/internal/probe"
	"github.com/conn-castle/nixstrap/internal/update"
)

var updateCheckFunc = update.Check

// newDoctorCmd reports the health of every bootstrap stage.
func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.DoctorUse,
		Short: messages.DoctorShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func runDoctor(ctx context.Context, out io.Writer) error {
	fmt.Fprint(out, messages.DoctorHeaderFmt)

	results := []doctor.Result{doctorNixCheck()}
	results = append(results, doctorFeaturesCheck())
	results = append(results, doctorFlakeChecks()...)
	results = append(results, doctorStaleChecks()...)
	results = append(results, doctorUpdateCheck(ctx))

	failed := false
	for _, r := range results {
		fmt.Fprintf(out, messages.DoctorResultLineFmt, statusLabel(r.Status), r.CheckName, r.Message)
		if r.Recommendation != "" {
			fmt.Fprintln(out, messages.DoctorRecommendationPrefix+r.Recommendation)
		}
		if r.Status == doctor.StatusFail {
			failed = true
		}
	}

	fmt.Fprintln(out)
	if failed {
		fmt.Fprintln(out, color.New(color.FgRed).Sprint(messages.DoctorFailureSummary))
		return &SilentExitError{Code: 1}
	}
	fmt.Fprintln(out, color.New(color.FgGreen).Sprint(messages.DoctorSuccessSummary))
	return nil
}

var doctorNixCheck = func() doctor.Result {
	return doctor.CheckNix(probe.RealSystem{})
}

var doctorFeaturesCheck = func() doctor.Result {
	path, err := confPathFunc()
	if err != nil {
		return doctor.Result{
			CheckName: messages.DoctorCheckNameFeatures,
			Status:    doctor.StatusFail,
			Message:   err.Error(),
		}
	}
	return doctor.CheckFeatures(path)
}

var doctorFlakeChecks = func() []doctor.Result {
	dir, err := flakeDirFunc()
	if err != nil {
		return []doctor.Result{{
			CheckName: messages.DoctorCheckNameFlake,
			Status:    doctor.StatusFail,
			Message:   err.Error(),
		}}
	}
	return doctor.CheckFlake(dir)
}

// doctorStaleChecks compares the on-disk generated files against what the
// current config would render. A config problem here is a warning; the
// doctor should still report the remaining checks.
var doctorStaleChecks = func() []doctor.Result {
	cfg, err := loadConfigFunc()
	if err != nil {
		return staleCheckFailed(err)
	}
	id, err := resolveIdentityFunc(identity.RealSystem{}, nil, cfg.Username)
	if err != nil {
		return staleCheckFailed(err)
	}
	params, err := flake.ParamsFrom(cfg, id)
	if err != nil {
		return staleCheckFailed(err)
	}
	dir, err := flakeDirFunc()
	if err != nil {
		return staleCheckFailed(err)
	}
	return doctor.CheckFlakeStale(dir, params)
}

func staleCheckFailed(err error) []doctor.Result {
	return []doctor.Result{{
		CheckName: messages.DoctorCheckNameFlake,
		Status:    doctor.StatusWarn,
		Message:   fmt.Sprintf(messages.DoctorStaleCheckFailedFmt, err),
	}}
}

func doctorUpdateCheck(ctx context.Context) doctor.Result {
	res, err := updateCheckFunc(ctx, Version)
	if err != nil {
		return doctor.Result{
			CheckName: messages.DoctorCheckNameUpdate,
			Status:    doctor.StatusWarn,
			Message:   fmt.Sprintf(messages.DoctorUpdateFailedFmt, err),
		}
	}
	switch {
	case res.CurrentIsDev:
		return doctor.Result{
			CheckName: messages.DoctorCheckNameUpdate,
			Status:    doctor.StatusOK,
			Message:   fmt.Sprintf(messages.DoctorUpdateDevBuildFmt, res.Latest),
		}
	case res.Outdated:
		return doctor.Result{
			CheckName:      messages.DoctorCheckNameUpdate,
			Status:         doctor.StatusWarn,
			Message:        fmt.Sprintf(messages.DoctorUpdateOutdatedFmt, res.Latest, res.Current),
			Recommendation: messages.DoctorUpdateRecommend,
		}
	default:
		return doctor.Result{
			CheckName: messages.DoctorCheckNameUpdate,
			Status:    doctor.StatusOK,
			Message:   fmt.Sprintf(messages.DoctorUpToDateFmt, res.Current),
		}
	}
}

func statusLabel(s doctor.Status) string {
	switch s {
	case doctor.StatusOK:
		return color.New(color.FgGreen).Sprint(messages.DoctorStatusOKLabel)
	case doctor.StatusWarn:
		return color.New(color.FgYellow).Sprint(messages.DoctorStatusWarnLabel)
	default:
		return color.New(color.FgRed).Sprint(messages.DoctorStatusFailLabel)
	}
}
