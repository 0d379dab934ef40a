package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"bytes"

	"github.com/conn-castle/nixstrap/internal/flake"
	"github.com/conn-castle/nixstrap/internal/messages"
	"github.com/conn-castle/nixstrap/internal/nixconf"
	"github.com/conn-castle/nixstrap/internal/probe"
)

// CheckNix reports whether the nix executable resolves and its version.
func CheckNix(sys probe.System) Result {
	report := probe.Probe(sys)
	if !report.Present {
		return Result{
			CheckName:      messages.DoctorCheckNameNix,
			Status:         StatusFail,
			Message:        messages.DoctorNixMissing,
			Recommendation: messages.DoctorNixMissingRecommend,
		}
	}
	message := fmt.Sprintf(messages.DoctorNixPresentFmt, report.Path)
	if report.Version != "" {
		message = fmt.Sprintf(messages.DoctorNixVersionFmt, report.Version, report.Path)
	}
	return Result{CheckName: messages.DoctorCheckNameNix, Status: StatusOK, Message: message}
}

// CheckFeatures verifies nix.conf carries both feature declarations.
func CheckFeatures(confPath string) Result {
	data, err := os.ReadFile(confPath)
	if err != nil {
		return Result{
			CheckName:      messages.DoctorCheckNameFeatures,
			Status:         StatusWarn,
			Message:        fmt.Sprintf(messages.DoctorFeaturesUnreadableFmt, confPath),
			Recommendation: messages.DoctorFeaturesRecommend,
		}
	}
	content := string(data)
	for _, s := range nixconf.Declarations() {
		if !nixconf.Declared(content, s) {
			return Result{
				CheckName:      messages.DoctorCheckNameFeatures,
				Status:         StatusWarn,
				Message:        fmt.Sprintf(messages.DoctorFeatureMissingFmt, s.Key, confPath),
				Recommendation: messages.DoctorFeaturesRecommend,
			}
		}
	}
	return Result{
		CheckName: messages.DoctorCheckNameFeatures,
		Status:    StatusOK,
		Message:   fmt.Sprintf(messages.DoctorFeaturesDeclaredFmt, confPath),
	}
}

// CheckFlake verifies the generated configuration pair exists.
func CheckFlake(dir string) []Result {
	var results []Result
	for _, name := range []string{flake.FlakeFile, flake.HomeFile} {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		switch {
		case err != nil:
			results = append(results, Result{
				CheckName:      messages.DoctorCheckNameFlake,
				Status:         StatusWarn,
				Message:        fmt.Sprintf(messages.DoctorFlakeMissingFmt, path),
				Recommendation: messages.DoctorFlakeRecommend,
			})
		case info.Size() == 0:
			results = append(results, Result{
				CheckName:      messages.DoctorCheckNameFlake,
				Status:         StatusWarn,
				Message:        fmt.Sprintf(messages.DoctorFlakeEmptyFmt, path),
				Recommendation: messages.DoctorFlakeRecommend,
			})
		default:
			results = append(results, Result{
				CheckName: messages.DoctorCheckNameFlake,
				Status:    StatusOK,
				Message:   fmt.Sprintf(messages.DoctorFlakePresentFmt, path),
			})
		}
	}
	return results
}

// CheckFlakeStale reports generated files whose on-disk content no longer
// matches what the current configuration would render. Missing files are
// CheckFlake's concern and are skipped here.
func CheckFlakeStale(dir string, p flake.Params) []Result {
	rendered, err := flake.Rendered(p)
	if err != nil {
		return []Result{{
			CheckName: messages.DoctorCheckNameFlake,
			Status:    StatusWarn,
			Message:   fmt.Sprintf(messages.DoctorStaleCheckFailedFmt, err),
		}}
	}
	var results []Result
	for _, name := range []string{flake.FlakeFile, flake.HomeFile} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if !bytes.Equal(data, rendered[name]) {
			results = append(results, Result{
				CheckName:      messages.DoctorCheckNameFlake,
				Status:         StatusWarn,
				Message:        fmt.Sprintf(messages.DoctorFlakeStaleFmt, path),
				Recommendation: messages.DoctorFlakeRecommend,
			})
		}
	}
	return results
}
