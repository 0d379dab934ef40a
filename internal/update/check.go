// Package update checks GitHub for newer nixstrap releases.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/conn-castle/nixstrap/internal/messages"
	"github.com/conn-castle/nixstrap/internal/version"
)

// Repo identifies the GitHub repository used for release checks.
const Repo = "conn-castle/nixstrap"

var latestReleaseURL = "https://api.github.com/repos/" + Repo + "/releases/latest"
var httpClient = &http.Client{Timeout: 10 * time.Second}

// CheckResult captures the latest release check outcome.
type CheckResult struct {
	Current      string
	Latest       string
	Outdated     bool
	CurrentIsDev bool
}

// Check fetches the latest release and compares it to currentVersion.
func Check(ctx context.Context, currentVersion string) (CheckResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	result := CheckResult{CurrentIsDev: version.IsDev(currentVersion)}
	if result.CurrentIsDev {
		result.Current = "dev"
	} else {
		current, err := version.Normalize(currentVersion)
		if err != nil {
			return CheckResult{}, err
		}
		result.Current = current
	}

	latest, err := fetchLatestReleaseVersion(ctx)
	if err != nil {
		return CheckResult{}, err
	}
	result.Latest = latest

	if !result.CurrentIsDev {
		result.Outdated = compareSemver(result.Current, latest) < 0
	}
	return result, nil
}

type latestReleaseResponse struct {
	TagName string `json:"tag_name"`
}

// fetchLatestReleaseVersion returns the normalized latest release tag.
func fetchLatestReleaseVersion(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, latestReleaseURL, nil)
	if err != nil {
		return "", fmt.Errorf(messages.UpdateCreateRequestErrFmt, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "nixstrap")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf(messages.UpdateFetchLatestErrFmt, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf(messages.UpdateFetchLatestStatusFmt, resp.Status)
	}

	var payload latestReleaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf(messages.UpdateDecodeLatestErrFmt, err)
	}
	if strings.TrimSpace(payload.TagName) == "" {
		return "", fmt.Errorf(messages.UpdateMissingTag)
	}
	return version.Normalize(payload.TagName)
}

// compareSemver compares two X.Y.Z versions; -1 when a < b, 1 when a > b.
func compareSemver(a string, b string) int {
	aParts := strings.SplitN(a, ".", 3)
	bParts := strings.SplitN(b, ".", 3)
	for i := 0; i < 3; i++ {
		ai, _ := strconv.Atoi(aParts[i])
		bi, _ := strconv.Atoi(bParts[i])
		if ai < bi {
			return -1
		}
		if ai > bi {
			return 1
		}
	}
	return 0
}
