package installer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/conn-castle/nixstrap/internal/messages"
)

// InstallScriptURL is the vendor install script fetched when nix is absent.
const InstallScriptURL = "https://nixos.org/nix/install"

var installScriptURL = InstallScriptURL
var httpClient = &http.Client{Timeout: 2 * time.Minute}

// downloadInstallScript fetches the vendor install script to a temp file and
// returns its path along with a cleanup function.
func downloadInstallScript(ctx context.Context) (string, func(), error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, installScriptURL, nil)
	if err != nil {
		return "", nil, fmt.Errorf(messages.InstallerCreateRequestErrFmt, err)
	}
	req.Header.Set("User-Agent", "nixstrap")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf(messages.InstallerDownloadFailedFmt, installScriptURL, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf(messages.InstallerDownloadStatusFmt, installScriptURL, resp.Status)
	}

	tmp, err := os.CreateTemp("", "nixstrap-install-*.sh")
	if err != nil {
		return "", nil, fmt.Errorf(messages.InstallerCreateTempErrFmt, err)
	}
	cleanup := func() { _ = os.Remove(tmp.Name()) }

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", nil, fmt.Errorf(messages.InstallerWriteScriptErrFmt, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf(messages.InstallerWriteScriptErrFmt, err)
	}
	return tmp.Name(), cleanup, nil
}
