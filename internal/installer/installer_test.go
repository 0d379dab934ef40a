package installer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSystem simulates executable resolution, file presence, and command runs.
type fakeSystem struct {
	lookPaths map[string]string
	files     map[string]bool
	env       map[string]string
	runErrs   map[string]error
	runs      []string
	outputs   map[string][]byte
	outputErr error
}

func newFakeSystem() *fakeSystem {
	return &fakeSystem{
		lookPaths: map[string]string{},
		files:     map[string]bool{},
		env:       map[string]string{},
		runErrs:   map[string]error{},
		outputs:   map[string][]byte{},
	}
}

func (s *fakeSystem) LookPath(file string) (string, error) {
	if path, ok := s.lookPaths[file]; ok {
		return path, nil
	}
	return "", errors.New("not found")
}

func (s *fakeSystem) Stat(name string) (os.FileInfo, error) {
	if s.files[name] {
		return nil, nil
	}
	return nil, os.ErrNotExist
}

func (s *fakeSystem) Getenv(key string) string { return s.env[key] }

func (s *fakeSystem) Setenv(key string, value string) error {
	s.env[key] = value
	return nil
}

func (s *fakeSystem) RunCommand(stdout io.Writer, stderr io.Writer, name string, args ...string) error {
	call := strings.Join(append([]string{name}, args...), " ")
	s.runs = append(s.runs, call)
	for prefix, err := range s.runErrs {
		if strings.HasPrefix(call, prefix) {
			return err
		}
	}
	return nil
}

func (s *fakeSystem) CommandOutput(name string, args ...string) ([]byte, error) {
	if s.outputErr != nil {
		return nil, s.outputErr
	}
	call := strings.Join(append([]string{name}, args...), " ")
	for prefix, out := range s.outputs {
		if strings.Contains(call, prefix) {
			return out, nil
		}
	}
	return nil, nil
}

// withCandidates overrides the profile-script candidate list for a test.
func withCandidates(t *testing.T, candidates []string) {
	t.Helper()
	prev := profileCandidatesFunc
	profileCandidatesFunc = func() ([]string, error) { return candidates, nil }
	t.Cleanup(func() { profileCandidatesFunc = prev })
}

// withInstallServer points the installer download at a local HTTP server.
func withInstallServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	prev := installScriptURL
	installScriptURL = server.URL
	t.Cleanup(func() {
		installScriptURL = prev
		server.Close()
	})
	return server
}

func TestProfileScriptCandidates_Order(t *testing.T) {
	t.Setenv("HOME", "/home/op")
	candidates, err := ProfileScriptCandidates()
	require.NoError(t, err)
	require.Len(t, candidates, 3)
	assert.Equal(t, "/nix/var/nix/profiles/default/etc/profile.d/nix-daemon.sh", candidates[0])
	assert.Equal(t, "/etc/profile.d/nix.sh", candidates[1])
	assert.Equal(t, filepath.Join("/home/op", ".nix-profile", "etc", "profile.d", "nix.sh"), candidates[2])
}

func TestFindProfileScript_FirstMatchWins(t *testing.T) {
	withCandidates(t, []string{"/a.sh", "/b.sh", "/c.sh"})
	sys := newFakeSystem()
	sys.files["/b.sh"] = true
	sys.files["/c.sh"] = true

	script, found, err := FindProfileScript(sys)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "/b.sh", script)
}

func TestFindProfileScript_OnlyKthExists(t *testing.T) {
	candidates := []string{"/a.sh", "/b.sh", "/c.sh"}
	for k, expected := range candidates {
		withCandidates(t, candidates)
		sys := newFakeSystem()
		sys.files[expected] = true

		script, found, err := FindProfileScript(sys)
		require.NoError(t, err)
		assert.True(t, found, "candidate %d", k)
		assert.Equal(t, expected, script)
	}
}

func TestFindProfileScript_NoneFound(t *testing.T) {
	withCandidates(t, []string{"/a.sh", "/b.sh"})
	sys := newFakeSystem()

	_, found, err := FindProfileScript(sys)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAdopt_NoScript(t *testing.T) {
	withCandidates(t, []string{"/a.sh"})
	sys := newFakeSystem()

	_, found, err := Adopt(sys)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSourceProfileScript_AppliesDiff(t *testing.T) {
	sys := newFakeSystem()
	sys.env["KEEP"] = "same"
	sys.outputs["env -0"] = []byte("PATH=/nix/bin:/usr/bin\x00KEEP=same\x00PWD=/tmp\x00NIX_PROFILES=/nix/var\x00")

	require.NoError(t, SourceProfileScript(sys, "/a.sh"))
	assert.Equal(t, "/nix/bin:/usr/bin", sys.env["PATH"])
	assert.Equal(t, "/nix/var", sys.env["NIX_PROFILES"])
	assert.NotContains(t, sys.env, "PWD")
}

func TestSourceProfileScript_ShellFailure(t *testing.T) {
	sys := newFakeSystem()
	sys.outputErr = errors.New("sh exploded")

	err := SourceProfileScript(sys, "/a.sh")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sh exploded")
}

func TestInstall_DeclinedSetupStillInstalls(t *testing.T) {
	withInstallServer(t, http.StatusOK, "#!/bin/sh\n")
	withCandidates(t, []string{"/a.sh", "/b.sh"})
	sys := newFakeSystem()
	sys.files["/b.sh"] = true
	sys.lookPaths["nix"] = "/nix/bin/nix"

	var out, errOut bytes.Buffer
	declined := func(prompt string, defaultYes bool) (bool, error) { return false, nil }
	err := Install(context.Background(), sys, Options{Consent: declined}, &out, &errOut)
	require.NoError(t, err)

	// No sudo calls when the operator declines the privileged setup.
	for _, run := range sys.runs {
		assert.NotContains(t, run, "sudo")
	}
	assert.Contains(t, out.String(), "/b.sh")
}

func TestInstall_ConsentRunsPrivilegedSetup(t *testing.T) {
	withInstallServer(t, http.StatusOK, "#!/bin/sh\n")
	withCandidates(t, []string{"/a.sh"})
	sys := newFakeSystem()
	sys.files["/a.sh"] = true
	sys.lookPaths["nix"] = "/nix/bin/nix"
	sys.env["USER"] = "op"

	var out, errOut bytes.Buffer
	granted := func(prompt string, defaultYes bool) (bool, error) { return true, nil }
	err := Install(context.Background(), sys, Options{Consent: granted}, &out, &errOut)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(sys.runs), 3)
	assert.Equal(t, "sudo mkdir -m 0755 -p /nix", sys.runs[0])
	assert.Equal(t, "sudo chown op /nix", sys.runs[1])
}

func TestInstall_PrivilegedSetupFailureIsWarning(t *testing.T) {
	withInstallServer(t, http.StatusOK, "#!/bin/sh\n")
	withCandidates(t, []string{"/a.sh"})
	sys := newFakeSystem()
	sys.files["/a.sh"] = true
	sys.lookPaths["nix"] = "/nix/bin/nix"
	sys.env["USER"] = "op"
	sys.runErrs["sudo mkdir"] = errors.New("sudo denied")

	var out, errOut bytes.Buffer
	granted := func(prompt string, defaultYes bool) (bool, error) { return true, nil }
	err := Install(context.Background(), sys, Options{Consent: granted}, &out, &errOut)
	require.NoError(t, err)
	assert.Contains(t, errOut.String(), "sudo denied")
}

func TestInstall_NoProfileScriptIsFatal(t *testing.T) {
	withInstallServer(t, http.StatusOK, "#!/bin/sh\n")
	withCandidates(t, []string{"/a.sh"})
	sys := newFakeSystem()

	var out, errOut bytes.Buffer
	err := Install(context.Background(), sys, Options{}, &out, &errOut)
	assert.ErrorIs(t, err, ErrNoProfileScript)
}

func TestInstall_ToolStillMissingIsFatal(t *testing.T) {
	withInstallServer(t, http.StatusOK, "#!/bin/sh\n")
	withCandidates(t, []string{"/a.sh"})
	sys := newFakeSystem()
	sys.files["/a.sh"] = true

	var out, errOut bytes.Buffer
	err := Install(context.Background(), sys, Options{}, &out, &errOut)
	assert.ErrorIs(t, err, ErrToolUnresolvable)
}

func TestInstall_DownloadStatusError(t *testing.T) {
	withInstallServer(t, http.StatusNotFound, "missing")
	sys := newFakeSystem()

	var out, errOut bytes.Buffer
	err := Install(context.Background(), sys, Options{}, &out, &errOut)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestInstall_InstallerScriptFailure(t *testing.T) {
	withInstallServer(t, http.StatusOK, "#!/bin/sh\nexit 1\n")
	withCandidates(t, []string{"/a.sh"})
	sys := newFakeSystem()
	sys.runErrs["sh "] = errors.New("installer failed")

	var out, errOut bytes.Buffer
	err := Install(context.Background(), sys, Options{}, &out, &errOut)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "installer failed")
}
