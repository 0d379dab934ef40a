// Package apply reconciles the live user environment against the generated
// flake via home-manager switch.
package apply

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/conn-castle/nixstrap/internal/identity"
	"github.com/conn-castle/nixstrap/internal/messages"
	"github.com/conn-castle/nixstrap/internal/nixconf"
	"github.com/conn-castle/nixstrap/internal/probe"
)

// BackupSuffix is appended to pre-existing files home-manager renames aside.
const BackupSuffix = "backup"

// FallbackExecutable is the well-known nix location checked when PATH
// resolution fails, covering sessions that never sourced a profile script.
const FallbackExecutable = "/nix/var/nix/profiles/default/bin/nix"

// ErrNoExecutable indicates no usable nix executable could be located.
var ErrNoExecutable = errors.New(messages.ApplyNoExecutable)

// System abstracts executable resolution and process invocation.
type System interface {
	LookPath(file string) (string, error)
	Stat(name string) (os.FileInfo, error)
	Environ() []string
	RunCommand(env []string, stdout io.Writer, stderr io.Writer, name string, args ...string) error
}

// RealSystem implements System using the OS.
type RealSystem struct{}

// LookPath searches for an executable in the directories named by PATH.
func (RealSystem) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Stat returns a FileInfo describing the named file.
func (RealSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// Environ returns a copy of strings representing the environment.
func (RealSystem) Environ() []string {
	return os.Environ()
}

// RunCommand runs the command with the given environment and output writers.
func (RealSystem) RunCommand(env []string, stdout io.Writer, stderr io.Writer, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Env = env
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// Request describes one switch invocation.
type Request struct {
	Identity          identity.Identity
	FlakeDir          string
	HomeManagerBranch string
}

// Result carries the switch outcome. A failed switch is not an error at this
// layer; the caller decides whether to abort, keeping diagnostic output
// available for the remediation message.
type Result struct {
	OK     bool
	Output string
}

// FlakeTarget returns the flake reference passed to home-manager switch.
func (r Request) FlakeTarget() string {
	return r.FlakeDir + "#" + r.Identity.Username
}

// ManualCommand returns the switch invocation an operator can re-run by hand.
func (r Request) ManualCommand() string {
	return strings.Join(append([]string{probe.Tool}, switchArgs(r)...), " ")
}

// ResolveExecutable locates a usable nix executable: PATH resolution first,
// then the well-known fallback location.
func ResolveExecutable(sys System) (string, error) {
	if path, err := sys.LookPath(probe.Tool); err == nil {
		return path, nil
	}
	if _, err := sys.Stat(FallbackExecutable); err == nil {
		return FallbackExecutable, nil
	}
	return "", ErrNoExecutable
}

// switchArgs builds the argument list for the switch invocation. The
// experimental capabilities ride along as explicit flags because a freshly
// installed nix may not see the just-written nix.conf yet.
func switchArgs(r Request) []string {
	args := append([]string{}, nixconf.ExtraFlags()...)
	args = append(args,
		"run", "home-manager/"+r.HomeManagerBranch, "--",
		"switch", "--flake", r.FlakeTarget(),
		"-b", BackupSuffix,
		"--show-trace",
	)
	return args
}

// Switch runs home-manager switch against the generated flake. The identity
// guard is enforced here: an empty username aborts before any invocation.
// Output streams to the provided writers and is captured into the result.
func Switch(sys System, r Request, stdout io.Writer, stderr io.Writer) (Result, error) {
	if strings.TrimSpace(r.Identity.Username) == "" {
		return Result{}, identity.ErrEmptyUsername
	}
	exe, err := ResolveExecutable(sys)
	if err != nil {
		return Result{}, err
	}

	var captured bytes.Buffer
	env := append(sys.Environ(), "NIX_CONFIG="+nixconf.NixConfigEnv())
	runErr := sys.RunCommand(env,
		io.MultiWriter(stdout, &captured),
		io.MultiWriter(stderr, &captured),
		exe, switchArgs(r)...)
	if runErr != nil {
		return Result{OK: false, Output: captured.String()}, nil
	}
	return Result{OK: true, Output: captured.String()}, nil
}

// Remediation returns the multi-line manual-recovery text printed when the
// switch fails. First runs commonly fail on transient network or cache
// population issues; re-running by hand is the expected recovery.
func Remediation(r Request) string {
	return fmt.Sprintf(messages.ApplyRemediationFmt, r.FlakeTarget(), BackupSuffix, r.ManualCommand())
}
