// Package probe reports whether the nix executable is available and its version.
package probe

import (
	"os/exec"
	"strings"
)

// Tool is the executable the bootstrap provisions.
const Tool = "nix"

// Report describes the outcome of a probe. A missing tool is a valid
// observation, not an error; the installer stage handles absence.
type Report struct {
	Present bool
	Path    string
	Version string
}

// System abstracts executable resolution and version queries.
type System interface {
	LookPath(file string) (string, error)
	CommandOutput(name string, args ...string) (string, error)
}

// RealSystem implements System using os/exec.
type RealSystem struct{}

// LookPath searches for an executable in the directories named by PATH.
func (RealSystem) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// CommandOutput runs the command and returns its trimmed standard output.
func (RealSystem) CommandOutput(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	return strings.TrimSpace(string(out)), err
}

// Probe checks whether the tool resolves on PATH and queries its version.
// A failing version query still reports presence with an empty version.
func Probe(sys System) Report {
	path, err := sys.LookPath(Tool)
	if err != nil {
		return Report{}
	}
	report := Report{Present: true, Path: path}
	version, err := sys.CommandOutput(path, "--version")
	if err != nil {
		return report
	}
	report.Version = version
	return report
}
