package installer

import (
	"io"
	"os"
	"os/exec"
)

// System abstracts OS operations needed by the installer.
// The interface is package-local so tests can simulate install outcomes
// without touching the real machine.
type System interface {
	LookPath(file string) (string, error)
	Stat(name string) (os.FileInfo, error)
	Getenv(key string) string
	Setenv(key string, value string) error
	RunCommand(stdout io.Writer, stderr io.Writer, name string, args ...string) error
	CommandOutput(name string, args ...string) ([]byte, error)
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

// Getenv returns the value of the environment variable named by key.
func (RealSystem) Getenv(key string) string {
	return os.Getenv(key)
}

// Setenv sets the value of the environment variable named by key.
func (RealSystem) Setenv(key string, value string) error {
	return os.Setenv(key, value)
}

// RunCommand runs the command with output wired to the provided writers.
func (RealSystem) RunCommand(stdout io.Writer, stderr io.Writer, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// CommandOutput runs the command and returns its standard output.
func (RealSystem) CommandOutput(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}
