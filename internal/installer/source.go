package installer

import (
	"fmt"
	"strings"

	"github.com/conn-castle/nixstrap/internal/messages"
)

// Variables the shell mutates on its own; importing them would clobber the
// current process state for no benefit.
var skippedEnvKeys = map[string]bool{
	"_":      true,
	"PWD":    true,
	"OLDPWD": true,
	"SHLVL":  true,
}

// SourceProfileScript loads an integration script into the current process
// environment. The script is sourced in a child shell and the resulting
// environment is diffed against the current one; new or changed variables
// are applied via Setenv.
func SourceProfileScript(sys System, path string) error {
	out, err := sys.CommandOutput("sh", "-c", fmt.Sprintf(". %q >/dev/null 2>&1; env -0", path))
	if err != nil {
		return fmt.Errorf(messages.InstallerSourceFailedFmt, path, err)
	}
	for _, entry := range strings.Split(string(out), "\x00") {
		if entry == "" {
			continue
		}
		idx := strings.Index(entry, "=")
		if idx <= 0 {
			continue
		}
		key, value := entry[:idx], entry[idx+1:]
		if skippedEnvKeys[key] || sys.Getenv(key) == value {
			continue
		}
		if err := sys.Setenv(key, value); err != nil {
			return fmt.Errorf(messages.InstallerSetenvFailedFmt, key, err)
		}
	}
	return nil
}
