package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/conn-castle/nixstrap/internal/config"
	"github.com/conn-castle/nixstrap/internal/fsutil"
	"github.com/conn-castle/nixstrap/internal/messages"
	"github.com/conn-castle/nixstrap/internal/templates"
)

var configPathFunc = config.DefaultPath

// newInitCmd writes the commented default config.toml so the operator can
// edit it before running up.
func newInitCmd() *cobra.Command {
	var assumeYes bool
	cmd := &cobra.Command{
		Use:   messages.InitUse,
		Short: messages.InitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			path, err := configPathFunc()
			if err != nil {
				return err
			}
			data, err := templates.Read("config.toml")
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil {
				overwrite, err := confirmOverwrite(cmd, assumeYes, path)
				if err != nil {
					return err
				}
				if !overwrite {
					fmt.Fprint(out, messages.InitKeptExisting)
					return nil
				}
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf(messages.InitCreateDirErrFmt, err)
			}
			if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
				return fmt.Errorf(messages.InitWriteConfigErrFmt, err)
			}
			fmt.Fprintf(out, messages.InitWroteConfigFmt, path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, messages.FlagYes)
	return cmd
}

func confirmOverwrite(cmd *cobra.Command, assumeYes bool, path string) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if !isTerminal() {
		return false, nil
	}
	question := fmt.Sprintf(messages.InitOverwritePromptFmt, path)
	return promptYesNo(cmd.InOrStdin(), cmd.ErrOrStderr(), question, false)
}
