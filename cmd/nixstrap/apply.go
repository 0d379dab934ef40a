package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/conn-castle/nixstrap/internal/apply"
	"github.com/conn-castle/nixstrap/internal/flake"
	"github.com/conn-castle/nixstrap/internal/identity"
	"github.com/conn-castle/nixstrap/internal/messages"
)

// newApplyCmd switches to the previously generated configuration without
// regenerating it.
func newApplyCmd() *cobra.Command {
	var assumeYes bool
	var username string
	cmd := &cobra.Command{
		Use:   messages.ApplyUse,
		Short: messages.ApplyShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			errOut := cmd.ErrOrStderr()
			cfg, err := loadConfigFunc()
			if err != nil {
				return err
			}
			override := username
			if override == "" {
				override = cfg.Username
			}
			id, err := resolveIdentityFunc(identity.RealSystem{}, interactiveUI(assumeYes), override)
			if err != nil {
				return err
			}
			dir, err := flakeDirFunc()
			if err != nil {
				return err
			}
			if err := requireGenerated(dir); err != nil {
				return err
			}
			req := apply.Request{
				Identity:          id,
				FlakeDir:          dir,
				HomeManagerBranch: cfg.HomeManagerBranch,
			}
			return applyConfig(out, errOut, req)
		},
	}
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, messages.FlagYes)
	cmd.Flags().StringVarP(&username, "username", "u", "", messages.FlagUsername)
	return cmd
}

// requireGenerated refuses the switch before generate has produced both
// files; switching against an empty directory would fail deep inside nix
// and the remediation text would then point at files that never existed.
func requireGenerated(dir string) error {
	for _, name := range []string{flake.FlakeFile, flake.HomeFile} {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || info.Size() == 0 {
			return fmt.Errorf(messages.ApplyNotGeneratedFmt, path)
		}
	}
	return nil
}
