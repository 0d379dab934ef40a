package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/nixstrap/internal/messages"
)

// newUpCmd builds the full bootstrap command: install nix if needed, enable
// the flake feature set, generate the home-manager flake, and switch to it.
func newUpCmd() *cobra.Command {
	var assumeYes bool
	var username string
	cmd := &cobra.Command{
		Use:   messages.UpUse,
		Short: messages.UpShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			errOut := cmd.ErrOrStderr()
			if err := ensureTool(cmd.Context(), out, errOut, consentFor(cmd, assumeYes)); err != nil {
				return err
			}
			if err := enableFeatures(out, errOut); err != nil {
				return err
			}
			req, err := generateConfig(out, interactiveUI(assumeYes), username)
			if err != nil {
				return err
			}
			return applyConfig(out, errOut, req)
		},
	}
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, messages.FlagYes)
	cmd.Flags().StringVarP(&username, "username", "u", "", messages.FlagUsername)
	return cmd
}
