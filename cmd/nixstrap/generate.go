package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/nixstrap/internal/messages"
)

// newGenerateCmd enables the flake feature set and writes the flake files
// without applying them. Useful for reviewing the output first.
func newGenerateCmd() *cobra.Command {
	var assumeYes bool
	var username string
	cmd := &cobra.Command{
		Use:   messages.GenerateUse,
		Short: messages.GenerateShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			errOut := cmd.ErrOrStderr()
			if err := enableFeatures(out, errOut); err != nil {
				return err
			}
			_, err := generateConfig(out, interactiveUI(assumeYes), username)
			return err
		},
	}
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, messages.FlagYes)
	cmd.Flags().StringVarP(&username, "username", "u", "", messages.FlagUsername)
	return cmd
}
