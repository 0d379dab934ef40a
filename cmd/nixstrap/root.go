package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/nixstrap/internal/messages"
	"github.com/conn-castle/nixstrap/internal/terminal"
)

var isTerminal = terminal.IsInteractive

// newRootCmd assembles the command tree.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(
		newUpCmd(),
		newGenerateCmd(),
		newApplyCmd(),
		newDoctorCmd(),
		newInitCmd(),
	)
	return cmd
}
