package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd(appName string, d *deps) *cobra.Command {
	root := &cobra.Command{
		Use:           "travelctl",
		Short:         "Command-line client for the travel planning API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cmd.Name() == "login" || cmd.Name() == "signup" {
				displayAppname(appName)
			}
		},
	}

	root.AddCommand(
		newLoginCmd(d),
		newSignupCmd(d),
		newLogoutCmd(d),
		newWhoamiCmd(d),
		newTripsCmd(d),
		newExpensesCmd(d),
	)
	return root
}
