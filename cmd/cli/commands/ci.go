package commands

import (
	"github.com/ChristofferNissen/chartsmith/internal"
	"github.com/spf13/cobra"
)

var ciCmd = &cobra.Command{
	Use:                "ci",
	Short:              "Run the full flow of chartsmith with one configuration file as input",
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return internal.Program(args, internal.CIGoals...)
	},
}

func init() {
	rootCmd.AddCommand(ciCmd)
}
