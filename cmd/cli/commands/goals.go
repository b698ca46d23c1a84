package commands

import (
	"github.com/ChristofferNissen/chartsmith/internal"
	"github.com/spf13/cobra"
)

// newGoalCommand returns a command running goals. Flags (-f, --verbose) are parsed by the program.
func newGoalCommand(use, group, short string, goals ...internal.Goal) *cobra.Command {
	return &cobra.Command{
		Use:                use,
		GroupID:            group,
		Short:              short,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return internal.Program(args, goals...)
		},
	}
}

var (
	imageCmd   = newGoalCommand("image", "image", "Format the configured image names", internal.GoalImage)
	chartCmd   = newGoalCommand("chart", "chart", "Generate chart directories and Chart.yaml", internal.GoalChart)
	packageCmd = newGoalCommand("package", "chart", "Generate and package charts into archives", internal.GoalChart, internal.GoalPackage)
	pushCmd    = newGoalCommand("push", "chart", "Generate, package and publish charts to the configured repository", internal.GoalChart, internal.GoalPush)
)

func init() {
	rootCmd.AddCommand(imageCmd, chartCmd, packageCmd, pushCmd)
}
