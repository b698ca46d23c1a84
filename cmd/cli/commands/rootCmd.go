package commands

import (
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var imageGroup = &cobra.Group{
	ID:    "image",
	Title: "Commands for working with image names",
}

var chartGroup = &cobra.Group{
	ID:    "chart",
	Title: "Commands for building and publishing charts",
}

func init() {
	rootCmd.AddGroup(imageGroup)
	rootCmd.AddGroup(chartGroup)
}

var rootCmd = &cobra.Command{
	Use:          "chartsmith",
	Short:        "chartsmith formats image names and builds, packages and publishes Helm charts",
	Long:         figure.NewFigure("chartsmith", "rectangles", true).String(),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}
