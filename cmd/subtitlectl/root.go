package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "subtitlectl",
		Short:         "Inspect and convert SRT/WebVTT subtitle files",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newCuesCommand())
	rootCmd.AddCommand(newDetectCommand())

	return rootCmd
}
