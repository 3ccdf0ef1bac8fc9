package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flexliner/subtitles/internal/subtitle"
)

func newDetectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <subtitle-file>",
		Short: "Report the detected text encoding and subtitle format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := loadSubtitleFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File:     %s\n", file.path)
			fmt.Fprintf(out, "Encoding: %s\n", file.encoding)
			fmt.Fprintf(out, "Format:   %s\n", file.format())
			fmt.Fprintf(out, "Cues:     %d\n", len(subtitle.ParseCues(file.vtt)))
			return nil
		},
	}
}
