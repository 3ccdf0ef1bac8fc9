package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flexliner/subtitles/internal/subtitle"
)

func newCuesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cues <subtitle-file>",
		Short: "List the cues of a subtitle file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := loadSubtitleFile(args[0])
			if err != nil {
				return err
			}

			cues := subtitle.ParseCues(file.vtt)
			if len(cues) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No cues found")
				return nil
			}

			rows := make([][]string, 0, len(cues))
			for i, c := range cues {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					subtitle.FormatSecondsToVTT(c.Start),
					subtitle.FormatSecondsToVTT(c.End),
					strings.ReplaceAll(c.Text, "\n", " / "),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"#", "Start", "End", "Text"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}
