package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flexliner/subtitles/internal/subtitle"
)

func newConvertCommand() *cobra.Command {
	var output string
	var rtl bool

	cmd := &cobra.Command{
		Use:   "convert <subtitle-file>",
		Short: "Decode a subtitle file and print it as WebVTT",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("provide the path to a subtitle file. Example: subtitlectl convert movie.he.srt -o movie.he.vtt")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := loadSubtitleFile(args[0])
			if err != nil {
				return err
			}

			vtt := file.vtt
			if rtl {
				vtt = subtitle.ApplyRTL(vtt)
			}
			vtt += "\n"

			output = strings.TrimSpace(output)
			if output == "" || output == "-" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), vtt)
				return err
			}
			if dir := filepath.Dir(output); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("ensure output directory: %w", err)
				}
			}
			if err := os.WriteFile(output, []byte(vtt), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%s, %s)\n", output, file.format(), file.encoding)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write WebVTT to this file instead of stdout")
	cmd.Flags().BoolVar(&rtl, "rtl", false, "Wrap right-to-left payload lines in embedding markers")
	return cmd
}
