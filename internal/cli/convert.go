package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgpai22/captionbox/internal/subtitle"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var (
		formatName string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "convert [caption_file]",
		Short: "Convert a caption file to SRT, WebVTT or ASS",
		Long: `Parse a caption file and write it out in another format.

WebVTT output keeps regions, style blocks and cue settings. SRT keeps
italic, bold and underline markup. ASS maps cue alignment to numpad
alignment tags.

Examples:
  captionbox convert movie.vtt -f srt
  captionbox convert movie.srt -o movie.vtt
  captionbox convert movie.vtt -f ass -o out/movie.ass`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]

			format, err := resolveOutputFormat(formatName, outputPath)
			if err != nil {
				return err
			}
			if outputPath == "" {
				ext := filepath.Ext(inputPath)
				outputPath = strings.TrimSuffix(inputPath, ext) + subtitle.GetExtensionForFormat(format)
			}
			if filepath.Clean(outputPath) == filepath.Clean(inputPath) {
				return fmt.Errorf("output %s would overwrite the input", outputPath)
			}

			track, err := ctx.openTrack(inputPath)
			if err != nil {
				return err
			}
			if err := ctx.checkStrict(track); err != nil {
				return err
			}

			writer, err := subtitle.NewWriter(format)
			if err != nil {
				return err
			}

			ctx.logger.Infow("Converting captions",
				"input", inputPath,
				"output", outputPath,
				"format", format,
				"cues", len(track.Cues),
			)
			if err := writer.Write(track, outputPath); err != nil {
				return fmt.Errorf("failed to write captions: %w", err)
			}

			absOutput, _ := filepath.Abs(outputPath)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d cues to %s\n", len(track.Cues), absOutput)
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "", "Output format (srt, vtt, ass); defaults to the output extension")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path")
	return cmd
}

func resolveOutputFormat(name, outputPath string) (subtitle.Format, error) {
	if strings.TrimSpace(name) != "" {
		return subtitle.ParseFormat(name)
	}
	if outputPath == "" {
		return "", fmt.Errorf("either --format or --output is required")
	}
	return subtitle.GetFormatFromExtension(outputPath), nil
}
