package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgpai22/captionbox/internal/subtitle"
	"github.com/mgpai22/captionbox/internal/webvtt"
)

// errors reported while parsing, surfaced as a failure under --strict
var errParseErrors = errors.New("input has parse errors")

const maxTextWidth = 40

func newCuesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cues [caption_file]",
		Short: "List the cues of a caption file",
		Long: `Parse a WebVTT or SRT file and print every cue with its timing,
settings and text direction.

Examples:
  captionbox cues movie.vtt
  captionbox cues movie.vtt --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			track, err := ctx.openTrack(args[0])
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(track.Cues))
			for i, cue := range track.Cues {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					cue.ID,
					webvtt.FormatTimestamp(cue.StartTime),
					webvtt.FormatTimestamp(cue.EndTime),
					string(webvtt.DetermineDirection(cue.Content())),
					webvtt.FormatSettings(cue),
					summarizeText(cue.Content().TextContent()),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out,
				[]string{"#", "ID", "Start", "End", "Dir", "Settings", "Text"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight, alignRight},
			))
			fmt.Fprintf(out, "%d cues, %d regions, %d styles, %d errors\n",
				len(track.Cues), len(track.Regions), len(track.Styles), len(track.Errors))
			return ctx.checkStrict(track)
		},
	}
}

// opens a caption file with the configured parser settings, logging every
// recovered parse error
func (c *commandContext) openTrack(path string) (*subtitle.Track, error) {
	c.logger.Debugw("Opening caption file", "path", path)

	track, err := subtitle.Open(path, c.openOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to read captions: %w", err)
	}
	for _, perr := range track.Errors {
		c.logger.Warnw("Parse error",
			"path", path,
			"code", perr.Code.String(),
			"line", perr.Line,
			"message", perr.Message,
		)
	}
	c.logger.Debugw("Caption file parsed",
		"path", path,
		"cues", len(track.Cues),
		"errors", len(track.Errors),
	)
	return track, nil
}

func (c *commandContext) checkStrict(track *subtitle.Track) error {
	if !c.strictMode() || len(track.Errors) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d reported, first: %v", errParseErrors, len(track.Errors), track.Errors[0])
}

// first line of a cue, shortened for a table cell
func summarizeText(s string) string {
	lines := strings.Split(s, "\n")
	first := strings.TrimSpace(lines[0])
	runes := []rune(first)
	if len(runes) > maxTextWidth {
		first = string(runes[:maxTextWidth-1]) + "…"
	}
	if len(lines) > 1 {
		first += fmt.Sprintf(" (+%d)", len(lines)-1)
	}
	return first
}
