package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgpai22/captionbox/internal/cuebox"
	"github.com/mgpai22/captionbox/internal/webvtt"
)

func newLayoutCommand(ctx *commandContext) *cobra.Command {
	var (
		at     []string
		width  int
		height int
	)

	cmd := &cobra.Command{
		Use:   "layout [caption_file]",
		Short: "Print the boxes of the cues showing at a time",
		Long: `Lay out the cues active at each --at time on a render surface and
print the resolved boxes in pixels.

Times are WebVTT timestamps or plain seconds. The surface defaults to the
[render] section of the configuration.

Examples:
  captionbox layout movie.vtt --at 00:01:02.500
  captionbox layout movie.vtt --at 12 --at 15.5 --width 1920 --height 1080`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(at) == 0 {
				return fmt.Errorf("at least one --at time is required")
			}
			times := make([]float64, 0, len(at))
			for _, raw := range at {
				t, err := parsePlaybackTime(raw)
				if err != nil {
					return err
				}
				times = append(times, t)
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("width") {
				width = cfg.Render.Width
			}
			if !cmd.Flags().Changed("height") {
				height = cfg.Render.Height
			}
			if width <= 0 || height <= 0 {
				return fmt.Errorf("invalid surface %dx%d: width and height must be positive", width, height)
			}

			track, err := ctx.openTrack(args[0])
			if err != nil {
				return err
			}
			if err := ctx.checkStrict(track); err != nil {
				return err
			}

			engine := cuebox.NewEngine(cuebox.Options{
				FontSizePercent: cfg.Render.FontSizePercent,
				LineHeightRatio: cfg.Render.LineHeightRatio,
				PaddingPercent:  cfg.Render.PaddingPercent,
				Logger:          ctx.logger.Sugar(),
			})
			surface := cuebox.Container{Width: float64(width), Height: float64(height)}

			var rows [][]string
			for _, t := range times {
				active := cuebox.ActiveAt(track.Cues, t)
				ctx.logger.Debugw("Laying out cues", "at", t, "active", len(active))
				engine.Layout(active, surface)
				for _, cue := range active {
					rows = append(rows, layoutRow(t, cue))
				}
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No cues are showing at the requested times")
				return nil
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"At", "ID", "Left", "Top", "Width", "Height", "Font", "Dir", "Align", "Text"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&at, "at", nil, "Playback time to lay out (repeatable)")
	cmd.Flags().IntVarP(&width, "width", "W", 0, "Surface width in pixels")
	cmd.Flags().IntVarP(&height, "height", "H", 0, "Surface height in pixels")
	return cmd
}

func layoutRow(t float64, cue *webvtt.Cue) []string {
	ds := cue.DisplayState()
	return []string{
		webvtt.FormatTimestamp(t),
		cue.ID,
		formatPixels(ds.Left),
		formatPixels(ds.Top),
		formatPixels(ds.Width),
		formatPixels(ds.Height),
		formatPixels(ds.FontSize),
		string(ds.Direction),
		string(ds.TextAlign),
		summarizeText(cue.Content().TextContent()),
	}
}

func formatPixels(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// accepts a WebVTT timestamp or a number of seconds
func parsePlaybackTime(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if strings.Contains(s, ":") {
		t, err := webvtt.ParseTimestamp(s)
		if err != nil {
			return 0, fmt.Errorf("invalid time %q: %w", raw, err)
		}
		return t, nil
	}
	t, err := strconv.ParseFloat(s, 64)
	if err != nil || t < 0 {
		return 0, fmt.Errorf("invalid time %q: expected a timestamp or seconds", raw)
	}
	return t, nil
}
