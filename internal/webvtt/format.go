package webvtt

import (
	"math"
	"strconv"
	"strings"
)

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// FormatSettings renders the cue settings that differ from what a bare timing
// line resolves to, in the syntax the parser reads back.
func FormatSettings(c *Cue) string {
	var parts []string

	if c.Region != nil && c.Region.ID != "" {
		parts = append(parts, "region:"+c.Region.ID)
	}
	if c.Vertical != Horizontal {
		parts = append(parts, "vertical:"+string(c.Vertical))
	}

	if !c.Line.Auto {
		var line string
		if c.SnapToLines {
			line = strconv.FormatFloat(math.Round(c.Line.Value), 'f', -1, 64)
		} else {
			line = formatPercent(c.Line.Value)
		}
		if c.LineAlign != AlignStart && isBoxAlign(c.LineAlign) {
			line += "," + string(c.LineAlign)
		}
		parts = append(parts, "line:"+line)
	}

	position := c.ResolvedPosition()
	if position != positionForAlign(c.Align) || c.PositionAlign != positionAlignForAlign(c.Align) {
		value := formatPercent(position)
		if c.PositionAlign != positionAlignForAlign(c.Align) && isBoxAlign(c.PositionAlign) {
			value += "," + string(c.PositionAlign)
		}
		parts = append(parts, "position:"+value)
	}

	if c.Size != 100 {
		parts = append(parts, "size:"+formatPercent(c.Size))
	}
	if c.Align != AlignCenter && c.Align != "" {
		parts = append(parts, "align:"+string(c.Align))
	}

	return strings.Join(parts, " ")
}

// FormatRegion renders a region as the settings line of a REGION block.
func FormatRegion(r *Region) string {
	parts := []string{
		"id:" + r.ID,
		"width:" + formatPercent(r.Width),
		"lines:" + strconv.Itoa(r.Lines),
		"regionanchor:" + formatPercent(r.RegionAnchorX) + "," + formatPercent(r.RegionAnchorY),
		"viewportanchor:" + formatPercent(r.ViewportAnchorX) + "," + formatPercent(r.ViewportAnchorY),
	}
	if r.Scroll != "" {
		parts = append(parts, "scroll:"+r.Scroll)
	}
	return strings.Join(parts, " ")
}
