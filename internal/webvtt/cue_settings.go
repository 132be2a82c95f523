package webvtt

import (
	"strings"
	"unicode"
)

// parses a timing line ("start --> end settings...") into cue
func parseCueTiming(line string, cue *Cue, regions []*Region) error {
	input := trimLeftSpace(line)

	start, input, err := consumeTimestamp(input, line)
	if err != nil {
		return err
	}

	input = trimLeftSpace(input)
	if !strings.HasPrefix(input, "-->") {
		return newParseError(
			BadTimeStamp,
			"Malformed time stamp (time stamps must be separated by '-->'): "+line,
		)
	}
	input = trimLeftSpace(input[len("-->"):])

	end, input, err := consumeTimestamp(input, line)
	if err != nil {
		return err
	}

	cue.StartTime = start
	cue.EndTime = end
	applyCueSettings(trimLeftSpace(input), cue, regions)
	return nil
}

func applyCueSettings(input string, cue *Cue, regions []*Region) {
	settings := NewSettings()

	parseOptions(input, ":", splitWhitespace, func(k, v string) {
		switch k {
		case "region":
			if r := lookupRegion(regions, v); r != nil {
				settings.Set(k, r)
			}
		case "vertical":
			settings.Alt(k, v, "rl", "lr")
		case "line":
			vals := strings.Split(v, ",")
			settings.Integer(k, vals[0])
			if settings.Percent(k, vals[0]) {
				settings.Set("snapToLines", false)
			}
			settings.Alt(k, vals[0], "auto")
			if len(vals) == 2 {
				settings.Alt("lineAlign", vals[1], "start", "center", "end")
			}
		case "position":
			vals := strings.Split(v, ",")
			settings.Percent(k, vals[0])
			if len(vals) == 2 {
				settings.Alt("positionAlign", vals[1], "start", "center", "end")
			}
		case "size":
			settings.Percent(k, v)
		case "align":
			settings.Alt(k, v, "start", "center", "middle", "end", "left", "right")
		}
	})

	cue.Region = settingOr[*Region](settings, "region", nil)
	cue.Vertical = Vertical(settingOr(settings, "vertical", ""))
	cue.Line = lineSetting(settings)
	cue.LineAlign = Align(settingOr(settings, "lineAlign", string(AlignStart)))
	cue.SnapToLines = settingOr(settings, "snapToLines", true)
	cue.Size = settingOr(settings, "size", 100.0)

	align := settingOr(settings, "align", string(AlignCenter))
	if align == "middle" {
		align = string(AlignCenter)
	}
	cue.Align = Align(align)

	if p, ok := settings.Get("position"); ok {
		cue.Position = Number(p.(float64))
	} else {
		cue.Position = Number(positionForAlign(cue.Align))
	}
	cue.PositionAlign = Align(settingOr(
		settings,
		"positionAlign",
		string(positionAlignForAlign(cue.Align)),
	))
}

func lineSetting(s *Settings) AutoNumber {
	v, ok := s.Get("line")
	if !ok {
		return Auto
	}
	switch n := v.(type) {
	case int:
		return Number(float64(n))
	case float64:
		return Number(n)
	default:
		return Auto
	}
}

// most recently defined region with the id wins
func lookupRegion(regions []*Region, id string) *Region {
	for i := len(regions) - 1; i >= 0; i-- {
		if regions[i].ID == id {
			return regions[i]
		}
	}
	return nil
}

func trimLeftSpace(s string) string {
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}
