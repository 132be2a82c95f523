package webvtt

import (
	"regexp"
	"strings"
)

var (
	signatureRegex = regexp.MustCompile(`^WEBVTT([ \t].*)?$`)
	// the key of a timestamp map pair ends at the first colon that does not
	// follow a digit, so LOCAL:00:00:00.000 splits once
	timestampMapPairRegex = regexp.MustCompile(`[^\d]:`)
)

// TimestampMap is the X-TIMESTAMP-MAP header used to sync captions with an
// MPEG-2 transport stream.
type TimestampMap struct {
	MPEGTS    int64
	HasMPEGTS bool
	Local     float64
	HasLocal  bool
}

func (p *Parser) parseHeader(line string) {
	if strings.Contains(line, "X-TIMESTAMP-MAP") {
		parseOptions(line, "=", nil, func(k, v string) {
			if k == "X-TIMESTAMP-MAP" {
				p.parseTimestampMap(v)
			}
		})
		return
	}

	parseOptions(line, ":", nil, func(k, v string) {
		if k == "Region" {
			p.parseRegion(v, "=")
		}
	})
}

func (p *Parser) parseTimestampMap(input string) {
	settings := NewSettings()
	for _, group := range splitComma(input) {
		loc := timestampMapPairRegex.FindAllStringIndex(group, -1)
		if len(loc) != 1 {
			continue
		}
		k := group[:loc[0][0]+1]
		v := group[loc[0][1]:]
		switch k {
		case "MPEGTS":
			settings.Integer(k, v)
		case "LOCAL":
			if ts, err := ParseTimestamp(v); err == nil {
				settings.Set(k, ts)
			}
		}
	}

	tm := TimestampMap{}
	if v, ok := settings.Get("MPEGTS"); ok {
		tm.MPEGTS = int64(v.(int))
		tm.HasMPEGTS = true
	}
	if v, ok := settings.Get("LOCAL"); ok {
		tm.Local = v.(float64)
		tm.HasLocal = true
	}

	p.logger.Debugw("timestamp map", "mpegts", tm.MPEGTS, "local", tm.Local)
	if p.handlers.OnTimestampMap != nil {
		p.handlers.OnTimestampMap(tm)
	}
}

// parses region settings separated by whitespace, each key and value joined by
// delim ("=" on a header Region: line, ":" inside a REGION block)
func (p *Parser) parseRegion(input, delim string) {
	settings := NewSettings()

	parseOptions(input, delim, splitWhitespace, func(k, v string) {
		switch k {
		case "id":
			settings.Set(k, v)
		case "width":
			settings.Percent(k, v)
		case "lines":
			settings.Integer(k, v)
		case "regionanchor", "viewportanchor":
			xy := splitComma(v)
			if len(xy) != 2 {
				return
			}
			anchor := NewSettings()
			anchor.Percent("x", xy[0])
			anchor.Percent("y", xy[1])
			if !anchor.Has("x") || !anchor.Has("y") {
				return
			}
			settings.Set(k+"X", settingOr(anchor, "x", 0.0))
			settings.Set(k+"Y", settingOr(anchor, "y", 0.0))
		case "scroll":
			settings.Alt(k, v, "up")
		}
	})

	if !settings.Has("id") {
		return
	}

	region := NewRegion(settingOr(settings, "id", ""))
	region.Width = settingOr(settings, "width", region.Width)
	if lines := settingOr(settings, "lines", region.Lines); lines > 0 {
		region.Lines = lines
	}
	region.RegionAnchorX = settingOr(settings, "regionanchorX", region.RegionAnchorX)
	region.RegionAnchorY = settingOr(settings, "regionanchorY", region.RegionAnchorY)
	region.ViewportAnchorX = settingOr(settings, "viewportanchorX", region.ViewportAnchorX)
	region.ViewportAnchorY = settingOr(settings, "viewportanchorY", region.ViewportAnchorY)
	region.Scroll = settingOr(settings, "scroll", "")

	p.regions = append(p.regions, region)
	p.logger.Debugw("region registered", "id", region.ID, "regions", len(p.regions))
	if p.handlers.OnRegion != nil {
		p.handlers.OnRegion(region)
	}
}
