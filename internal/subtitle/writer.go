package subtitle

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgpai22/captionbox/internal/webvtt"
)

// SubRip format
type SRTWriter struct{}

// WebVTT format
type VTTWriter struct{}

// Advanced SubStation Alpha format
type ASSWriter struct {
	Title    string
	FontName string
	FontSize int
}

func NewWriter(format Format) (Writer, error) {
	switch format {
	case FormatSRT:
		return &SRTWriter{}, nil
	case FormatVTT:
		return &VTTWriter{}, nil
	case FormatASS:
		return &ASSWriter{
			Title:    "captionbox",
			FontName: "Arial",
			FontSize: 20,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// writes the track to an SRT file, keeping only i, b and u markup
func (w *SRTWriter) Write(track *Track, path string) error {
	var sb strings.Builder
	for i, cue := range track.Cues {
		// index (1-based)
		fmt.Fprintf(&sb, "%d\n", i+1)

		// timestamps: 00:00:00,000 --> 00:00:00,000
		fmt.Fprintf(&sb, "%s --> %s\n",
			formatSRTTime(cue.StartTime),
			formatSRTTime(cue.EndTime))

		sb.WriteString(renderMarkup(cue.Content(), srtTags))
		sb.WriteString("\n\n")
	}
	return writeFile(path, sb.String())
}

// writes the track to a VTT file with regions, styles and cue settings intact
func (w *VTTWriter) Write(track *Track, path string) error {
	var sb strings.Builder

	sb.WriteString("WEBVTT\n\n")

	for _, r := range track.Regions {
		sb.WriteString("REGION\n")
		sb.WriteString(webvtt.FormatRegion(r))
		sb.WriteString("\n\n")
	}
	for _, style := range track.Styles {
		sb.WriteString("STYLE\n")
		sb.WriteString(strings.TrimRight(style, "\n"))
		sb.WriteString("\n\n")
	}

	for _, cue := range track.Cues {
		if cue.ID != "" {
			sb.WriteString(cue.ID)
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s --> %s",
			webvtt.FormatTimestamp(cue.StartTime),
			webvtt.FormatTimestamp(cue.EndTime))
		if settings := webvtt.FormatSettings(cue); settings != "" {
			sb.WriteString(" ")
			sb.WriteString(settings)
		}
		sb.WriteString("\n")

		// a blank line would end the cue early
		for _, line := range strings.Split(cue.Text, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	return writeFile(path, sb.String())
}

// writes the track to an ASS file
func (w *ASSWriter) Write(track *Track, path string) error {
	var sb strings.Builder

	// script info section
	sb.WriteString("[Script Info]\n")
	fmt.Fprintf(&sb, "Title: %s\n", w.Title)
	sb.WriteString("ScriptType: v4.00+\n")
	sb.WriteString("Collisions: Normal\n")
	sb.WriteString("PlayDepth: 0\n\n")

	// v4+ styles section
	sb.WriteString("[V4+ Styles]\n")
	sb.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	fmt.Fprintf(&sb, "Style: Default,%s,%d,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,2,2,2,10,10,10,1\n\n",
		w.FontName, w.FontSize)

	// events section
	sb.WriteString("[Events]\n")
	sb.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	for _, cue := range track.Cues {
		text := renderMarkup(cue.Content(), assTags)
		if tag := assAlignment(cue); tag != "" {
			text = tag + text
		}
		fmt.Fprintf(&sb, "Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
			formatASSTime(cue.StartTime),
			formatASSTime(cue.EndTime),
			strings.ReplaceAll(text, "\n", "\\N"))
	}
	return writeFile(path, sb.String())
}

// open and close markup for the node kinds a target format keeps
type tagSet map[webvtt.NodeKind][2]string

var srtTags = tagSet{
	webvtt.NodeItalic:    {"<i>", "</i>"},
	webvtt.NodeBold:      {"<b>", "</b>"},
	webvtt.NodeUnderline: {"<u>", "</u>"},
}

var assTags = tagSet{
	webvtt.NodeItalic:    {`{\i1}`, `{\i0}`},
	webvtt.NodeBold:      {`{\b1}`, `{\b0}`},
	webvtt.NodeUnderline: {`{\u1}`, `{\u0}`},
}

// flattens a content tree, wrapping kinds in tags and dropping every other tag
func renderMarkup(n *webvtt.Node, tags tagSet) string {
	var sb strings.Builder
	var walk func(*webvtt.Node)
	walk = func(n *webvtt.Node) {
		switch n.Kind {
		case webvtt.NodeText:
			sb.WriteString(n.Text)
			return
		case webvtt.NodeTimestamp, webvtt.NodeRubyText:
			return
		}
		pair, ok := tags[n.Kind]
		if ok {
			sb.WriteString(pair[0])
		}
		for _, c := range n.Children {
			walk(c)
		}
		if ok {
			sb.WriteString(pair[1])
		}
	}
	walk(n)
	return sb.String()
}

// numpad alignment override for cues that are not bottom centered
func assAlignment(cue *webvtt.Cue) string {
	column := 2
	switch cue.Align {
	case webvtt.AlignStart, webvtt.AlignLeft:
		column = 1
	case webvtt.AlignEnd, webvtt.AlignRight:
		column = 3
	}

	row := 0 // bottom
	if !cue.Line.Auto {
		switch {
		case cue.SnapToLines && cue.Line.Value >= 0:
			row = 2
		case !cue.SnapToLines && cue.Line.Value < 34:
			row = 2
		case !cue.SnapToLines && cue.Line.Value < 67:
			row = 1
		}
	}

	an := column + row*3
	if an == 2 {
		return ""
	}
	return fmt.Sprintf(`{\an%d}`, an)
}

func splitMillis(seconds float64) (h, m, s, ms int64) {
	if seconds < 0 {
		seconds = 0
	}
	total := int64(math.Round(seconds * 1000))
	return total / 3600000, (total / 60000) % 60, (total / 1000) % 60, total % 1000
}

func formatSRTTime(seconds float64) string {
	h, m, s, ms := splitMillis(seconds)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

func formatASSTime(seconds float64) string {
	h, m, s, ms := splitMillis(seconds)
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, ms/10)
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}
