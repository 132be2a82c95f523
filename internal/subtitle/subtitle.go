package subtitle

import "github.com/mgpai22/captionbox/internal/webvtt"

// represents supported subtitle formats
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
	FormatASS Format = "ass"
)

// Track is everything read from one caption file.
type Track struct {
	Format  Format
	Cues    []*webvtt.Cue
	Regions []*webvtt.Region
	// STYLE block bodies in file order
	Styles       []string
	TimestampMap *webvtt.TimestampMap
	// parse errors the reader recovered from
	Errors []*webvtt.ParseError
}

// Duration is the end time of the last cue to finish.
func (t *Track) Duration() float64 {
	var end float64
	for _, c := range t.Cues {
		end = max(end, c.EndTime)
	}
	return end
}

// interface for writing tracks to files
type Writer interface {
	Write(track *Track, path string) error
}
