package subtitle

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/mgpai22/captionbox/internal/webvtt"
)

// OpenOptions control how caption files are decoded.
type OpenOptions struct {
	// bytes per parser read, 0 means 4096
	ChunkSize int
	// WHATWG encoding label, empty means UTF-8
	Encoding string
	Logger   *zap.SugaredLogger
}

// Open reads a caption file, picking the reader from the file extension.
func Open(path string, opts OpenOptions) (*Track, error) {
	format, ok := formatFromExtension(path)
	if !ok || format == FormatASS {
		return nil, fmt.Errorf("unsupported subtitle format: %s", filepath.Ext(path))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open subtitle file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	return Read(file, format, opts)
}

// Read parses r as the given format.
func Read(r io.Reader, format Format, opts OpenOptions) (*Track, error) {
	decoder, err := webvtt.DecoderForCharset(opts.Encoding)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	switch format {
	case FormatVTT:
		return readVTT(r, decoder, opts.ChunkSize, logger)
	case FormatSRT:
		return readSRT(r, decoder)
	default:
		return nil, fmt.Errorf("unsupported subtitle format: %s", format)
	}
}

func readVTT(r io.Reader, decoder webvtt.Decoder, chunkSize int, logger *zap.SugaredLogger) (*Track, error) {
	track := &Track{Format: FormatVTT}
	parser := webvtt.NewParser(webvtt.Handlers{
		OnCue: func(c *webvtt.Cue) {
			track.Cues = append(track.Cues, c)
		},
		OnRegion: func(r *webvtt.Region) {
			track.Regions = append(track.Regions, r)
		},
		OnStyle: func(s string) {
			track.Styles = append(track.Styles, s)
		},
		OnTimestampMap: func(tm webvtt.TimestampMap) {
			if track.TimestampMap == nil {
				track.TimestampMap = &tm
			}
		},
		OnParsingError: func(e *webvtt.ParseError) {
			track.Errors = append(track.Errors, e)
		},
	}, webvtt.Options{Decoder: decoder, Logger: logger})

	if err := parser.ParseReader(r, chunkSize); err != nil {
		return nil, fmt.Errorf("failed to parse VTT file: %w", err)
	}
	return track, nil
}

// subtitle format based on file extension
func formatFromExtension(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt":
		return FormatSRT, true
	case ".vtt":
		return FormatVTT, true
	case ".ass", ".ssa":
		return FormatASS, true
	default:
		return "", false
	}
}

// GetFormatFromExtension maps an output path to a format, defaulting to SRT.
func GetFormatFromExtension(path string) Format {
	if format, ok := formatFromExtension(path); ok {
		return format
	}
	return FormatSRT
}

// ParseFormat accepts a format name such as "vtt" or ".srt".
func ParseFormat(name string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ".") {
	case "srt":
		return FormatSRT, nil
	case "vtt", "webvtt":
		return FormatVTT, nil
	case "ass", "ssa":
		return FormatASS, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", name)
	}
}

// file extension for a format
func GetExtensionForFormat(format Format) string {
	switch format {
	case FormatSRT:
		return ".srt"
	case FormatVTT:
		return ".vtt"
	case FormatASS:
		return ".ass"
	default:
		return ".srt"
	}
}
