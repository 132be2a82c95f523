package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/mgpai22/captionbox/internal/webvtt"
)

var srtTimingRegex = regexp.MustCompile(
	`(\d{1,2}):(\d{2}):(\d{2})[,.](\d{3})\s*-->\s*(\d{1,2}):(\d{2}):(\d{2})[,.](\d{3})`,
)

// reads SubRip cues; SRT has no positioning so every cue keeps the defaults
func readSRT(r io.Reader, decoder webvtt.Decoder) (*Track, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read SRT file: %w", err)
	}
	text, err := decoder.Decode(raw, false)
	if err != nil {
		return nil, fmt.Errorf("failed to decode SRT file: %w", err)
	}

	track := &Track{Format: FormatSRT}
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var current *webvtt.Cue
	var textLines []string
	timed := false
	lineNum := 0

	finish := func() {
		if current != nil && timed {
			current.Text = strings.Join(textLines, "\n")
			track.Cues = append(track.Cues, current)
		}
		current = nil
		textLines = nil
		timed = false
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		lineNum++

		if strings.TrimSpace(line) == "" {
			finish()
			continue
		}

		if current == nil {
			current = webvtt.NewCue(0, 0, "")
			if _, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
				current.ID = strings.TrimSpace(line)
				continue
			}
		}

		if !timed {
			matches := srtTimingRegex.FindStringSubmatch(line)
			if matches == nil {
				track.Errors = append(track.Errors, &webvtt.ParseError{
					Code:    webvtt.BadTimeStamp,
					Message: "Malformed timestamp: " + line,
					Line:    lineNum,
				})
				current = nil
				// skip the rest of the block
				for scanner.Scan() {
					lineNum++
					if strings.TrimSpace(scanner.Text()) == "" {
						break
					}
				}
				continue
			}
			current.StartTime = srtSeconds(matches[1:5])
			current.EndTime = srtSeconds(matches[5:9])
			timed = true
			continue
		}

		textLines = append(textLines, line)
	}
	finish()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading SRT file: %w", err)
	}
	return track, nil
}

// hours, minutes, seconds and milliseconds as matched by srtTimingRegex
func srtSeconds(groups []string) float64 {
	var n [4]int
	for i, g := range groups {
		n[i], _ = strconv.Atoi(g)
	}
	return float64(n[0])*3600 + float64(n[1])*60 + float64(n[2]) + float64(n[3])/1000
}
