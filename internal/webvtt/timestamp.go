package webvtt

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	timestampRegex = regexp.MustCompile(`^(\d+):(\d{1,2})(:\d{1,2})?\.(\d{3})`)
	// everything up to the next whitespace, letter or '-' belongs to the
	// timestamp just consumed
	timestampTailRegex = regexp.MustCompile(`^[^\sa-zA-Z-]+`)
)

// ParseTimestamp parses a WebVTT timestamp prefix of input into seconds.
//
// With three groups the value reads H:MM:SS.mmm. With two groups the first is
// read as hours when it exceeds 59 (H:MM.mmm, seconds implied 0) and as minutes
// otherwise (M:SS.mmm). Trailing characters after the milliseconds are ignored.
func ParseTimestamp(input string) (float64, error) {
	m := timestampRegex.FindStringSubmatch(input)
	if m == nil {
		return 0, newParseError(BadTimeStamp, "Malformed timestamp: "+input)
	}

	first, err := atoiGroup(m[1])
	if err != nil {
		return 0, newParseError(BadTimeStamp, fmt.Sprintf("Malformed timestamp: %s: %v", input, err))
	}
	second, _ := strconv.Atoi(m[2])
	millis, _ := strconv.Atoi(m[4])

	switch {
	case m[3] != "":
		third, _ := strconv.Atoi(strings.TrimPrefix(m[3], ":"))
		return computeSeconds(first, second, third, millis), nil
	case first > 59:
		return computeSeconds(first, second, 0, millis), nil
	default:
		return computeSeconds(0, first, second, millis), nil
	}
}

func atoiGroup(s string) (int, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt32 {
		return 0, fmt.Errorf("value %s out of range", s)
	}
	return int(n), nil
}

func computeSeconds(h, m, s, f int) float64 {
	return float64(h)*3600 + float64(m)*60 + float64(s) + float64(f)/1000
}

// consumes a timestamp at the start of input and returns the remainder
func consumeTimestamp(input, line string) (float64, string, error) {
	ts, err := ParseTimestamp(input)
	if err != nil {
		return 0, input, newParseError(BadTimeStamp, "Malformed timestamp: "+line)
	}
	return ts, timestampTailRegex.ReplaceAllString(input, ""), nil
}

// FormatTimestamp renders seconds as HH:MM:SS.mmm.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int64(math.Round(seconds * 1000))
	ms := total % 1000
	s := (total / 1000) % 60
	m := (total / 60000) % 60
	h := total / 3600000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}
