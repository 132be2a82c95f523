package webvtt

import "strings"

// lineCollector buffers decoded text and hands out complete lines. A line ends
// at "\n", "\r\n" or a lone "\r", but nothing is handed out until the buffer
// holds at least one "\n" so a "\r\n" split across chunks is never cut in two.
type lineCollector struct {
	buffer string
	count  int
}

func (c *lineCollector) write(s string) {
	c.buffer += s
}

func (c *lineCollector) empty() bool {
	return c.buffer == ""
}

func (c *lineCollector) next() (string, bool) {
	if !strings.Contains(c.buffer, "\n") {
		return "", false
	}

	end := strings.IndexAny(c.buffer, "\r\n")
	line := c.buffer[:end]
	adv := end
	if c.buffer[adv] == '\r' {
		adv++
	}
	if adv < len(c.buffer) && c.buffer[adv] == '\n' {
		adv++
	}
	c.buffer = c.buffer[adv:]
	c.count++
	return line, true
}

// number of lines handed out so far
func (c *lineCollector) lines() int {
	return c.count
}
