package config

import "strings"

func (c *Config) normalize() {
	c.normalizeRender()
	c.normalizeParser()
	c.normalizeLogging()
}

func (c *Config) normalizeRender() {
	if c.Render.FontSizePercent == 0 {
		c.Render.FontSizePercent = defaultFontSizePercent
	}
	if c.Render.LineHeightRatio == 0 {
		c.Render.LineHeightRatio = defaultLineHeightRatio
	}
}

func (c *Config) normalizeParser() {
	if c.Parser.ChunkSize == 0 {
		c.Parser.ChunkSize = defaultChunkSize
	}
	c.Parser.Encoding = strings.ToLower(strings.TrimSpace(c.Parser.Encoding))
	if c.Parser.Encoding == "" {
		c.Parser.Encoding = defaultEncoding
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
