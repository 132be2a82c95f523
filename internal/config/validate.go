package config

import (
	"errors"
	"fmt"

	"github.com/mgpai22/captionbox/internal/webvtt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRender(); err != nil {
		return err
	}
	if err := c.validateParser(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateRender() error {
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render.width and render.height must be positive, got %dx%d", c.Render.Width, c.Render.Height)
	}
	if c.Render.FontSizePercent < 0 || c.Render.FontSizePercent > 100 {
		return errors.New("render.font_size_percent must be between 0 and 100")
	}
	if c.Render.LineHeightRatio < 0 {
		return errors.New("render.line_height_ratio must be positive")
	}
	if c.Render.PaddingPercent < 0 || c.Render.PaddingPercent >= 50 {
		return errors.New("render.padding_percent must be between 0 and 50")
	}
	return nil
}

func (c *Config) validateParser() error {
	if c.Parser.ChunkSize < 0 {
		return errors.New("parser.chunk_size must be positive")
	}
	if _, err := webvtt.DecoderForCharset(c.Parser.Encoding); err != nil {
		return fmt.Errorf("parser.encoding: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}
