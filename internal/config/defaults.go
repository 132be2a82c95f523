package config

const (
	defaultWidth           = 1280
	defaultHeight          = 720
	defaultFontSizePercent = 5.0
	defaultLineHeightRatio = 1.0
	defaultPaddingPercent  = 1.5
	defaultChunkSize       = 4096
	defaultEncoding        = "utf-8"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultConfigLocation  = "~/.config/captionbox/config.toml"
	projectConfigName      = "captionbox.toml"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Render: Render{
			Width:           defaultWidth,
			Height:          defaultHeight,
			FontSizePercent: defaultFontSizePercent,
			LineHeightRatio: defaultLineHeightRatio,
			PaddingPercent:  defaultPaddingPercent,
		},
		Parser: Parser{
			ChunkSize: defaultChunkSize,
			Encoding:  defaultEncoding,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
