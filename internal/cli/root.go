package cli

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mgpai22/captionbox/internal/config"
	"github.com/mgpai22/captionbox/internal/logging"
	"github.com/mgpai22/captionbox/internal/subtitle"
)

type commandContext struct {
	configFlag string
	verbose    bool
	strict     bool

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error

	logger *logging.Logger
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(strings.TrimSpace(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
		c.configSeen = exists
	})
	return c.config, c.configErr
}

// builds the session logger from the loaded config, writing to the command's
// error stream
func (c *commandContext) setupLogger(cmd *cobra.Command) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Verbose: c.verbose,
		Output:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	c.logger = logger.With("session", uuid.NewString())
	return nil
}

func (c *commandContext) strictMode() bool {
	return c.strict || (c.config != nil && c.config.Parser.Strict)
}

func (c *commandContext) openOptions() subtitle.OpenOptions {
	opts := subtitle.OpenOptions{Logger: c.logger.Sugar()}
	if c.config != nil {
		opts.ChunkSize = c.config.Parser.ChunkSize
		opts.Encoding = c.config.Parser.Encoding
	}
	return opts
}

// NewRootCommand assembles the captionbox command tree.
func NewRootCommand() *cobra.Command {
	ctx := &commandContext{logger: logging.Nop()}

	rootCmd := &cobra.Command{
		Use:   "captionbox",
		Short: "WebVTT caption parser and cue layout tool",
		Long: `captionbox parses WebVTT caption files the way a browser does and
computes where each showing cue is drawn on a render surface.

It can list parsed cues, print the boxes of the cues active at a given
time, and convert captions to SRT, WebVTT or ASS.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations["skipConfigLoad"] == "true" {
				return nil
			}
			return ctx.setupLogger(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().
		BoolVarP(&ctx.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVarP(&ctx.configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().
		BoolVar(&ctx.strict, "strict", false, "Fail when the input reports any parse error")

	rootCmd.AddCommand(newCuesCommand(ctx))
	rootCmd.AddCommand(newLayoutCommand(ctx))
	rootCmd.AddCommand(newConvertCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

func Execute() error {
	return NewRootCommand().Execute()
}
