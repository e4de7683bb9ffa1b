package main

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/amaumene/dsnparr/internal/config"
	"github.com/amaumene/dsnparr/internal/utils"
)

type commandContext struct {
	logLevelFlag *string

	once   sync.Once
	config *config.Config
	logger *logrus.Logger
	err    error
}

func newCommandContext(logLevelFlag *string) *commandContext {
	return &commandContext{logLevelFlag: logLevelFlag}
}

// ensure loads the configuration and builds the logger once per process
func (c *commandContext) ensure() (*config.Config, *logrus.Logger, error) {
	c.once.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			c.err = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.LogLevel = strings.TrimSpace(*c.logLevelFlag)
		}
		c.config = cfg
		c.logger = utils.NewLogger(cfg.LogLevel, cfg.LogFormat)
	})
	return c.config, c.logger, c.err
}

func newRootCommand() *cobra.Command {
	var logLevelFlag string

	ctx := newCommandContext(&logLevelFlag)

	rootCmd := &cobra.Command{
		Use:           "dsnparr",
		Short:         "Check in which regions Disney+ and Star+ content is available",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override the configured log level")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newRegionsCommand(ctx))

	return rootCmd
}
