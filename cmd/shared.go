package cmd

import (
	"github.com/sirupsen/logrus"

	"github.com/olickqc/hardlinkcheck/pkg/config"
	"github.com/olickqc/hardlinkcheck/pkg/logger"
)

var (
	// Global flags
	FlagLogLevel   = 0
	FlagConfigFile = "config.json"
	FlagLogFile    string
	FlagDryRun     bool

	// Global vars set by initCore
	cfg     *config.Configuration
	rootLog *logrus.Logger
)

// initCore loads the configuration and builds the logger. Verbosity
// flags override the configured log level.
func initCore() error {
	c, err := config.Load(FlagConfigFile)
	if err != nil {
		return err
	}
	cfg = c

	level := c.LogLevel
	switch {
	case FlagLogLevel == 1:
		level = "DEBUG"
	case FlagLogLevel >= 2:
		level = "TRACE"
	}

	rootLog = logger.New(logger.Options{
		Level: level,
		Path:  FlagLogFile,
	})

	return nil
}
