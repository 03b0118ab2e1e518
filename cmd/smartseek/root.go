package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dshills/smartseek/internal/app"
)

// cli holds the state shared by the commands of one invocation.
type cli struct {
	configPath string

	cfg     app.Config
	app     *app.Application
	logFile io.Closer

	root *cobra.Command
}

func newCLI() *cli {
	c := &cli{}

	root := &cobra.Command{
		Use:   "smartseek",
		Short: "Rebindable seek shortcuts for a terminal video page",
		Long: `smartseek seeks the active video back or forward by a configurable
interval when a bound key is pressed, and shows a short on-screen indicator.

Settings (seek amount, back key, forward key) live in a settings store that
the player, the options form and the popup share. Changes made by one are
picked up by the others without a restart.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "Path to configuration file")
	flags.String("store", "", "Settings store DSN (memory:, file:<path>, sqlite:<path>)")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-file", "", "Write logs to this file")

	root.AddCommand(
		c.playCmd(),
		c.optionsCmd(),
		c.popupCmd(),
		c.lifecycleCmd(),
		c.configCmd(),
		versionCmd(),
	)
	c.root = root
	return c
}

// Execute runs the command line and releases the store and log file.
func (c *cli) Execute(ctx context.Context) error {
	err := c.root.ExecuteContext(ctx)
	if cerr := c.teardown(); err == nil {
		err = cerr
	}
	return err
}

// setup loads the configuration, configures logging and opens the store.
// Commands annotated with skipStore only get the configuration.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := app.LoadConfig(cmd, c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	if cmd.Annotations[annotationSkipStore] == "true" {
		return nil
	}

	logger, err := c.openLogger(cmd.Annotations[annotationOwnsTerm] == "true")
	if err != nil {
		return err
	}
	app.SetLogger(logger)

	c.app = app.New(app.Options{
		Config:  cfg,
		Logger:  logger,
		Version: version,
	})
	if err := c.app.Open(cmd.Context()); err != nil {
		return err
	}

	if cmd.Annotations[annotationNoStartup] == "true" {
		return nil
	}
	// Every run doubles as the install/update hook for the running release.
	if _, err := c.app.Startup(cmd.Context()); err != nil {
		logger.Warn("lifecycle failed", "err", err)
	}
	return nil
}

func (c *cli) teardown() error {
	var err error
	if c.app != nil {
		err = c.app.Close()
	}
	if c.logFile != nil {
		_ = c.logFile.Close()
	}
	c.app, c.logFile = nil, nil
	return err
}

// openLogger builds the logger. Logs go to log.file when one is configured.
// Otherwise they go to stderr, or nowhere when quiet is set because the
// command owns the terminal.
func (c *cli) openLogger(quiet bool) (*app.Logger, error) {
	cfg := app.DefaultLoggerConfig()
	cfg.Level = app.ParseLogLevel(c.cfg.Log.Level)

	switch {
	case c.cfg.Log.File != "":
		if err := os.MkdirAll(filepath.Dir(c.cfg.Log.File), 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(c.cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		c.logFile = f
		cfg.Output = f
		cfg.Timestamps = true
	case quiet:
		cfg.Output = io.Discard
	}
	return app.NewLogger(cfg), nil
}

// Command annotations read by setup.
const (
	annotationSkipStore = "smartseek/skip-store"
	annotationOwnsTerm  = "smartseek/owns-terminal"
	annotationNoStartup = "smartseek/no-startup"
)
