package main

import (
	"context"
	"fmt"

	"resume-match/internal/app"
	"resume-match/internal/config"
	"resume-match/internal/logger"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const appName = "resume-match"

var rootCmd = &cobra.Command{
	Use:           appName,
	Short:         "resume-match scores uploaded resumes against job postings and notifies users of strong matches",
	SilenceUsage:  true,
	RunE:          runServe,
}

var logPretty bool

func init() {
	rootCmd.PersistentFlags().BoolVar(&logPretty, "pretty", false, "human readable log output")
	rootCmd.AddCommand(serveCmd, rescoreCmd, migrateCmd, tokenCmd)
}

// setup loads configuration and the logger shared by every command.
func setup() (config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, zerolog.Nop(), fmt.Errorf("load config: %w", err)
	}

	format := cfg.App.LogFormat
	if logPretty {
		format = "pretty"
	}
	log := logger.Init(logger.Config{Level: cfg.App.LogLevel, Format: format}).
		With().Str("app", cfg.App.AppName).Str("env", cfg.App.Environment).Logger()
	return cfg, log, nil
}

func newContainer(ctx context.Context) (*app.Container, error) {
	cfg, log, err := setup()
	if err != nil {
		return nil, err
	}
	return app.NewContainer(ctx, cfg, log)
}
