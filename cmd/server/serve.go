package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"resume-match/internal/app"

	"github.com/spf13/cobra"
)

var skipMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API together with the rescore scheduler and notification workers",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not apply migrations on start")
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := newContainer(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			c.Log.Error().Err(err).Msg("cleanup error")
		}
	}()

	if !skipMigrate {
		migCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		err := c.Migrate(migCtx)
		cancel()
		if err != nil {
			return err
		}
	}

	addr, err := app.ListenAddr(c.Config.App.HTTPPort)
	if err != nil {
		return err
	}

	bgCtx, cancelBackground := context.WithCancel(context.WithoutCancel(ctx))
	c.StartBackground(bgCtx)

	server := app.New(c.Config, c)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Fiber.Listen(addr)
	}()
	c.Log.Info().Str("addr", addr).Msg("http server started")

	var serveErr error
	select {
	case serveErr = <-errCh:
		if serveErr != nil {
			c.Log.Error().Err(serveErr).Msg("server error")
		}
	case <-ctx.Done():
		c.Log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := server.Fiber.ShutdownWithContext(shutdownCtx); err != nil {
			c.Log.Error().Err(err).Msg("shutdown error")
		}
		cancel()
	}

	cancelBackground()
	waitWithTimeout(c, 10*time.Second)

	if errors.Is(serveErr, context.Canceled) {
		return nil
	}
	return serveErr
}

func waitWithTimeout(c *app.Container, d time.Duration) {
	done := make(chan struct{})
	go func() {
		c.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
		c.Log.Warn().Dur("timeout", d).Msg("background workers did not stop in time")
	}
}
