package main

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rescoreCmd = &cobra.Command{
	Use:   "rescore",
	Short: "Run one rescore sweep over every stored resume and job, then exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		c, err := newContainer(ctx)
		if err != nil {
			return err
		}
		defer c.Close()

		if !c.Scheduler.Trigger(ctx) {
			return errors.New("a rescore sweep is already running")
		}
		st := c.Scheduler.Status()
		if st.LastError != "" {
			return errors.New(st.LastError)
		}
		summary := st.LastSummary
		c.Log.Info().
			Int("resumes", summary.Resumes).
			Int("jobs", summary.Jobs).
			Int("pairs", summary.Pairs).
			Int("qualifying", summary.Qualifying).
			Int("created", summary.Created).
			Int("failed", summary.Failed).
			Msg("rescore finished")
		return nil
	},
}
