// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/renameio/v2"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"schedsync/internal/config"
	"schedsync/internal/gsheet"
	"schedsync/internal/log"
	"schedsync/internal/metrics"
	"schedsync/internal/ratelimit"
	"schedsync/internal/source"
)

var version = "v0.3.0"

type rootOptions struct {
	configPath string
	envFile    string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "schedsync",
		Short:         "Ingest and normalize a spreadsheet-backed event schedule",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			// Missing .env is fine; the environment may already be set.
			if err := godotenv.Load(opts.envFile); err != nil && !os.IsNotExist(err) {
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			}
			log.Configure(log.Config{Level: opts.logLevel, Version: version})
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "event.toml", "path to the event config file")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "path to an optional .env file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(newIngestCommand(opts))
	cmd.AddCommand(newTabsCommand())
	cmd.AddCommand(newVersionCommand())
	return cmd
}

// runContext attaches signal handling and a fresh ingestion run ID.
func runContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	return log.ContextWithRunID(ctx, uuid.NewString()), stop
}

func newIngestCommand(opts *rootOptions) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Run the full schedule ingestion and emit the session list as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := runContext(cmd.Context())
			defer stop()

			logger := log.WithComponentFromContext(ctx, "cli")

			ev, err := config.LoadEvent(opts.configPath)
			if err != nil {
				return err
			}
			logger.Info().
				Str("event", "ingest.config").
				Str("name", ev.Name).
				Str("backend", ev.Schedule.Type).
				Msg("event config loaded")

			queue := ratelimit.NewQueue(ratelimit.DefaultInterval)
			src, err := source.New(ev.Schedule, queue)
			if err != nil {
				return err
			}

			sessions, err := src.Sessions(ctx)
			if err != nil {
				return fmt.Errorf("ingest schedule: %w", err)
			}
			logger.Info().
				Str("event", "ingest.metrics").
				Interface("counters", metrics.Snapshot()).
				Msg("pipeline counters")

			raw, err := json.MarshalIndent(sessions, "", "  ")
			if err != nil {
				return err
			}
			raw = append(raw, '\n')

			if outPath == "" {
				_, err = cmd.OutOrStdout().Write(raw)
				return err
			}
			if err := renameio.WriteFile(outPath, raw, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			logger.Info().
				Str("event", "ingest.written").
				Str("path", outPath).
				Int("sessions", len(sessions)).
				Msg("session list written")
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "write the session list to this file instead of stdout")
	return cmd
}

func newTabsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tabs",
		Short: "List the tabs of the configured spreadsheet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := runContext(cmd.Context())
			defer stop()

			cfg, err := gsheet.ConfigFromEnv()
			if err != nil {
				return err
			}
			client, err := gsheet.New(cfg, ratelimit.NewQueue(ratelimit.DefaultInterval))
			if err != nil {
				return err
			}

			names, err := client.TabNames(ctx)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the schedsync version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
