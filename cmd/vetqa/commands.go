package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vetqa/backend/internal/domain/stats"
	"github.com/vetqa/backend/internal/infrastructure/config"
	"github.com/vetqa/backend/internal/ingest"
	"github.com/vetqa/backend/internal/store"
)

type cliOptions struct {
	driver    string
	dsn       string
	chunkSize int
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:           "vetqa",
		Short:         "Manage the local veterinary question bank",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.driver, "driver", cfg.DBDriver, "storage driver: sqlite, postgres or memory")
	root.PersistentFlags().StringVar(&opts.dsn, "dsn", cfg.DBDSN, "storage DSN")
	root.PersistentFlags().IntVar(&opts.chunkSize, "chunk-size", cfg.UpsertChunkSize, "records per upsert chunk")

	root.AddCommand(
		newImportCmd(opts),
		newExportCmd(opts),
		newStatsCmd(opts),
		newClearCmd(opts),
	)
	return root
}

// withStore opens the configured store for the duration of fn.
func withStore(ctx context.Context, opts *cliOptions, fn func(store.Store) error) error {
	s, err := store.Open(ctx, store.Driver(opts.driver), opts.dsn)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newImportCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <files...>",
		Short: "Upsert question bank files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			return withStore(cmd.Context(), opts, func(s store.Store) error {
				var items []any
				for _, path := range args {
					bank, err := ingest.LoadBankFile(path)
					if err != nil {
						return err
					}
					items = append(items, bank.Items...)
				}

				res, err := s.UpsertMany(cmd.Context(), items, opts.chunkSize)
				if err != nil {
					return err
				}
				ingest.LogSummary(logger, res)
				return writeJSON(cmd.OutOrStdout(), res)
			})
		},
	}
}

func newExportCmd(opts *cliOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump questions, sets and attempts as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), opts, func(s store.Store) error {
				exp, err := ingest.BuildExport(cmd.Context(), s, time.Now())
				if err != nil {
					return err
				}
				if output == "" {
					return writeJSON(cmd.OutOrStdout(), exp)
				}

				f, err := os.Create(output)
				if err != nil {
					return err
				}
				if err := writeJSON(f, exp); err != nil {
					f.Close()
					return err
				}
				return f.Close()
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

type statsReport struct {
	stats.Stats
	Accuracy       float64            `json:"accuracy"`
	FrequentErrors []stats.TopicError `json:"frequent_errors"`
}

func newStatsCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print accuracy per area and the most frequent errors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), opts, func(s store.Store) error {
				attempts, err := s.GetAllAttempts(cmd.Context())
				if err != nil {
					return err
				}
				agg := stats.Aggregate(attempts)
				return writeJSON(cmd.OutOrStdout(), statsReport{
					Stats:          agg,
					Accuracy:       agg.Accuracy(),
					FrequentErrors: stats.FrequentErrors(agg),
				})
			})
		},
	}
}

func newClearCmd(opts *cliOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every question (attempts and sets are kept)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear without --yes")
			}
			return withStore(cmd.Context(), opts, func(s store.Store) error {
				if err := s.ClearQuestions(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "questions cleared")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}
