package ingest

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/vetqa/backend/internal/store"
)

const maxLoggedErrors = 10

// Seed loads the bundled banks in dir into s, but only when s holds no
// questions yet. A missing dir is not an error.
func Seed(ctx context.Context, s store.Store, dir string, chunkSize int, logger *slog.Logger) (store.UpsertResult, error) {
	res := store.UpsertResult{Errors: []store.RecordError{}}

	existing, err := s.GetAllQuestions(ctx)
	if err != nil {
		return res, err
	}
	if len(existing) > 0 {
		logger.Info("question bank already loaded", "count", len(existing))
		return res, nil
	}

	banks, err := LoadBankDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("bank directory not found", "dir", dir)
		return res, nil
	}
	if err != nil {
		return res, err
	}

	var items []any
	for _, b := range banks {
		logger.Info("loaded bank", "name", b.Name, "items", len(b.Items))
		items = append(items, b.Items...)
	}

	res, err = s.UpsertMany(ctx, items, chunkSize)
	if err != nil {
		return res, err
	}
	LogSummary(logger, res)
	return res, nil
}

// LogSummary logs an upsert summary and its first few record errors.
func LogSummary(logger *slog.Logger, res store.UpsertResult) {
	logger.Info("upsert finished",
		"inserted", res.Inserted,
		"updated", res.Updated,
		"skipped", res.Skipped,
		"errors", len(res.Errors),
	)
	for i, e := range res.Errors {
		if i == maxLoggedErrors {
			break
		}
		logger.Warn("record rejected", "index", e.Index, "reason", e.Reason)
	}
}
