package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vetqa/backend/internal/domain/attempt"
	"github.com/vetqa/backend/internal/store"
)

const recordTimeout = 5 * time.Second

// AttemptRecorder persists attempts in the background so answering never
// waits on storage. Failures are logged and dropped.
type AttemptRecorder struct {
	store  store.Store
	logger *slog.Logger
	wg     sync.WaitGroup
}

func NewAttemptRecorder(s store.Store, logger *slog.Logger) *AttemptRecorder {
	return &AttemptRecorder{store: s, logger: logger}
}

// Record writes a asynchronously. It uses its own context because the write
// must outlive the request that produced the attempt.
func (r *AttemptRecorder) Record(a attempt.Attempt) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		if a.CreatedAt.IsZero() {
			a.CreatedAt = time.Now().UTC()
		}
		if err := r.store.AddAttempt(ctx, a); err != nil {
			r.logger.Error("failed to record attempt",
				"question_id", a.QuestionID,
				"error", err,
			)
		}
	}()
}

func (r *AttemptRecorder) RecordAll(attempts []attempt.Attempt) {
	for _, a := range attempts {
		r.Record(a)
	}
}

// Wait blocks until every pending write has finished.
func (r *AttemptRecorder) Wait() {
	r.wg.Wait()
}
