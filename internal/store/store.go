package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/vetqa/backend/internal/domain/attempt"
	"github.com/vetqa/backend/internal/domain/question"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrStorageUnavailable means no persistent store could be opened.
	// Callers may fall back to an in-memory store.
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrUnknownCollection  = errors.New("unknown collection")
)

// Collection names a membership set.
type Collection string

const (
	Favorites Collection = "favorites"
	ToReview  Collection = "to_review"
)

// ParseCollection validates a collection name.
func ParseCollection(s string) (Collection, error) {
	switch c := Collection(s); c {
	case Favorites, ToReview:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCollection, s)
}

// DefaultChunkSize is used by UpsertMany when chunkSize <= 0.
const DefaultChunkSize = 50

// RecordError describes one record UpsertMany could not store.
type RecordError struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// UpsertResult summarizes a batch upsert.
type UpsertResult struct {
	Inserted int           `json:"inserted"`
	Updated  int           `json:"updated"`
	Skipped  int           `json:"skipped"`
	Errors   []RecordError `json:"errors"`
}

// Store persists questions, attempts and the favorites/to-review sets.
// Implementations are safe for concurrent use.
type Store interface {
	// UpsertMany normalizes and stores each raw record independently.
	// Invalid records are skipped and write failures recorded; neither
	// aborts the batch. The error is reserved for an unusable store or a
	// cancelled context.
	UpsertMany(ctx context.Context, raws []any, chunkSize int) (UpsertResult, error)
	GetQuestion(ctx context.Context, id string) (question.Question, error)
	GetAllQuestions(ctx context.Context) ([]question.Question, error)
	ClearQuestions(ctx context.Context) error

	GetSet(ctx context.Context, c Collection) (map[string]bool, error)
	// Toggle flips membership of id and returns the resulting set.
	Toggle(ctx context.Context, c Collection, id string) (map[string]bool, error)

	AddAttempt(ctx context.Context, a attempt.Attempt) error
	GetAllAttempts(ctx context.Context) ([]attempt.Attempt, error)

	Close() error
}

// SortedIDs returns the members of set in ascending order.
func SortedIDs(set map[string]bool) []string {
	ids := make([]string, 0, len(set))
	for id, ok := range set {
		if ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// upsertFunc merges q into any stored record with the same id and writes it,
// reporting whether a record existed.
type upsertFunc func(ctx context.Context, q question.Question) (existed bool, err error)

// upsertMany drives a batch through the normalizer in sequential chunks.
func upsertMany(ctx context.Context, raws []any, chunkSize int, upsert upsertFunc) (UpsertResult, error) {
	res := UpsertResult{Errors: []RecordError{}}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	for start := 0; start < len(raws); start += chunkSize {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		end := min(start+chunkSize, len(raws))

		for i := start; i < end; i++ {
			q, err := question.Normalize(raws[i])
			if err != nil {
				res.Skipped++
				res.Errors = append(res.Errors, RecordError{Index: i, Reason: reason(err)})
				continue
			}

			existed, err := upsert(ctx, q)
			if err != nil {
				res.Errors = append(res.Errors, RecordError{Index: i, Reason: err.Error()})
				continue
			}
			if existed {
				res.Updated++
			} else {
				res.Inserted++
			}
		}
	}
	return res, nil
}

func reason(err error) string {
	var verr *question.ValidationError
	if errors.As(err, &verr) {
		return verr.Reason
	}
	return err.Error()
}
