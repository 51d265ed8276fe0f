package ingest

import (
	"context"
	"time"

	"github.com/vetqa/backend/internal/domain/attempt"
	"github.com/vetqa/backend/internal/domain/question"
	"github.com/vetqa/backend/internal/store"
)

const ExportVersion = "1.0"

// Export is a full dump of the store. Items uses the bank layout, so an
// export file can be imported again as a bank.
type Export struct {
	Version    string              `json:"version"`
	ExportedAt string              `json:"exported_at"`
	Items      []question.Question `json:"items"`
	Favorites  []string            `json:"favorites"`
	ToReview   []string            `json:"to_review"`
	Attempts   []attempt.Attempt   `json:"attempts"`
}

func BuildExport(ctx context.Context, s store.Store, now time.Time) (Export, error) {
	questions, err := s.GetAllQuestions(ctx)
	if err != nil {
		return Export{}, err
	}
	favorites, err := s.GetSet(ctx, store.Favorites)
	if err != nil {
		return Export{}, err
	}
	toReview, err := s.GetSet(ctx, store.ToReview)
	if err != nil {
		return Export{}, err
	}
	attempts, err := s.GetAllAttempts(ctx)
	if err != nil {
		return Export{}, err
	}

	return Export{
		Version:    ExportVersion,
		ExportedAt: now.UTC().Format(time.RFC3339),
		Items:      questions,
		Favorites:  store.SortedIDs(favorites),
		ToReview:   store.SortedIDs(toReview),
		Attempts:   attempts,
	}, nil
}
