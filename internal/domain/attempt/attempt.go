package attempt

import (
	"time"

	"github.com/vetqa/backend/internal/domain/question"
)

// Attempt is one recorded answer. Attempts are append-only.
type Attempt struct {
	Seq        int64     `json:"seq,omitempty"` // assigned by the store
	QuestionID string    `json:"question_id"`
	Correct    bool      `json:"correct"`
	Areas      []string  `json:"areas"`
	Topic      string    `json:"topic"`
	CreatedAt  time.Time `json:"created_at"`
}

// New builds the attempt for answering q with label.
// An empty label (unanswered) is always incorrect.
func New(q question.Question, label string) Attempt {
	areas := make([]string, len(q.AreaTags))
	copy(areas, q.AreaTags)
	return Attempt{
		QuestionID: q.ID,
		Correct:    q.IsCorrect(label),
		Areas:      areas,
		Topic:      q.PrimaryTopic(),
	}
}
