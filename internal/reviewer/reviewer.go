package reviewer

import (
	"context"
	"errors"
	"fmt"

	"github.com/vetqa/backend/internal/domain/question"
)

// Reviewer produces a long-form markdown deep review of a question.
// Implementations may call an LLM or compose text from the question's own
// metadata. They must honour ctx cancellation.
type Reviewer interface {
	Review(ctx context.Context, q question.Question) (string, error)
}

// ReviewError is returned when a review could not be produced so callers can
// tell "provider answered badly" apart from "provider was unreachable".
type ReviewError struct {
	Provider string
	Reason   string
	Wrapped  error
}

func (e *ReviewError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("review failed (%s): %s: %v", e.Provider, e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("review failed (%s): %s", e.Provider, e.Reason)
}

func (e *ReviewError) Unwrap() error {
	return e.Wrapped
}

// Chain tries each reviewer in order and returns the first success.
// Cancellation stops the chain immediately.
type Chain []Reviewer

// Compile-time check: Chain satisfies the Reviewer interface.
var _ Reviewer = Chain(nil)

func (c Chain) Review(ctx context.Context, q question.Question) (string, error) {
	var errs []error
	for _, r := range c {
		text, err := r.Review(ctx, q)
		if err == nil {
			return text, nil
		}
		if ctx.Err() != nil {
			return "", &ReviewError{Provider: "chain", Reason: "cancelled", Wrapped: ctx.Err()}
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return "", &ReviewError{Provider: "chain", Reason: "no reviewer configured"}
	}
	return "", &ReviewError{Provider: "chain", Reason: "all reviewers failed", Wrapped: errors.Join(errs...)}
}
