package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vetqa/backend/internal/domain/question"
	"github.com/vetqa/backend/internal/reviewer"
	"github.com/vetqa/backend/internal/worker"
)

type ReviewStatus string

const (
	ReviewPending   ReviewStatus = "pending"
	ReviewDone      ReviewStatus = "done"
	ReviewFailed    ReviewStatus = "failed"
	ReviewCancelled ReviewStatus = "cancelled"
)

// ReviewResult is the cached state of one question's deep review.
type ReviewResult struct {
	QuestionID string       `json:"question_id"`
	Status     ReviewStatus `json:"status"`
	Text       string       `json:"text,omitempty"`
	Error      string       `json:"error,omitempty"`
}

type reviewEntry struct {
	result ReviewResult
	cancel context.CancelFunc
}

// ReviewService generates deep reviews on a worker pool and caches them by
// question id. A pending review can be cancelled; the reviewer sees the
// cancellation through its context.
type ReviewService struct {
	reviewer reviewer.Reviewer
	pool     *worker.Pool[ReviewResult]
	logger   *slog.Logger

	mu      sync.Mutex
	entries map[string]*reviewEntry

	done chan struct{}
}

func NewReviewService(r reviewer.Reviewer, workers int, logger *slog.Logger) *ReviewService {
	s := &ReviewService{
		reviewer: r,
		pool:     worker.NewPool[ReviewResult](workers, 64),
		logger:   logger,
		entries:  make(map[string]*reviewEntry),
		done:     make(chan struct{}),
	}
	go s.collect()
	return s
}

// Review generates a review synchronously, bounded by ctx, and caches a success.
func (s *ReviewService) Review(ctx context.Context, q question.Question) (string, error) {
	text, err := s.reviewer.Review(ctx, q)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	if e, ok := s.entries[q.ID]; !ok || e.result.Status != ReviewPending {
		s.entries[q.ID] = &reviewEntry{result: ReviewResult{QuestionID: q.ID, Status: ReviewDone, Text: text}}
	}
	s.mu.Unlock()
	return text, nil
}

// Request queues a background review for q unless one is pending or done.
// It returns the current entry.
func (s *ReviewService) Request(ctx context.Context, q question.Question) (ReviewResult, error) {
	s.mu.Lock()
	if e, ok := s.entries[q.ID]; ok && (e.result.Status == ReviewPending || e.result.Status == ReviewDone) {
		res := e.result
		s.mu.Unlock()
		return res, nil
	}
	entry := &reviewEntry{result: ReviewResult{QuestionID: q.ID, Status: ReviewPending}}
	s.entries[q.ID] = entry
	res := entry.result
	s.mu.Unlock()

	err := s.pool.Submit(ctx, q.ID, func(poolCtx context.Context) ReviewResult {
		return s.run(poolCtx, entry, q)
	})
	if err != nil {
		s.mu.Lock()
		if s.entries[q.ID] == entry {
			delete(s.entries, q.ID)
		}
		s.mu.Unlock()
		return ReviewResult{}, err
	}
	return res, nil
}

func (s *ReviewService) run(poolCtx context.Context, entry *reviewEntry, q question.Question) ReviewResult {
	ctx, cancel := context.WithCancel(poolCtx)
	defer cancel()

	s.mu.Lock()
	if entry.result.Status == ReviewCancelled {
		res := entry.result
		s.mu.Unlock()
		return res
	}
	entry.cancel = cancel
	s.mu.Unlock()

	var res ReviewResult
	text, err := s.reviewer.Review(ctx, q)
	switch {
	case err == nil:
		res = ReviewResult{QuestionID: q.ID, Status: ReviewDone, Text: text}
	case ctx.Err() != nil:
		res = ReviewResult{QuestionID: q.ID, Status: ReviewCancelled, Error: err.Error()}
	default:
		s.logger.Error("review generation failed",
			"question_id", q.ID,
			"error", err,
		)
		res = ReviewResult{QuestionID: q.ID, Status: ReviewFailed, Error: err.Error()}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	entry.cancel = nil
	if entry.result.Status == ReviewPending {
		entry.result = res
	}
	return entry.result
}

// collect drains finished jobs until the pool closes.
func (s *ReviewService) collect() {
	defer close(s.done)
	for r := range s.pool.Results() {
		s.logger.Debug("review finished",
			"question_id", r.JobID,
			"status", r.Output.Status,
		)
	}
}

// Get returns the cached entry for a question id.
func (s *ReviewService) Get(questionID string) (ReviewResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[questionID]
	if !ok {
		return ReviewResult{}, false
	}
	return e.result, true
}

// Cancel aborts a pending review. It reports whether one was pending.
func (s *ReviewService) Cancel(questionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[questionID]
	if !ok || e.result.Status != ReviewPending {
		return false
	}
	e.result.Status = ReviewCancelled
	if e.cancel != nil {
		e.cancel()
	}
	return true
}

// Close cancels running reviews and waits for the workers to stop.
func (s *ReviewService) Close() {
	s.pool.Close()
	<-s.done
}
