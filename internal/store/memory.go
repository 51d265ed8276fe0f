package store

import (
	"context"
	"sync"
	"time"

	"github.com/vetqa/backend/internal/domain/attempt"
	"github.com/vetqa/backend/internal/domain/question"
)

// MemoryStore keeps everything in process memory. It backs tests and is the
// fallback when no persistent storage is available.
type MemoryStore struct {
	mu        sync.RWMutex
	questions map[string]question.Question
	order     []string // insertion order of question ids
	sets      map[Collection]map[string]bool
	attempts  []attempt.Attempt
	seq       int64
	closed    bool
}

// Compile-time check: *MemoryStore satisfies the Store interface.
var _ Store = (*MemoryStore)(nil)

func NewMemory() *MemoryStore {
	return &MemoryStore{
		questions: make(map[string]question.Question),
		sets: map[Collection]map[string]bool{
			Favorites: {},
			ToReview:  {},
		},
	}
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MemoryStore) checkOpen() error {
	if m.closed {
		return ErrStorageUnavailable
	}
	return nil
}

// ============================================================================
// Questions
// ============================================================================

func (m *MemoryStore) UpsertMany(ctx context.Context, raws []any, chunkSize int) (UpsertResult, error) {
	m.mu.RLock()
	err := m.checkOpen()
	m.mu.RUnlock()
	if err != nil {
		return UpsertResult{Errors: []RecordError{}}, err
	}
	return upsertMany(ctx, raws, chunkSize, m.upsertOne)
}

func (m *MemoryStore) upsertOne(_ context.Context, q question.Question) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkOpen(); err != nil {
		return false, err
	}

	existing, ok := m.questions[q.ID]
	if ok {
		q = question.Merge(existing, q)
	} else {
		m.order = append(m.order, q.ID)
	}
	m.questions[q.ID] = q
	return ok, nil
}

func (m *MemoryStore) GetQuestion(_ context.Context, id string) (question.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkOpen(); err != nil {
		return question.Question{}, err
	}
	q, ok := m.questions[id]
	if !ok {
		return question.Question{}, ErrNotFound
	}
	return q, nil
}

func (m *MemoryStore) GetAllQuestions(_ context.Context) ([]question.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkOpen(); err != nil {
		return nil, err
	}
	out := make([]question.Question, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.questions[id])
	}
	return out, nil
}

func (m *MemoryStore) ClearQuestions(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkOpen(); err != nil {
		return err
	}
	m.questions = make(map[string]question.Question)
	m.order = nil
	return nil
}

// ============================================================================
// Sets
// ============================================================================

func (m *MemoryStore) GetSet(_ context.Context, c Collection) (map[string]bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkOpen(); err != nil {
		return nil, err
	}
	set, ok := m.sets[c]
	if !ok {
		return nil, ErrUnknownCollection
	}
	return copySet(set), nil
}

func (m *MemoryStore) Toggle(_ context.Context, c Collection, id string) (map[string]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkOpen(); err != nil {
		return nil, err
	}
	set, ok := m.sets[c]
	if !ok {
		return nil, ErrUnknownCollection
	}
	if set[id] {
		delete(set, id)
	} else {
		set[id] = true
	}
	return copySet(set), nil
}

func copySet(set map[string]bool) map[string]bool {
	out := make(map[string]bool, len(set))
	for k := range set {
		out[k] = true
	}
	return out
}

// ============================================================================
// Attempts
// ============================================================================

func (m *MemoryStore) AddAttempt(_ context.Context, a attempt.Attempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkOpen(); err != nil {
		return err
	}
	m.seq++
	a.Seq = m.seq
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	m.attempts = append(m.attempts, a)
	return nil
}

func (m *MemoryStore) GetAllAttempts(_ context.Context) ([]attempt.Attempt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkOpen(); err != nil {
		return nil, err
	}
	out := make([]attempt.Attempt, len(m.attempts))
	copy(out, m.attempts)
	return out, nil
}
