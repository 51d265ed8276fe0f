package simulation

import (
	"math/rand/v2"
	"sync"

	"github.com/vetqa/backend/internal/domain/attempt"
)

// Engine holds one simulation and serializes commands against it.
type Engine struct {
	mu    sync.Mutex
	state State
	rng   *rand.Rand
}

// NewEngine creates an engine in the config state.
// rng may be nil to use the package-level random source.
func NewEngine(rng *rand.Rand) *Engine {
	return &Engine{
		state: Initial(),
		rng:   rng,
	}
}

// Dispatch applies cmd and returns the attempts to record, if any.
func (e *Engine) Dispatch(cmd Command) ([]attempt.Attempt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, attempts, err := Reduce(e.state, cmd, e.rng)
	if err != nil {
		return nil, err
	}
	e.state = next
	return attempts, nil
}

// State returns a snapshot of the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.state
	s.Answers = make(map[string]string, len(e.state.Answers))
	for k, v := range e.state.Answers {
		s.Answers[k] = v
	}
	return s
}
