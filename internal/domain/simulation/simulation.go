package simulation

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/vetqa/backend/internal/domain/attempt"
	"github.com/vetqa/backend/internal/domain/question"
)

type Status string

const (
	StatusConfig   Status = "config"
	StatusRunning  Status = "running"
	StatusFinished Status = "finished"
)

var (
	// ErrInvalidTransition is returned for a command the current status does not accept.
	ErrInvalidTransition = errors.New("invalid simulation transition")
	ErrInvalidConfig     = errors.New("invalid simulation config")
)

// State is a mock-exam session. It is never persisted.
type State struct {
	Status       Status              `json:"status"`
	Questions    []question.Question `json:"questions"`
	Answers      map[string]string   `json:"answers"` // question id → label
	CurrentIndex int                 `json:"current_index"`
	Config       Config              `json:"config"`
}

// Initial returns the state of a fresh engine.
func Initial() State {
	return State{
		Status:    StatusConfig,
		Questions: []question.Question{},
		Answers:   map[string]string{},
		Config:    DefaultConfig(),
	}
}

// Command is an input to Reduce.
type Command interface {
	command()
}

// Configure sets the question count and area filter. Only valid in config.
type Configure struct {
	N     int
	Areas []string
}

// Start samples the session from the full question set.
type Start struct {
	Questions []question.Question
}

// Answer records a label for the current question and advances.
type Answer struct {
	Label string
}

// Finish ends a running session early. Unanswered questions count as wrong.
type Finish struct{}

// Reset discards the session and restores defaults.
type Reset struct{}

func (Configure) command() {}
func (Start) command()     {}
func (Answer) command()    {}
func (Finish) command()    {}
func (Reset) command()     {}

// Reduce applies cmd to s and returns the next state.
//
// The attempts slice is non-empty only on the transition into finished, and
// then holds exactly one attempt per session question. On error the original
// state is returned unchanged. Reduce never modifies s; r seeds the shuffle
// on Start (nil uses the package-level source).
func Reduce(s State, cmd Command, r *rand.Rand) (State, []attempt.Attempt, error) {
	switch c := cmd.(type) {
	case Configure:
		if s.Status != StatusConfig {
			return s, nil, fmt.Errorf("%w: configure while %s", ErrInvalidTransition, s.Status)
		}
		if c.N <= 0 {
			return s, nil, fmt.Errorf("%w: question count must be positive, got %d", ErrInvalidConfig, c.N)
		}
		next := s
		next.Config = Config{N: c.N, Areas: append([]string{}, c.Areas...)}
		return next, nil, nil

	case Start:
		if s.Status != StatusConfig {
			return s, nil, fmt.Errorf("%w: start while %s", ErrInvalidTransition, s.Status)
		}
		candidates := make([]question.Question, 0, len(c.Questions))
		for _, q := range c.Questions {
			if q.HasAnyArea(s.Config.Areas) {
				candidates = append(candidates, q)
			}
		}
		picked := question.Shuffled(candidates, r)
		if len(picked) > s.Config.N {
			picked = picked[:s.Config.N]
		}
		return State{
			Status:    StatusRunning,
			Questions: picked,
			Answers:   map[string]string{},
			Config:    s.Config,
		}, nil, nil

	case Answer:
		if s.Status != StatusRunning || len(s.Questions) == 0 {
			return s, nil, fmt.Errorf("%w: answer while %s", ErrInvalidTransition, s.Status)
		}
		next := s
		next.Answers = make(map[string]string, len(s.Answers)+1)
		for k, v := range s.Answers {
			next.Answers[k] = v
		}
		next.Answers[s.Questions[s.CurrentIndex].ID] = c.Label

		if s.CurrentIndex == len(s.Questions)-1 {
			next.Status = StatusFinished
			return next, next.attempts(), nil
		}
		next.CurrentIndex++
		return next, nil, nil

	case Finish:
		if s.Status != StatusRunning {
			return s, nil, fmt.Errorf("%w: finish while %s", ErrInvalidTransition, s.Status)
		}
		next := s
		next.Status = StatusFinished
		return next, next.attempts(), nil

	case Reset:
		return Initial(), nil, nil
	}

	return s, nil, fmt.Errorf("%w: unknown command %T", ErrInvalidTransition, cmd)
}

func (s State) attempts() []attempt.Attempt {
	out := make([]attempt.Attempt, 0, len(s.Questions))
	for _, q := range s.Questions {
		out = append(out, attempt.New(q, s.Answers[q.ID]))
	}
	return out
}

// Current returns the question being answered, if any.
func (s State) Current() (question.Question, bool) {
	if s.Status != StatusRunning || s.CurrentIndex >= len(s.Questions) {
		return question.Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// Empty reports whether a started session has no questions.
func (s State) Empty() bool {
	return s.Status != StatusConfig && len(s.Questions) == 0
}

// Result is the score of a session.
type Result struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

// Result scores the recorded answers against the answer keys.
func (s State) Result() Result {
	res := Result{Total: len(s.Questions)}
	for _, q := range s.Questions {
		if q.IsCorrect(s.Answers[q.ID]) {
			res.Correct++
		}
	}
	if res.Total > 0 {
		res.Percent = int(math.Round(float64(res.Correct) * 100 / float64(res.Total)))
	}
	return res
}
