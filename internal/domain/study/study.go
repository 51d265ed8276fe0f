package study

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/vetqa/backend/internal/domain/attempt"
	"github.com/vetqa/backend/internal/domain/question"
)

type Mode string

const (
	ModeQuiz      Mode = "quiz"
	ModeBrowse    Mode = "browse"
	ModeReview    Mode = "review"
	ModeErrors    Mode = "errors"
	ModeFavorites Mode = "favorites"
)

// AllAreas disables the area filter.
const AllAreas = ""

var (
	ErrInvalidMode      = errors.New("invalid study mode")
	ErrNoQuestion       = errors.New("no question in pool")
	ErrNoSelection      = errors.New("no option selected")
	ErrUnknownOption    = errors.New("option not in question")
	ErrNotConfirmed     = errors.New("answer must be confirmed before moving on")
	ErrAlreadyConfirmed = errors.New("answer already confirmed")
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeQuiz, ModeBrowse, ModeReview, ModeErrors, ModeFavorites:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Snapshot is the slice of store state a controller selects its pool from.
type Snapshot struct {
	Questions   []question.Question
	Favorites   map[string]bool
	ToReview    map[string]bool
	ErrorTopics map[string]bool // frequent-error topics
}

// Controller walks a client through a shuffled, filtered pool of questions.
// It is not safe for concurrent use.
type Controller struct {
	mode     Mode
	area     string
	snapshot Snapshot
	rng      *rand.Rand

	pool      []question.Question
	cursor    int
	selected  string
	confirmed bool
}

// NewController starts in quiz mode over all areas with an empty pool.
func NewController(rng *rand.Rand) *Controller {
	return &Controller{
		mode: ModeQuiz,
		area: AllAreas,
		rng:  rng,
		pool: []question.Question{},
	}
}

// SetMode switches mode and reshuffles.
func (c *Controller) SetMode(m Mode) error {
	if _, err := ParseMode(string(m)); err != nil {
		return err
	}
	c.mode = m
	c.reshuffle()
	return nil
}

// SetArea changes the area filter and reshuffles.
func (c *Controller) SetArea(area string) {
	c.area = area
	c.reshuffle()
}

// Update replaces the snapshot. The pool is reshuffled only when its
// membership changed, so toggling an unrelated favorite keeps the position.
func (c *Controller) Update(s Snapshot) {
	c.snapshot = s
	next := c.selectPool()
	if sameMembers(c.pool, next) {
		byID := make(map[string]question.Question, len(next))
		for _, q := range next {
			byID[q.ID] = q
		}
		for i, q := range c.pool {
			c.pool[i] = byID[q.ID]
		}
		return
	}
	c.setPool(next)
}

func (c *Controller) reshuffle() {
	c.setPool(c.selectPool())
}

func (c *Controller) setPool(qs []question.Question) {
	c.pool = question.Shuffled(qs, c.rng)
	c.cursor = 0
	c.clearAnswer()
}

func (c *Controller) selectPool() []question.Question {
	out := make([]question.Question, 0, len(c.snapshot.Questions))
	for _, q := range c.snapshot.Questions {
		var include bool
		switch c.mode {
		case ModeFavorites:
			include = c.snapshot.Favorites[q.ID]
		case ModeReview:
			include = c.snapshot.ToReview[q.ID]
		case ModeErrors:
			include = q.HasAnyTopic(c.snapshot.ErrorTopics)
		default:
			include = true
		}
		if include && (c.area == AllAreas || q.HasArea(c.area)) {
			out = append(out, q)
		}
	}
	return out
}

func sameMembers(a, b []question.Question) bool {
	if len(a) != len(b) {
		return false
	}
	ids := make(map[string]bool, len(a))
	for _, q := range a {
		ids[q.ID] = true
	}
	for _, q := range b {
		if !ids[q.ID] {
			return false
		}
	}
	return true
}

// Current returns the question under the cursor; false when the pool is empty.
func (c *Controller) Current() (question.Question, bool) {
	if len(c.pool) == 0 {
		return question.Question{}, false
	}
	return c.pool[c.cursor], true
}

// Select marks label as the chosen option for the current question.
func (c *Controller) Select(label string) error {
	q, ok := c.Current()
	if !ok {
		return ErrNoQuestion
	}
	if c.confirmed {
		return ErrAlreadyConfirmed
	}
	if !q.HasOption(label) {
		return fmt.Errorf("%w: %q", ErrUnknownOption, label)
	}
	c.selected = label
	return nil
}

// Confirm locks in the selected option and returns the attempt to record.
// Each visit to a question can be confirmed once.
func (c *Controller) Confirm() (attempt.Attempt, error) {
	q, ok := c.Current()
	if !ok {
		return attempt.Attempt{}, ErrNoQuestion
	}
	if c.confirmed {
		return attempt.Attempt{}, ErrAlreadyConfirmed
	}
	if c.selected == "" {
		return attempt.Attempt{}, ErrNoSelection
	}
	c.confirmed = true
	return attempt.New(q, c.selected), nil
}

// Next advances the cursor with wraparound. In quiz mode the current
// question must be confirmed first.
func (c *Controller) Next() error {
	if len(c.pool) == 0 {
		return ErrNoQuestion
	}
	if c.mode == ModeQuiz && !c.confirmed {
		return ErrNotConfirmed
	}
	c.cursor = (c.cursor + 1) % len(c.pool)
	c.clearAnswer()
	return nil
}

// Previous moves the cursor back with wraparound.
func (c *Controller) Previous() error {
	if len(c.pool) == 0 {
		return ErrNoQuestion
	}
	c.cursor = (c.cursor - 1 + len(c.pool)) % len(c.pool)
	c.clearAnswer()
	return nil
}

func (c *Controller) clearAnswer() {
	c.selected = ""
	c.confirmed = false
}

// View is the renderable state of a controller.
type View struct {
	Mode      Mode               `json:"mode"`
	Area      string             `json:"area"`
	Index     int                `json:"index"`
	PoolSize  int                `json:"pool_size"`
	Empty     bool               `json:"empty"`
	Question  *question.Question `json:"question,omitempty"`
	Selected  string             `json:"selected,omitempty"`
	Confirmed bool               `json:"confirmed"`
	Correct   *bool              `json:"correct,omitempty"` // set once confirmed
}

// View returns the current renderable state.
func (c *Controller) View() View {
	v := View{
		Mode:      c.mode,
		Area:      c.area,
		Index:     c.cursor,
		PoolSize:  len(c.pool),
		Empty:     len(c.pool) == 0,
		Selected:  c.selected,
		Confirmed: c.confirmed,
	}
	if q, ok := c.Current(); ok {
		v.Question = &q
		if c.confirmed {
			correct := q.IsCorrect(c.selected)
			v.Correct = &correct
		}
	}
	return v
}
