package stats

import (
	"sort"

	"github.com/vetqa/backend/internal/domain/attempt"
)

// FrequentErrorLimit caps the frequent-errors list.
const FrequentErrorLimit = 10

// Tally counts answered and correctly answered attempts.
type Tally struct {
	Total   int `json:"total"`
	Correct int `json:"correct"`
}

// Accuracy returns Correct/Total, or 0 when nothing was answered.
func (t Tally) Accuracy() float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Total)
}

// TopicTally is a Tally for one topic plus the area it was first seen under.
type TopicTally struct {
	Total   int    `json:"total"`
	Correct int    `json:"correct"`
	Area    string `json:"area"`
}

// Stats aggregates performance over an attempt log.
type Stats struct {
	Total   int                   `json:"total"`
	Correct int                   `json:"correct"`
	ByArea  map[string]Tally      `json:"by_area"`
	ByTopic map[string]TopicTally `json:"by_topic"`
}

// Aggregate rolls attempts up per area and per topic.
//
// Areas are not exclusive: an attempt counts once towards every area it
// carries. Topics are keyed by the attempt's primary topic only, and a
// topic's area is fixed by the first attempt seen for it.
func Aggregate(attempts []attempt.Attempt) Stats {
	s := Stats{
		ByArea:  make(map[string]Tally),
		ByTopic: make(map[string]TopicTally),
	}

	for _, a := range attempts {
		s.Total++
		if a.Correct {
			s.Correct++
		}

		for _, area := range a.Areas {
			t := s.ByArea[area]
			t.Total++
			if a.Correct {
				t.Correct++
			}
			s.ByArea[area] = t
		}

		if a.Topic == "" {
			continue
		}
		t, seen := s.ByTopic[a.Topic]
		if !seen && len(a.Areas) > 0 {
			t.Area = a.Areas[0]
		}
		t.Total++
		if a.Correct {
			t.Correct++
		}
		s.ByTopic[a.Topic] = t
	}

	return s
}

// Accuracy returns the overall accuracy.
func (s Stats) Accuracy() float64 {
	return Tally{Total: s.Total, Correct: s.Correct}.Accuracy()
}

// TopicError is one entry of the frequent-errors ranking.
type TopicError struct {
	Topic    string  `json:"topic"`
	Area     string  `json:"area"`
	Total    int     `json:"total"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

// FrequentErrors ranks topics answered more than once by ascending accuracy
// and returns at most FrequentErrorLimit of them. A single attempt is not
// enough evidence, so those topics never appear.
func FrequentErrors(s Stats) []TopicError {
	out := make([]TopicError, 0, len(s.ByTopic))
	for topic, t := range s.ByTopic {
		if t.Total <= 1 {
			continue
		}
		out = append(out, TopicError{
			Topic:    topic,
			Area:     t.Area,
			Total:    t.Total,
			Correct:  t.Correct,
			Accuracy: Tally{Total: t.Total, Correct: t.Correct}.Accuracy(),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Accuracy != out[j].Accuracy {
			return out[i].Accuracy < out[j].Accuracy
		}
		return out[i].Topic < out[j].Topic
	})

	if len(out) > FrequentErrorLimit {
		out = out[:FrequentErrorLimit]
	}
	return out
}

// FrequentErrorTopics returns the frequent-error topics as a set.
func FrequentErrorTopics(s Stats) map[string]bool {
	errs := FrequentErrors(s)
	topics := make(map[string]bool, len(errs))
	for _, e := range errs {
		topics[e.Topic] = true
	}
	return topics
}
