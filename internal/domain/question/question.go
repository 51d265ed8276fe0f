package question

import "math/rand/v2"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

type CognitiveLevel string

const (
	CognitiveRecall     CognitiveLevel = "Recall"
	CognitiveUnderstand CognitiveLevel = "Understand"
	CognitiveApply      CognitiveLevel = "Apply"
	CognitiveAnalyze    CognitiveLevel = "Analyze"
)

type Status string

const (
	StatusApproved Status = "approved"
	StatusPending  Status = "pending"
	StatusRejected Status = "rejected"
)

// UnknownExam is stored when a record carries no exam label.
const UnknownExam = "—"

// AnswerTypeSingle is the only answer type the bank supports.
const AnswerTypeSingle = "single"

// Question is a single multiple-choice exam item.
// Every stored Question has a non-empty Stem and an AnswerKey that matches
// the label of one of its Options.
type Question struct {
	ID                 string              `json:"id"`
	Year               int                 `json:"year"`
	Exam               string              `json:"exam"`
	SourceFile         *string             `json:"source_file,omitempty"`
	SourcePages        SourcePages         `json:"source_pages"`
	AreaTags           []string            `json:"area_tags"`
	TopicTags          []string            `json:"topic_tags"`
	ClassificationMeta *ClassificationMeta `json:"classification_meta,omitempty"`
	Difficulty         Difficulty          `json:"difficulty"`
	CognitiveLevel     CognitiveLevel      `json:"cognitive_level"`
	Stem               string              `json:"stem"`
	Media              []Media             `json:"media,omitempty"`
	Options            []Option            `json:"options"`
	AnswerType         string              `json:"answer_type"`
	AnswerKey          string              `json:"answer_key"`
	Rationales         map[string]string   `json:"rationales"`
	Review             *Review             `json:"review,omitempty"`
	Provenance         Provenance          `json:"provenance"`
	Status             Status              `json:"status"`
	Version            int                 `json:"version"`
	Issues             []string            `json:"issues,omitempty"`
}

type Option struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

type SourcePages struct {
	Start *int `json:"start"`
	End   *int `json:"end"`
}

type Media struct {
	Type string  `json:"type"`
	URI  *string `json:"uri"`
	Alt  string  `json:"alt"`
}

type Provenance struct {
	ExtractedAt *string `json:"extracted_at"`
	Checksum    string  `json:"checksum"`
}

type ClassificationMeta struct {
	AreaConfidence  map[string]float64 `json:"area_confidence,omitempty"`
	TopicConfidence map[string]float64 `json:"topic_confidence,omitempty"`
	EvidenceSpans   []string           `json:"evidence_spans,omitempty"`
	Ambiguities     []string           `json:"ambiguities,omitempty"`
}

// Review is the optional structured deep dive attached to a question.
type Review struct {
	Etiology     string      `json:"etiology,omitempty"`
	Epidemiology string      `json:"epidemiology,omitempty"`
	Physiology   string      `json:"physiology,omitempty"`
	Anatomy      string      `json:"anatomy,omitempty"`
	Pathogenesis string      `json:"pathogenesis,omitempty"`
	Diagnosis    *Diagnosis  `json:"diagnosis,omitempty"`
	Symptoms     *Symptoms   `json:"symptoms,omitempty"`
	Therapy      *Therapy    `json:"therapy,omitempty"`
	Prevention   []string    `json:"prevention,omitempty"`
	Pitfalls     []string    `json:"pitfalls,omitempty"`
	HighYield    []string    `json:"high_yield,omitempty"`
	References   []Reference `json:"references,omitempty"`
}

type Diagnosis struct {
	Main          []string            `json:"main,omitempty"`
	SensSpec      map[string]SensSpec `json:"sens_spec,omitempty"`
	Complementary map[string][]string `json:"complementary,omitempty"`
}

type SensSpec struct {
	Sensitivity float64 `json:"sens"`
	Specificity float64 `json:"spec"`
	Comment     string  `json:"comment,omitempty"`
}

type Symptoms struct {
	Acute   []string `json:"acute,omitempty"`
	Chronic []string `json:"chronic,omitempty"`
}

type Therapy struct {
	Dogs []string `json:"dogs,omitempty"`
	Cats []string `json:"cats,omitempty"`
}

type Reference struct {
	Work    string `json:"work"`
	Chapter string `json:"chapter,omitempty"`
	Page    string `json:"page,omitempty"`
}

// IsCorrect reports whether label is the question's answer key.
func (q Question) IsCorrect(label string) bool {
	return label != "" && label == q.AnswerKey
}

// PrimaryTopic returns the first topic tag, or "" when the question has none.
func (q Question) PrimaryTopic() string {
	if len(q.TopicTags) == 0 {
		return ""
	}
	return q.TopicTags[0]
}

// HasOption reports whether one of the options carries label.
func (q Question) HasOption(label string) bool {
	for _, o := range q.Options {
		if o.Label == label {
			return true
		}
	}
	return false
}

// HasArea reports whether area is among the question's area tags.
func (q Question) HasArea(area string) bool {
	for _, a := range q.AreaTags {
		if a == area {
			return true
		}
	}
	return false
}

// HasAnyArea reports whether the question carries at least one of areas.
// An empty areas list matches every question.
func (q Question) HasAnyArea(areas []string) bool {
	if len(areas) == 0 {
		return true
	}
	for _, a := range areas {
		if q.HasArea(a) {
			return true
		}
	}
	return false
}

// HasAnyTopic reports whether any topic tag is present in topics.
func (q Question) HasAnyTopic(topics map[string]bool) bool {
	for _, t := range q.TopicTags {
		if topics[t] {
			return true
		}
	}
	return false
}

// Shuffled returns a uniformly shuffled copy of qs (Fisher-Yates).
// A nil r uses the package-level source.
func Shuffled(qs []Question, r *rand.Rand) []Question {
	out := make([]Question, len(qs))
	copy(out, qs)
	swap := func(i, j int) { out[i], out[j] = out[j], out[i] }
	if r == nil {
		rand.Shuffle(len(out), swap)
	} else {
		r.Shuffle(len(out), swap)
	}
	return out
}
