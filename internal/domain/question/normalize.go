package question

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/vetqa/backend/internal/id"
)

// Rejection reasons reported by Normalize.
const (
	ReasonNotObject        = "not-an-object"
	ReasonMissingStem      = "missing-stem"
	ReasonMissingOptions   = "missing-options"
	ReasonMissingAnswerKey = "missing-answer-key"
	ReasonAnswerKeyUnknown = "answer-key-not-in-options"
)

// ValidationError is returned by Normalize when a record cannot become a Question.
// Callers skip the record; it is never fatal.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid question: " + e.Reason
}

var difficultyAliases = map[string]Difficulty{
	"easy":   DifficultyEasy,
	"f":      DifficultyEasy,
	"medium": DifficultyMedium,
	"m":      DifficultyMedium,
	"hard":   DifficultyHard,
	"d":      DifficultyHard,
}

var cognitiveAliases = map[string]CognitiveLevel{
	"recall":     CognitiveRecall,
	"lembrar":    CognitiveRecall,
	"understand": CognitiveUnderstand,
	"entender":   CognitiveUnderstand,
	"apply":      CognitiveApply,
	"aplicação":  CognitiveApply,
	"aplicacao":  CognitiveApply,
	"analyze":    CognitiveAnalyze,
	"análise":    CognitiveAnalyze,
	"analise":    CognitiveAnalyze,
}

// reviewKeys maps the keys used by the bundled banks onto Review's JSON keys.
var reviewKeys = map[string]string{
	"etiologia":              "etiology",
	"epidemiologia":          "epidemiology",
	"fisiologia":             "physiology",
	"anatomia":               "anatomy",
	"patogenia":              "pathogenesis",
	"diagnostico":            "diagnosis",
	"principais":             "main",
	"sens_espec":             "sens_spec",
	"espec":                  "spec",
	"comentario":             "comment",
	"achados_complementares": "complementary",
	"sintomatologia":         "symptoms",
	"aguda":                  "acute",
	"cronica":                "chronic",
	"terapia":                "therapy",
	"caes":                   "dogs",
	"gatos":                  "cats",
	"prevencao":              "prevention",
	"pegadinhas":             "pitfalls",
	"referencias":            "references",
	"obra":                   "work",
	"cap":                    "chapter",
	"pg":                     "page",
}

// Normalize validates and coerces an arbitrary decoded JSON value into a Question.
//
// Optional fields are defaulted; a record is rejected with a *ValidationError when
// its stem is blank, it has no options, it has no answer key, or no option carries
// the answer key's label. Normalize never panics and does not modify raw.
func Normalize(raw any) (Question, error) {
	m, ok := asObject(raw)
	if !ok {
		return Question{}, &ValidationError{Reason: ReasonNotObject}
	}

	q := Question{
		ID:         stringField(m, "id"),
		Exam:       UnknownExam,
		AreaTags:   stringSlice(m["area_tags"]),
		TopicTags:  stringSlice(m["topic_tags"]),
		Stem:       stringField(m, "stem"),
		Options:    options(m["options"]),
		AnswerType: AnswerTypeSingle,
		AnswerKey:  stringField(m, "answer_key"),
		Rationales: rationales(m["rationales"]),
		Status:     StatusPending,
		Version:    1,
	}

	q.ID = strings.TrimSpace(q.ID)
	if q.ID == "" {
		q.ID = id.NewQuestionID()
	}
	if year, ok := toInt(m["year"]); ok {
		q.Year = year
	}
	if exam, ok := m["exam"].(string); ok {
		q.Exam = exam
	}
	if v, ok := m["difficulty"].(string); ok {
		q.Difficulty = difficultyAliases[strings.ToLower(strings.TrimSpace(v))]
	}
	if q.Difficulty == "" {
		q.Difficulty = DifficultyMedium
	}
	if v, ok := m["cognitive_level"].(string); ok {
		q.CognitiveLevel = cognitiveAliases[strings.ToLower(strings.TrimSpace(v))]
	}
	if q.CognitiveLevel == "" {
		q.CognitiveLevel = CognitiveUnderstand
	}
	if v, ok := m["status"].(string); ok {
		switch s := Status(v); s {
		case StatusApproved, StatusPending, StatusRejected:
			q.Status = s
		}
	}
	if v, ok := toInt(m["version"]); ok && v >= 1 {
		q.Version = v
	}
	if v, ok := m["source_file"].(string); ok {
		q.SourceFile = &v
	}
	if pages, ok := m["source_pages"].(map[string]any); ok {
		q.SourcePages.Start = intPtr(pages["start"])
		q.SourcePages.End = intPtr(pages["end"])
	}

	var meta ClassificationMeta
	if decodeInto(m["classification_meta"], &meta) {
		q.ClassificationMeta = &meta
	}
	var media []Media
	if decodeInto(m["media"], &media) && len(media) > 0 {
		q.Media = media
	}
	if issues := stringSlice(m["issues"]); len(issues) > 0 {
		q.Issues = issues
	}
	q.Review = review(m["review"])

	var prov Provenance
	decodeInto(m["provenance"], &prov)
	if prov.Checksum == "" {
		prov.Checksum = "sha256:" + q.ID
	}
	q.Provenance = prov

	if strings.TrimSpace(q.Stem) == "" {
		return Question{}, &ValidationError{Reason: ReasonMissingStem}
	}
	if len(q.Options) == 0 {
		return Question{}, &ValidationError{Reason: ReasonMissingOptions}
	}
	if q.AnswerKey == "" {
		return Question{}, &ValidationError{Reason: ReasonMissingAnswerKey}
	}
	if !q.HasOption(q.AnswerKey) {
		return Question{}, &ValidationError{Reason: ReasonAnswerKeyUnknown}
	}
	return q, nil
}

// asObject turns raw into a generic JSON object. Everything goes through a JSON
// round trip so nested Go values (typed slices, an already-normalized Question)
// arrive in the same shape as decoded JSON.
func asObject(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case nil:
		return nil, false
	case json.RawMessage:
		return decodeObject(v)
	case []byte:
		return decodeObject(v)
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, false
	}
	return decodeObject(b)
}

func decodeObject(b []byte) (map[string]any, bool) {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil || m == nil {
		return nil, false
	}
	return m, true
}

// decodeInto copies a generic JSON value into a typed target.
// It reports false, leaving target untouched, when v is absent or has the wrong shape.
func decodeInto(v any, target any) bool {
	if v == nil {
		return false
	}
	b, err := json.Marshal(v)
	if err != nil {
		return false
	}
	return json.Unmarshal(b, target) == nil
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func stringSlice(v any) []string {
	out := []string{}
	arr, ok := v.([]any)
	if !ok {
		if typed, ok := v.([]string); ok {
			return append(out, typed...)
		}
		return out
	}
	for _, e := range arr {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func options(v any) []Option {
	out := []Option{}
	arr, ok := v.([]any)
	if !ok {
		return out
	}
	for _, e := range arr {
		o, ok := e.(map[string]any)
		if !ok {
			continue
		}
		label, _ := o["label"].(string)
		if label == "" {
			continue
		}
		text, _ := o["text"].(string)
		out = append(out, Option{Label: label, Text: text})
	}
	return out
}

func rationales(v any) map[string]string {
	out := map[string]string{}
	m, ok := v.(map[string]any)
	if !ok {
		return out
	}
	for k, e := range m {
		if s, ok := e.(string); ok {
			out[k] = s
		}
	}
	return out
}

func review(v any) *Review {
	m, ok := v.(map[string]any)
	if !ok || len(m) == 0 {
		return nil
	}
	var r Review
	if !decodeInto(renameKeys(m), &r) {
		return nil
	}
	if r.empty() {
		return nil
	}
	return &r
}

func (r Review) empty() bool {
	return r.Etiology == "" && r.Epidemiology == "" && r.Physiology == "" &&
		r.Anatomy == "" && r.Pathogenesis == "" &&
		r.Diagnosis == nil && r.Symptoms == nil && r.Therapy == nil &&
		len(r.Prevention) == 0 && len(r.Pitfalls) == 0 &&
		len(r.HighYield) == 0 && len(r.References) == 0
}

// renameKeys rewrites object keys through reviewKeys at every depth.
// Page numbers are stringified so references decode into Reference.
func renameKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			if alias, ok := reviewKeys[k]; ok {
				k = alias
			}
			if k == "page" {
				if f, ok := e.(float64); ok {
					e = strconv.FormatFloat(f, 'f', -1, 64)
				}
			}
			out[k] = renameKeys(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = renameKeys(e)
		}
		return out
	default:
		return v
	}
}

// toInt accepts JSON numbers and numeric strings. Fractions are truncated.
func toInt(v any) (int, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int:
		return t, true
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

func intPtr(v any) *int {
	n, ok := toInt(v)
	if !ok {
		return nil
	}
	return &n
}
