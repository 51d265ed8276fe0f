package question_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/vetqa/backend/internal/domain/question"
)

func validRaw() map[string]any {
	return map[string]any{
		"id":         "q1",
		"year":       2021,
		"exam":       "UFV",
		"area_tags":  []any{"CLÍNICA MÉDICA"},
		"topic_tags": []any{"Leptospirose", "Zoonoses"},
		"difficulty": "D",
		"stem":       "Qual o agente da leptospirose?",
		"options": []any{
			map[string]any{"label": "A", "text": "Leptospira interrogans"},
			map[string]any{"label": "B", "text": "Brucella canis"},
		},
		"answer_key": "A",
		"rationales": map[string]any{"A": "Correta.", "B": "Errada."},
		"status":     "approved",
		"version":    3,
	}
}

func TestNormalize_Valid(t *testing.T) {
	q, err := question.Normalize(validRaw())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.ID != "q1" {
		t.Errorf("expected id %q, got %q", "q1", q.ID)
	}
	if q.Year != 2021 {
		t.Errorf("expected year 2021, got %d", q.Year)
	}
	if q.Difficulty != question.DifficultyHard {
		t.Errorf("expected difficulty %q, got %q", question.DifficultyHard, q.Difficulty)
	}
	if q.Status != question.StatusApproved {
		t.Errorf("expected status approved, got %q", q.Status)
	}
	if q.Version != 3 {
		t.Errorf("expected version 3, got %d", q.Version)
	}
	if q.PrimaryTopic() != "Leptospirose" {
		t.Errorf("expected primary topic Leptospirose, got %q", q.PrimaryTopic())
	}
	if q.Provenance.Checksum != "sha256:q1" {
		t.Errorf("expected default checksum, got %q", q.Provenance.Checksum)
	}
}

func TestNormalize_Defaults(t *testing.T) {
	raw := map[string]any{
		"year":            "not a year",
		"exam":            42,
		"area_tags":       "CLÍNICA",
		"difficulty":      "impossible",
		"cognitive_level": nil,
		"stem":            "X?",
		"options":         []any{map[string]any{"label": "A", "text": "a"}},
		"answer_key":      "A",
	}

	q, err := question.Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.ID == "" {
		t.Error("expected a generated id")
	}
	if q.Year != 0 {
		t.Errorf("expected year 0, got %d", q.Year)
	}
	if q.Exam != question.UnknownExam {
		t.Errorf("expected exam %q, got %q", question.UnknownExam, q.Exam)
	}
	if len(q.AreaTags) != 0 || q.AreaTags == nil {
		t.Errorf("expected empty non-nil area tags, got %#v", q.AreaTags)
	}
	if q.Difficulty != question.DifficultyMedium {
		t.Errorf("expected difficulty Medium, got %q", q.Difficulty)
	}
	if q.CognitiveLevel != question.CognitiveUnderstand {
		t.Errorf("expected cognitive level Understand, got %q", q.CognitiveLevel)
	}
	if q.Status != question.StatusPending {
		t.Errorf("expected status pending, got %q", q.Status)
	}
	if q.Version != 1 {
		t.Errorf("expected version 1, got %d", q.Version)
	}
}

func TestNormalize_GeneratedIDsDiffer(t *testing.T) {
	raw := map[string]any{
		"stem":       "X?",
		"options":    []any{map[string]any{"label": "A", "text": "a"}},
		"answer_key": "A",
	}
	a, _ := question.Normalize(raw)
	b, _ := question.Normalize(raw)
	if a.ID == b.ID {
		t.Errorf("expected different generated ids, got %q twice", a.ID)
	}
}

func TestNormalize_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m map[string]any)
		reason string
	}{
		{"missing stem", func(m map[string]any) { delete(m, "stem") }, question.ReasonMissingStem},
		{"blank stem", func(m map[string]any) { m["stem"] = "   \n" }, question.ReasonMissingStem},
		{"non-string stem", func(m map[string]any) { m["stem"] = 12 }, question.ReasonMissingStem},
		{"missing options", func(m map[string]any) { delete(m, "options") }, question.ReasonMissingOptions},
		{"empty options", func(m map[string]any) { m["options"] = []any{} }, question.ReasonMissingOptions},
		{"options not array", func(m map[string]any) { m["options"] = "A) a" }, question.ReasonMissingOptions},
		{"missing answer key", func(m map[string]any) { delete(m, "answer_key") }, question.ReasonMissingAnswerKey},
		{"empty answer key", func(m map[string]any) { m["answer_key"] = "" }, question.ReasonMissingAnswerKey},
		{"answer key not among options", func(m map[string]any) { m["answer_key"] = "E" }, question.ReasonAnswerKeyUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			tt.mutate(raw)

			_, err := question.Normalize(raw)
			var verr *question.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Reason != tt.reason {
				t.Errorf("expected reason %q, got %q", tt.reason, verr.Reason)
			}
		})
	}
}

func TestNormalize_NotAnObject(t *testing.T) {
	for _, raw := range []any{nil, "text", 42, []any{1, 2}} {
		if _, err := question.Normalize(raw); err == nil {
			t.Errorf("expected error for %#v", raw)
		}
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	raw := validRaw()
	raw["difficulty"] = "bogus"
	if _, err := question.Normalize(raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw["difficulty"] != "bogus" {
		t.Errorf("expected input to be untouched, got %v", raw["difficulty"])
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	first, err := question.Normalize(validRaw())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := question.Normalize(first)
	if err != nil {
		t.Fatalf("unexpected error normalizing a normalized question: %v", err)
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Errorf("expected identical questions\nfirst:  %s\nsecond: %s", a, b)
	}
}

func TestNormalize_ReviewAliases(t *testing.T) {
	raw := validRaw()
	raw["review"] = map[string]any{
		"etiologia": "Bactéria espiroqueta.",
		"diagnostico": map[string]any{
			"principais": []any{"MAT"},
		},
		"terapia": map[string]any{
			"caes": []any{"Doxiciclina"},
		},
		"pegadinhas":  []any{"Não confundir com babesiose"},
		"referencias": []any{map[string]any{"obra": "Greene", "pg": 503}},
	}

	q, err := question.Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Review == nil {
		t.Fatal("expected review to be decoded")
	}
	if q.Review.Etiology != "Bactéria espiroqueta." {
		t.Errorf("unexpected etiology %q", q.Review.Etiology)
	}
	if q.Review.Diagnosis == nil || len(q.Review.Diagnosis.Main) != 1 {
		t.Errorf("expected one main diagnosis, got %#v", q.Review.Diagnosis)
	}
	if q.Review.Therapy == nil || q.Review.Therapy.Dogs[0] != "Doxiciclina" {
		t.Errorf("expected dog therapy, got %#v", q.Review.Therapy)
	}
	if len(q.Review.References) != 1 || q.Review.References[0].Page != "503" {
		t.Errorf("expected reference page 503, got %#v", q.Review.References)
	}
}

func TestNormalize_EmptyReviewIsNil(t *testing.T) {
	raw := validRaw()
	raw["review"] = map[string]any{}
	q, err := question.Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Review != nil {
		t.Errorf("expected nil review, got %#v", q.Review)
	}
}
