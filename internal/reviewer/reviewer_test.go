package reviewer_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vetqa/backend/internal/domain/question"
	"github.com/vetqa/backend/internal/reviewer"
)

func sampleQuestion() question.Question {
	return question.Question{
		ID:        "q1",
		Year:      2022,
		Exam:      "USP",
		AreaTags:  []string{"CLÍNICA MÉDICA"},
		TopicTags: []string{"Cinomose"},
		Stem:      "Qual o agente da cinomose?",
		Options: []question.Option{
			{Label: "A", Text: "Morbillivirus"},
			{Label: "B", Text: "Parvovirus"},
		},
		AnswerKey:  "A",
		Rationales: map[string]string{"A": "Paramyxoviridae.", "B": "Causa enterite."},
		Review: &question.Review{
			Physiology: "Tropismo epitelial e neural.",
			Diagnosis:  &question.Diagnosis{Main: []string{"RT-PCR", "Corpúsculos de Lentz"}},
			Therapy:    &question.Therapy{Dogs: []string{"Suporte"}},
			Pitfalls:   []string{"Vacina recente pode positivar PCR"},
		},
	}
}

// chatServer fakes an OpenAI-compatible chat completions endpoint.
func chatServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req map[string]any
		json.NewDecoder(r.Body).Decode(&req)
		if req["model"] != "test-model" {
			t.Errorf("expected model test-model, got %v", req["model"])
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			w.Write([]byte(`{"error":{"message":"quota exceeded","type":"insufficient_quota"}}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"choices": []any{map[string]any{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLLMReviewer_ReturnsContent(t *testing.T) {
	srv := chatServer(t, http.StatusOK, "## Revisão\nConteúdo")
	r := reviewer.NewLLMReviewer(srv.URL+"/v1", "test-model", "key")

	text, err := r.Review(context.Background(), sampleQuestion())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "## Revisão\nConteúdo" {
		t.Errorf("unexpected review %q", text)
	}
}

func TestLLMReviewer_ErrorStatus(t *testing.T) {
	srv := chatServer(t, http.StatusTooManyRequests, "")
	r := reviewer.NewLLMReviewer(srv.URL+"/v1", "test-model", "key")

	_, err := r.Review(context.Background(), sampleQuestion())
	var rerr *reviewer.ReviewError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *ReviewError, got %v", err)
	}
	if rerr.Provider != "llm" || rerr.Unwrap() == nil {
		t.Errorf("expected wrapped llm error, got %+v", rerr)
	}
}

func TestLLMReviewer_EmptyContent(t *testing.T) {
	srv := chatServer(t, http.StatusOK, "   ")
	r := reviewer.NewLLMReviewer(srv.URL+"/v1", "test-model", "key")

	_, err := r.Review(context.Background(), sampleQuestion())
	var rerr *reviewer.ReviewError
	if !errors.As(err, &rerr) || rerr.Reason != "empty content" {
		t.Errorf("expected empty content error, got %v", err)
	}
}

func TestCompose_Sections(t *testing.T) {
	text := reviewer.Compose(sampleQuestion())

	for _, want := range []string{
		"Prova: **USP-2022**",
		"Tópicos: Cinomose",
		"### Fisiologia/Patogenia",
		"- RT-PCR\n- Corpúsculos de Lentz",
		"Cães:\n- Suporte",
		"### Pegadinhas de Prova",
		"- **A) (Correta)** Paramyxoviridae.",
		"- B) Causa enterite.",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected review to contain %q", want)
		}
	}
	if strings.Contains(text, "Gatos:") {
		t.Error("expected no cats section without cat therapy")
	}
}

func TestCompose_NoMetadata(t *testing.T) {
	q := sampleQuestion()
	q.Review = nil
	q.Rationales = map[string]string{}

	text := reviewer.Compose(q)
	if strings.Contains(text, "Análise das Alternativas") {
		t.Error("expected no alternatives section without rationales")
	}
	if !strings.Contains(text, "modo offline") {
		t.Error("expected offline footer")
	}
}

type failing struct{ err error }

func (f failing) Review(context.Context, question.Question) (string, error) {
	return "", f.err
}

func TestChain_FallsBack(t *testing.T) {
	chain := reviewer.Chain{failing{errors.New("quota")}, reviewer.OfflineReviewer{}}

	text, err := chain.Review(context.Background(), sampleQuestion())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "modo offline") {
		t.Error("expected offline review from fallback")
	}
}

func TestChain_AllFail(t *testing.T) {
	sentinel := errors.New("down")
	chain := reviewer.Chain{failing{sentinel}, failing{errors.New("also down")}}

	_, err := chain.Review(context.Background(), sampleQuestion())
	if !errors.Is(err, sentinel) {
		t.Errorf("expected joined errors to include sentinel, got %v", err)
	}
}

func TestChain_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	chain := reviewer.Chain{reviewer.OfflineReviewer{}}

	_, err := chain.Review(ctx, sampleQuestion())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
