package reviewer

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/vetqa/backend/internal/domain/question"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
	temperature    = 0.4
)

// LLMReviewer asks an OpenAI-compatible chat endpoint (OpenAI, Ollama,
// LM Studio, vLLM) for a deep review.
type LLMReviewer struct {
	client *openai.Client
	model  string
}

// Compile-time check: *LLMReviewer satisfies the Reviewer interface.
var _ Reviewer = (*LLMReviewer)(nil)

// NewLLMReviewer creates a reviewer for the given endpoint. Empty baseURL and
// model fall back to the OpenAI defaults.
func NewLLMReviewer(baseURL, model, apiKey string) *LLMReviewer {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	return &LLMReviewer{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (r *LLMReviewer) Review(ctx context.Context, q question.Question) (string, error) {
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(q)},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", &ReviewError{Provider: "llm", Reason: "request failed", Wrapped: err}
	}
	if len(resp.Choices) == 0 {
		return "", &ReviewError{Provider: "llm", Reason: "no choices returned"}
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", &ReviewError{Provider: "llm", Reason: "empty content"}
	}
	return content, nil
}

// ============================================================================
// Prompt
// ============================================================================

const systemPrompt = `Você é um tutor de residência em medicina veterinária de pequenos animais.
Responda em português, em Markdown, com seções organizadas e referências (livro, capítulo, página).
Se faltar dado, sinalize a lacuna em vez de inventar.`

func buildPrompt(q question.Question) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Questão %s (%s-%d)\n", q.ID, q.Exam, q.Year)
	if len(q.AreaTags) > 0 {
		fmt.Fprintf(&b, "Áreas: %s\n", strings.Join(q.AreaTags, ", "))
	}
	if len(q.TopicTags) > 0 {
		fmt.Fprintf(&b, "Tópicos: %s\n", strings.Join(q.TopicTags, ", "))
	}
	fmt.Fprintf(&b, "\nEnunciado:\n%s\n\nAlternativas:\n", q.Stem)
	for _, o := range q.Options {
		fmt.Fprintf(&b, "%s) %s\n", o.Label, o.Text)
	}
	fmt.Fprintf(&b, "\nGabarito: %s\n\n", q.AnswerKey)
	b.WriteString("Escreva uma revisão aprofundada do tema e corrija cada alternativa.")
	return b.String()
}
