package reviewer

import (
	"context"
	"fmt"
	"strings"

	"github.com/vetqa/backend/internal/domain/question"
)

// OfflineReviewer composes a review from the question's review and rationale
// metadata. It never fails except on cancellation.
type OfflineReviewer struct{}

// Compile-time check: OfflineReviewer satisfies the Reviewer interface.
var _ Reviewer = OfflineReviewer{}

const offlineFooter = "> Revisão gerada no modo offline a partir dos metadados da questão. " +
	"Para uma revisão expandida, configure LLM_API_KEY."

func (OfflineReviewer) Review(ctx context.Context, q question.Question) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &ReviewError{Provider: "offline", Reason: "cancelled", Wrapped: err}
	}
	return Compose(q), nil
}

// Compose renders the offline review markdown for q.
func Compose(q question.Question) string {
	var lines []string
	add := func(s ...string) { lines = append(lines, s...) }

	add("## Visão Geral",
		fmt.Sprintf("Prova: **%s-%d**  |  Área: **%s**", q.Exam, q.Year, strings.Join(q.AreaTags, ", ")))
	if len(q.TopicTags) > 0 {
		add("Tópicos: " + strings.Join(q.TopicTags, ", "))
	}
	add("", "### Enunciado", q.Stem, "")

	if r := q.Review; r != nil {
		if r.Physiology != "" {
			add("### Fisiologia/Patogenia", r.Physiology, "")
		}
		if r.Diagnosis != nil && len(r.Diagnosis.Main) > 0 {
			add("### Diagnóstico (Pontos-chave)", bullets(r.Diagnosis.Main), "")
		}
		if t := r.Therapy; t != nil && (len(t.Dogs) > 0 || len(t.Cats) > 0) {
			add("### Tratamento (Baseado em evidências)")
			if len(t.Dogs) > 0 {
				add("Cães:", bullets(t.Dogs))
			}
			if len(t.Cats) > 0 {
				add("", "Gatos:", bullets(t.Cats))
			}
			add("")
		}
		if len(r.HighYield) > 0 {
			add("### Pontos de Alto Rendimento", bullets(r.HighYield), "")
		}
		if len(r.Pitfalls) > 0 {
			add("### Pegadinhas de Prova", bullets(r.Pitfalls), "")
		}
	}

	if len(q.Rationales) > 0 {
		add("### Análise das Alternativas")
		for _, o := range q.Options {
			head := o.Label + ")"
			if o.Label == q.AnswerKey {
				head = "**" + o.Label + ") (Correta)**"
			}
			add(strings.TrimRight("- "+head+" "+q.Rationales[o.Label], " "))
		}
		add("")
	}

	add(offlineFooter)
	return strings.Join(lines, "\n")
}

func bullets(items []string) string {
	return "- " + strings.Join(items, "\n- ")
}
