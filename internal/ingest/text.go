package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vetqa/backend/internal/domain/question"
	"github.com/vetqa/backend/internal/store"
)

// DefaultArea is assigned when no keyword matches.
const DefaultArea = "CLÍNICA MÉDICA"

type areaKeywords struct {
	area     string
	keywords []string
}

// areaRules is ordered so classification output is stable.
var areaRules = []areaKeywords{
	{"CLÍNICA MÉDICA", []string{"clínica médica", "clínica medica", "hepatite", "cardiologia", "nefropatia", "dermatite", "endocrin", "doenças infecciosas"}},
	{"CLÍNICA CIRÚRGICA", []string{"cirurgia", "ortopedia", "osteossíntese", "colocação de placas", "anastomose", "laparotomia"}},
	{"ANESTESIOLOGIA", []string{"anestesia", "anestésico", "opioide", "isoflurano", "propofol", "bloqueio epidural"}},
	{"DIAGNÓSTICO POR IMAGEM", []string{"radiografia", "ultrassonografia", "tomografia", "ressonância", "diagnóstico por imagem", "tfast", "efast"}},
	{"LABORATÓRIO CLÍNICO", []string{"hemograma", "bioquímica", "bioquimica", "coagulograma", "urinálise", "urinalise", "parasito", "copro"}},
	{"SAÚDE PÚBLICA", []string{"zoonose", "saúde pública", "saude publica", "vigilância", "vigilancia", "epidemiologia"}},
}

// ClassifyArea returns every area whose keywords occur in text, or DefaultArea.
func ClassifyArea(text string) []string {
	lower := strings.ToLower(text)
	var areas []string
	for _, rule := range areaRules {
		for _, k := range rule.keywords {
			if strings.Contains(lower, k) {
				areas = append(areas, rule.area)
				break
			}
		}
	}
	if len(areas) == 0 {
		return []string{DefaultArea}
	}
	return areas
}

// TextBlock is a question extracted from free text, typically by an LLM.
type TextBlock struct {
	Stem      string            `json:"stem"`
	Options   []question.Option `json:"options"`
	AnswerKey string            `json:"answer_key"`
	Year      int               `json:"year,omitempty"`
	Exam      string            `json:"exam,omitempty"`
	TopicTags []string          `json:"topic_tags,omitempty"`
	AreaGuess []string          `json:"area_guess,omitempty"`
}

// FromTextBlocks converts blocks into raw records ready for UpsertMany.
// Records are pending, get ids of the form <label>-<unix ms>-<n>, and are
// classified by keyword when the block carries no area guess.
func FromTextBlocks(blocks []TextBlock, label string, now time.Time) []any {
	if label == "" {
		label = "AI"
	}
	extractedAt := now.UTC().Format(time.RFC3339)

	raws := make([]any, 0, len(blocks))
	for i, b := range blocks {
		areas := b.AreaGuess
		if len(areas) == 0 {
			parts := []string{b.Stem}
			for _, o := range b.Options {
				parts = append(parts, o.Text)
			}
			areas = ClassifyArea(strings.Join(parts, " \n "))
		}
		exam := b.Exam
		if exam == "" {
			exam = question.UnknownExam
		}
		topics := b.TopicTags
		if topics == nil {
			topics = []string{}
		}

		raws = append(raws, map[string]any{
			"id":              fmt.Sprintf("%s-%d-%d", label, now.UnixMilli(), i+1),
			"year":            b.Year,
			"exam":            exam,
			"area_tags":       areas,
			"topic_tags":      topics,
			"difficulty":      "M",
			"cognitive_level": "Entender",
			"stem":            b.Stem,
			"options":         b.Options,
			"answer_type":     question.AnswerTypeSingle,
			"answer_key":      b.AnswerKey,
			"rationales":      map[string]string{},
			"provenance":      map[string]any{"extracted_at": extractedAt, "checksum": "sha256:" + label},
			"status":          string(question.StatusPending),
			"version":         1,
		})
	}
	return raws
}

// IngestText stores text blocks through the normal upsert path.
func IngestText(ctx context.Context, s store.Store, blocks []TextBlock, label string, now time.Time, chunkSize int) (store.UpsertResult, error) {
	return s.UpsertMany(ctx, FromTextBlocks(blocks, label, now), chunkSize)
}
