package question

// Merge overlays incoming onto existing, field by field. A field of incoming
// wins whenever it carries a value; fields incoming left at their default keep
// the existing value. Rationales merge per label with incoming taking precedence.
//
// Mandatory fields (stem, options, answer key) and the enums are always set by
// Normalize, so they always come from incoming.
func Merge(existing, incoming Question) Question {
	out := existing
	out.ID = incoming.ID

	if incoming.Year != 0 {
		out.Year = incoming.Year
	}
	if (incoming.Exam != "" && incoming.Exam != UnknownExam) || out.Exam == "" {
		out.Exam = incoming.Exam
	}
	if incoming.SourceFile != nil {
		out.SourceFile = incoming.SourceFile
	}
	if incoming.SourcePages.Start != nil || incoming.SourcePages.End != nil {
		out.SourcePages = incoming.SourcePages
	}
	if len(incoming.AreaTags) > 0 || out.AreaTags == nil {
		out.AreaTags = incoming.AreaTags
	}
	if len(incoming.TopicTags) > 0 || out.TopicTags == nil {
		out.TopicTags = incoming.TopicTags
	}
	if incoming.ClassificationMeta != nil {
		out.ClassificationMeta = incoming.ClassificationMeta
	}
	if len(incoming.Media) > 0 {
		out.Media = incoming.Media
	}
	if len(incoming.Issues) > 0 {
		out.Issues = incoming.Issues
	}
	if incoming.Review != nil {
		out.Review = incoming.Review
	}

	out.Difficulty = incoming.Difficulty
	out.CognitiveLevel = incoming.CognitiveLevel
	out.Stem = incoming.Stem
	out.Options = incoming.Options
	out.AnswerType = incoming.AnswerType
	out.AnswerKey = incoming.AnswerKey
	out.Status = incoming.Status
	out.Version = incoming.Version

	merged := make(map[string]string, len(existing.Rationales)+len(incoming.Rationales))
	for k, v := range existing.Rationales {
		merged[k] = v
	}
	for k, v := range incoming.Rationales {
		merged[k] = v
	}
	out.Rationales = merged

	if incoming.Provenance.ExtractedAt != nil || out.Provenance.Checksum == "" {
		out.Provenance = incoming.Provenance
	}
	return out
}
