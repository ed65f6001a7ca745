package csvimport

import (
	"fmt"
	"strings"

	"question-bank/internal/domain"
)

// Builder assembles tokenized fields into a question record.
type Builder struct {
	tokenizer  *Tokenizer
	normalizer *Normalizer
}

func NewBuilder(tokenizer *Tokenizer, normalizer *Normalizer) *Builder {
	return &Builder{tokenizer: tokenizer, normalizer: normalizer}
}

// Positions of the complete-record fields.
const (
	colSection = iota
	colDomain
	colQuestionType
	colPassage
	colQuestion
	colChoiceA
	colChoiceB
	colChoiceC
	colChoiceD
	colCorrect
	colExplanation
	colDifficulty
)

// Build turns the fields of one line into a record. Exactly 3 fields make a
// draft, 11 or 12 a complete record; any other count is a *LineError.
func (b *Builder) Build(line int, fields []string) (domain.QuestionRecord, []Warning, error) {
	n := len(fields)
	switch {
	case n == DraftFieldCount:
		return b.buildDraft(fields), nil, nil
	case n >= MinCompleteFieldCount && n <= MaxCompleteFieldCount:
		rec, warnings := b.buildComplete(line, fields)
		return rec, warnings, nil
	default:
		return domain.QuestionRecord{}, nil, newFieldCountError(line, n, b.tokenizer.StandIn())
	}
}

func (b *Builder) text(field string) string {
	return strings.TrimSpace(b.tokenizer.Unescape(field))
}

func (b *Builder) taxonomy(fields []string) (domain.Section, string, string) {
	section := b.normalizer.Section(b.text(fields[colSection]))
	domainName := b.normalizer.Domain(section, b.text(fields[colDomain]))
	questionType := b.normalizer.QuestionType(section, domainName, b.text(fields[colQuestionType]))
	return section, domainName, questionType
}

func (b *Builder) buildDraft(fields []string) domain.QuestionRecord {
	return domain.NewDraftRecord(b.taxonomy(fields))
}

func (b *Builder) buildComplete(line int, fields []string) (domain.QuestionRecord, []Warning) {
	var warnings []Warning
	section, domainName, questionType := b.taxonomy(fields)

	withImage := func(name, field string) (string, string) {
		ex := extractImage(b.text(field))
		if ex.Rejected {
			warnings = append(warnings, Warning{
				Line:    line,
				Kind:    WarnInvalidImage,
				Message: fmt.Sprintf("%s image is not a data:image URI; kept as text", name),
			})
		}
		return ex.Text, ex.Image
	}

	passage, passageImage := withImage("passage", fields[colPassage])
	explanation, explanationImage := withImage("explanation", fields[colExplanation])

	difficulty := domain.DifficultyMedium
	if len(fields) > colDifficulty {
		difficulty = b.normalizer.Difficulty(b.text(fields[colDifficulty]))
	}

	rec := domain.QuestionRecord{
		Section:      section,
		Domain:       domainName,
		QuestionType: questionType,
		PassageText:  passage,
		PassageImage: passageImage,
		QuestionText: b.text(fields[colQuestion]),
		AnswerChoices: domain.AnswerChoices{
			A: b.text(fields[colChoiceA]),
			B: b.text(fields[colChoiceB]),
			C: b.text(fields[colChoiceC]),
			D: b.text(fields[colChoiceD]),
		},
		CorrectAnswer:    domain.SanitizeChoiceKey(fields[colCorrect]),
		Explanation:      explanation,
		ExplanationImage: explanationImage,
		Difficulty:       difficulty,
	}
	return rec.WithDefaults(), warnings
}
