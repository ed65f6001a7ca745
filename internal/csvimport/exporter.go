package csvimport

import (
	"bufio"
	"io"
	"strings"

	"question-bank/internal/domain"
)

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Exporter writes records in the line format the Parser reads.
type Exporter struct {
	tokenizer *Tokenizer
}

func NewExporter(tokenizer *Tokenizer) *Exporter {
	return &Exporter{tokenizer: tokenizer}
}

// ExportRecord renders one record. Drafts that carry the default answer and
// difficulty use three fields, everything else all twelve.
func (e *Exporter) ExportRecord(rec domain.QuestionRecord) string {
	fields := []string{string(rec.Section), rec.Domain, rec.QuestionType}
	if !isPlainDraft(rec) {
		fields = append(fields,
			embedImage(rec.PassageText, rec.PassageImage),
			rec.QuestionText,
			rec.AnswerChoices.A,
			rec.AnswerChoices.B,
			rec.AnswerChoices.C,
			rec.AnswerChoices.D,
			string(rec.CorrectAnswer),
			embedImage(rec.Explanation, rec.ExplanationImage),
			string(rec.Difficulty),
		)
	}
	for i, f := range fields {
		fields[i] = e.field(f)
	}
	return strings.Join(fields, ",")
}

// isPlainDraft reports whether the three-field form reparses to rec.
func isPlainDraft(rec domain.QuestionRecord) bool {
	if !rec.Hidden() {
		return false
	}
	d := rec.WithDefaults()
	return d.CorrectAnswer == domain.ChoiceA && d.Difficulty == domain.DifficultyMedium
}

func (e *Exporter) field(s string) string {
	s = lineBreaks.Replace(s)
	s = e.tokenizer.Escape(s)
	if strings.Contains(s, `"`) {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// Export renders records one per line.
func (e *Exporter) Export(records []domain.QuestionRecord) string {
	lines := make([]string, 0, len(records))
	for _, rec := range records {
		lines = append(lines, e.ExportRecord(rec))
	}
	return strings.Join(lines, "\n")
}

// Write streams records to w, one line each.
func (e *Exporter) Write(w io.Writer, records []domain.QuestionRecord) error {
	bw := bufio.NewWriter(w)
	for _, rec := range records {
		if _, err := bw.WriteString(e.ExportRecord(rec) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
