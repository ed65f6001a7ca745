package csvimport

import (
	"strings"

	"question-bank/internal/domain"
)

// ParsedRecord is a record together with the 1-based line it came from.
type ParsedRecord struct {
	Line   int                   `json:"line"`
	Record domain.QuestionRecord `json:"record"`
}

// Result of parsing a paste. Every line is handled on its own, so Records
// and Errors can both be non-empty.
type Result struct {
	Records  []ParsedRecord `json:"records"`
	Errors   []*LineError   `json:"errors"`
	Warnings []Warning      `json:"warnings"`
}

func (r Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// QuestionRecords returns the records in line order.
func (r Result) QuestionRecords() []domain.QuestionRecord {
	out := make([]domain.QuestionRecord, 0, len(r.Records))
	for _, pr := range r.Records {
		out = append(out, pr.Record)
	}
	return out
}

// Parser runs the tokenizer and builder over multi-line text.
type Parser struct {
	tokenizer *Tokenizer
	builder   *Builder
}

func NewParser(tokenizer *Tokenizer, normalizer *Normalizer) *Parser {
	return &Parser{tokenizer: tokenizer, builder: NewBuilder(tokenizer, normalizer)}
}

// NewDefaultParser uses the default stand-in, taxonomy and thresholds.
func NewDefaultParser() *Parser {
	tok, _ := NewTokenizer(DefaultStandIn)
	return NewParser(tok, NewNormalizer(domain.DefaultTaxonomy(), DefaultThresholds()))
}

func (p *Parser) Tokenizer() *Tokenizer {
	return p.tokenizer
}

// Parse reports every bad line instead of stopping at the first. Blank lines
// are skipped but still counted, and a leading header row is ignored.
func (p *Parser) Parse(text string) Result {
	var res Result
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	seenContent := false
	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimRight(raw, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		tokens := p.tokenizer.Split(line)
		if !seenContent {
			seenContent = true
			if isHeader(tokens.Fields) {
				continue
			}
		}
		if tokens.Unbalanced {
			res.Warnings = append(res.Warnings, Warning{
				Line:    lineNo,
				Kind:    WarnUnbalancedQuotes,
				Message: "unbalanced quote; the rest of the line was read as quoted text",
			})
		}
		rec, warnings, err := p.builder.Build(lineNo, tokens.Fields)
		res.Warnings = append(res.Warnings, warnings...)
		if err != nil {
			if le, ok := err.(*LineError); ok {
				res.Errors = append(res.Errors, le)
			}
			continue
		}
		res.Records = append(res.Records, ParsedRecord{Line: lineNo, Record: rec})
	}
	return res
}

func isHeader(fields []string) bool {
	return len(fields) > 0 && Clean(fields[0]) == "section"
}
