package csvimport

import "fmt"

// LineErrorKind classifies a rejected line.
type LineErrorKind string

const (
	KindInsufficientFields LineErrorKind = "insufficient_fields"
	KindIncompleteRecord   LineErrorKind = "incomplete_record"
	KindTooManyFields      LineErrorKind = "too_many_fields"
)

// WarningKind classifies a recovered anomaly.
type WarningKind string

const (
	WarnUnbalancedQuotes WarningKind = "unbalanced_quotes"
	WarnInvalidImage     WarningKind = "invalid_image"
)

// Field counts of the two accepted line shapes.
const (
	DraftFieldCount       = 3
	MinCompleteFieldCount = 11
	MaxCompleteFieldCount = 12
)

// LineError rejects one input line. Line is 1-based.
type LineError struct {
	Line       int           `json:"line"`
	Kind       LineErrorKind `json:"kind"`
	FieldCount int           `json:"fieldCount"`
	Message    string        `json:"message"`
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Warning is a recovered, non-fatal anomaly on one line.
type Warning struct {
	Line    int         `json:"line"`
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
}

func newFieldCountError(line, count int, standIn rune) *LineError {
	e := &LineError{Line: line, FieldCount: count}
	switch {
	case count < DraftFieldCount:
		e.Kind = KindInsufficientFields
		e.Message = fmt.Sprintf("found %d field(s); need at least section, domain and question type", count)
	case count < MinCompleteFieldCount:
		e.Kind = KindIncompleteRecord
		e.Message = fmt.Sprintf("found %d fields; use exactly %d for a draft or %d-%d for a complete question",
			count, DraftFieldCount, MinCompleteFieldCount, MaxCompleteFieldCount)
	default:
		e.Kind = KindTooManyFields
		e.Message = fmt.Sprintf("found %d fields, at most %d are allowed; replace commas inside text with %q",
			count, MaxCompleteFieldCount, standIn)
	}
	return e
}
