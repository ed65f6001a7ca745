// Package csvimport turns pasted, loosely comma-delimited question text into
// normalized question records and writes records back out in the same shape.
package csvimport

import (
	"fmt"
	"strings"
	"unicode"
)

// DefaultStandIn replaces literal commas inside free text.
const DefaultStandIn = '|'

// Tokens is the result of splitting one line.
type Tokens struct {
	Fields []string
	// Unbalanced is set when a quote was never closed and the remainder of
	// the line was taken as quoted text.
	Unbalanced bool
}

// Tokenizer splits lines on commas outside double-quoted spans.
type Tokenizer struct {
	standIn rune
}

// NewTokenizer returns a tokenizer using standIn for escaped commas.
func NewTokenizer(standIn rune) (*Tokenizer, error) {
	if err := ValidateStandIn(standIn); err != nil {
		return nil, err
	}
	return &Tokenizer{standIn: standIn}, nil
}

// ValidateStandIn rejects characters that would collide with the line format.
func ValidateStandIn(standIn rune) error {
	switch {
	case standIn == ',' || standIn == '"':
		return fmt.Errorf("stand-in character %q collides with the field syntax", standIn)
	case standIn == '\n' || standIn == '\r':
		return fmt.Errorf("stand-in character cannot be a line break")
	case unicode.IsSpace(standIn) || !unicode.IsPrint(standIn):
		return fmt.Errorf("stand-in character %q must be a visible character", standIn)
	}
	return nil
}

func (t *Tokenizer) StandIn() rune {
	return t.standIn
}

// Split never fails. Fields are trimmed and lose one layer of surrounding
// quotes; stand-in characters are left in place.
func (t *Tokenizer) Split(line string) Tokens {
	var (
		fields  []string
		current strings.Builder
		quoted  bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			current.WriteRune(r)
		case r == ',' && !quoted:
			fields = append(fields, unquote(current.String(), false))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, unquote(current.String(), quoted))
	return Tokens{Fields: fields, Unbalanced: quoted}
}

func unquote(raw string, unterminated bool) string {
	s := strings.TrimSpace(raw)
	switch {
	case len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) && !unterminated:
		s = s[1 : len(s)-1]
	case unterminated && strings.HasPrefix(s, `"`):
		s = s[1:]
	default:
		return s
	}
	return strings.TrimSpace(strings.ReplaceAll(s, `""`, `"`))
}

// Escape replaces literal commas with the stand-in.
func (t *Tokenizer) Escape(s string) string {
	return strings.ReplaceAll(s, ",", string(t.standIn))
}

// Unescape turns stand-in characters back into commas.
func (t *Tokenizer) Unescape(s string) string {
	return strings.ReplaceAll(s, string(t.standIn), ",")
}
