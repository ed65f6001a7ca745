package validation

import (
	"strings"
	"testing"

	"question-bank/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestValidateImportText(t *testing.T) {
	v := NewValidator(64, 3)

	tests := []struct {
		name    string
		text    string
		flagged []string
	}{
		{"valid", "Math,Algebra,Linear functions", nil},
		{"blank", "  \n ", []string{"text"}},
		{"too many bytes", strings.Repeat("x", 65), []string{"text"}},
		{"too many lines", "a\nb\nc\nd", []string{"lines"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.ValidateImportText(tt.text)
			assert.Len(t, errs, len(tt.flagged))
			for _, f := range tt.flagged {
				assert.True(t, errs.Has(f), "expected %s flagged", f)
			}
		})
	}

	unlimited := NewValidator(0, 0)
	assert.Empty(t, unlimited.ValidateImportText(strings.Repeat("a\n", 10000)))
}

func TestValidateSessionID(t *testing.T) {
	v := NewValidator(0, 0)
	assert.Empty(t, v.ValidateSessionID("01HZY3J5K6M7N8P9QRSTVWXYZ0"))

	errs := v.ValidateSessionID("")
	assert.Equal(t, domain.CodeMissingField, errs[0].Code)

	errs = v.ValidateSessionID("not-a-ulid")
	assert.Equal(t, domain.CodeInvalidFormat, errs[0].Code)

	// I, L, O and U are outside Crockford base32.
	assert.NotEmpty(t, v.ValidateSessionID("01HZY3J5K6M7N8P9QRSTVWXYZI"))
}

func TestValidateJumpIndex(t *testing.T) {
	v := NewValidator(0, 0)
	assert.Empty(t, v.ValidateJumpIndex(0, 3))
	assert.Empty(t, v.ValidateJumpIndex(2, 3))
	assert.True(t, v.ValidateJumpIndex(3, 3).Has("index"))
	assert.True(t, v.ValidateJumpIndex(-1, 3).Has("index"))
}

func TestValidateSection(t *testing.T) {
	v := NewValidator(0, 0)
	assert.Empty(t, v.ValidateSection(""))
	assert.Empty(t, v.ValidateSection("Math"))
	assert.Empty(t, v.ValidateSection("Reading and Writing"))
	assert.True(t, v.ValidateSection("math").Has("section"))
}
