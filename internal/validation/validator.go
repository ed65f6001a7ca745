package validation

import (
	"regexp"
	"strings"

	"question-bank/internal/domain"
)

var validULID = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

// Validator checks request parameters before they reach the import service.
type Validator struct {
	maxBytes int
	maxLines int
}

// NewValidator creates a validator. Zero limits disable the size checks.
func NewValidator(maxBytes, maxLines int) *Validator {
	return &Validator{maxBytes: maxBytes, maxLines: maxLines}
}

// ValidateImportText validates pasted CSV text.
func (v *Validator) ValidateImportText(text string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(text) == "" {
		errors = append(errors, domain.NewMissingFieldError("text"))
		return errors
	}
	if v.maxBytes > 0 && len(text) > v.maxBytes {
		errors = append(errors, domain.NewOutOfRangeError("text", len(text), 1, v.maxBytes))
	}
	if v.maxLines > 0 {
		if lines := strings.Count(text, "\n") + 1; lines > v.maxLines {
			errors = append(errors, domain.NewOutOfRangeError("lines", lines, 1, v.maxLines))
		}
	}

	return errors
}

// ValidateSessionID validates an import session ID path parameter.
func (v *Validator) ValidateSessionID(id string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError("id"))
	} else if !isValidULID(id) {
		errors = append(errors, domain.NewInvalidFormatError("id", id))
	}

	return errors
}

// ValidateJumpIndex checks a 0-based jump target against the session size.
func (v *Validator) ValidateJumpIndex(index, total int) domain.ValidationErrors {
	if index < 0 || index >= total {
		return domain.ValidationErrors{domain.NewOutOfRangeError("index", index, 0, total-1)}
	}
	return nil
}

// ValidateSection validates an optional section filter.
func (v *Validator) ValidateSection(section string) domain.ValidationErrors {
	if section == "" {
		return nil
	}
	if !domain.Section(section).Valid() {
		return domain.ValidationErrors{domain.NewInvalidFormatError("section", section)}
	}
	return nil
}

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	return validULID.MatchString(s)
}
