package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"

	// Field validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Import specific errors
	CodeSessionNotFound   ErrorCode = "SESSION_NOT_FOUND"
	CodeInvalidTransition ErrorCode = "INVALID_TRANSITION"
	CodeCommitInFlight    ErrorCode = "COMMIT_IN_FLIGHT"
	CodeFinalizeBlocked   ErrorCode = "FINALIZE_BLOCKED"
	CodePersistFailed     ErrorCode = "PERSIST_FAILED"
	CodeNothingToImport   ErrorCode = "NOTHING_TO_IMPORT"
	CodeAtFirstRecord     ErrorCode = "AT_FIRST_RECORD"
	CodeStaleCommit       ErrorCode = "STALE_COMMIT"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches on the error code so sentinel DomainErrors work with errors.Is.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Context map[string]interface{} `json:"context,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Context: e.Context,
	})
}

// WithContext attaches a key/value pair surfaced to API clients.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewSessionNotFoundError(sessionID string) *DomainError {
	return NewError(CodeSessionNotFound, fmt.Sprintf("import session not found: %s", sessionID), nil).
		WithContext("session_id", sessionID)
}

func NewInvalidTransitionError(transition string, status SessionStatus) *DomainError {
	return NewError(CodeInvalidTransition, fmt.Sprintf("cannot %s while session is %s", transition, status), nil).
		WithContext("status", string(status))
}

// Sentinels for errors.Is checks; compared by code.
var (
	ErrSessionNotFound   = NewError(CodeSessionNotFound, "import session not found", nil)
	ErrInvalidTransition = NewError(CodeInvalidTransition, "invalid session transition", nil)
	ErrCommitInFlight    = NewError(CodeCommitInFlight, "a commit is already in flight for this session", nil)
	ErrNothingToImport   = NewError(CodeNothingToImport, "no question records were parsed", nil)
	ErrAtFirstRecord     = NewError(CodeAtFirstRecord, "already at the first record", nil)
	ErrStaleCommit       = NewError(CodeStaleCommit, "the previous commit never reported back; its records may already be stored", nil)
)

// ValidationError is a single named field flag.
type ValidationError struct {
	Field   string    `json:"field"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Message
}

// ValidationErrors collects field flags. A nil or empty list means valid.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// Has reports whether the field is flagged.
func (v ValidationErrors) Has(field string) bool {
	for _, e := range v {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Flags returns the per-field error flags exposed to edit forms.
func (v ValidationErrors) Flags() map[string]bool {
	flags := make(map[string]bool, len(v))
	for _, e := range v {
		flags[e.Field] = true
	}
	return flags
}

func NewValidationError(field, message string) ValidationError {
	return ValidationError{Field: field, Code: CodeValidation, Message: message}
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Code: CodeMissingField, Message: fmt.Sprintf("%s is required", field)}
}

func NewInvalidFormatError(field, value string) ValidationError {
	return ValidationError{Field: field, Code: CodeInvalidFormat, Message: fmt.Sprintf("%s has invalid format: %q", field, value)}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeOutOfRange,
		Message: fmt.Sprintf("%s must be between %d and %d, got %d", field, min, max, value),
	}
}

// FinalizeError reports the first committed record that still fails the
// section/question-type invariant so the caller can jump back to it.
type FinalizeError struct {
	Index  int
	Errors ValidationErrors
}

func (e *FinalizeError) Error() string {
	return fmt.Sprintf("record %d cannot be committed: %v", e.Index+1, e.Errors)
}

// PersistError wraps a failure from the persistence sink.
type PersistError struct {
	Err error
}

func NewPersistError(err error) *PersistError {
	return &PersistError{Err: err}
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to persist questions: %v", e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
