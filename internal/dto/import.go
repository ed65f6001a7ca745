package dto

import (
	"question-bank/internal/csvimport"
	"question-bank/internal/domain"
)

// Import modes returned by StartImport.
const (
	ModeSingle  = "single"
	ModeSession = "session"
)

// ImportTextRequest carries pasted CSV text
// @Description Raw CSV text, one question per line
type ImportTextRequest struct {
	Text string `json:"text"`
}

// ParseReportResponse is the outcome of parsing a paste
// @Description Parsed records with every rejected line and warning
type ParseReportResponse struct {
	Records  []csvimport.ParsedRecord `json:"records"`
	Errors   []*csvimport.LineError   `json:"errors"`
	Warnings []csvimport.Warning      `json:"warnings"`
}

// NewParseReportResponse copies a parse result into its response shape.
// Nil slices become empty so clients always see arrays.
func NewParseReportResponse(res csvimport.Result) ParseReportResponse {
	out := ParseReportResponse{
		Records:  res.Records,
		Errors:   res.Errors,
		Warnings: res.Warnings,
	}
	if out.Records == nil {
		out.Records = []csvimport.ParsedRecord{}
	}
	if out.Errors == nil {
		out.Errors = []*csvimport.LineError{}
	}
	if out.Warnings == nil {
		out.Warnings = []csvimport.Warning{}
	}
	return out
}

// StartImportResponse is returned when an import begins
// @Description A single record for direct editing, or a review session
type StartImportResponse struct {
	Mode    string                 `json:"mode"`
	Record  *domain.QuestionRecord `json:"record,omitempty"`
	Session *SessionResponse       `json:"session,omitempty"`
	Report  ParseReportResponse    `json:"report"`
}

// SessionResponse is the client view of an import session
// @Description Current record, progress and field errors of a review session
type SessionResponse struct {
	ID          string                   `json:"id"`
	Status      string                   `json:"status"`
	Current     *domain.QuestionRecord   `json:"current,omitempty"`
	Edited      bool                     `json:"edited"`
	Progress    domain.Progress          `json:"progress"`
	FieldErrors map[string]bool          `json:"fieldErrors,omitempty"`
	Errors      []domain.ValidationError `json:"errors,omitempty"`
	InFlight    bool                     `json:"inFlight"`
	LastError   string                   `json:"lastError,omitempty"`
}

// NewSessionResponse builds the view of s.
func NewSessionResponse(s domain.Session) *SessionResponse {
	resp := &SessionResponse{
		ID:        s.ID(),
		Status:    string(s.Status()),
		Progress:  s.Progress(),
		InFlight:  s.InFlight(),
		LastError: s.LastError(),
	}
	if rec, ok := s.Current(); ok {
		resp.Current = &rec
		resp.Edited = s.Edited(s.Cursor())
	}
	if errs := s.FieldErrors(); len(errs) > 0 {
		resp.FieldErrors = errs.Flags()
		resp.Errors = errs
	}
	return resp
}

// JumpRequest moves the cursor
// @Description 0-based record index to jump to
type JumpRequest struct {
	Index int `json:"index"`
}

// CommitResponse reports a finished commit
// @Description Outcome of finalize or bulk-commit
type CommitResponse struct {
	Session *SessionResponse `json:"session"`
	Count   int              `json:"count"`
}

// SaveQuestionResponse reports a single saved record
type SaveQuestionResponse struct {
	Record domain.QuestionRecord `json:"record"`
}

// QuestionCountResponse is the number of stored questions
type QuestionCountResponse struct {
	Section string `json:"section,omitempty"`
	Count   int    `json:"count"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
