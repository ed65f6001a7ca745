package domain

import (
	"context"
	"time"
)

// QuestionSink receives the committed records of one import in a single call.
type QuestionSink interface {
	Persist(ctx context.Context, records []QuestionRecord) error
}

// Confirmer asks the user a yes/no question and blocks until answered.
type Confirmer interface {
	Confirm(prompt string) bool
}

// PasteSource supplies the raw text the user pasted.
type PasteSource interface {
	Text() (string, error)
}

// StoredQuestion is a persisted record.
type StoredQuestion struct {
	ID        string
	BatchID   string
	Record    QuestionRecord
	CreatedAt time.Time
}

// QuestionFilter narrows ListQuestions. Zero values mean no filter.
type QuestionFilter struct {
	Section Section
	BatchID string
	Limit   int
}

// QuestionRepository defines the interface for question persistence
type QuestionRepository interface {
	// SaveQuestions inserts every record under one batch ID
	SaveQuestions(ctx context.Context, batchID string, records []QuestionRecord) error

	// ListQuestions returns stored questions in insertion order
	ListQuestions(ctx context.Context, filter QuestionFilter) ([]StoredQuestion, error)

	// CountQuestions returns the number of stored questions matching filter
	CountQuestions(ctx context.Context, filter QuestionFilter) (int, error)
}

// TransactionManager runs fn inside one database transaction carried by ctx.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher emits domain events after successful commits.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
	Close() error
}

// EventQuestionsImported is published once per persisted batch.
const EventQuestionsImported = "questions.imported"

// QuestionsImportedEvent is the payload of EventQuestionsImported.
type QuestionsImportedEvent struct {
	BatchID   string    `json:"batch_id"`
	SessionID string    `json:"session_id,omitempty"`
	Count     int       `json:"count"`
	Sections  []string  `json:"sections"`
	At        time.Time `json:"at"`
}

// SessionStore keeps import sessions between requests.
type SessionStore interface {
	Save(ctx context.Context, s Session) error
	Load(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}
