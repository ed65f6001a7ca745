package domain

import (
	"context"
	"fmt"
	"time"
)

// SessionStatus is the lifecycle state of an import session.
type SessionStatus string

const (
	SessionReviewing  SessionStatus = "reviewing"
	SessionFinalizing SessionStatus = "finalizing"
	SessionCancelled  SessionStatus = "cancelled"
	SessionCommitted  SessionStatus = "committed"
)

// MinSessionRecords is the smallest parse that opens a wizard. A single
// record goes straight to the edit form.
const MinSessionRecords = 2

// Progress is the (index, total, completed) tuple shown while reviewing.
type Progress struct {
	Index     int `json:"index"`
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// Session is the import wizard state. Every transition returns a new value
// and leaves the receiver untouched. While reviewing, len(committed) always
// equals cursor.
type Session struct {
	id        string
	records   []QuestionRecord
	cursor    int
	edits     map[int]QuestionRecord
	committed []QuestionRecord
	status    SessionStatus
	inFlight  bool
	// inFlightSince is when the running commit began.
	inFlightSince time.Time
	fieldErrors   ValidationErrors
	lastError     string
}

// NewSession opens a wizard over an ordered parse result.
func NewSession(id string, records []QuestionRecord) (Session, error) {
	if id == "" {
		return Session{}, NewInvalidInputError("session id is required")
	}
	if len(records) < MinSessionRecords {
		return Session{}, NewInvalidInputError(
			fmt.Sprintf("an import session needs at least %d records, got %d", MinSessionRecords, len(records)))
	}
	recs := make([]QuestionRecord, len(records))
	copy(recs, records)
	return Session{
		id:      id,
		records: recs,
		edits:   make(map[int]QuestionRecord),
		status:  SessionReviewing,
	}, nil
}

func (s Session) ID() string                    { return s.id }
func (s Session) Status() SessionStatus         { return s.status }
func (s Session) Cursor() int                   { return s.cursor }
func (s Session) InFlight() bool                { return s.inFlight }
func (s Session) InFlightSince() time.Time      { return s.inFlightSince }
func (s Session) LastError() string             { return s.lastError }
func (s Session) FieldErrors() ValidationErrors { return s.fieldErrors }

// Records returns a copy of the original parse.
func (s Session) Records() []QuestionRecord {
	out := make([]QuestionRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Committed returns a copy of the records accepted so far.
func (s Session) Committed() []QuestionRecord {
	out := make([]QuestionRecord, len(s.committed))
	copy(out, s.committed)
	return out
}

// Edited reports whether the record at index carries a user edit.
func (s Session) Edited(index int) bool {
	_, ok := s.edits[index]
	return ok
}

// RecordAt returns the edited record at index, or the parsed one.
func (s Session) RecordAt(index int) (QuestionRecord, bool) {
	if index < 0 || index >= len(s.records) {
		return QuestionRecord{}, false
	}
	if rec, ok := s.edits[index]; ok {
		return rec, true
	}
	return s.records[index], true
}

// Current is the record bound to the edit form.
func (s Session) Current() (QuestionRecord, bool) {
	if s.status != SessionReviewing && s.status != SessionFinalizing {
		return QuestionRecord{}, false
	}
	return s.RecordAt(s.cursor)
}

func (s Session) Progress() Progress {
	return Progress{Index: s.cursor, Total: len(s.records), Completed: len(s.committed)}
}

func (s Session) clone() Session {
	next := s
	next.records = s.Records()
	next.committed = s.Committed()
	next.edits = make(map[int]QuestionRecord, len(s.edits))
	for k, v := range s.edits {
		next.edits[k] = v
	}
	if s.fieldErrors != nil {
		next.fieldErrors = append(ValidationErrors(nil), s.fieldErrors...)
	}
	return next
}

func (s Session) requireReviewing(transition string) error {
	if s.status != SessionReviewing {
		return NewInvalidTransitionError(transition, s.status)
	}
	return nil
}

// rejected returns a copy of s that carries the field flags and nothing else changed.
func (s Session) rejected(errs ValidationErrors) (Session, error) {
	next := s.clone()
	next.fieldErrors = errs
	return next, errs
}

// Edit stores rec as the user's version of the current record.
func (s Session) Edit(rec QuestionRecord) (Session, error) {
	if err := s.requireReviewing("edit"); err != nil {
		return s, err
	}
	next := s.clone()
	next.edits[s.cursor] = rec.WithDefaults()
	next.fieldErrors = nil
	return next, nil
}

// Advance accepts the current record under the full rules.
func (s Session) Advance() (Session, error) {
	return s.accept("advance", QuestionRecord.Validate)
}

// Skip accepts the current record under the minimal rules.
func (s Session) Skip() (Session, error) {
	return s.accept("skip", QuestionRecord.ValidateMinimal)
}

func (s Session) accept(transition string, validate func(QuestionRecord) ValidationErrors) (Session, error) {
	if err := s.requireReviewing(transition); err != nil {
		return s, err
	}
	rec, _ := s.Current()
	if errs := validate(rec); len(errs) > 0 {
		return s.rejected(errs)
	}
	next := s.clone()
	next.committed = append(next.committed, rec)
	next.fieldErrors = nil
	if s.cursor == len(s.records)-1 {
		next.status = SessionFinalizing
	} else {
		next.cursor++
	}
	return next, nil
}

// Retreat steps back one record and un-commits it. From finalizing it
// reopens the last record.
func (s Session) Retreat() (Session, error) {
	switch s.status {
	case SessionReviewing:
		if s.cursor == 0 {
			return s, ErrAtFirstRecord
		}
	case SessionFinalizing:
		if s.inFlight {
			return s, ErrCommitInFlight
		}
	default:
		return s, NewInvalidTransitionError("retreat", s.status)
	}
	if s.status == SessionReviewing {
		rec, _ := s.Current()
		if errs := rec.ValidateMinimal(); len(errs) > 0 {
			return s.rejected(errs)
		}
	}
	next := s.clone()
	next.fieldErrors = nil
	if s.status == SessionFinalizing {
		next.status = SessionReviewing
		next.cursor = len(s.records) - 1
	} else {
		next.cursor--
	}
	next.committed = next.committed[:next.cursor]
	return next, nil
}

// JumpTo moves back to an already-accepted index and un-commits everything
// from it onward.
func (s Session) JumpTo(index int) (Session, error) {
	limit := -1
	switch s.status {
	case SessionReviewing:
		limit = s.cursor
	case SessionFinalizing:
		if s.inFlight {
			return s, ErrCommitInFlight
		}
		limit = len(s.records) - 1
	default:
		return s, NewInvalidTransitionError("jump", s.status)
	}
	if index < 0 || index > limit {
		return s, NewInvalidInputError(fmt.Sprintf("cannot jump to record %d", index+1)).
			WithContext("index", index).
			WithContext("max", limit)
	}
	next := s.clone()
	next.status = SessionReviewing
	next.cursor = index
	next.committed = next.committed[:index]
	next.fieldErrors = nil
	return next, nil
}

// BeginBulkCommit commits every record in one pass. Section A records still
// missing a question type get PlaceholderQuestionType. The returned session
// is finalizing with the commit in flight; Committed() is the batch.
func (s Session) BeginBulkCommit() (Session, error) {
	if s.inFlight {
		return s, ErrCommitInFlight
	}
	if s.status != SessionReviewing && s.status != SessionFinalizing {
		return s, NewInvalidTransitionError("bulk-commit", s.status)
	}
	batch := make([]QuestionRecord, 0, len(s.records))
	for i := range s.records {
		rec, _ := s.RecordAt(i)
		rec = rec.WithDefaults()
		if rec.Section == SectionReadingWriting && rec.QuestionType == "" {
			rec.QuestionType = PlaceholderQuestionType
		}
		if errs := rec.ValidateMinimal(); len(errs) > 0 {
			next, _ := s.rejected(errs)
			return next, &FinalizeError{Index: i, Errors: errs}
		}
		batch = append(batch, rec)
	}
	next := s.clone()
	next.committed = batch
	next.cursor = len(s.records) - 1
	next.status = SessionFinalizing
	next.inFlight = true
	next.inFlightSince = time.Now().UTC()
	next.fieldErrors = nil
	next.lastError = ""
	return next, nil
}

// BeginFinalize re-checks every committed record and marks the commit in
// flight. A failing record is reported by index so the caller can jump to it.
func (s Session) BeginFinalize() (Session, error) {
	if s.inFlight {
		return s, ErrCommitInFlight
	}
	if s.status != SessionFinalizing {
		return s, NewInvalidTransitionError("finalize", s.status)
	}
	for i, rec := range s.committed {
		if errs := rec.ValidateMinimal(); len(errs) > 0 {
			next, _ := s.rejected(errs)
			return next, &FinalizeError{Index: i, Errors: errs}
		}
	}
	next := s.clone()
	next.inFlight = true
	next.inFlightSince = time.Now().UTC()
	next.lastError = ""
	return next, nil
}

// CompleteCommit records the sink outcome. On success every record, edit
// and commit is dropped.
func (s Session) CompleteCommit(persistErr error) (Session, error) {
	if !s.inFlight {
		return s, NewInvalidTransitionError("complete commit", s.status)
	}
	next := s.clone()
	next.inFlight = false
	next.inFlightSince = time.Time{}
	if persistErr != nil {
		next.lastError = persistErr.Error()
		return next, nil
	}
	next.records = nil
	next.edits = make(map[int]QuestionRecord)
	next.committed = nil
	next.cursor = 0
	next.status = SessionCommitted
	next.fieldErrors = nil
	next.lastError = ""
	return next, nil
}

// Finalize hands the committed list to sink in one call.
func (s Session) Finalize(ctx context.Context, sink QuestionSink) (Session, error) {
	next, err := s.BeginFinalize()
	if err != nil {
		return next, err
	}
	return next.persist(ctx, sink)
}

// BulkCommit commits every record and hands them to sink in one call.
func (s Session) BulkCommit(ctx context.Context, sink QuestionSink) (Session, error) {
	next, err := s.BeginBulkCommit()
	if err != nil {
		return next, err
	}
	return next.persist(ctx, sink)
}

func (s Session) persist(ctx context.Context, sink QuestionSink) (Session, error) {
	persistErr := sink.Persist(ctx, s.Committed())
	next, err := s.CompleteCommit(persistErr)
	if err != nil {
		return next, err
	}
	if persistErr != nil {
		return next, NewPersistError(persistErr)
	}
	return next, nil
}

// ReleaseStaleCommit clears an in-flight marker older than deadline so the
// user can retry or cancel. The outcome of that commit is unknown and is
// reported through LastError.
func (s Session) ReleaseStaleCommit(now time.Time, deadline time.Duration) (Session, bool) {
	if !s.inFlight || now.Sub(s.inFlightSince) < deadline {
		return s, false
	}
	next := s.clone()
	next.inFlight = false
	next.inFlightSince = time.Time{}
	next.lastError = ErrStaleCommit.Error()
	return next, true
}

// Cancel discards the whole session. Cancelling twice is a no-op.
func (s Session) Cancel() (Session, error) {
	switch {
	case s.status == SessionCancelled:
		return s, nil
	case s.status == SessionCommitted:
		return s, NewInvalidTransitionError("cancel", s.status)
	case s.inFlight:
		return s, ErrCommitInFlight
	}
	return Session{
		id:     s.id,
		edits:  make(map[int]QuestionRecord),
		status: SessionCancelled,
	}, nil
}

// SessionSnapshot is the serializable form of a Session.
type SessionSnapshot struct {
	ID            string                 `json:"id"`
	Records       []QuestionRecord       `json:"records"`
	Cursor        int                    `json:"cursor"`
	Edits         map[int]QuestionRecord `json:"edits,omitempty"`
	Committed     []QuestionRecord       `json:"committed"`
	Status        SessionStatus          `json:"status"`
	InFlight      bool                   `json:"inFlight"`
	InFlightSince time.Time              `json:"inFlightSince"`
	FieldErrors   ValidationErrors       `json:"fieldErrors,omitempty"`
	LastError     string                 `json:"lastError,omitempty"`
}

func (s Session) Snapshot() SessionSnapshot {
	c := s.clone()
	return SessionSnapshot{
		ID:            c.id,
		Records:       c.records,
		Cursor:        c.cursor,
		Edits:         c.edits,
		Committed:     c.committed,
		Status:        c.status,
		InFlight:      c.inFlight,
		InFlightSince: c.inFlightSince,
		FieldErrors:   c.fieldErrors,
		LastError:     c.lastError,
	}
}

// RestoreSession rebuilds a session from a snapshot and checks it is coherent.
func RestoreSession(snap SessionSnapshot) (Session, error) {
	s := Session{
		id:            snap.ID,
		records:       snap.Records,
		cursor:        snap.Cursor,
		edits:         snap.Edits,
		committed:     snap.Committed,
		status:        snap.Status,
		inFlight:      snap.InFlight,
		inFlightSince: snap.InFlightSince,
		fieldErrors:   snap.FieldErrors,
		lastError:     snap.LastError,
	}
	if s.edits == nil {
		s.edits = make(map[int]QuestionRecord)
	}
	corrupt := func(reason string) (Session, error) {
		return Session{}, NewInternalError("corrupt import session "+snap.ID+": "+reason, nil)
	}
	switch s.status {
	case SessionReviewing:
		if s.cursor < 0 || s.cursor >= len(s.records) {
			return corrupt("cursor out of range")
		}
		if len(s.committed) != s.cursor {
			return corrupt("committed count does not match cursor")
		}
	case SessionFinalizing:
		if len(s.committed) != len(s.records) {
			return corrupt("finalizing session must have every record committed")
		}
	case SessionCancelled, SessionCommitted:
	default:
		return corrupt(fmt.Sprintf("unknown status %q", s.status))
	}
	return s.clone(), nil
}
