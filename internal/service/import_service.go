package service

import (
	"context"
	"errors"
	"time"

	"question-bank/internal/csvimport"
	"question-bank/internal/domain"
	"question-bank/internal/dto"
	"question-bank/internal/logger"
	"question-bank/internal/metrics"
	"question-bank/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ImportService drives pasted CSV through parsing and the review wizard.
type ImportService interface {
	Preview(ctx context.Context, text string) (*dto.ParseReportResponse, error)
	StartImport(ctx context.Context, text string) (*dto.StartImportResponse, error)
	GetSession(ctx context.Context, id string) (*dto.SessionResponse, error)
	EditCurrent(ctx context.Context, id string, rec domain.QuestionRecord) (*dto.SessionResponse, error)
	Advance(ctx context.Context, id string) (*dto.SessionResponse, error)
	Skip(ctx context.Context, id string) (*dto.SessionResponse, error)
	Retreat(ctx context.Context, id string) (*dto.SessionResponse, error)
	JumpTo(ctx context.Context, id string, index int) (*dto.SessionResponse, error)
	BulkCommit(ctx context.Context, id string) (*dto.CommitResponse, error)
	Finalize(ctx context.Context, id string) (*dto.CommitResponse, error)
	Cancel(ctx context.Context, id string, confirmer domain.Confirmer) (*dto.SessionResponse, error)
	SaveQuestion(ctx context.Context, rec domain.QuestionRecord) (*dto.SaveQuestionResponse, error)
}

// StaleCommitAfter is how long a stored in-flight marker holds before
// another caller may release it.
const StaleCommitAfter = 5 * time.Minute

// importService implements ImportService
type importService struct {
	parser  *csvimport.Parser
	store   domain.SessionStore
	sink    domain.QuestionSink
	metrics *metrics.Metrics
	commits singleflight.Group
	newID   func() string
	now     func() time.Time
}

// NewImportService creates a new instance of importService
func NewImportService(
	parser *csvimport.Parser,
	store domain.SessionStore,
	sink domain.QuestionSink,
	m *metrics.Metrics,
) ImportService {
	return &importService{
		parser:  parser,
		store:   store,
		sink:    sink,
		metrics: m,
		newID:   util.NewULID,
		now:     time.Now,
	}
}

func (s *importService) parse(text string) csvimport.Result {
	res := s.parser.Parse(text)
	s.metrics.ParsedRecords.Add(float64(len(res.Records)))
	for _, e := range res.Errors {
		s.metrics.LineErrors.WithLabelValues(string(e.Kind)).Inc()
	}
	for _, w := range res.Warnings {
		s.metrics.Warnings.WithLabelValues(string(w.Kind)).Inc()
	}
	if res.HasErrors() || len(res.Warnings) > 0 {
		logger.Get().Info("Parsed import text with problems",
			zap.Int("records", len(res.Records)),
			zap.Int("line_errors", len(res.Errors)),
			zap.Int("warnings", len(res.Warnings)))
	}
	return res
}

// Preview implements ImportService
func (s *importService) Preview(ctx context.Context, text string) (*dto.ParseReportResponse, error) {
	report := dto.NewParseReportResponse(s.parse(text))
	return &report, nil
}

// StartImport parses text and hands back either the single record for the
// edit form or a new review session. Bad lines are reported alongside.
func (s *importService) StartImport(ctx context.Context, text string) (*dto.StartImportResponse, error) {
	res := s.parse(text)
	report := dto.NewParseReportResponse(res)
	records := res.QuestionRecords()

	switch len(records) {
	case 0:
		return nil, domain.NewError(domain.CodeNothingToImport, "no question records were parsed", nil).
			WithContext("line_errors", len(res.Errors))
	case 1:
		rec := records[0].WithDefaults()
		return &dto.StartImportResponse{Mode: dto.ModeSingle, Record: &rec, Report: report}, nil
	}

	sess, err := domain.NewSession(s.newID(), records)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	logger.Get().Info("Opened import session",
		zap.String("session_id", sess.ID()),
		zap.Int("records", len(records)),
		zap.Int("line_errors", len(res.Errors)))
	return &dto.StartImportResponse{Mode: dto.ModeSession, Session: dto.NewSessionResponse(sess), Report: report}, nil
}

// load reads a session and releases a commit marker left behind by a process
// that died mid-commit.
func (s *importService) load(ctx context.Context, id string) (domain.Session, error) {
	sess, err := s.store.Load(ctx, id)
	if err != nil {
		return sess, err
	}
	released, ok := sess.ReleaseStaleCommit(s.now(), StaleCommitAfter)
	if ok {
		logger.Get().Warn("Released stale import commit",
			zap.String("session_id", id),
			zap.Time("in_flight_since", sess.InFlightSince()))
	}
	return released, nil
}

// GetSession implements ImportService
func (s *importService) GetSession(ctx context.Context, id string) (*dto.SessionResponse, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewSessionResponse(sess), nil
}

// transition loads a session, applies fn and stores the result. A rejected
// record keeps its field flags in the stored session.
func (s *importService) transition(ctx context.Context, id, name string, fn func(domain.Session) (domain.Session, error)) (*dto.SessionResponse, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := fn(sess)
	if err != nil {
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			if saveErr := s.store.Save(ctx, next); saveErr != nil {
				return nil, saveErr
			}
		}
		logger.Get().Debug("Import transition rejected",
			zap.String("session_id", id),
			zap.String("transition", name),
			zap.Error(err))
		return nil, err
	}
	if err := s.store.Save(ctx, next); err != nil {
		return nil, err
	}
	return dto.NewSessionResponse(next), nil
}

// EditCurrent implements ImportService
func (s *importService) EditCurrent(ctx context.Context, id string, rec domain.QuestionRecord) (*dto.SessionResponse, error) {
	return s.transition(ctx, id, "edit", func(sess domain.Session) (domain.Session, error) {
		return sess.Edit(rec)
	})
}

// Advance implements ImportService
func (s *importService) Advance(ctx context.Context, id string) (*dto.SessionResponse, error) {
	return s.transition(ctx, id, "advance", domain.Session.Advance)
}

// Skip implements ImportService
func (s *importService) Skip(ctx context.Context, id string) (*dto.SessionResponse, error) {
	return s.transition(ctx, id, "skip", domain.Session.Skip)
}

// Retreat implements ImportService
func (s *importService) Retreat(ctx context.Context, id string) (*dto.SessionResponse, error) {
	return s.transition(ctx, id, "retreat", domain.Session.Retreat)
}

// JumpTo implements ImportService
func (s *importService) JumpTo(ctx context.Context, id string, index int) (*dto.SessionResponse, error) {
	return s.transition(ctx, id, "jump", func(sess domain.Session) (domain.Session, error) {
		return sess.JumpTo(index)
	})
}

// BulkCommit implements ImportService
func (s *importService) BulkCommit(ctx context.Context, id string) (*dto.CommitResponse, error) {
	return s.commit(ctx, id, domain.Session.BeginBulkCommit)
}

// Finalize implements ImportService
func (s *importService) Finalize(ctx context.Context, id string) (*dto.CommitResponse, error) {
	return s.commit(ctx, id, domain.Session.BeginFinalize)
}

// commit runs one commit per session at a time. Concurrent callers for the
// same session share the first caller's result; the stored in-flight marker
// turns away callers in other processes.
func (s *importService) commit(ctx context.Context, id string, begin func(domain.Session) (domain.Session, error)) (*dto.CommitResponse, error) {
	v, err, shared := s.commits.Do(id, func() (interface{}, error) {
		sess, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		started, err := begin(sess)
		if err != nil {
			var fe *domain.FinalizeError
			if errors.As(err, &fe) {
				if saveErr := s.store.Save(ctx, started); saveErr != nil {
					return nil, saveErr
				}
			}
			return nil, err
		}
		if err := s.store.Save(ctx, started); err != nil {
			return nil, err
		}

		batch := started.Committed()
		start := time.Now()
		persistErr := s.sink.Persist(WithSessionID(ctx, id), batch)
		done, err := started.CompleteCommit(persistErr)
		if err != nil {
			return nil, err
		}
		if err := s.store.Save(ctx, done); err != nil {
			if persistErr != nil {
				return nil, err
			}
			// The batch is stored. Drop the session so its in-flight marker
			// cannot invite a second commit.
			logger.Get().Warn("Failed to record committed import session",
				zap.String("session_id", id),
				zap.Int("count", len(batch)),
				zap.Error(err))
			if delErr := s.store.Delete(ctx, id); delErr != nil {
				logger.Get().Error("Failed to drop committed import session",
					zap.String("session_id", id),
					zap.Error(delErr))
			}
		}

		if persistErr != nil {
			s.metrics.Sessions.WithLabelValues(metrics.OutcomeFailed).Inc()
			logger.Get().Error("Import commit failed",
				zap.String("session_id", id),
				zap.Int("count", len(batch)),
				zap.Error(persistErr))
			return nil, domain.NewPersistError(persistErr)
		}
		s.metrics.Sessions.WithLabelValues(metrics.OutcomeCommitted).Inc()
		logger.Get().Info("Import session committed",
			zap.String("session_id", id),
			zap.Int("count", len(batch)),
			zap.Duration("elapsed", time.Since(start)))
		return &dto.CommitResponse{Session: dto.NewSessionResponse(done), Count: len(batch)}, nil
	})
	if shared {
		logger.Get().Debug("Joined in-flight commit", zap.String("session_id", id))
	}
	if err != nil {
		return nil, err
	}
	return v.(*dto.CommitResponse), nil
}

// Cancel discards the session after confirmer agrees. A declined prompt
// leaves the session untouched.
func (s *importService) Cancel(ctx context.Context, id string, confirmer domain.Confirmer) (*dto.SessionResponse, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Status() == domain.SessionCancelled {
		return dto.NewSessionResponse(sess), nil
	}
	if !confirmer.Confirm("Discard all imported records?") {
		return nil, domain.NewInvalidInputError("cancel was not confirmed").WithContext("session_id", id)
	}
	cancelled, err := sess.Cancel()
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, cancelled); err != nil {
		return nil, err
	}
	s.metrics.Sessions.WithLabelValues(metrics.OutcomeCancelled).Inc()
	logger.Get().Info("Import session cancelled", zap.String("session_id", id))
	return dto.NewSessionResponse(cancelled), nil
}

// SaveQuestion stores one record from the single-record edit form.
func (s *importService) SaveQuestion(ctx context.Context, rec domain.QuestionRecord) (*dto.SaveQuestionResponse, error) {
	rec = rec.WithDefaults()
	if errs := rec.Validate(); len(errs) > 0 {
		return nil, errs
	}
	if err := s.sink.Persist(ctx, []domain.QuestionRecord{rec}); err != nil {
		return nil, domain.NewPersistError(err)
	}
	s.metrics.Sessions.WithLabelValues(metrics.OutcomeSingle).Inc()
	return &dto.SaveQuestionResponse{Record: rec}, nil
}
