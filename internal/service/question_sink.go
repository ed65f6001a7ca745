package service

import (
	"context"
	"time"

	"question-bank/internal/domain"
	"question-bank/internal/logger"
	"question-bank/internal/metrics"
	"question-bank/internal/util"

	"go.uber.org/zap"
)

type sessionIDKey struct{}

// WithSessionID tags ctx with the import session a commit belongs to.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, id)
}

func sessionIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey{}).(string)
	return id
}

// questionSink implements domain.QuestionSink. Each Persist call writes one
// batch inside one transaction, then announces it.
type questionSink struct {
	repo      domain.QuestionRepository
	tx        domain.TransactionManager
	publisher domain.EventPublisher
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewQuestionSink creates the sink that stores committed imports.
func NewQuestionSink(
	repo domain.QuestionRepository,
	tx domain.TransactionManager,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
) domain.QuestionSink {
	return &questionSink{repo: repo, tx: tx, publisher: publisher, metrics: m, now: time.Now}
}

func (s *questionSink) Persist(ctx context.Context, records []domain.QuestionRecord) error {
	if len(records) == 0 {
		return domain.ErrNothingToImport
	}
	batchID := util.NewULID()
	start := s.now()

	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.repo.SaveQuestions(txCtx, batchID, records)
	})
	s.metrics.CommitDuration.Observe(s.now().Sub(start).Seconds())
	if err != nil {
		logger.Get().Error("Failed to persist import batch",
			zap.String("batch_id", batchID),
			zap.Int("count", len(records)),
			zap.Error(err))
		return err
	}
	s.metrics.PersistedRecords.Add(float64(len(records)))

	event := domain.QuestionsImportedEvent{
		BatchID:   batchID,
		SessionID: sessionIDFrom(ctx),
		Count:     len(records),
		Sections:  sectionsOf(records),
		At:        s.now().UTC(),
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, domain.EventQuestionsImported, event); err != nil {
			// The batch is stored; a lost event is only logged.
			logger.Get().Warn("Failed to publish import event", zap.String("batch_id", batchID), zap.Error(err))
		}
	}

	logger.Get().Info("Persisted import batch",
		zap.String("batch_id", batchID),
		zap.String("session_id", event.SessionID),
		zap.Int("count", len(records)))
	return nil
}

// sectionsOf lists the distinct sections of records in first-seen order.
func sectionsOf(records []domain.QuestionRecord) []string {
	seen := make(map[domain.Section]bool)
	var out []string
	for _, r := range records {
		if !seen[r.Section] {
			seen[r.Section] = true
			out = append(out, string(r.Section))
		}
	}
	return out
}
