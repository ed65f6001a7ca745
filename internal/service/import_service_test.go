package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"question-bank/internal/adapter"
	"question-bank/internal/csvimport"
	"question-bank/internal/domain"
	"question-bank/internal/dto"
	"question-bank/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const threeLineImport = "Reading and Writing,Craft and Structure,Words in Context," +
	"The committee's decision was tentative.,What does tentative most nearly mean?," +
	"provisional,hostile,final,generous,A,Tentative means not yet settled.,Easy\n" +
	"Math,Algebra,Linear functions\n" +
	"Math,Advanced Math,Equivalent expressions\n"

type importFixture struct {
	svc     ImportService
	sink    *MockQuestionSink
	store   domain.SessionStore
	metrics *metrics.Metrics
}

func newImportFixture(t *testing.T) *importFixture {
	t.Helper()
	sink := new(MockQuestionSink)
	store := NewSessionStore(adapter.NewMemoryCacheAdapter(), time.Hour)
	m := metrics.New(nil)
	svc := NewImportService(csvimport.NewDefaultParser(), store, sink, m)
	svc.(*importService).newID = func() string { return testSessionID }
	return &importFixture{svc: svc, sink: sink, store: store, metrics: m}
}

func (f *importFixture) start(t *testing.T) *dto.SessionResponse {
	t.Helper()
	resp, err := f.svc.StartImport(context.Background(), threeLineImport)
	require.NoError(t, err)
	require.Equal(t, dto.ModeSession, resp.Mode)
	return resp.Session
}

func TestImportService_Preview(t *testing.T) {
	f := newImportFixture(t)
	report, err := f.svc.Preview(context.Background(), "Math\n"+threeLineImport)
	require.NoError(t, err)
	assert.Len(t, report.Records, 3)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, 1, report.Errors[0].Line)
	assert.Empty(t, report.Warnings)
	assert.Equal(t, 3.0, testutil.ToFloat64(f.metrics.ParsedRecords))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.LineErrors.WithLabelValues("insufficient_fields")))

	_, err = f.store.Load(context.Background(), testSessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound, "preview never opens a session")
}

func TestImportService_StartImport(t *testing.T) {
	ctx := context.Background()

	t.Run("single record goes to the edit form", func(t *testing.T) {
		f := newImportFixture(t)
		resp, err := f.svc.StartImport(ctx, "Math,Algebra,Linear functions")
		require.NoError(t, err)
		assert.Equal(t, dto.ModeSingle, resp.Mode)
		require.NotNil(t, resp.Record)
		assert.Equal(t, "Linear functions", resp.Record.QuestionType)
		assert.Nil(t, resp.Session)
	})

	t.Run("two or more records open a session", func(t *testing.T) {
		f := newImportFixture(t)
		sess := f.start(t)
		assert.Equal(t, testSessionID, sess.ID)
		assert.Equal(t, string(domain.SessionReviewing), sess.Status)
		assert.Equal(t, domain.Progress{Index: 0, Total: 3, Completed: 0}, sess.Progress)
		require.NotNil(t, sess.Current)
		assert.Equal(t, domain.SectionReadingWriting, sess.Current.Section)
	})

	t.Run("bad lines are reported next to the session", func(t *testing.T) {
		f := newImportFixture(t)
		resp, err := f.svc.StartImport(ctx, threeLineImport+"a,b,c,d\n")
		require.NoError(t, err)
		assert.Equal(t, dto.ModeSession, resp.Mode)
		require.Len(t, resp.Report.Errors, 1)
		assert.Equal(t, 4, resp.Report.Errors[0].Line)
	})

	t.Run("nothing parsed", func(t *testing.T) {
		f := newImportFixture(t)
		_, err := f.svc.StartImport(ctx, "a,b\nc")
		assert.ErrorIs(t, err, domain.ErrNothingToImport)
		assert.Nil(t, domain.ErrNothingToImport.Context, "sentinel stays untouched")
	})
}

func TestImportService_StepThroughAndFinalize(t *testing.T) {
	ctx := context.Background()
	f := newImportFixture(t)
	f.start(t)

	var view *dto.SessionResponse
	var err error
	for i := 0; i < 3; i++ {
		view, err = f.svc.Advance(ctx, testSessionID)
		require.NoError(t, err)
	}
	assert.Equal(t, string(domain.SessionFinalizing), view.Status)
	assert.Equal(t, 3, view.Progress.Completed)

	f.sink.On("Persist", mock.Anything, mock.MatchedBy(func(recs []domain.QuestionRecord) bool {
		return len(recs) == 3 && recs[0].Section == domain.SectionReadingWriting
	})).Return(nil).Once()

	resp, err := f.svc.Finalize(ctx, testSessionID)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, string(domain.SessionCommitted), resp.Session.Status)
	assert.Nil(t, resp.Session.Current)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Sessions.WithLabelValues(metrics.OutcomeCommitted)))

	_, err = f.svc.Finalize(ctx, testSessionID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	f.sink.AssertNumberOfCalls(t, "Persist", 1)
}

func TestImportService_AdvanceRejectionKeepsFlags(t *testing.T) {
	ctx := context.Background()
	f := newImportFixture(t)
	sess := f.start(t)

	edited := *sess.Current
	edited.PassageText = ""
	edited.AnswerChoices.C = ""
	view, err := f.svc.EditCurrent(ctx, testSessionID, edited)
	require.NoError(t, err)
	assert.True(t, view.Edited)

	_, err = f.svc.Advance(ctx, testSessionID)
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has(domain.FieldPassage))
	assert.True(t, verrs.Has(domain.FieldChoiceC))

	stored, err := f.svc.GetSession(ctx, testSessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Progress.Index)
	assert.True(t, stored.FieldErrors[domain.FieldPassage])

	// Skip only needs section, domain and question type.
	view, err = f.svc.Skip(ctx, testSessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Progress.Index)
	assert.Empty(t, view.FieldErrors)
}

func TestImportService_RetreatAndJump(t *testing.T) {
	ctx := context.Background()
	f := newImportFixture(t)
	f.start(t)

	_, err := f.svc.Retreat(ctx, testSessionID)
	assert.ErrorIs(t, err, domain.ErrAtFirstRecord)

	_, err = f.svc.Advance(ctx, testSessionID)
	require.NoError(t, err)
	_, err = f.svc.Advance(ctx, testSessionID)
	require.NoError(t, err)

	view, err := f.svc.Retreat(ctx, testSessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.Progress{Index: 1, Total: 3, Completed: 1}, view.Progress)

	view, err = f.svc.JumpTo(ctx, testSessionID, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.Progress{Index: 0, Total: 3, Completed: 0}, view.Progress)

	_, err = f.svc.JumpTo(ctx, testSessionID, 2)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
}

func TestImportService_BulkCommitEqualsStepThrough(t *testing.T) {
	ctx := context.Background()

	var stepped, bulk []domain.QuestionRecord
	capture := func(dst *[]domain.QuestionRecord) func(mock.Arguments) {
		return func(args mock.Arguments) { *dst = args.Get(1).([]domain.QuestionRecord) }
	}

	f1 := newImportFixture(t)
	f1.start(t)
	for i := 0; i < 3; i++ {
		_, err := f1.svc.Advance(ctx, testSessionID)
		require.NoError(t, err)
	}
	f1.sink.On("Persist", mock.Anything, mock.Anything).Run(capture(&stepped)).Return(nil)
	_, err := f1.svc.Finalize(ctx, testSessionID)
	require.NoError(t, err)

	f2 := newImportFixture(t)
	f2.start(t)
	f2.sink.On("Persist", mock.Anything, mock.Anything).Run(capture(&bulk)).Return(nil)
	resp, err := f2.svc.BulkCommit(ctx, testSessionID)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Count)

	assert.Equal(t, stepped, bulk)
}

func TestImportService_PersistFailureAllowsRetry(t *testing.T) {
	ctx := context.Background()
	f := newImportFixture(t)
	f.start(t)

	dbErr := errors.New("connection refused")
	f.sink.On("Persist", mock.Anything, mock.Anything).Return(dbErr).Once()
	_, err := f.svc.BulkCommit(ctx, testSessionID)
	var persistErr *domain.PersistError
	require.ErrorAs(t, err, &persistErr)
	assert.ErrorIs(t, err, dbErr)

	view, err := f.svc.GetSession(ctx, testSessionID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.SessionFinalizing), view.Status)
	assert.False(t, view.InFlight)
	assert.Contains(t, view.LastError, "connection refused")

	f.sink.On("Persist", mock.Anything, mock.Anything).Return(nil).Once()
	resp, err := f.svc.Finalize(ctx, testSessionID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.SessionCommitted), resp.Session.Status)
	f.sink.AssertNumberOfCalls(t, "Persist", 2)
}

func TestImportService_ConcurrentFinalizePersistsOnce(t *testing.T) {
	ctx := context.Background()
	f := newImportFixture(t)
	f.start(t)

	release := make(chan struct{})
	f.sink.On("Persist", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { <-release }).
		Return(nil)

	const callers = 5
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.BulkCommit(ctx, testSessionID)
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
				return
			}
			assert.True(t, errors.Is(err, domain.ErrInvalidTransition) || errors.Is(err, domain.ErrCommitInFlight),
				"unexpected error %v", err)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.GreaterOrEqual(t, successes, 1)
	f.sink.AssertNumberOfCalls(t, "Persist", 1)
}

func TestImportService_Cancel(t *testing.T) {
	ctx := context.Background()
	f := newImportFixture(t)
	f.start(t)

	declined := new(MockConfirmer)
	declined.On("Confirm", mock.Anything).Return(false).Once()
	_, err := f.svc.Cancel(ctx, testSessionID, declined)
	assert.Error(t, err)
	view, err := f.svc.GetSession(ctx, testSessionID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.SessionReviewing), view.Status)

	confirmed := new(MockConfirmer)
	confirmed.On("Confirm", mock.Anything).Return(true).Once()
	view, err = f.svc.Cancel(ctx, testSessionID, confirmed)
	require.NoError(t, err)
	assert.Equal(t, string(domain.SessionCancelled), view.Status)
	assert.Equal(t, 0, view.Progress.Total)

	// A second cancel is a no-op and does not prompt again.
	view, err = f.svc.Cancel(ctx, testSessionID, confirmed)
	require.NoError(t, err)
	assert.Equal(t, string(domain.SessionCancelled), view.Status)
	confirmed.AssertNumberOfCalls(t, "Confirm", 1)
	f.sink.AssertNotCalled(t, "Persist", mock.Anything, mock.Anything)

	_, err = f.svc.Advance(ctx, testSessionID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestImportService_UnknownSession(t *testing.T) {
	f := newImportFixture(t)
	_, err := f.svc.GetSession(context.Background(), "01J00000000000000000000000")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = f.svc.BulkCommit(context.Background(), "01J00000000000000000000000")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestImportService_SaveQuestion(t *testing.T) {
	ctx := context.Background()
	f := newImportFixture(t)

	incomplete := domain.QuestionRecord{
		Section:      domain.SectionReadingWriting,
		Domain:       "Craft and Structure",
		QuestionType: "Words in Context",
		PassageText:  "Some passage.",
	}
	_, err := f.svc.SaveQuestion(ctx, incomplete)
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has(domain.FieldQuestionText))

	mathRec := domain.QuestionRecord{
		Section:       domain.SectionMath,
		Domain:        "Algebra",
		QuestionType:  "Linear functions",
		PassageText:   "If f(x) = 2x + 3, what is f(4)?",
		AnswerChoices: domain.AnswerChoices{A: "11"},
	}
	f.sink.On("Persist", ctx, mock.MatchedBy(func(recs []domain.QuestionRecord) bool {
		return len(recs) == 1 && recs[0].AnswerChoices.B == "B" && recs[0].Difficulty == domain.DifficultyMedium
	})).Return(nil).Once()
	resp, err := f.svc.SaveQuestion(ctx, mathRec)
	require.NoError(t, err)
	assert.Equal(t, domain.ChoiceA, resp.Record.CorrectAnswer)
	f.sink.AssertExpectations(t)
}

// committedSaveFailStore fails to record a committed session and remembers
// which sessions were deleted.
type committedSaveFailStore struct {
	domain.SessionStore
	deleted []string
}

func (s *committedSaveFailStore) Save(ctx context.Context, sess domain.Session) error {
	if sess.Status() == domain.SessionCommitted {
		return errors.New("redis: connection reset by peer")
	}
	return s.SessionStore.Save(ctx, sess)
}

func (s *committedSaveFailStore) Delete(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return s.SessionStore.Delete(ctx, id)
}

func TestImportService_CommitSucceedsWhenFinalSaveFails(t *testing.T) {
	ctx := context.Background()
	store := &committedSaveFailStore{SessionStore: NewSessionStore(adapter.NewMemoryCacheAdapter(), time.Hour)}
	sink := new(MockQuestionSink)
	svc := NewImportService(csvimport.NewDefaultParser(), store, sink, metrics.New(nil))
	svc.(*importService).newID = func() string { return testSessionID }

	_, err := svc.StartImport(ctx, threeLineImport)
	require.NoError(t, err)

	sink.On("Persist", mock.Anything, mock.Anything).Return(nil).Once()
	resp, err := svc.BulkCommit(ctx, testSessionID)
	require.NoError(t, err, "the batch was stored")
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, string(domain.SessionCommitted), resp.Session.Status)
	assert.Equal(t, []string{testSessionID}, store.deleted)

	_, err = svc.BulkCommit(ctx, testSessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	sink.AssertNumberOfCalls(t, "Persist", 1)
}

func TestImportService_StaleCommitIsReleased(t *testing.T) {
	ctx := context.Background()
	f := newImportFixture(t)
	f.start(t)

	// A process that died after marking the commit in flight.
	sess, err := f.store.Load(ctx, testSessionID)
	require.NoError(t, err)
	stuck, err := sess.BeginBulkCommit()
	require.NoError(t, err)
	require.NoError(t, f.store.Save(ctx, stuck))

	confirmed := new(MockConfirmer)
	confirmed.On("Confirm", mock.Anything).Return(true)
	_, err = f.svc.Cancel(ctx, testSessionID, confirmed)
	assert.ErrorIs(t, err, domain.ErrCommitInFlight)

	f.svc.(*importService).now = func() time.Time { return time.Now().Add(StaleCommitAfter + time.Minute) }
	view, err := f.svc.GetSession(ctx, testSessionID)
	require.NoError(t, err)
	assert.False(t, view.InFlight)
	assert.Contains(t, view.LastError, "never reported back")

	f.sink.On("Persist", mock.Anything, mock.Anything).Return(nil).Once()
	resp, err := f.svc.Finalize(ctx, testSessionID)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Count)
}
