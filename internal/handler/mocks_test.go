package handler_test

import (
	"context"
	"io"

	"question-bank/internal/domain"
	"question-bank/internal/dto"
)

// --- Manual Mocks ---

// MockImportService
type MockImportService struct {
	PreviewFunc      func(ctx context.Context, text string) (*dto.ParseReportResponse, error)
	StartImportFunc  func(ctx context.Context, text string) (*dto.StartImportResponse, error)
	GetSessionFunc   func(ctx context.Context, id string) (*dto.SessionResponse, error)
	EditCurrentFunc  func(ctx context.Context, id string, rec domain.QuestionRecord) (*dto.SessionResponse, error)
	StepFunc         func(ctx context.Context, transition, id string) (*dto.SessionResponse, error)
	JumpToFunc       func(ctx context.Context, id string, index int) (*dto.SessionResponse, error)
	CommitFunc       func(ctx context.Context, kind, id string) (*dto.CommitResponse, error)
	CancelFunc       func(ctx context.Context, id string, confirmer domain.Confirmer) (*dto.SessionResponse, error)
	SaveQuestionFunc func(ctx context.Context, rec domain.QuestionRecord) (*dto.SaveQuestionResponse, error)
}

func (m *MockImportService) Preview(ctx context.Context, text string) (*dto.ParseReportResponse, error) {
	if m.PreviewFunc != nil {
		return m.PreviewFunc(ctx, text)
	}
	panic("MockImportService.PreviewFunc not implemented")
}
func (m *MockImportService) StartImport(ctx context.Context, text string) (*dto.StartImportResponse, error) {
	if m.StartImportFunc != nil {
		return m.StartImportFunc(ctx, text)
	}
	panic("MockImportService.StartImportFunc not implemented")
}
func (m *MockImportService) GetSession(ctx context.Context, id string) (*dto.SessionResponse, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, id)
	}
	panic("MockImportService.GetSessionFunc not implemented")
}
func (m *MockImportService) EditCurrent(ctx context.Context, id string, rec domain.QuestionRecord) (*dto.SessionResponse, error) {
	if m.EditCurrentFunc != nil {
		return m.EditCurrentFunc(ctx, id, rec)
	}
	panic("MockImportService.EditCurrentFunc not implemented")
}
func (m *MockImportService) step(ctx context.Context, transition, id string) (*dto.SessionResponse, error) {
	if m.StepFunc != nil {
		return m.StepFunc(ctx, transition, id)
	}
	panic("MockImportService.StepFunc not implemented")
}
func (m *MockImportService) Advance(ctx context.Context, id string) (*dto.SessionResponse, error) {
	return m.step(ctx, "advance", id)
}
func (m *MockImportService) Skip(ctx context.Context, id string) (*dto.SessionResponse, error) {
	return m.step(ctx, "skip", id)
}
func (m *MockImportService) Retreat(ctx context.Context, id string) (*dto.SessionResponse, error) {
	return m.step(ctx, "retreat", id)
}
func (m *MockImportService) JumpTo(ctx context.Context, id string, index int) (*dto.SessionResponse, error) {
	if m.JumpToFunc != nil {
		return m.JumpToFunc(ctx, id, index)
	}
	panic("MockImportService.JumpToFunc not implemented")
}
func (m *MockImportService) commit(ctx context.Context, kind, id string) (*dto.CommitResponse, error) {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx, kind, id)
	}
	panic("MockImportService.CommitFunc not implemented")
}
func (m *MockImportService) BulkCommit(ctx context.Context, id string) (*dto.CommitResponse, error) {
	return m.commit(ctx, "bulk-commit", id)
}
func (m *MockImportService) Finalize(ctx context.Context, id string) (*dto.CommitResponse, error) {
	return m.commit(ctx, "finalize", id)
}
func (m *MockImportService) Cancel(ctx context.Context, id string, confirmer domain.Confirmer) (*dto.SessionResponse, error) {
	if m.CancelFunc != nil {
		return m.CancelFunc(ctx, id, confirmer)
	}
	panic("MockImportService.CancelFunc not implemented")
}
func (m *MockImportService) SaveQuestion(ctx context.Context, rec domain.QuestionRecord) (*dto.SaveQuestionResponse, error) {
	if m.SaveQuestionFunc != nil {
		return m.SaveQuestionFunc(ctx, rec)
	}
	panic("MockImportService.SaveQuestionFunc not implemented")
}

// MockExportService
type MockExportService struct {
	ExportFunc func(ctx context.Context, w io.Writer, section domain.Section) (int, error)
	CountFunc  func(ctx context.Context, section domain.Section) (int, error)
}

func (m *MockExportService) Export(ctx context.Context, w io.Writer, section domain.Section) (int, error) {
	if m.ExportFunc != nil {
		return m.ExportFunc(ctx, w, section)
	}
	panic("MockExportService.ExportFunc not implemented")
}
func (m *MockExportService) Count(ctx context.Context, section domain.Section) (int, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, section)
	}
	panic("MockExportService.CountFunc not implemented")
}
