package service

import (
	"context"
	"io"

	"question-bank/internal/csvimport"
	"question-bank/internal/domain"
)

// ExportService renders stored questions back into importable CSV.
type ExportService interface {
	Export(ctx context.Context, w io.Writer, section domain.Section) (int, error)
	Count(ctx context.Context, section domain.Section) (int, error)
}

type exportService struct {
	repo     domain.QuestionRepository
	exporter *csvimport.Exporter
}

// NewExportService creates a new instance of exportService
func NewExportService(repo domain.QuestionRepository, exporter *csvimport.Exporter) ExportService {
	return &exportService{repo: repo, exporter: exporter}
}

// Export writes every stored question of section (all when empty) to w and
// returns how many were written.
func (s *exportService) Export(ctx context.Context, w io.Writer, section domain.Section) (int, error) {
	stored, err := s.repo.ListQuestions(ctx, domain.QuestionFilter{Section: section})
	if err != nil {
		return 0, domain.NewInternalError("failed to list questions for export", err)
	}
	records := make([]domain.QuestionRecord, 0, len(stored))
	for _, q := range stored {
		records = append(records, q.Record)
	}
	if err := s.exporter.Write(w, records); err != nil {
		return 0, domain.NewInternalError("failed to write export", err)
	}
	return len(records), nil
}

// Count implements ExportService
func (s *exportService) Count(ctx context.Context, section domain.Section) (int, error) {
	n, err := s.repo.CountQuestions(ctx, domain.QuestionFilter{Section: section})
	if err != nil {
		return 0, domain.NewInternalError("failed to count questions", err)
	}
	return n, nil
}
