package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"question-bank/internal/domain"
	"question-bank/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionHandler_SaveQuestion(t *testing.T) {
	svc := &MockImportService{
		SaveQuestionFunc: func(ctx context.Context, rec domain.QuestionRecord) (*dto.SaveQuestionResponse, error) {
			if rec.QuestionText == "" && !rec.Section.IsMathLike() {
				return nil, domain.ValidationErrors{domain.NewMissingFieldError(domain.FieldQuestionText)}
			}
			return &dto.SaveQuestionResponse{Record: rec}, nil
		},
	}
	app := setupApp(svc, nil)

	rec := domain.QuestionRecord{Section: domain.SectionMath, Domain: "Algebra", QuestionType: "Linear functions", PassageText: "2x = 4"}
	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/questions", rec))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	rec.Section = domain.SectionReadingWriting
	resp, err = app.Test(jsonRequest(http.MethodPost, "/api/questions", rec))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestQuestionHandler_Export(t *testing.T) {
	exports := &MockExportService{
		ExportFunc: func(ctx context.Context, w io.Writer, section domain.Section) (int, error) {
			assert.Equal(t, domain.SectionMath, section)
			_, err := io.WriteString(w, "Math,Algebra,Linear functions\n")
			return 1, err
		},
	}
	app := setupApp(&MockImportService{}, exports)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/questions/export?section=Math", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "1", resp.Header.Get("X-Question-Count"))
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "Math,Algebra,Linear functions\n", string(body))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/questions/export?section=Chemistry", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestQuestionHandler_Count(t *testing.T) {
	exports := &MockExportService{
		CountFunc: func(ctx context.Context, section domain.Section) (int, error) {
			return 12, nil
		},
	}
	resp, err := setupApp(&MockImportService{}, exports).Test(httptest.NewRequest(http.MethodGet, "/api/questions/count", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got dto.QuestionCountResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 12, got.Count)
}
