package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"question-bank/internal/domain"
	"question-bank/internal/repository/models"
	"question-bank/internal/util"

	"github.com/jmoiron/sqlx"
)

const questionColumns = `id "id",
		batch_id "batch_id",
		seq "seq",
		section "section",
		domain "domain",
		question_type "question_type",
		passage_text "passage_text",
		passage_image "passage_image",
		question_text "question_text",
		choice_a "choice_a",
		choice_b "choice_b",
		choice_c "choice_c",
		choice_d "choice_d",
		correct_answer "correct_answer",
		explanation "explanation",
		explanation_image "explanation_image",
		difficulty "difficulty",
		hidden "hidden",
		created_at "created_at"`

const insertQuestionQuery = `INSERT INTO questions (
		id, batch_id, seq, section, domain, question_type,
		passage_text, passage_image, question_text,
		choice_a, choice_b, choice_c, choice_d, correct_answer,
		explanation, explanation_image, difficulty, hidden, created_at
	) VALUES (
		?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
	)`

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx.DB
type QuestionDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

// SaveQuestions implements domain.QuestionRepository. It joins the
// transaction carried by ctx when there is one.
func (a *QuestionDatabaseAdapter) SaveQuestions(ctx context.Context, batchID string, records []domain.QuestionRecord) error {
	if batchID == "" {
		return fmt.Errorf("batch id is required")
	}
	exec := GetExecutor(ctx, a.db)
	query := exec.Rebind(insertQuestionQuery)
	now := time.Now().UTC().Truncate(time.Second)

	for i, rec := range records {
		m := toModelQuestion(rec)
		m.ID = util.NewULID()
		m.BatchID = batchID
		m.Seq = i
		m.CreatedAt = now

		_, err := exec.ExecContext(ctx, query,
			m.ID, m.BatchID, m.Seq, m.Section, m.Domain, m.QuestionType,
			m.PassageText, m.PassageImage, m.QuestionText,
			m.ChoiceA, m.ChoiceB, m.ChoiceC, m.ChoiceD, m.CorrectAnswer,
			m.Explanation, m.ExplanationImage, m.Difficulty, m.Hidden, m.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert question %d of batch %s: %w", i+1, batchID, err)
		}
	}
	return nil
}

func whereClause(filter domain.QuestionFilter) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.Section != "" {
		conds = append(conds, "section = ?")
		args = append(args, string(filter.Section))
	}
	if filter.BatchID != "" {
		conds = append(conds, "batch_id = ?")
		args = append(args, filter.BatchID)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// limitClause renders a row limit in the dialect of driverName.
func limitClause(driverName string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if driverName == "oracle" {
		return fmt.Sprintf(" FETCH FIRST %d ROWS ONLY", limit)
	}
	return fmt.Sprintf(" LIMIT %d", limit)
}

// ListQuestions implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) ListQuestions(ctx context.Context, filter domain.QuestionFilter) ([]domain.StoredQuestion, error) {
	exec := GetExecutor(ctx, a.db)
	where, args := whereClause(filter)
	query := exec.Rebind(`SELECT ` + questionColumns + ` FROM questions` + where +
		` ORDER BY id` + limitClause(exec.DriverName(), filter.Limit))

	var rows []models.Question
	if err := exec.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	out := make([]domain.StoredQuestion, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainQuestion(&rows[i]))
	}
	return out, nil
}

// CountQuestions implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) CountQuestions(ctx context.Context, filter domain.QuestionFilter) (int, error) {
	exec := GetExecutor(ctx, a.db)
	where, args := whereClause(filter)
	query := exec.Rebind(`SELECT COUNT(*) "count" FROM questions` + where)

	var count int
	if err := exec.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}

func toModelQuestion(rec domain.QuestionRecord) models.Question {
	hidden := 0
	if rec.Hidden() {
		hidden = 1
	}
	return models.Question{
		Section:          string(rec.Section),
		Domain:           rec.Domain,
		QuestionType:     util.StringToNullString(rec.QuestionType),
		PassageText:      util.StringToNullString(rec.PassageText),
		PassageImage:     util.StringToNullString(rec.PassageImage),
		QuestionText:     util.StringToNullString(rec.QuestionText),
		ChoiceA:          util.StringToNullString(rec.AnswerChoices.A),
		ChoiceB:          util.StringToNullString(rec.AnswerChoices.B),
		ChoiceC:          util.StringToNullString(rec.AnswerChoices.C),
		ChoiceD:          util.StringToNullString(rec.AnswerChoices.D),
		CorrectAnswer:    string(rec.CorrectAnswer),
		Explanation:      util.StringToNullString(rec.Explanation),
		ExplanationImage: util.StringToNullString(rec.ExplanationImage),
		Difficulty:       string(rec.Difficulty),
		Hidden:           hidden,
	}
}

func toDomainQuestion(m *models.Question) domain.StoredQuestion {
	return domain.StoredQuestion{
		ID:        m.ID,
		BatchID:   m.BatchID,
		CreatedAt: m.CreatedAt,
		Record: domain.QuestionRecord{
			Section:      domain.Section(m.Section),
			Domain:       m.Domain,
			QuestionType: util.NullStringToString(m.QuestionType),
			PassageText:  util.NullStringToString(m.PassageText),
			PassageImage: util.NullStringToString(m.PassageImage),
			QuestionText: util.NullStringToString(m.QuestionText),
			AnswerChoices: domain.AnswerChoices{
				A: util.NullStringToString(m.ChoiceA),
				B: util.NullStringToString(m.ChoiceB),
				C: util.NullStringToString(m.ChoiceC),
				D: util.NullStringToString(m.ChoiceD),
			},
			CorrectAnswer:    domain.ChoiceKey(m.CorrectAnswer),
			Explanation:      util.NullStringToString(m.Explanation),
			ExplanationImage: util.NullStringToString(m.ExplanationImage),
			Difficulty:       domain.Difficulty(m.Difficulty),
		},
	}
}
