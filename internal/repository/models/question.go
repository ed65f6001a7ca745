package models

import (
	"database/sql"
	"time"
)

// Question maps one row of the questions table. Optional text columns are
// NullString because Oracle stores ” as NULL.
type Question struct {
	ID               string         `db:"id"`
	BatchID          string         `db:"batch_id"`
	Seq              int            `db:"seq"`
	Section          string         `db:"section"`
	Domain           string         `db:"domain"`
	QuestionType     sql.NullString `db:"question_type"`
	PassageText      sql.NullString `db:"passage_text"`
	PassageImage     sql.NullString `db:"passage_image"`
	QuestionText     sql.NullString `db:"question_text"`
	ChoiceA          sql.NullString `db:"choice_a"`
	ChoiceB          sql.NullString `db:"choice_b"`
	ChoiceC          sql.NullString `db:"choice_c"`
	ChoiceD          sql.NullString `db:"choice_d"`
	CorrectAnswer    string         `db:"correct_answer"`
	Explanation      sql.NullString `db:"explanation"`
	ExplanationImage sql.NullString `db:"explanation_image"`
	Difficulty       string         `db:"difficulty"`
	Hidden           int            `db:"hidden"`
	CreatedAt        time.Time      `db:"created_at"`
}
