package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestWithTransaction_Commit(t *testing.T) {
	db, mock := setupTestDB(t)
	tm := NewTransactionManagerAdapter(db)
	repo := NewQuestionDatabaseAdapter(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO questions (")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO questions (")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		assert.NotEqual(t, db, GetExecutor(ctx, db))
		return repo.SaveQuestions(ctx, "batch-1", sampleRecords())
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_RollbackOnError(t *testing.T) {
	db, mock := setupTestDB(t)
	tm := NewTransactionManagerAdapter(db)
	repo := NewQuestionDatabaseAdapter(db)

	insertErr := errors.New("constraint violated")
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO questions (")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO questions (")).WillReturnError(insertErr)
	mock.ExpectRollback()

	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		return repo.SaveQuestions(ctx, "batch-1", sampleRecords())
	})
	assert.ErrorIs(t, err, insertErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_NestedJoinsOuter(t *testing.T) {
	db, mock := setupTestDB(t)
	tm := NewTransactionManagerAdapter(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		outer := GetExecutor(ctx, db)
		return tm.WithTransaction(ctx, func(inner context.Context) error {
			assert.Equal(t, outer, GetExecutor(inner, db))
			return nil
		})
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_BeginError(t *testing.T) {
	db, mock := setupTestDB(t)
	tm := NewTransactionManagerAdapter(db)

	mock.ExpectBegin().WillReturnError(errors.New("no connection"))
	called := false
	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
}
