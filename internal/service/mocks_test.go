package service

import (
	"context"
	"time"

	"question-bank/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockQuestionRepository ---
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) SaveQuestions(ctx context.Context, batchID string, records []domain.QuestionRecord) error {
	args := m.Called(ctx, batchID, records)
	return args.Error(0)
}

func (m *MockQuestionRepository) ListQuestions(ctx context.Context, filter domain.QuestionFilter) ([]domain.StoredQuestion, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StoredQuestion), args.Error(1)
}

func (m *MockQuestionRepository) CountQuestions(ctx context.Context, filter domain.QuestionFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

// --- MockTransactionManager ---
// Runs fn directly unless an error is configured for the call.
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

// --- MockEventPublisher ---
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	args := m.Called(ctx, eventType, payload)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

// --- MockQuestionSink ---
type MockQuestionSink struct {
	mock.Mock
}

func (m *MockQuestionSink) Persist(ctx context.Context, records []domain.QuestionRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockConfirmer ---
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) Confirm(prompt string) bool {
	return m.Called(prompt).Bool(0)
}
