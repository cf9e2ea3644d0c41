package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"studybuddy/internal/domain"
)

// --- MockGenerationClient ---
type MockGenerationClient struct {
	mock.Mock
}

func (m *MockGenerationClient) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// --- MockQuizGenerator ---
type MockQuizGenerator struct {
	mock.Mock
}

func (m *MockQuizGenerator) GenerateQuestions(ctx context.Context, req domain.QuestionRequest) (*domain.QuestionSet, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuestionSet), args.Error(1)
}

func (m *MockQuizGenerator) GenerateFeedback(ctx context.Context, req domain.FeedbackRequest) (*domain.FeedbackReport, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeedbackReport), args.Error(1)
}

// --- MockProgressService ---
type MockProgressService struct {
	mock.Mock
}

func (m *MockProgressService) RecordCompletion(ctx context.Context, record *domain.ProgressRecord) (domain.StudyStreak, error) {
	args := m.Called(ctx, record)
	return args.Get(0).(domain.StudyStreak), args.Error(1)
}

func (m *MockProgressService) History(ctx context.Context, subject string, limit int) ([]domain.ProgressRecord, error) {
	args := m.Called(ctx, subject, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProgressRecord), args.Error(1)
}

func (m *MockProgressService) DeleteRecord(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProgressService) Streak(ctx context.Context) (domain.StudyStreak, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.StudyStreak), args.Error(1)
}

func (m *MockProgressService) ResetStreak(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockProgressRepository ---
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Save(ctx context.Context, record *domain.ProgressRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockProgressRepository) Get(ctx context.Context, id string) (*domain.ProgressRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) List(ctx context.Context, subject string, limit int) ([]domain.ProgressRecord, error) {
	args := m.Called(ctx, subject, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- MockStreakRepository ---
type MockStreakRepository struct {
	mock.Mock
}

func (m *MockStreakRepository) Get(ctx context.Context) (domain.StudyStreak, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.StudyStreak), args.Error(1)
}

func (m *MockStreakRepository) Save(ctx context.Context, streak domain.StudyStreak) error {
	args := m.Called(ctx, streak)
	return args.Error(0)
}

func (m *MockStreakRepository) Reset(ctx context.Context) error {
	args := m.Called(ctx)
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

func (m *MockCache) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockCache) HSet(ctx context.Context, key string, values map[string]string) error {
	args := m.Called(ctx, key, values)
	return args.Error(0)
}
