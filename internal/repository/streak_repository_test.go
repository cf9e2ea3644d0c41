package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"studybuddy/internal/domain"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockCache) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockCache) HSet(ctx context.Context, key string, values map[string]string) error {
	return m.Called(ctx, key, values).Error(0)
}

const streakKey = "studybuddy:progress:streak:global"

func TestStreakRepository_Get(t *testing.T) {
	ctx := context.Background()
	last := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("saved streak", func(t *testing.T) {
		c := new(MockCache)
		c.On("HGetAll", ctx, streakKey).Return(map[string]string{"count": "4", "last_study_at": "2024-03-01T09:00:00Z"}, nil)

		streak, err := NewCacheStreakRepository(c).Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, 4, streak.Count)
		assert.True(t, last.Equal(streak.LastStudyAt))
		c.AssertExpectations(t)
	})

	t.Run("no streak yet", func(t *testing.T) {
		c := new(MockCache)
		c.On("HGetAll", ctx, streakKey).Return(map[string]string{}, nil)

		streak, err := NewCacheStreakRepository(c).Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.StudyStreak{}, streak)
	})

	t.Run("corrupt timestamp", func(t *testing.T) {
		c := new(MockCache)
		c.On("HGetAll", ctx, streakKey).Return(map[string]string{"count": "2", "last_study_at": "yesterday"}, nil)

		streak, err := NewCacheStreakRepository(c).Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, streak.Count)
	})

	t.Run("cache error", func(t *testing.T) {
		c := new(MockCache)
		c.On("HGetAll", ctx, streakKey).Return(nil, errors.New("connection refused"))

		_, err := NewCacheStreakRepository(c).Get(ctx)
		assert.True(t, domain.IsCode(err, domain.CodeInternal))
	})
}

func TestStreakRepository_SaveReset(t *testing.T) {
	ctx := context.Background()
	c := new(MockCache)
	repo := NewCacheStreakRepository(c)

	at := time.Date(2024, 3, 1, 11, 0, 0, 0, time.FixedZone("CET", 3600))
	c.On("HSet", ctx, streakKey, map[string]string{"count": "2", "last_study_at": "2024-03-01T10:00:00Z"}).Return(nil)
	require.NoError(t, repo.Save(ctx, domain.StudyStreak{Count: 2, LastStudyAt: at}))

	c.On("Delete", ctx, streakKey).Return(nil)
	require.NoError(t, repo.Reset(ctx))

	c.AssertExpectations(t)
}
