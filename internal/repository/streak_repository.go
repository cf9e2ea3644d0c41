package repository

import (
	"context"
	"strconv"
	"time"

	"studybuddy/internal/cache"
	"studybuddy/internal/domain"
)

const (
	streakFieldCount     = "count"
	streakFieldLastStudy = "last_study_at"
)

// cacheStreakRepository keeps the study streak in a cache hash.
type cacheStreakRepository struct {
	cache domain.Cache
}

// NewCacheStreakRepository creates a new instance of cacheStreakRepository.
func NewCacheStreakRepository(c domain.Cache) domain.StreakRepository {
	return &cacheStreakRepository{cache: c}
}

// Get returns the zero streak when none was saved. Unreadable fields are treated
// as no streak.
func (r *cacheStreakRepository) Get(ctx context.Context) (domain.StudyStreak, error) {
	fields, err := r.cache.HGetAll(ctx, cache.StreakKey())
	if err != nil {
		return domain.StudyStreak{}, domain.NewInternalError("failed to load study streak", err)
	}
	count, err := strconv.Atoi(fields[streakFieldCount])
	if err != nil || count < 0 {
		return domain.StudyStreak{}, nil
	}
	last, err := time.Parse(time.RFC3339Nano, fields[streakFieldLastStudy])
	if err != nil {
		return domain.StudyStreak{}, nil
	}
	return domain.StudyStreak{Count: count, LastStudyAt: last}, nil
}

func (r *cacheStreakRepository) Save(ctx context.Context, streak domain.StudyStreak) error {
	err := r.cache.HSet(ctx, cache.StreakKey(), map[string]string{
		streakFieldCount:     strconv.Itoa(streak.Count),
		streakFieldLastStudy: streak.LastStudyAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return domain.NewInternalError("failed to save study streak", err)
	}
	return nil
}

func (r *cacheStreakRepository) Reset(ctx context.Context) error {
	if err := r.cache.Delete(ctx, cache.StreakKey()); err != nil {
		return domain.NewInternalError("failed to reset study streak", err)
	}
	return nil
}
