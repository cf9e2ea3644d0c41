package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"studybuddy/internal/cache"
	"studybuddy/internal/config"
	"studybuddy/internal/domain"
)

// progressService implements domain.ProgressService. Listings are cached; any write
// invalidates them.
type progressService struct {
	records domain.ProgressRepository
	streaks domain.StreakRepository
	cache   domain.Cache
	cfg     config.QuizConfig
	logger  *zap.Logger
}

// NewProgressService creates a new instance of progressService. cache may be nil.
func NewProgressService(records domain.ProgressRepository, streaks domain.StreakRepository, c domain.Cache, cfg config.QuizConfig, logger *zap.Logger) domain.ProgressService {
	return &progressService{
		records: records,
		streaks: streaks,
		cache:   c,
		cfg:     cfg,
		logger:  logger,
	}
}

// RecordCompletion loads the streak before anything is written, so a failed read
// leaves no record behind. Once the record is saved the completion stands: a failed
// streak save is logged and the computed streak is still returned.
func (s *progressService) RecordCompletion(ctx context.Context, record *domain.ProgressRecord) (domain.StudyStreak, error) {
	prev, err := s.streaks.Get(ctx)
	if err != nil {
		return domain.StudyStreak{}, err
	}
	next := domain.NextStreak(prev, record.CompletedAt)

	if err := s.records.Save(ctx, record); err != nil {
		return domain.StudyStreak{}, err
	}
	s.invalidateHistory(ctx, record.Subject)

	if err := s.streaks.Save(ctx, next); err != nil {
		s.logger.Warn("Failed to save study streak",
			zap.String("record_id", record.ID),
			zap.Int("streak", next.Count),
			zap.Error(err))
	}

	s.logger.Info("Recorded quiz completion",
		zap.String("record_id", record.ID),
		zap.String("subject", record.Subject),
		zap.Float64("score", record.Score),
		zap.Int("previous_streak", prev.Count),
		zap.Int("streak", next.Count))
	return next, nil
}

func (s *progressService) History(ctx context.Context, subject string, limit int) ([]domain.ProgressRecord, error) {
	if limit <= 0 || (s.cfg.HistoryLimit > 0 && limit > s.cfg.HistoryLimit) {
		limit = s.cfg.HistoryLimit
	}
	cacheable := s.cache != nil && limit == s.cfg.HistoryLimit
	key := cache.HistoryKey(subject)

	if cacheable {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			var records []domain.ProgressRecord
			if errUnmarshal := json.Unmarshal([]byte(cached), &records); errUnmarshal == nil {
				return records, nil
			}
			s.logger.Warn("Discarding unreadable cached history", zap.String("key", key))
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn("History cache lookup failed", zap.String("key", key), zap.Error(err))
		}
	}

	records, err := s.records.List(ctx, subject, limit)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if data, errMarshal := json.Marshal(records); errMarshal == nil {
			if errSet := s.cache.Set(ctx, key, string(data), s.historyTTL()); errSet != nil {
				s.logger.Warn("Failed to cache history", zap.String("key", key), zap.Error(errSet))
			}
		}
	}
	return records, nil
}

func (s *progressService) DeleteRecord(ctx context.Context, id string) error {
	record, err := s.records.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.records.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateHistory(ctx, record.Subject)
	return nil
}

func (s *progressService) Streak(ctx context.Context) (domain.StudyStreak, error) {
	return s.streaks.Get(ctx)
}

func (s *progressService) ResetStreak(ctx context.Context) error {
	return s.streaks.Reset(ctx)
}

func (s *progressService) invalidateHistory(ctx context.Context, subject string) {
	if s.cache == nil {
		return
	}
	keys := []string{cache.HistoryKey("")}
	if subject != "" {
		keys = append(keys, cache.HistoryKey(subject))
	}
	for _, key := range keys {
		if err := s.cache.Delete(ctx, key); err != nil {
			s.logger.Warn("Failed to invalidate history cache", zap.String("key", key), zap.Error(err))
		}
	}
}

func (s *progressService) historyTTL() time.Duration {
	if s.cfg.HistoryTTL > 0 {
		return s.cfg.HistoryTTL
	}
	return 5 * time.Minute
}
