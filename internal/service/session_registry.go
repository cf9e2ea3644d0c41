package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"studybuddy/internal/domain"
	"studybuddy/internal/util"
)

type sessionEntry struct {
	// mu is held for the whole duration of an action.
	mu      sync.Mutex
	session *domain.QuizSession
	// evicted is set under mu once the sweeper has dropped the entry.
	evicted bool

	snapMu   sync.RWMutex
	snapshot domain.QuizSession
}

// SessionRegistry keeps the live quiz sessions of the process and serialises the
// actions run on each of them. It implements domain.SessionService.
type SessionRegistry struct {
	orchestrator *Orchestrator
	ttl          time.Duration
	logger       *zap.Logger

	mu      sync.RWMutex
	entries map[string]*sessionEntry
	group   singleflight.Group
}

// NewSessionRegistry creates a registry driving sessions through orchestrator.
// Sessions idle for longer than ttl are dropped by Sweep; a zero ttl keeps them.
func NewSessionRegistry(orchestrator *Orchestrator, ttl time.Duration, logger *zap.Logger) *SessionRegistry {
	r := &SessionRegistry{
		orchestrator: orchestrator,
		ttl:          ttl,
		logger:       logger,
		entries:      make(map[string]*sessionEntry),
	}
	orchestrator.OnTransition(r.publish)
	return r
}

var _ domain.SessionService = (*SessionRegistry)(nil)

func (r *SessionRegistry) Create(ctx context.Context, subject, grade string) (domain.QuizSession, error) {
	subject = strings.TrimSpace(subject)
	grade = strings.TrimSpace(grade)
	if subject == "" {
		return domain.QuizSession{}, domain.ValidationErrors{domain.NewMissingFieldError("subject")}
	}

	s := domain.NewQuizSession(util.NewULID(), subject, grade)
	s.UpdatedAt = s.CreatedAt
	e := &sessionEntry{session: s, snapshot: s.Snapshot()}

	r.mu.Lock()
	r.entries[s.ID] = e
	r.mu.Unlock()

	r.logger.Info("Session created",
		zap.String("session_id", s.ID),
		zap.String("subject", subject),
		zap.String("grade", grade))
	return e.read(), nil
}

func (r *SessionRegistry) Get(ctx context.Context, id string) (domain.QuizSession, error) {
	e, err := r.lookup(id)
	if err != nil {
		return domain.QuizSession{}, err
	}
	return e.read(), nil
}

func (r *SessionRegistry) Start(ctx context.Context, id string, opts domain.StartOptions) (domain.QuizSession, error) {
	return r.act(ctx, id, "start:"+id, func(ctx context.Context, s *domain.QuizSession) error {
		return r.orchestrator.Start(ctx, s, opts)
	})
}

func (r *SessionRegistry) Answer(ctx context.Context, id string, optionIndex int) (domain.QuizSession, error) {
	e, err := r.lookup(id)
	if err != nil {
		return domain.QuizSession{}, err
	}
	// Identical concurrent submissions for the same question collapse into one.
	key := fmt.Sprintf("answer:%s:%d:%d", id, e.read().CurrentIndex, optionIndex)
	return r.act(ctx, id, key, func(ctx context.Context, s *domain.QuizSession) error {
		return r.orchestrator.Answer(ctx, s, optionIndex)
	})
}

func (r *SessionRegistry) Retry(ctx context.Context, id string) (domain.QuizSession, error) {
	return r.act(ctx, id, "retry:"+id, func(ctx context.Context, s *domain.QuizSession) error {
		return r.orchestrator.Retry(ctx, s)
	})
}

// Abandon cancels any in-flight call of the session and forgets it.
func (r *SessionRegistry) Abandon(ctx context.Context, id string) error {
	r.mu.Lock()
	e, ok := r.entries[id]
	delete(r.entries, id)
	r.mu.Unlock()
	if !ok {
		return domain.NewSessionNotFoundError(id)
	}
	r.orchestrator.Abandon(e.session)
	return nil
}

// AbandonAll abandons every live session. It is used on shutdown.
func (r *SessionRegistry) AbandonAll() int {
	r.mu.Lock()
	entries := r.entries
	r.entries = make(map[string]*sessionEntry)
	r.mu.Unlock()

	for _, e := range entries {
		r.orchestrator.Abandon(e.session)
	}
	return len(entries)
}

// Sweep forgets sessions whose last activity is older than the registry TTL and
// returns how many it dropped. Sessions with an action in progress are kept.
func (r *SessionRegistry) Sweep(now time.Time) int {
	if r.ttl <= 0 {
		return 0
	}

	var expired []*sessionEntry
	r.mu.Lock()
	for id, e := range r.entries {
		if now.Sub(e.lastActivity()) <= r.ttl {
			continue
		}
		if !e.mu.TryLock() {
			continue
		}
		e.evicted = true
		e.mu.Unlock()
		delete(r.entries, id)
		expired = append(expired, e)
	}
	r.mu.Unlock()

	for _, e := range expired {
		r.orchestrator.Abandon(e.session)
		r.logger.Debug("Session expired",
			zap.String("session_id", e.session.ID),
			zap.String("state", string(e.session.State)))
	}
	return len(expired)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *SessionRegistry) RunSweeper(ctx context.Context, interval time.Duration) {
	if r.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := r.Sweep(now); n > 0 {
				r.logger.Info("Expired idle sessions", zap.Int("count", n), zap.Int("live", r.Len()))
			}
		}
	}
}

// Len returns the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *SessionRegistry) act(ctx context.Context, id, key string, fn func(context.Context, *domain.QuizSession) error) (domain.QuizSession, error) {
	e, err := r.lookup(id)
	if err != nil {
		return domain.QuizSession{}, err
	}

	v, err, shared := r.group.Do(key, func() (interface{}, error) {
		if !e.mu.TryLock() {
			return nil, domain.NewSessionBusyError(id)
		}
		defer e.mu.Unlock()
		if e.evicted {
			return nil, domain.NewSessionNotFoundError(id)
		}

		if err := fn(ctx, e.session); err != nil {
			return nil, err
		}
		e.store(e.session.Snapshot())
		return e.read(), nil
	})
	if shared {
		r.logger.Debug("Collapsed duplicate session action", zap.String("key", key))
	}
	if err != nil {
		return domain.QuizSession{}, err
	}
	return v.(domain.QuizSession), nil
}

func (r *SessionRegistry) lookup(id string) (*sessionEntry, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.NewSessionNotFoundError(id)
	}
	return e, nil
}

// publish runs on the acting goroutine after every state change so Get observes
// intermediate states like loading and grading.
func (r *SessionRegistry) publish(s *domain.QuizSession) {
	r.mu.RLock()
	e, ok := r.entries[s.ID]
	r.mu.RUnlock()
	if ok {
		e.store(s.Snapshot())
	}
}

func (e *sessionEntry) store(snap domain.QuizSession) {
	e.snapMu.Lock()
	e.snapshot = snap
	e.snapMu.Unlock()
}

func (e *sessionEntry) lastActivity() time.Time {
	e.snapMu.RLock()
	defer e.snapMu.RUnlock()
	if e.snapshot.UpdatedAt.After(e.snapshot.CreatedAt) {
		return e.snapshot.UpdatedAt
	}
	return e.snapshot.CreatedAt
}

func (e *sessionEntry) read() domain.QuizSession {
	e.snapMu.RLock()
	defer e.snapMu.RUnlock()
	snap := e.snapshot
	snap.Answers = append([]domain.AnswerRecord(nil), e.snapshot.Answers...)
	return snap
}
