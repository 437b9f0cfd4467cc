package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/studyhub/progress/internal/domain"
	"github.com/studyhub/progress/internal/infrastructure"
	"github.com/studyhub/progress/internal/repository"
)

// SessionProgress holds the progress services of one session
type SessionProgress struct {
	Practice *PracticeService
	Contests *ContestService

	lastUsed time.Time
}

// SessionRegistry hands out one practice/contest service pair per session,
// each reading and writing its own namespace of the backing store.
// Progress is loaded the first time a session is seen.
type SessionRegistry struct {
	backend domain.ProgressStore
	clock   domain.Clock
	tracer  trace.Tracer
	logger  *zap.Logger
	metrics *infrastructure.TelemetryMetrics

	mu       sync.Mutex
	sessions map[uuid.UUID]*SessionProgress
}

// NewSessionRegistry creates a registry over backend
func NewSessionRegistry(
	backend domain.ProgressStore,
	clock domain.Clock,
	tracer trace.Tracer,
	logger *zap.Logger,
	metrics *infrastructure.TelemetryMetrics,
) *SessionRegistry {
	return &SessionRegistry{
		backend:  backend,
		clock:    clock,
		tracer:   tracer,
		logger:   logger,
		metrics:  metrics,
		sessions: make(map[uuid.UUID]*SessionProgress),
	}
}

// Get returns the progress services for sessionID, loading them on first
// use. Loading happens outside the registry lock so one slow store read
// does not hold up other sessions. When two requests race to load the same
// session, the first one registered wins and the other copy is discarded
// before it is ever mutated.
func (r *SessionRegistry) Get(ctx context.Context, sessionID uuid.UUID) *SessionProgress {
	now := domain.NowFrom(r.clock)

	r.mu.Lock()
	if sp, ok := r.sessions[sessionID]; ok {
		sp.lastUsed = now
		r.mu.Unlock()
		return sp
	}
	r.mu.Unlock()

	loaded := r.load(ctx, sessionID, now)

	r.mu.Lock()
	defer r.mu.Unlock()
	if sp, ok := r.sessions[sessionID]; ok {
		sp.lastUsed = now
		return sp
	}
	r.sessions[sessionID] = loaded
	r.metrics.ActiveSessions.Add(ctx, 1)
	return loaded
}

func (r *SessionRegistry) load(ctx context.Context, sessionID uuid.UUID, now time.Time) *SessionProgress {
	store := repository.NewScopedStore(r.backend, sessionID.String())
	logger := infrastructure.SessionLogger(r.logger, sessionID.String())

	sp := &SessionProgress{
		Practice: NewPracticeService(store, r.clock, r.tracer, logger, r.metrics),
		Contests: NewContestService(store, r.clock, r.tracer, logger, r.metrics),
		lastUsed: now,
	}
	sp.Practice.Load(ctx)
	sp.Contests.Load(ctx)
	return sp
}

// Len returns the number of sessions held in memory
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Evict drops sessions unused for longer than idle. Their progress stays in
// the store and is loaded again on next use.
func (r *SessionRegistry) Evict(ctx context.Context, idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := domain.NowFrom(r.clock).Add(-idle)
	evicted := 0
	for id, sp := range r.sessions {
		if sp.lastUsed.Before(cutoff) {
			delete(r.sessions, id)
			evicted++
		}
	}

	if evicted > 0 {
		r.metrics.ActiveSessions.Add(ctx, int64(-evicted))
		r.logger.Info("Evicted idle sessions", zap.Int("count", evicted))
	}
	return evicted
}

// RunEviction evicts idle sessions every interval until ctx is cancelled
func (r *SessionRegistry) RunEviction(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Evict(ctx, idle)
		}
	}
}
