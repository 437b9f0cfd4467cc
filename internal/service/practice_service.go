package service

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/studyhub/progress/internal/domain"
	"github.com/studyhub/progress/internal/infrastructure"
)

// PracticeService tracks solve state and score for standalone practice
// problems. Every mutation rewrites the whole practice document in the
// store; the mutex makes check, mutate and persist one step.
type PracticeService struct {
	store   domain.ProgressStore
	clock   domain.Clock
	tracer  trace.Tracer
	logger  *zap.Logger
	metrics *infrastructure.TelemetryMetrics

	mu       sync.RWMutex
	progress domain.PracticeProgress
}

// NewPracticeService creates a practice service with empty progress. Call
// Load to restore persisted progress.
func NewPracticeService(
	store domain.ProgressStore,
	clock domain.Clock,
	tracer trace.Tracer,
	logger *zap.Logger,
	metrics *infrastructure.TelemetryMetrics,
) *PracticeService {
	return &PracticeService{
		store:    store,
		clock:    clock,
		tracer:   tracer,
		logger:   logger,
		metrics:  metrics,
		progress: make(domain.PracticeProgress),
	}
}

// Load restores progress from the store. A missing, unreadable or
// malformed document leaves the service with empty progress; the failure
// is logged and never returned.
func (s *PracticeService) Load(ctx context.Context) {
	ctx, span := s.tracer.Start(ctx, "PracticeService.Load")
	defer span.End()

	var stored domain.PracticeProgress
	found, err := loadDocument(ctx, s.store, domain.PracticeProgressKey, &stored)
	if err != nil {
		s.logger.Warn("Practice progress unreadable, starting empty", zap.Error(err))
		s.metrics.ProgressLoadResets.Add(ctx, 1, metric.WithAttributes(attribute.String("scope", "practice")))
		span.RecordError(err)
		stored = nil
	}

	progress := make(domain.PracticeProgress, len(stored))
	for id, entry := range stored {
		progress[id] = entry.Normalize()
	}

	span.SetAttributes(
		attribute.Bool("progress.found", found),
		attribute.Int("progress.entries", len(progress)),
	)

	s.mu.Lock()
	s.progress = progress
	s.mu.Unlock()
}

// IsSolved reports whether problemID has been solved in practice
func (s *PracticeService) IsSolved(problemID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progress[problemID].Solved
}

// Score returns the score earned on problemID, 0 if unsolved
func (s *PracticeService) Score(problemID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progress[problemID].ScoreEarned
}

// Progress returns a copy of the practice progress
func (s *PracticeService) Progress() domain.PracticeProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progress.Clone()
}

// MarkSolved records problem as solved and earns its base score. Marking an
// already solved problem changes nothing. The returned error only reports a
// failed flush to the store; the solve itself is kept in memory.
func (s *PracticeService) MarkSolved(ctx context.Context, problem domain.Problem) error {
	ctx, span := s.tracer.Start(ctx, "PracticeService.MarkSolved")
	defer span.End()

	span.SetAttributes(
		attribute.String("problem.id", problem.ID),
		attribute.String("problem.language", string(problem.Language)),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.progress[problem.ID].Solved {
		span.SetAttributes(attribute.Bool("already_solved", true))
		return nil
	}

	s.progress[problem.ID] = domain.NewSolved(problem, domain.NowFrom(s.clock))

	s.metrics.ProblemsSolved.Add(ctx, 1, metric.WithAttributes(
		attribute.String("scope", "practice"),
		attribute.String("language", string(problem.Language)),
	))

	s.logger.Info("Practice problem solved",
		zap.String("problem_id", problem.ID),
		zap.Int("score", problem.BaseScore),
	)

	if err := saveDocument(ctx, s.store, domain.PracticeProgressKey, s.progress); err != nil {
		s.logger.Error("Failed to persist practice progress", zap.Error(err))
		s.metrics.StoreWriteFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("scope", "practice")))
		span.RecordError(err)
		span.SetStatus(codes.Error, "flush failed")
		return err
	}
	return nil
}

// LanguageStats summarises practice progress over the problems of language
// found in problems. MaxScore counts every problem regardless of progress.
func (s *PracticeService) LanguageStats(language domain.Language, problems []domain.Problem) domain.LanguageStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := domain.LanguageStats{Language: language}
	for _, p := range problems {
		if p.Language != language {
			continue
		}
		stats.TotalProblems++
		stats.MaxScore += p.BaseScore
		if entry := s.progress[p.ID]; entry.Solved {
			stats.SolvedCount++
			stats.Score += entry.ScoreEarned
		}
	}
	return stats
}

// TotalScore sums the earned score over every problem in problems
func (s *PracticeService) TotalScore(problems []domain.Problem) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, p := range problems {
		total += s.progress[p.ID].ScoreEarned
	}
	return total
}
