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

// ContestService tracks solve state and score per contest. Points are only
// earned while a contest is active and only once per problem.
type ContestService struct {
	store   domain.ProgressStore
	clock   domain.Clock
	tracer  trace.Tracer
	logger  *zap.Logger
	metrics *infrastructure.TelemetryMetrics

	mu       sync.RWMutex
	progress domain.ContestProgress
}

// NewContestService creates a contest service with empty progress. Call
// Load to restore persisted progress.
func NewContestService(
	store domain.ProgressStore,
	clock domain.Clock,
	tracer trace.Tracer,
	logger *zap.Logger,
	metrics *infrastructure.TelemetryMetrics,
) *ContestService {
	return &ContestService{
		store:    store,
		clock:    clock,
		tracer:   tracer,
		logger:   logger,
		metrics:  metrics,
		progress: make(domain.ContestProgress),
	}
}

// Load restores contest progress from the store, degrading to empty
// progress on any read or decode failure.
func (s *ContestService) Load(ctx context.Context) {
	ctx, span := s.tracer.Start(ctx, "ContestService.Load")
	defer span.End()

	var stored domain.ContestProgress
	found, err := loadDocument(ctx, s.store, domain.ContestProgressKey, &stored)
	if err != nil {
		s.logger.Warn("Contest progress unreadable, starting empty", zap.Error(err))
		s.metrics.ProgressLoadResets.Add(ctx, 1, metric.WithAttributes(attribute.String("scope", "contest")))
		span.RecordError(err)
		stored = nil
	}

	progress := make(domain.ContestProgress, len(stored))
	for contestID, problems := range stored {
		inner := make(map[string]domain.ProblemProgress, len(problems))
		for id, entry := range problems {
			inner[id] = entry.Normalize()
		}
		progress[contestID] = inner
	}

	span.SetAttributes(
		attribute.Bool("progress.found", found),
		attribute.Int("progress.contests", len(progress)),
	)

	s.mu.Lock()
	s.progress = progress
	s.mu.Unlock()
}

// Status evaluates contest against the service clock
func (s *ContestService) Status(contest domain.Contest) domain.ContestStatus {
	return contest.Status(s.clock)
}

// IsSolved reports whether problemID was solved within contestID
func (s *ContestService) IsSolved(contestID, problemID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progress[contestID][problemID].Solved
}

// ContestProgress returns a copy of the per-problem progress for contestID.
// An unknown contest yields an empty map.
func (s *ContestService) ContestProgress(contestID string) map[string]domain.ProblemProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]domain.ProblemProgress, len(s.progress[contestID]))
	for id, entry := range s.progress[contestID] {
		out[id] = entry
	}
	return out
}

// ContestScore totals progress for contest over its resolved problems.
// MaxScore counts every problem; Score and SolvedCount only solved ones.
// Each problem counts once however often it is listed.
func (s *ContestService) ContestScore(contest domain.Contest, problems []domain.Problem) domain.ContestScore {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inner := s.progress[contest.ID]
	seen := make(map[string]bool, len(problems))
	var score domain.ContestScore
	for _, p := range problems {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		score.TotalProblems++
		score.MaxScore += p.BaseScore
		if entry := inner[p.ID]; entry.Solved {
			score.SolvedCount++
			score.Score += entry.ScoreEarned
		}
	}
	return score
}

// MarkContestProblemSolved records problem as solved within contest. The
// contest status is evaluated once at the moment of the call and returned:
// if the contest is not active nothing changes and accepted is false. If the
// problem is already solved the call succeeds without changing anything.
// The error only reports a failed flush to the store.
func (s *ContestService) MarkContestProblemSolved(ctx context.Context, contest domain.Contest, problem domain.Problem) (accepted bool, status domain.ContestStatus, err error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.MarkContestProblemSolved")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := domain.NowFrom(s.clock)
	status = contest.StatusAt(now)

	span.SetAttributes(
		attribute.String("contest.id", contest.ID),
		attribute.String("contest.status", string(status)),
		attribute.String("problem.id", problem.ID),
	)

	if status != domain.ContestStatusActive {
		s.metrics.ContestSolveRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("status", string(status))))
		s.logger.Info("Contest solve rejected",
			zap.String("contest_id", contest.ID),
			zap.String("problem_id", problem.ID),
			zap.String("status", string(status)),
		)
		return false, status, nil
	}

	inner := s.progress[contest.ID]
	if inner[problem.ID].Solved {
		span.SetAttributes(attribute.Bool("already_solved", true))
		return true, status, nil
	}
	if inner == nil {
		inner = make(map[string]domain.ProblemProgress)
		s.progress[contest.ID] = inner
	}
	inner[problem.ID] = domain.NewSolved(problem, now)

	s.metrics.ProblemsSolved.Add(ctx, 1, metric.WithAttributes(
		attribute.String("scope", "contest"),
		attribute.String("language", string(problem.Language)),
	))

	s.logger.Info("Contest problem solved",
		zap.String("contest_id", contest.ID),
		zap.String("problem_id", problem.ID),
		zap.Int("score", problem.BaseScore),
	)

	if err := saveDocument(ctx, s.store, domain.ContestProgressKey, s.progress); err != nil {
		s.logger.Error("Failed to persist contest progress", zap.Error(err))
		s.metrics.StoreWriteFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("scope", "contest")))
		span.RecordError(err)
		span.SetStatus(codes.Error, "flush failed")
		return true, status, err
	}
	return true, status, nil
}
