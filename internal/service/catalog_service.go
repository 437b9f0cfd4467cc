package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/studyhub/progress/internal/data"
	"github.com/studyhub/progress/internal/domain"
)

// ProblemStats represents statistics about the problem set
type ProblemStats struct {
	Total        int                       `json:"total"`
	MaxScore     int                       `json:"max_score"`
	ByLanguage   map[domain.Language]int   `json:"by_language"`
	ByDifficulty map[domain.Difficulty]int `json:"by_difficulty"`
	ByTopic      map[string]int            `json:"by_topic"`
}

// CatalogService serves read-only lookups over the catalog
type CatalogService struct {
	catalog *data.Catalog
	clock   domain.Clock
	tracer  trace.Tracer
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalog *data.Catalog, clock domain.Clock, tracer trace.Tracer) *CatalogService {
	return &CatalogService{
		catalog: catalog,
		clock:   clock,
		tracer:  tracer,
	}
}

// Catalog returns the underlying catalog
func (s *CatalogService) Catalog() *data.Catalog {
	return s.catalog
}

// Now reads the service clock
func (s *CatalogService) Now() time.Time {
	return domain.NowFrom(s.clock)
}

// GetProblems returns all problems, or only those of language when set
func (s *CatalogService) GetProblems(ctx context.Context, language *domain.Language) []domain.Problem {
	_, span := s.tracer.Start(ctx, "CatalogService.GetProblems")
	defer span.End()

	if language != nil {
		span.SetAttributes(attribute.String("problem.language", string(*language)))
		return s.catalog.ProblemsByLanguage(*language)
	}
	return s.catalog.Problems()
}

// GetProblem returns a specific problem
func (s *CatalogService) GetProblem(ctx context.Context, id string) (domain.Problem, error) {
	_, span := s.tracer.Start(ctx, "CatalogService.GetProblem")
	defer span.End()

	span.SetAttributes(attribute.String("problem.id", id))
	problem, ok := s.catalog.Problem(id)
	if !ok {
		return domain.Problem{}, domain.ErrProblemNotFound
	}
	return problem, nil
}

// GetContest returns a contest together with its resolved problems
func (s *CatalogService) GetContest(ctx context.Context, id string) (domain.Contest, []domain.Problem, error) {
	_, span := s.tracer.Start(ctx, "CatalogService.GetContest")
	defer span.End()

	span.SetAttributes(attribute.String("contest.id", id))
	contest, ok := s.catalog.Contest(id)
	if !ok {
		return domain.Contest{}, nil, domain.ErrContestNotFound
	}
	return contest, s.catalog.ContestProblems(contest), nil
}

// GetContestProblem resolves a problem that belongs to a contest
func (s *CatalogService) GetContestProblem(ctx context.Context, contestID, problemID string) (domain.Contest, domain.Problem, error) {
	contest, _, err := s.GetContest(ctx, contestID)
	if err != nil {
		return domain.Contest{}, domain.Problem{}, err
	}
	if !contest.HasProblem(problemID) {
		return domain.Contest{}, domain.Problem{}, domain.ErrProblemNotInContest
	}
	problem, ok := s.catalog.Problem(problemID)
	if !ok {
		return domain.Contest{}, domain.Problem{}, domain.ErrProblemNotInContest
	}
	return contest, problem, nil
}

// GetContests returns every contest in catalog order
func (s *CatalogService) GetContests(ctx context.Context) []domain.Contest {
	_, span := s.tracer.Start(ctx, "CatalogService.GetContests")
	defer span.End()

	return s.catalog.Contests()
}

// GetProblemStats returns statistics about the problem set
func (s *CatalogService) GetProblemStats(ctx context.Context) *ProblemStats {
	_, span := s.tracer.Start(ctx, "CatalogService.GetProblemStats")
	defer span.End()

	problems := s.catalog.Problems()
	stats := &ProblemStats{
		Total:        len(problems),
		MaxScore:     domain.SumBaseScores(problems),
		ByLanguage:   make(map[domain.Language]int),
		ByDifficulty: make(map[domain.Difficulty]int),
		ByTopic:      make(map[string]int),
	}

	for _, p := range problems {
		stats.ByLanguage[p.Language]++
		stats.ByDifficulty[p.Difficulty]++
		for _, topic := range p.Topics {
			stats.ByTopic[topic]++
		}
	}

	return stats
}
