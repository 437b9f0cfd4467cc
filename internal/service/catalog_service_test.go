package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/studyhub/progress/internal/data"
	"github.com/studyhub/progress/internal/domain"
)

func newCatalogService(catalog *data.Catalog) *CatalogService {
	return NewCatalogService(catalog, domain.FixedClock(contestStart), tracenoop.NewTracerProvider().Tracer("test"))
}

func TestCatalogServiceLookups(t *testing.T) {
	ctx := context.Background()
	s := newCatalogService(testCatalog())

	assert.Len(t, s.GetProblems(ctx, nil), 2)

	java := domain.LanguageJava
	assert.Empty(t, s.GetProblems(ctx, &java))

	problem, err := s.GetProblem(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, 20, problem.BaseScore)

	_, err = s.GetProblem(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrProblemNotFound)

	contest, problems, err := s.GetContest(ctx, "X")
	require.NoError(t, err)
	assert.Equal(t, "Contest X", contest.Title)
	assert.Len(t, problems, 2)

	_, _, err = s.GetContest(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrContestNotFound)

	assert.Equal(t, contestStart, s.Now())
}

func TestGetContestProblem(t *testing.T) {
	ctx := context.Background()
	ghost := contestX
	ghost.ID = "ghost"
	ghost.ProblemIDs = []string{"p1", "vanished"}
	s := newCatalogService(data.NewCatalog([]domain.Problem{p1, p2}, []domain.Contest{contestX, ghost}))

	_, problem, err := s.GetContestProblem(ctx, "X", "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", problem.ID)

	_, _, err = s.GetContestProblem(ctx, "ghost", "p2")
	assert.ErrorIs(t, err, domain.ErrProblemNotInContest)

	_, _, err = s.GetContestProblem(ctx, "ghost", "vanished")
	assert.ErrorIs(t, err, domain.ErrProblemNotInContest)

	_, _, err = s.GetContestProblem(ctx, "nope", "p1")
	assert.ErrorIs(t, err, domain.ErrContestNotFound)
}

func TestProblemStats(t *testing.T) {
	catalog, err := data.LoadEmbedded()
	require.NoError(t, err)

	stats := newCatalogService(catalog).GetProblemStats(context.Background())
	assert.Equal(t, len(catalog.Problems()), stats.Total)
	assert.Equal(t, 10, stats.ByLanguage[domain.LanguagePython])
	assert.Equal(t, domain.SumBaseScores(catalog.Problems()), stats.MaxScore)
}
