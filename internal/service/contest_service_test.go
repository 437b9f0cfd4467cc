package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhub/progress/internal/domain"
)

func TestContestScoringAcrossPhases(t *testing.T) {
	ctx := context.Background()
	clock := &mutableClock{now: contestStart.Add(-time.Minute)}
	s := newContests(t, newMemoryStore(), clock)
	problems := []domain.Problem{p1, p2}

	// upcoming
	accepted, status, err := s.MarkContestProblemSolved(ctx, contestX, p1)
	require.NoError(t, err)
	assert.False(t, accepted)
	assert.Equal(t, domain.ContestStatusUpcoming, status)
	assert.Equal(t, domain.ContestScore{MaxScore: 30, TotalProblems: 2}, s.ContestScore(contestX, problems))

	// active
	clock.Set(contestStart.Add(30 * time.Minute))
	accepted, status, err = s.MarkContestProblemSolved(ctx, contestX, p1)
	require.NoError(t, err)
	assert.True(t, accepted)
	assert.Equal(t, domain.ContestStatusActive, status)
	assert.Equal(t, domain.ContestScore{Score: 10, MaxScore: 30, SolvedCount: 1, TotalProblems: 2}, s.ContestScore(contestX, problems))

	// finished
	clock.Set(contestEnd.Add(time.Second))
	accepted, status, err = s.MarkContestProblemSolved(ctx, contestX, p2)
	require.NoError(t, err)
	assert.False(t, accepted)
	assert.Equal(t, domain.ContestStatusFinished, status)
	assert.False(t, s.IsSolved("X", "p2"))
	assert.Equal(t, domain.ContestScore{Score: 10, MaxScore: 30, SolvedCount: 1, TotalProblems: 2}, s.ContestScore(contestX, problems))
}

func TestContestBoundariesAreActive(t *testing.T) {
	ctx := context.Background()

	for _, at := range []time.Time{contestStart, contestEnd} {
		s := newContests(t, newMemoryStore(), domain.FixedClock(at))
		accepted, _, err := s.MarkContestProblemSolved(ctx, contestX, p2)
		require.NoError(t, err)
		assert.True(t, accepted, at.String())
		assert.Equal(t, domain.ContestStatusActive, s.Status(contestX))
	}
}

func TestContestSolveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	clock := &mutableClock{now: contestStart}
	s := newContests(t, newMemoryStore(), clock)

	accepted, _, err := s.MarkContestProblemSolved(ctx, contestX, p1)
	require.NoError(t, err)
	require.True(t, accepted)

	clock.Set(contestStart.Add(time.Minute))
	accepted, _, err = s.MarkContestProblemSolved(ctx, contestX, p1)
	require.NoError(t, err)
	assert.True(t, accepted)

	entry := s.ContestProgress("X")["p1"]
	assert.Equal(t, contestStart, *entry.SolvedAt)
	assert.Equal(t, 10, entry.ScoreEarned)
}

func TestContestsAreIndependentNamespaces(t *testing.T) {
	ctx := context.Background()
	s := newContests(t, newMemoryStore(), domain.FixedClock(contestStart))

	other := contestX
	other.ID = "Y"

	_, _, err := s.MarkContestProblemSolved(ctx, contestX, p1)
	require.NoError(t, err)

	assert.True(t, s.IsSolved("X", "p1"))
	assert.False(t, s.IsSolved("Y", "p1"))
	assert.Equal(t, 0, s.ContestScore(other, []domain.Problem{p1, p2}).Score)

	practice := newPractice(t, newMemoryStore(), nil)
	assert.False(t, practice.IsSolved("p1"))
}

func TestContestProgressForUnknownContest(t *testing.T) {
	s := newContests(t, newMemoryStore(), nil)

	progress := s.ContestProgress("nope")
	assert.NotNil(t, progress)
	assert.Empty(t, progress)
}

func TestContestProgressSurvivesReload(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	clock := domain.FixedClock(contestStart)

	s := newContests(t, store, clock)
	_, _, err := s.MarkContestProblemSolved(ctx, contestX, p2)
	require.NoError(t, err)

	reloaded := newContests(t, store, clock)
	assert.True(t, reloaded.IsSolved("X", "p2"))
	assert.Equal(t, 20, reloaded.ContestScore(contestX, []domain.Problem{p1, p2}).Score)
}

func TestCorruptContestDocumentStartsEmpty(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	require.NoError(t, store.Write(ctx, domain.ContestProgressKey, `{"X":["p1"]}`))

	s := newContests(t, store, nil)
	assert.False(t, s.IsSolved("X", "p1"))
	assert.Empty(t, s.ContestProgress("X"))
}

func TestContestSolveReportsFlushFailure(t *testing.T) {
	ctx := context.Background()
	s := newContests(t, failingStore{newMemoryStore()}, domain.FixedClock(contestStart))

	accepted, _, err := s.MarkContestProblemSolved(ctx, contestX, p1)
	assert.True(t, accepted)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.True(t, s.IsSolved("X", "p1"))
}

func TestContestScoreDropsUnresolvedProblems(t *testing.T) {
	s := newContests(t, newMemoryStore(), nil)

	score := s.ContestScore(contestX, []domain.Problem{p1})
	assert.Equal(t, 1, score.TotalProblems)
	assert.Equal(t, 10, score.MaxScore)
	assert.Equal(t, 0.0, score.Percent())
}

func TestContestScoreCountsRepeatedProblemOnce(t *testing.T) {
	ctx := context.Background()
	s := newContests(t, newMemoryStore(), domain.FixedClock(contestStart))

	repeated := contestX
	repeated.ProblemIDs = []string{"p1", "p1", "p2"}

	accepted, _, err := s.MarkContestProblemSolved(ctx, repeated, p1)
	require.NoError(t, err)
	require.True(t, accepted)

	score := s.ContestScore(repeated, []domain.Problem{p1, p1, p2})
	assert.Equal(t, domain.ContestScore{Score: 10, MaxScore: 30, SolvedCount: 1, TotalProblems: 2}, score)
	assert.InDelta(t, 50.0, score.Percent(), 0.001)
}
