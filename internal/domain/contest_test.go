package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContestStatusAt(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	contest := Contest{ID: "X", StartTime: start, EndTime: start.Add(7 * 24 * time.Hour)}

	testCases := []struct {
		name string
		now  time.Time
		want ContestStatus
	}{
		{"before start", start.Add(-time.Hour), ContestStatusUpcoming},
		{"one tick before start", start.Add(-time.Nanosecond), ContestStatusUpcoming},
		{"exactly at start", start, ContestStatusActive},
		{"middle", start.Add(time.Hour), ContestStatusActive},
		{"exactly at end", contest.EndTime, ContestStatusActive},
		{"one tick after end", contest.EndTime.Add(time.Nanosecond), ContestStatusFinished},
		{"long after", start.Add(8 * 24 * time.Hour), ContestStatusFinished},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, contest.StatusAt(tc.now))
		})
	}
}

func TestContestStatusIsMonotonic(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	contest := Contest{StartTime: start, EndTime: start.Add(time.Hour)}

	rank := map[ContestStatus]int{
		ContestStatusUpcoming: 0,
		ContestStatusActive:   1,
		ContestStatusFinished: 2,
	}
	prev := -1
	for now := start.Add(-10 * time.Minute); now.Before(start.Add(80 * time.Minute)); now = now.Add(time.Minute) {
		r := rank[contest.StatusAt(now)]
		assert.GreaterOrEqual(t, r, prev, "status went backwards at %s", now)
		prev = r
	}
}

func TestContestStatusUsesClock(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	contest := Contest{StartTime: start, EndTime: start.Add(time.Hour)}

	assert.Equal(t, ContestStatusActive, contest.Status(FixedClock(start.Add(time.Minute))))
	assert.Equal(t, ContestStatusFinished, contest.Status(FixedClock(start.Add(2*time.Hour))))
}

func TestContestTimeRemaining(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	contest := Contest{StartTime: start, EndTime: start.Add(time.Hour)}

	assert.Equal(t, 5*time.Minute, contest.TimeRemaining(start.Add(-5*time.Minute)))
	assert.Equal(t, 40*time.Minute, contest.TimeRemaining(start.Add(20*time.Minute)))
	assert.Equal(t, time.Duration(0), contest.TimeRemaining(start.Add(2*time.Hour)))
}

func TestPercentGuardsEmptyBucket(t *testing.T) {
	assert.Equal(t, 0.0, Percent(0, 0))
	assert.Equal(t, 0.0, ContestScore{}.Percent())
	assert.Equal(t, 0.0, LanguageStats{SolvedCount: 3}.Percent())
	assert.InDelta(t, 20.0, Percent(2, 10), 1e-9)
	assert.InDelta(t, 50.0, ContestScore{SolvedCount: 1, TotalProblems: 2}.Percent(), 1e-9)
}

func TestProblemProgressNormalize(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	corrupt := ProblemProgress{Solved: false, SolvedAt: &at, ScoreEarned: 40}
	assert.Equal(t, ProblemProgress{}, corrupt.Normalize())

	solved := NewSolved(Problem{ID: "p1", BaseScore: 10}, at)
	assert.Equal(t, solved, solved.Normalize())
	assert.Equal(t, 10, solved.ScoreEarned)
	assert.Equal(t, at, *solved.SolvedAt)
}

func TestParseLanguage(t *testing.T) {
	testCases := map[string]Language{
		"python": LanguagePython,
		"C":      LanguageC,
		"c++":    LanguageCPP,
		"cpp":    LanguageCPP,
		" Java ": LanguageJava,
	}
	for in, want := range testCases {
		got, err := ParseLanguage(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLanguage("rust")
	assert.ErrorIs(t, err, ErrUnknownLanguage)
}
