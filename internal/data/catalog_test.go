package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studyhub/progress/internal/domain"
)

func TestEmbeddedCatalogIsValid(t *testing.T) {
	catalog, err := LoadEmbedded()
	require.NoError(t, err)

	assert.Empty(t, catalog.Validate())
	assert.NotEmpty(t, catalog.Problems())
	assert.NotEmpty(t, catalog.Contests())

	python := catalog.ProblemsByLanguage(domain.LanguagePython)
	assert.Len(t, python, 10)
	assert.Equal(t, 145, domain.SumBaseScores(python))
}

func TestContestProblemsSkipsUnknownIDs(t *testing.T) {
	catalog := NewCatalog(
		[]domain.Problem{
			{ID: "p1", Language: domain.LanguageC, Difficulty: domain.DifficultyBeginner, BaseScore: 10},
			{ID: "p2", Language: domain.LanguageC, Difficulty: domain.DifficultyBeginner, BaseScore: 20},
		},
		nil,
	)
	contest := domain.Contest{ID: "X", ProblemIDs: []string{"p2", "ghost", "p1"}}

	problems := catalog.ContestProblems(contest)
	require.Len(t, problems, 2)
	assert.Equal(t, "p2", problems[0].ID)
	assert.Equal(t, "p1", problems[1].ID)
}

func TestContestProblemsCountsRepeatedIDsOnce(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	catalog := NewCatalog(
		[]domain.Problem{
			{ID: "p1", Language: domain.LanguageC, Difficulty: domain.DifficultyBeginner, BaseScore: 10},
			{ID: "p2", Language: domain.LanguageC, Difficulty: domain.DifficultyBeginner, BaseScore: 20},
		},
		[]domain.Contest{
			{ID: "X", StartTime: start, EndTime: start.Add(time.Hour), ProblemIDs: []string{"p1", "p1", "p2"}, MaxScore: 30},
		},
	)
	contest, ok := catalog.Contest("X")
	require.True(t, ok)

	problems := catalog.ContestProblems(contest)
	require.Len(t, problems, 2)
	assert.Equal(t, "p1", problems[0].ID)
	assert.Equal(t, "p2", problems[1].ID)
	assert.Equal(t, 30, domain.SumBaseScores(problems))

	errs := catalog.Validate()
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], domain.ErrInvalidCatalog)
	assert.Contains(t, errs[0].Error(), "contest X lists problem p1 twice")
}

func TestParseDerivesMaxScoreWithoutRepeats(t *testing.T) {
	raw := []byte(`{
		"problems": [
			{"id": "p1", "title": "One", "language": "C", "difficulty": "Beginner", "base_score": 10},
			{"id": "p2", "title": "Two", "language": "C", "difficulty": "Beginner", "base_score": 20}
		],
		"contests": [
			{"id": "X", "title": "X", "start_time": "2026-03-01T09:00:00Z", "end_time": "2026-03-01T10:00:00Z", "problem_ids": ["p1", "p1", "p2"]}
		]
	}`)

	catalog, err := Parse(raw, FormatJSON)
	require.NoError(t, err)

	contest, ok := catalog.Contest("X")
	require.True(t, ok)
	assert.Equal(t, 30, contest.MaxScore)
	assert.Len(t, catalog.Validate(), 1)
}

func TestValidateReportsDataErrors(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	catalog := NewCatalog(
		[]domain.Problem{
			{ID: "p1", Language: domain.LanguageC, Difficulty: domain.DifficultyBeginner, BaseScore: 10},
			{ID: "p1", Language: domain.LanguageC, Difficulty: domain.DifficultyBeginner, BaseScore: 10},
			{ID: "p2", Language: "Rust", Difficulty: "Impossible", BaseScore: 0},
		},
		[]domain.Contest{
			{ID: "same-instant", StartTime: start, EndTime: start, ProblemIDs: []string{"p1"}, MaxScore: 10},
			{ID: "bad-sum", StartTime: start, EndTime: start.Add(time.Hour), ProblemIDs: []string{"p1"}, MaxScore: 99},
			{ID: "dangling", StartTime: start, EndTime: start.Add(time.Hour), ProblemIDs: []string{"nope"}, MaxScore: 0},
		},
	)

	errs := catalog.Validate()
	for _, err := range errs {
		assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
	}

	messages := make([]string, len(errs))
	for i, err := range errs {
		messages[i] = err.Error()
	}
	joined := strings.Join(messages, "\n")
	assert.Contains(t, joined, "duplicate problem p1")
	assert.Contains(t, joined, "unknown language")
	assert.Contains(t, joined, "unknown difficulty")
	assert.Contains(t, joined, "non-positive base score")
	assert.Contains(t, joined, "contest same-instant starts at or after its end")
	assert.Contains(t, joined, "contest bad-sum declares max score 99")
	assert.Contains(t, joined, "contest dangling references unknown problem nope")
}

func TestParseTOMLCatalog(t *testing.T) {
	raw := []byte(`
[[problems]]
title = "Two Sum"
language = "c++"
difficulty = "Beginner"
base_score = 10

[[problems]]
id = "py-loops"
title = "Loops"
language = "Python"
difficulty = "Beginner"
base_score = 5

[[contests]]
id = "mini"
title = "Mini"
start_time = 2026-03-01T09:00:00Z
end_time = 2026-03-01T11:00:00Z
problem_ids = ["cpp-two-sum", "py-loops"]
`)

	catalog, err := Parse(raw, FormatTOML)
	require.NoError(t, err)

	p, ok := catalog.Problem("cpp-two-sum")
	require.True(t, ok)
	assert.Equal(t, domain.LanguageCPP, p.Language)

	contest, ok := catalog.Contest("mini")
	require.True(t, ok)
	assert.Equal(t, 15, contest.MaxScore)
	assert.Equal(t, time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC), contest.EndTime.UTC())
	assert.Empty(t, catalog.Validate())
}

func TestLoadCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, embeddedCatalog, 0o600))

	catalog, err := LoadCatalog(path, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, catalog.Contests(), 3)

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "missing.json"), zap.NewNop())
	assert.Error(t, err)
}

func TestProblemSlug(t *testing.T) {
	assert.Equal(t, "cpp-stack-class", ProblemSlug(domain.LanguageCPP, "Stack Class"))
	assert.Equal(t, "c-stack-class", ProblemSlug(domain.LanguageC, "Stack Class"))
	assert.Equal(t, "python-hello-world", ProblemSlug(domain.LanguagePython, "Hello, World!"))
}
