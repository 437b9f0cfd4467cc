package service

import (
	"sort"
	"time"

	"github.com/studyhub/progress/internal/data"
	"github.com/studyhub/progress/internal/domain"
)

// SolvedEntry is one solved problem in solve order
type SolvedEntry struct {
	ProblemID   string    `json:"problem_id"`
	SolvedAt    time.Time `json:"solved_at"`
	ScoreEarned int       `json:"score_earned"`
}

// SolvedInOrder lists the solved entries of progress by SolvedAt ascending.
// Equal timestamps are ordered by problem id.
func SolvedInOrder(progress map[string]domain.ProblemProgress) []SolvedEntry {
	entries := make([]SolvedEntry, 0, len(progress))
	for id, entry := range progress {
		if !entry.Solved {
			continue
		}
		var at time.Time
		if entry.SolvedAt != nil {
			at = *entry.SolvedAt
		}
		entries = append(entries, SolvedEntry{ProblemID: id, SolvedAt: at, ScoreEarned: entry.ScoreEarned})
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].SolvedAt.Equal(entries[j].SolvedAt) {
			return entries[i].SolvedAt.Before(entries[j].SolvedAt)
		}
		return entries[i].ProblemID < entries[j].ProblemID
	})
	return entries
}

// LanguageOverview is a language bucket with its completion percentage
type LanguageOverview struct {
	domain.LanguageStats
	Percent float64 `json:"percent"`
}

// ContestOverview is a contest's score with its derived status
type ContestOverview struct {
	ContestID string               `json:"contest_id"`
	Title     string               `json:"title"`
	Status    domain.ContestStatus `json:"status"`
	domain.ContestScore
	Percent float64       `json:"percent"`
	Solved  []SolvedEntry `json:"solved"`
}

// Overview aggregates a session's practice and contest progress
type Overview struct {
	PracticeScore    int                `json:"practice_score"`
	PracticeMaxScore int                `json:"practice_max_score"`
	Languages        []LanguageOverview `json:"languages"`
	Contests         []ContestOverview  `json:"contests"`
}

// BuildOverview projects practice and contest progress over the catalog
func BuildOverview(catalog *data.Catalog, practice *PracticeService, contests *ContestService, now time.Time) Overview {
	problems := catalog.Problems()

	overview := Overview{
		PracticeScore:    practice.TotalScore(problems),
		PracticeMaxScore: domain.SumBaseScores(problems),
		Languages:        make([]LanguageOverview, 0, len(domain.Languages)),
		Contests:         make([]ContestOverview, 0, len(catalog.Contests())),
	}

	for _, lang := range domain.Languages {
		stats := practice.LanguageStats(lang, problems)
		overview.Languages = append(overview.Languages, LanguageOverview{
			LanguageStats: stats,
			Percent:       stats.Percent(),
		})
	}

	for _, contest := range catalog.Contests() {
		score := contests.ContestScore(contest, catalog.ContestProblems(contest))
		overview.Contests = append(overview.Contests, ContestOverview{
			ContestID:    contest.ID,
			Title:        contest.Title,
			Status:       contest.StatusAt(now),
			ContestScore: score,
			Percent:      score.Percent(),
			Solved:       SolvedInOrder(contests.ContestProgress(contest.ID)),
		})
	}

	return overview
}
