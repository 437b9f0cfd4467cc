package domain

import (
	"time"
)

// ProblemProgress tracks whether a problem was solved and what it earned.
// An unsolved entry carries no score and no timestamp; once solved it stays
// solved.
type ProblemProgress struct {
	Solved      bool       `json:"solved"`
	SolvedAt    *time.Time `json:"solvedAt,omitempty"`
	ScoreEarned int        `json:"scoreEarned"`
}

// NewSolved builds the progress entry recorded when a problem is solved
func NewSolved(problem Problem, at time.Time) ProblemProgress {
	solvedAt := at
	return ProblemProgress{
		Solved:      true,
		SolvedAt:    &solvedAt,
		ScoreEarned: problem.BaseScore,
	}
}

// Normalize enforces the unsolved invariant on entries read back from
// storage.
func (p ProblemProgress) Normalize() ProblemProgress {
	if !p.Solved {
		return ProblemProgress{}
	}
	if p.ScoreEarned < 0 {
		p.ScoreEarned = 0
	}
	return p
}

// PracticeProgress maps problem id to progress for standalone practice
type PracticeProgress map[string]ProblemProgress

// Clone returns a deep copy
func (p PracticeProgress) Clone() PracticeProgress {
	out := make(PracticeProgress, len(p))
	for id, entry := range p {
		out[id] = entry
	}
	return out
}

// ContestProgress maps contest id to the per-problem progress within that
// contest. Each contest is its own namespace: the same problem id can be
// solved in one contest and not in another.
type ContestProgress map[string]map[string]ProblemProgress

// Clone returns a deep copy
func (c ContestProgress) Clone() ContestProgress {
	out := make(ContestProgress, len(c))
	for contestID, problems := range c {
		inner := make(map[string]ProblemProgress, len(problems))
		for id, entry := range problems {
			inner[id] = entry
		}
		out[contestID] = inner
	}
	return out
}

// LanguageStats summarises practice progress for one language
type LanguageStats struct {
	Language      Language `json:"language"`
	SolvedCount   int      `json:"solved_count"`
	TotalProblems int      `json:"total_problems"`
	Score         int      `json:"score"`
	MaxScore      int      `json:"max_score"`
}

// Percent is the share of solved problems, 0 for an empty bucket
func (s LanguageStats) Percent() float64 {
	return Percent(s.SolvedCount, s.TotalProblems)
}

// ContestScore summarises progress within one contest
type ContestScore struct {
	Score         int `json:"score"`
	MaxScore      int `json:"max_score"`
	SolvedCount   int `json:"solved_count"`
	TotalProblems int `json:"total_problems"`
}

// Percent is the share of solved problems, 0 for an empty contest
func (s ContestScore) Percent() float64 {
	return Percent(s.SolvedCount, s.TotalProblems)
}

// Percent returns solved/total as a percentage and guards total == 0
func Percent(solved, total int) float64 {
	if total <= 0 {
		return 0
	}
	return 100 * float64(solved) / float64(total)
}
