package data

import (
	"fmt"

	"github.com/studyhub/progress/internal/domain"
)

// Catalog is the read-only set of problems and contests served to clients.
// It is built once at start-up and never mutated.
type Catalog struct {
	problems    []domain.Problem
	problemIdx  map[string]int
	contests    []domain.Contest
	contestIdx  map[string]int
	duplicateID []string
}

// NewCatalog indexes problems and contests by id. When an id repeats, the
// first definition wins and the repeat is reported by Validate.
func NewCatalog(problems []domain.Problem, contests []domain.Contest) *Catalog {
	c := &Catalog{
		problemIdx: make(map[string]int, len(problems)),
		contestIdx: make(map[string]int, len(contests)),
	}

	for _, p := range problems {
		if _, exists := c.problemIdx[p.ID]; exists {
			c.duplicateID = append(c.duplicateID, "problem "+p.ID)
			continue
		}
		c.problemIdx[p.ID] = len(c.problems)
		c.problems = append(c.problems, p)
	}

	for _, contest := range contests {
		if _, exists := c.contestIdx[contest.ID]; exists {
			c.duplicateID = append(c.duplicateID, "contest "+contest.ID)
			continue
		}
		c.contestIdx[contest.ID] = len(c.contests)
		c.contests = append(c.contests, contest)
	}

	return c
}

// Problems returns every problem in catalog order
func (c *Catalog) Problems() []domain.Problem {
	out := make([]domain.Problem, len(c.problems))
	copy(out, c.problems)
	return out
}

// Contests returns every contest in catalog order
func (c *Catalog) Contests() []domain.Contest {
	out := make([]domain.Contest, len(c.contests))
	copy(out, c.contests)
	return out
}

// Problem looks up a problem by id
func (c *Catalog) Problem(id string) (domain.Problem, bool) {
	i, ok := c.problemIdx[id]
	if !ok {
		return domain.Problem{}, false
	}
	return c.problems[i], true
}

// Contest looks up a contest by id
func (c *Catalog) Contest(id string) (domain.Contest, bool) {
	i, ok := c.contestIdx[id]
	if !ok {
		return domain.Contest{}, false
	}
	return c.contests[i], true
}

// ProblemsByLanguage returns the problems written for lang
func (c *Catalog) ProblemsByLanguage(lang domain.Language) []domain.Problem {
	var out []domain.Problem
	for _, p := range c.problems {
		if p.Language == lang {
			out = append(out, p)
		}
	}
	return out
}

// ContestProblems resolves a contest's problem ids in order. Ids missing
// from the catalog are dropped from the contest's effective problem list,
// and a repeated id only counts at its first position.
func (c *Catalog) ContestProblems(contest domain.Contest) []domain.Problem {
	out := make([]domain.Problem, 0, len(contest.ProblemIDs))
	seen := make(map[string]bool, len(contest.ProblemIDs))
	for _, id := range contest.ProblemIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if p, ok := c.Problem(id); ok {
			out = append(out, p)
		}
	}
	return out
}

// Validate reports data errors in the catalog. None of them are fatal;
// callers log them at load time.
func (c *Catalog) Validate() []error {
	var errs []error

	for _, dup := range c.duplicateID {
		errs = append(errs, fmt.Errorf("%w: duplicate %s", domain.ErrInvalidCatalog, dup))
	}

	for _, p := range c.problems {
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("%w: problem %q has no id", domain.ErrInvalidCatalog, p.Title))
		}
		if !p.Language.Valid() {
			errs = append(errs, fmt.Errorf("%w: problem %s has unknown language %q", domain.ErrInvalidCatalog, p.ID, p.Language))
		}
		if !p.Difficulty.Valid() {
			errs = append(errs, fmt.Errorf("%w: problem %s has unknown difficulty %q", domain.ErrInvalidCatalog, p.ID, p.Difficulty))
		}
		if p.BaseScore <= 0 {
			errs = append(errs, fmt.Errorf("%w: problem %s has non-positive base score %d", domain.ErrInvalidCatalog, p.ID, p.BaseScore))
		}
	}

	for _, contest := range c.contests {
		if !contest.StartTime.Before(contest.EndTime) {
			errs = append(errs, fmt.Errorf("%w: contest %s starts at or after its end", domain.ErrInvalidCatalog, contest.ID))
		}
		listed := make(map[string]bool, len(contest.ProblemIDs))
		for _, id := range contest.ProblemIDs {
			if listed[id] {
				errs = append(errs, fmt.Errorf("%w: contest %s lists problem %s twice", domain.ErrInvalidCatalog, contest.ID, id))
				continue
			}
			listed[id] = true
			if _, ok := c.problemIdx[id]; !ok {
				errs = append(errs, fmt.Errorf("%w: contest %s references unknown problem %s", domain.ErrInvalidCatalog, contest.ID, id))
			}
		}
		if sum := domain.SumBaseScores(c.ContestProblems(contest)); sum != contest.MaxScore {
			errs = append(errs, fmt.Errorf("%w: contest %s declares max score %d, problems sum to %d", domain.ErrInvalidCatalog, contest.ID, contest.MaxScore, sum))
		}
	}

	return errs
}
