package domain

import (
	"time"
)

// ContestStatus is derived from a contest's time window and the current
// time. It is computed on demand and never stored.
type ContestStatus string

const (
	ContestStatusUpcoming ContestStatus = "upcoming"
	ContestStatusActive   ContestStatus = "active"
	ContestStatusFinished ContestStatus = "finished"
)

// Contest represents a timed set of problems. Contests are defined by the
// catalog and never mutated.
type Contest struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	ProblemIDs []string  `json:"problem_ids"`
	MaxScore   int       `json:"max_score"`
}

// StatusAt evaluates the contest status at now. The active window includes
// both boundary instants.
func (c Contest) StatusAt(now time.Time) ContestStatus {
	if now.Before(c.StartTime) {
		return ContestStatusUpcoming
	}
	if now.After(c.EndTime) {
		return ContestStatusFinished
	}
	return ContestStatusActive
}

// Status evaluates the contest status against clock; a nil clock means the
// system wall clock.
func (c Contest) Status(clock Clock) ContestStatus {
	return c.StatusAt(NowFrom(clock))
}

// TimeRemaining returns the time left until the next status change: until
// the start while upcoming, until the end while active, zero once finished.
func (c Contest) TimeRemaining(now time.Time) time.Duration {
	switch c.StatusAt(now) {
	case ContestStatusUpcoming:
		return c.StartTime.Sub(now)
	case ContestStatusActive:
		return c.EndTime.Sub(now)
	default:
		return 0
	}
}

// HasProblem reports whether problemID is listed in the contest
func (c Contest) HasProblem(problemID string) bool {
	for _, id := range c.ProblemIDs {
		if id == problemID {
			return true
		}
	}
	return false
}

// ContestResponse represents a contest in API responses
type ContestResponse struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	StartTime     time.Time         `json:"start_time"`
	EndTime       time.Time         `json:"end_time"`
	Status        ContestStatus     `json:"status"`
	MaxScore      int               `json:"max_score"`
	TimeRemaining int               `json:"time_remaining_seconds"`
	Problems      []ProblemResponse `json:"problems"`
}

// ToResponse converts a Contest and its resolved problems to a ContestResponse
func (c *Contest) ToResponse(problems []Problem, now time.Time) ContestResponse {
	resp := make([]ProblemResponse, len(problems))
	for i := range problems {
		resp[i] = problems[i].ToResponse()
	}

	return ContestResponse{
		ID:            c.ID,
		Title:         c.Title,
		StartTime:     c.StartTime,
		EndTime:       c.EndTime,
		Status:        c.StatusAt(now),
		MaxScore:      c.MaxScore,
		TimeRemaining: int(c.TimeRemaining(now).Seconds()),
		Problems:      resp,
	}
}
