package service

import (
	"context"
	"errors"
	"testing"
	"time"

	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/studyhub/progress/internal/data"
	"github.com/studyhub/progress/internal/domain"
	"github.com/studyhub/progress/internal/infrastructure"
	"github.com/studyhub/progress/internal/repository"
)

var (
	contestStart = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	contestEnd   = time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)

	p1 = domain.Problem{ID: "p1", Title: "One", Language: domain.LanguagePython, Difficulty: domain.DifficultyBeginner, BaseScore: 10}
	p2 = domain.Problem{ID: "p2", Title: "Two", Language: domain.LanguagePython, Difficulty: domain.DifficultyIntermediate, BaseScore: 20}

	contestX = domain.Contest{
		ID:         "X",
		Title:      "Contest X",
		StartTime:  contestStart,
		EndTime:    contestEnd,
		ProblemIDs: []string{"p1", "p2"},
		MaxScore:   30,
	}
)

// mutableClock is a clock tests can move
type mutableClock struct {
	now time.Time
}

func (c *mutableClock) Now() time.Time { return c.now }

func (c *mutableClock) Set(t time.Time) { c.now = t }

// failingStore refuses every write
type failingStore struct {
	domain.ProgressStore
}

var errDiskFull = errors.New("disk full")

func (failingStore) Write(context.Context, string, string) error { return errDiskFull }

func newPractice(t *testing.T, store domain.ProgressStore, clock domain.Clock) *PracticeService {
	t.Helper()
	s := NewPracticeService(store, clock, tracenoop.NewTracerProvider().Tracer("test"), zap.NewNop(), infrastructure.NoopMetrics())
	s.Load(context.Background())
	return s
}

func newContests(t *testing.T, store domain.ProgressStore, clock domain.Clock) *ContestService {
	t.Helper()
	s := NewContestService(store, clock, tracenoop.NewTracerProvider().Tracer("test"), zap.NewNop(), infrastructure.NoopMetrics())
	s.Load(context.Background())
	return s
}

func testCatalog() *data.Catalog {
	return data.NewCatalog([]domain.Problem{p1, p2}, []domain.Contest{contestX})
}

func newMemoryStore() domain.ProgressStore {
	return repository.NewMemoryStore()
}
