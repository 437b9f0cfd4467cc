package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/studyhub/progress/internal/domain"
	"github.com/studyhub/progress/internal/infrastructure"
)

func newRegistry(store domain.ProgressStore, clock domain.Clock) *SessionRegistry {
	return NewSessionRegistry(store, clock, tracenoop.NewTracerProvider().Tracer("test"), zap.NewNop(), infrastructure.NoopMetrics())
}

func TestRegistryIsolatesSessions(t *testing.T) {
	ctx := context.Background()
	r := newRegistry(newMemoryStore(), domain.FixedClock(contestStart))

	alice, bob := uuid.New(), uuid.New()

	require.NoError(t, r.Get(ctx, alice).Practice.MarkSolved(ctx, p1))
	assert.True(t, r.Get(ctx, alice).Practice.IsSolved("p1"))
	assert.False(t, r.Get(ctx, bob).Practice.IsSolved("p1"))
	assert.Same(t, r.Get(ctx, alice), r.Get(ctx, alice))
	assert.Equal(t, 2, r.Len())
}

func TestRegistryEvictsIdleSessionsAndReloads(t *testing.T) {
	ctx := context.Background()
	clock := &mutableClock{now: contestStart}
	r := newRegistry(newMemoryStore(), clock)

	id := uuid.New()
	accepted, _, err := r.Get(ctx, id).Contests.MarkContestProblemSolved(ctx, contestX, p2)
	require.NoError(t, err)
	require.True(t, accepted)

	clock.Set(contestStart.Add(10 * time.Minute))
	assert.Equal(t, 0, r.Evict(ctx, time.Hour))
	assert.Equal(t, 1, r.Evict(ctx, time.Minute))
	assert.Equal(t, 0, r.Len())

	assert.True(t, r.Get(ctx, id).Contests.IsSolved("X", "p2"))
}

// gatedStore blocks reads of one namespace until the gate is opened
type gatedStore struct {
	domain.ProgressStore
	namespace string
	reading   chan struct{}
	gate      chan struct{}
	once      sync.Once
}

func (s *gatedStore) Read(ctx context.Context, key string) (string, bool, error) {
	if strings.HasPrefix(key, s.namespace+":") {
		s.once.Do(func() { close(s.reading) })
		<-s.gate
	}
	return s.ProgressStore.Read(ctx, key)
}

func TestRegistryLoadDoesNotBlockOtherSessions(t *testing.T) {
	ctx := context.Background()
	slow, fast := uuid.New(), uuid.New()
	store := &gatedStore{
		ProgressStore: newMemoryStore(),
		namespace:     slow.String(),
		reading:       make(chan struct{}),
		gate:          make(chan struct{}),
	}
	r := newRegistry(store, domain.FixedClock(contestStart))

	slowDone := make(chan *SessionProgress)
	go func() { slowDone <- r.Get(ctx, slow) }()

	select {
	case <-store.reading:
	case <-time.After(time.Second):
		t.Fatal("slow session never started loading")
	}

	fastDone := make(chan *SessionProgress)
	go func() { fastDone <- r.Get(ctx, fast) }()

	select {
	case sp := <-fastDone:
		assert.NotNil(t, sp)
	case <-time.After(time.Second):
		t.Fatal("loading one session blocked another")
	}

	close(store.gate)
	select {
	case sp := <-slowDone:
		assert.Same(t, sp, r.Get(ctx, slow))
	case <-time.After(time.Second):
		t.Fatal("slow session never finished loading")
	}
	assert.Equal(t, 2, r.Len())
}

func TestRegistryConcurrentFirstUseSharesOneInstance(t *testing.T) {
	ctx := context.Background()
	r := newRegistry(newMemoryStore(), domain.FixedClock(contestStart))
	id := uuid.New()

	const workers = 8
	results := make([]*SessionProgress, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = r.Get(ctx, id)
		}(i)
	}
	wg.Wait()

	for _, sp := range results {
		assert.Same(t, results[0], sp)
	}
	assert.Equal(t, 1, r.Len())
}
