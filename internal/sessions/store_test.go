package sessions

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newCounterStore(opts Options) *Store[*int] {
	return New(func() *int { return new(int) }, opts)
}

func TestCreateGetDelete(t *testing.T) {
	s := newCounterStore(Options{})

	e, err := s.Create()
	if err != nil {
		t.Fatalf("creating entry: %v", err)
	}
	if _, err := uuid.Parse(e.ID); err != nil {
		t.Fatalf("expected UUID id, got %q: %v", e.ID, err)
	}

	got, err := s.Get(e.ID)
	if err != nil {
		t.Fatalf("getting entry: %v", err)
	}
	if got != e {
		t.Fatal("expected Get to return the created entry")
	}

	if err := s.Delete(e.ID); err != nil {
		t.Fatalf("deleting entry: %v", err)
	}
	if _, err := s.Get(e.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(e.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestCreateRespectsMaxSessions(t *testing.T) {
	s := newCounterStore(Options{MaxSessions: 2})

	for i := 0; i < 2; i++ {
		if _, err := s.Create(); err != nil {
			t.Fatalf("creating entry %d: %v", i, err)
		}
	}

	if _, err := s.Create(); !errors.Is(err, ErrStoreFull) {
		t.Fatalf("expected ErrStoreFull, got %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", s.Len())
	}
}

func TestSweepEvictsIdleEntries(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := newCounterStore(Options{TTL: time.Minute, Clock: clock.Now})

	idle, _ := s.Create()
	busy, _ := s.Create()

	clock.Advance(45 * time.Second)
	if _, err := s.Get(busy.ID); err != nil {
		t.Fatalf("getting busy entry: %v", err)
	}

	clock.Advance(30 * time.Second)
	if n := s.Sweep(); n != 1 {
		t.Fatalf("expected 1 eviction, got %d", n)
	}

	if _, err := s.Get(idle.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected idle entry evicted, got %v", err)
	}
	if _, err := s.Get(busy.ID); err != nil {
		t.Fatalf("expected busy entry kept, got %v", err)
	}
}

func TestSweepWithoutTTLKeepsEverything(t *testing.T) {
	s := newCounterStore(Options{})
	_, _ = s.Create()

	if n := s.Sweep(); n != 0 {
		t.Fatalf("expected no evictions, got %d", n)
	}
}

func TestDoSerialisesAccess(t *testing.T) {
	s := newCounterStore(Options{})
	e, _ := s.Create()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.Do(func(n *int) { *n++ })
		}()
	}
	wg.Wait()

	e.Do(func(n *int) {
		if *n != 50 {
			t.Fatalf("expected 50 increments, got %d", *n)
		}
	})
}

func TestRunStopsWithContext(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	s := newCounterStore(Options{TTL: time.Millisecond, Clock: clock.Now})
	_, _ = s.Create()
	clock.Advance(time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Millisecond, zap.NewNop())
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for s.Len() != 0 {
		select {
		case <-deadline:
			t.Fatal("expected sweeper to evict the idle entry")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected Run to return after cancel")
	}
}

func TestCollectorReportsActiveSessions(t *testing.T) {
	s := newCounterStore(Options{})
	_, _ = s.Create()
	_, _ = s.Create()

	reg := prometheus.NewRegistry()
	reg.MustRegister(s.Collector("test_sessions_active", "Active sessions."))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gathering metrics: %v", err)
	}
	if len(families) != 1 || families[0].GetName() != "test_sessions_active" {
		t.Fatalf("expected test_sessions_active family, got %v", families)
	}
	if got := families[0].GetMetric()[0].GetGauge().GetValue(); got != 2 {
		t.Fatalf("expected gauge 2, got %g", got)
	}
}
