// Package sessions keeps independent, long-lived calculator sessions in
// memory and evicts the ones nobody has touched for a while.
package sessions

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var (
	ErrNotFound  = errors.New("session not found")
	ErrStoreFull = errors.New("session limit reached")
)

// Options configures a Store. Zero values disable the TTL and the size cap.
type Options struct {
	TTL         time.Duration
	MaxSessions int
	Clock       func() time.Time
}

// Entry wraps one stored value. Do serialises access to it.
type Entry[T any] struct {
	ID      string
	Created time.Time

	mu       sync.Mutex
	value    T
	lastUsed atomic.Int64
}

// Do runs fn with exclusive access to the stored value.
func (e *Entry[T]) Do(fn func(T)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.value)
}

// LastUsed reports when the entry was last created or fetched.
func (e *Entry[T]) LastUsed() time.Time {
	return time.Unix(0, e.lastUsed.Load())
}

func (e *Entry[T]) touch(now time.Time) {
	e.lastUsed.Store(now.UnixNano())
}

// Store is a concurrency-safe map of entries keyed by UUID.
type Store[T any] struct {
	mu      sync.RWMutex
	entries map[string]*Entry[T]
	newFn   func() T
	opts    Options
}

// New returns an empty store that builds values with newFn.
func New[T any](newFn func() T, opts Options) *Store[T] {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Store[T]{
		entries: make(map[string]*Entry[T]),
		newFn:   newFn,
		opts:    opts,
	}
}

func (s *Store[T]) Create() (*Entry[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opts.MaxSessions > 0 && len(s.entries) >= s.opts.MaxSessions {
		return nil, ErrStoreFull
	}

	now := s.opts.Clock()
	e := &Entry[T]{
		ID:      uuid.New().String(),
		Created: now,
		value:   s.newFn(),
	}
	e.touch(now)
	s.entries[e.ID] = e
	return e, nil
}

// Get returns the entry and marks it as used.
func (s *Store[T]) Get(id string) (*Entry[T], error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	e.touch(s.opts.Clock())
	return e, nil
}

func (s *Store[T]) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sweep removes entries idle for longer than the TTL and returns how many
// were removed.
func (s *Store[T]) Sweep() int {
	if s.opts.TTL <= 0 {
		return 0
	}
	cutoff := s.opts.Clock().Add(-s.opts.TTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.entries {
		if e.LastUsed().Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *Store[T]) Run(ctx context.Context, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 || s.opts.TTL <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				logger.Info("evicted idle sessions",
					zap.Int("evicted", n),
					zap.Int("active", s.Len()),
				)
			}
		}
	}
}

// Collector exposes the number of live sessions as a Prometheus gauge.
func (s *Store[T]) Collector(name, help string) prometheus.Collector {
	return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: name,
		Help: help,
	}, func() float64 {
		return float64(s.Len())
	})
}
