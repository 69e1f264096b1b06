package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry[T any] struct {
	v    T
	seen time.Time
}

// MemoryStore is an in-process Store. Entries untouched for longer than
// the idle limit are dropped by Sweep.
type MemoryStore[T any] struct {
	mu   sync.RWMutex
	m    map[string]*entry[T]
	idle time.Duration
	now  func() time.Time
}

// NewMemoryStore returns a store that evicts after idle. Zero keeps
// entries forever.
func NewMemoryStore[T any](idle time.Duration) *MemoryStore[T] {
	return &MemoryStore[T]{m: map[string]*entry[T]{}, idle: idle, now: time.Now}
}

func (s *MemoryStore[T]) Get(_ context.Context, id string) (T, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[id]
	if !ok {
		var zero T
		return zero, false, nil
	}
	e.seen = s.now()
	return e.v, true, nil
}

func (s *MemoryStore[T]) Put(_ context.Context, id string, v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[id] = &entry[T]{v: v, seen: s.now()}
	return nil
}

func (s *MemoryStore[T]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
	return nil
}

func (s *MemoryStore[T]) NewID() string {
	return uuid.NewString()
}

func (s *MemoryStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

// Sweep drops idle entries and returns how many were removed. evict, if
// set, is called for each dropped value outside the lock.
func (s *MemoryStore[T]) Sweep(evict func(T)) int {
	if s.idle <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.idle)
	var dropped []T
	s.mu.Lock()
	for id, e := range s.m {
		if e.seen.Before(cutoff) {
			dropped = append(dropped, e.v)
			delete(s.m, id)
		}
	}
	s.mu.Unlock()
	if evict != nil {
		for _, v := range dropped {
			evict(v)
		}
	}
	return len(dropped)
}

// Janitor runs Sweep every interval until ctx is done.
func (s *MemoryStore[T]) Janitor(ctx context.Context, interval time.Duration, evict func(T)) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Sweep(evict)
		}
	}
}
