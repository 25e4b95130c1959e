package ratelimit

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	DefaultSweepInterval = 60 * time.Second

	unknownClient = "unknown"
)

type entry struct {
	count   int
	resetAt time.Time
}

// Result describes the outcome of one Allow call.
type Result struct {
	Allowed      bool
	Limit        int
	Remaining    int
	ResetSeconds int
}

// Store is a fixed-window request counter table keyed by client identity and
// limit. It is shared by every named Limiter built from it.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

func NewStore() *Store {
	return NewStoreWithClock(time.Now)
}

func NewStoreWithClock(now func() time.Time) *Store {
	return &Store{
		entries: make(map[string]*entry),
		now:     now,
	}
}

// Allow counts one request for identity against maxRequests per window.
// Denied calls are counted too.
func (s *Store) Allow(identity string, maxRequests int, window time.Duration) Result {
	key := fmt.Sprintf("%s:%d", identity, maxRequests)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.entries[key]
	if !ok || !now.Before(e.resetAt) {
		e = &entry{count: 0, resetAt: now.Add(window)}
		s.entries[key] = e
	}
	e.count++

	remaining := maxRequests - e.count
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:      e.count <= maxRequests,
		Limit:        maxRequests,
		Remaining:    remaining,
		ResetSeconds: int(math.Ceil(e.resetAt.Sub(now).Seconds())),
	}
}

// Sweep removes every expired entry and returns how many were dropped.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, e := range s.entries {
		if !now.Before(e.resetAt) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Run sweeps the table every interval until ctx is cancelled.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Limiter is a named policy over a shared Store.
type Limiter struct {
	Name        string
	MaxRequests int
	Window      time.Duration
	store       *Store
}

func NewLimiter(store *Store, name string, maxRequests int, window time.Duration) *Limiter {
	return &Limiter{
		Name:        name,
		MaxRequests: maxRequests,
		Window:      window,
		store:       store,
	}
}

func (l *Limiter) Allow(identity string) Result {
	return l.store.Allow(identity, l.MaxRequests, l.Window)
}

// ClientIdentity picks the first forwarded-for entry, then the real-ip
// header. Clients with neither share the "unknown" bucket.
func ClientIdentity(h http.Header) string {
	if xff := h.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if first != "" {
			return first
		}
	}
	if realIP := strings.TrimSpace(h.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	return unknownClient
}
