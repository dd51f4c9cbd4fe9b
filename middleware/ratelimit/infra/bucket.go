package infra

import (
	"context"
	"sync"
	"time"

	"articles-gateway/middleware/ratelimit/domain"

	"golang.org/x/time/rate"
)

// BucketStore é um Checker em processo baseado em token bucket (x/time/rate),
// com um limiter por chave e limpeza periódica de chaves ociosas.
type BucketStore struct {
	mu           sync.Mutex
	entries      map[string]*bucketEntry
	rps          rate.Limit
	burst        int
	idleTTL      time.Duration
	cleanupEvery time.Duration
}

type bucketEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

type BucketOption func(*BucketStore)

func WithIdleTTL(d time.Duration) BucketOption {
	return func(s *BucketStore) { s.idleTTL = d }
}

func WithCleanupEvery(d time.Duration) BucketOption {
	return func(s *BucketStore) { s.cleanupEvery = d }
}

func NewBucketStore(rps float64, burst int, opts ...BucketOption) *BucketStore {
	s := &BucketStore{
		entries:      make(map[string]*bucketEntry),
		rps:          rate.Limit(rps),
		burst:        burst,
		idleTTL:      15 * time.Minute,
		cleanupEvery: 2 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *BucketStore) RPS() float64 { return float64(s.rps) }
func (s *BucketStore) Burst() int   { return s.burst }

// Check implementa domain.Checker. Nunca retorna erro.
func (s *BucketStore) Check(_ context.Context, key domain.Key) (domain.Verdict, error) {
	lim := s.limiter(string(key))
	if lim.Allow() {
		return domain.Verdict{Success: true}, nil
	}
	return domain.Verdict{Success: false}, nil
}

func (s *BucketStore) limiter(key string) *rate.Limiter {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if ent, ok := s.entries[key]; ok {
		ent.lastSeen = now
		return ent.lim
	}

	lim := rate.NewLimiter(s.rps, s.burst)
	s.entries[key] = &bucketEntry{lim: lim, lastSeen: now}
	return lim
}

// Len devolve quantas chaves estão em cache.
func (s *BucketStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *BucketStore) Cleanup() {
	cutoff := time.Now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, ent := range s.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(s.entries, k)
		}
	}
}

// StartJanitor limpa chaves inativas periodicamente. Pare cancelando o ctx.
func (s *BucketStore) StartJanitor(ctx context.Context) {
	if s.cleanupEvery <= 0 {
		return
	}

	t := time.NewTicker(s.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Cleanup()
			}
		}
	}()
}
