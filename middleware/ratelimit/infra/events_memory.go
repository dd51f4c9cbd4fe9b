package infra

import (
	"context"
	"sync"

	"articles-gateway/middleware/ratelimit/domain"
)

type Counters struct {
	Admitted int64
	Rejected int64
}

func (c *Counters) add(admitted bool) {
	if admitted {
		c.Admitted++
		return
	}
	c.Rejected++
}

// MemoryEventSink guarda contadores de admissão em memória.
// Útil para testes e desenvolvimento; não faz expiração.
type MemoryEventSink struct {
	mu      sync.Mutex
	total   Counters
	byRoute map[string]Counters
	byKey   map[string]Counters

	trackKeys bool
}

type MemoryEventOption func(*MemoryEventSink)

func WithTrackKeys(track bool) MemoryEventOption {
	return func(s *MemoryEventSink) { s.trackKeys = track }
}

func NewMemoryEventSink(opts ...MemoryEventOption) *MemoryEventSink {
	s := &MemoryEventSink{
		byRoute: make(map[string]Counters),
		byKey:   make(map[string]Counters),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryEventSink) Record(_ context.Context, ev domain.AdmissionEvent) error {
	route := ev.Method + " " + ev.Path

	s.mu.Lock()
	defer s.mu.Unlock()

	s.total.add(ev.Admitted)

	c := s.byRoute[route]
	c.add(ev.Admitted)
	s.byRoute[route] = c

	if s.trackKeys {
		k := s.byKey[string(ev.Key)]
		k.add(ev.Admitted)
		s.byKey[string(ev.Key)] = k
	}
	return nil
}

func (s *MemoryEventSink) Total() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *MemoryEventSink) ByRoute() map[string]Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCounters(s.byRoute)
}

func (s *MemoryEventSink) ByKey() map[string]Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCounters(s.byKey)
}

func copyCounters(in map[string]Counters) map[string]Counters {
	out := make(map[string]Counters, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
