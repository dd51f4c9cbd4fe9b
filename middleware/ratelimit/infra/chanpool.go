package infra

import (
	"context"

	"articles-gateway/middleware/ratelimit/domain"
)

type chanPool struct {
	sem chan struct{}
}

// NewChanPool cria um semáforo baseado em channel com capacidade `max`.
// Usado para limitar o fan-out de downloads quando FETCH_CONCURRENCY > 0.
func NewChanPool(max int) domain.SlotPool {
	return &chanPool{sem: make(chan struct{}, max)}
}

func (p *chanPool) Acquire(ctx context.Context) (func(), bool) {
	select {
	case p.sem <- struct{}{}:
		return func() { <-p.sem }, true
	case <-ctx.Done():
		return nil, false
	}
}
