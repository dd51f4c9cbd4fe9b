package infra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"articles-gateway/middleware/ratelimit/domain"

	"github.com/redis/go-redis/v9"
)

// RedisWindow é um Checker compartilhado entre instâncias: janela fixa de
// `limit` requests por `period`, contada com INCR + EXPIRE no Redis.
type RedisWindow struct {
	rdb *redis.Client

	prefix string
	limit  int64
	period time.Duration

	now func() time.Time
}

type RedisWindowOption func(*RedisWindow)

func WithWindowPrefix(prefix string) RedisWindowOption {
	return func(w *RedisWindow) {
		w.prefix = strings.Trim(prefix, ":")
	}
}

func NewRedisWindow(rdb *redis.Client, limit int, period time.Duration, opts ...RedisWindowOption) *RedisWindow {
	w := &RedisWindow{
		rdb:    rdb,
		prefix: "ratelimit:window",
		limit:  int64(limit),
		period: period,
		now:    time.Now,
	}
	if w.period <= 0 {
		w.period = time.Minute
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *RedisWindow) Limit() int            { return int(w.limit) }
func (w *RedisWindow) Period() time.Duration { return w.period }

// windowKey devolve a chave Redis da janela corrente e quanto falta para ela virar.
func (w *RedisWindow) windowKey(key domain.Key, at time.Time) (string, time.Duration) {
	start := at.UTC().Truncate(w.period)
	remaining := start.Add(w.period).Sub(at)
	return fmt.Sprintf("%s:%s:%d", w.prefix, key, start.Unix()), remaining
}

// Check implementa domain.Checker. Um erro do Redis é devolvido como erro,
// não como negação.
func (w *RedisWindow) Check(ctx context.Context, key domain.Key) (domain.Verdict, error) {
	if w == nil || w.rdb == nil {
		return domain.Verdict{Success: true}, nil
	}

	k, remaining := w.windowKey(key, w.now())

	pipe := w.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, w.period)
	if _, err := pipe.Exec(ctx); err != nil {
		return domain.Verdict{}, fmt.Errorf("redis window: %w", err)
	}

	if incr.Val() > w.limit {
		return domain.Verdict{Success: false, RetryAfter: remaining}, nil
	}
	return domain.Verdict{Success: true}, nil
}
