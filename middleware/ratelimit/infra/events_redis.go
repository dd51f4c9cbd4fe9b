package infra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"articles-gateway/middleware/ratelimit/domain"

	"github.com/redis/go-redis/v9"
)

type RedisEventSink struct {
	rdb *redis.Client

	prefix string
	// ttl vale só para buckets de tempo e chaves por cliente.
	// total é cumulativo e não expira.
	ttl time.Duration

	bucket string // "minute" (padrão) ou "none"

	trackKeys bool
}

type RedisEventOption func(*RedisEventSink)

func WithEventsPrefix(prefix string) RedisEventOption {
	return func(s *RedisEventSink) {
		s.prefix = strings.Trim(prefix, ":")
	}
}

func WithEventsTTL(d time.Duration) RedisEventOption {
	return func(s *RedisEventSink) { s.ttl = d }
}

func WithEventsBucket(bucket string) RedisEventOption {
	return func(s *RedisEventSink) { s.bucket = strings.ToLower(strings.TrimSpace(bucket)) }
}

func WithEventsTrackKeys(track bool) RedisEventOption {
	return func(s *RedisEventSink) { s.trackKeys = track }
}

func NewRedisEventSink(rdb *redis.Client, opts ...RedisEventOption) *RedisEventSink {
	s := &RedisEventSink{
		rdb:    rdb,
		prefix: "ratelimit:stats",
		ttl:    24 * time.Hour,
		bucket: "minute",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func eventField(ev domain.AdmissionEvent) string {
	if ev.Admitted {
		return "admitted"
	}
	return "rejected"
}

func (s *RedisEventSink) Record(ctx context.Context, ev domain.AdmissionEvent) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	field := eventField(ev)

	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, s.prefix+":total", field, 1)

	if s.bucket == "minute" {
		bucketKey := fmt.Sprintf("%s:minute:%s", s.prefix, at.UTC().Format("200601021504"))
		pipe.HIncrBy(ctx, bucketKey, field, 1)
		if s.ttl > 0 {
			pipe.Expire(ctx, bucketKey, s.ttl)
		}
	}

	if route := strings.TrimSpace(strings.TrimSpace(ev.Method) + " " + strings.TrimSpace(ev.Path)); route != "" {
		pipe.HIncrBy(ctx, s.prefix+":route", route+":"+field, 1)
	}

	if s.trackKeys {
		if k := strings.TrimSpace(string(ev.Key)); k != "" {
			keyKey := s.prefix + ":key:" + k
			pipe.HIncrBy(ctx, keyKey, field, 1)
			if s.ttl > 0 {
				pipe.Expire(ctx, keyKey, s.ttl)
			}
		}
	}

	_, err := pipe.Exec(ctx)
	return err
}
