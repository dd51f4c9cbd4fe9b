package ratelimit

import (
	"net/http"
	"time"

	"articles-gateway/logging"
	"articles-gateway/middleware/ratelimit/application"
	"articles-gateway/middleware/ratelimit/domain"
)

type Options struct {
	Checker             domain.Checker
	Events              domain.EventSink
	KeyFn               KeyFunc
	Key                 KeyOptions
	RetryAfter          time.Duration
	AddRateLimitHeaders bool
	Logger              logging.Logger
}

// bucketInfo e windowInfo expõem a configuração do Checker nos headers X-RateLimit-*.
type bucketInfo interface {
	RPS() float64
	Burst() int
}

type windowInfo interface {
	Limit() int
	Period() time.Duration
}

func setRateHeaders(h http.Header, checker domain.Checker) {
	switch c := checker.(type) {
	case bucketInfo:
		h.Set("X-RateLimit-RPS", formatFloat(c.RPS()))
		h.Set("X-RateLimit-Burst", formatInt(c.Burst()))
	case windowInfo:
		h.Set("X-RateLimit-Limit", formatInt(c.Limit()))
		h.Set("X-RateLimit-Period", formatInt(int(c.Period().Seconds())))
	}
}

// Middleware é o gate de admissão: consulta o Checker uma vez por request
// e responde 429 quando o orçamento da chave acabou.
func Middleware(opts Options) func(next http.Handler) http.Handler {
	if opts.RetryAfter == 0 {
		opts.RetryAfter = 1 * time.Second
	}
	if opts.KeyFn == nil {
		opts.KeyFn = DefaultKeyFunc(opts.Key)
	}
	log := logging.OrNoOp(opts.Logger)

	svc := application.AdmissionService{
		Checker:    opts.Checker,
		RetryAfter: opts.RetryAfter,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := opts.KeyFn(r)

			if opts.AddRateLimitHeaders {
				w.Header().Set("X-RateLimit-Key", key)
				setRateHeaders(w.Header(), opts.Checker)
			}

			v, err := svc.Admit(r.Context(), domain.Key(key))
			if err != nil {
				// capacidade de rate limit fora do ar: sem tratamento especial, só 500.
				log.Error("admission check failed", "key", key, "err", err)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			if opts.Events != nil {
				ev := domain.AdmissionEvent{
					Key:      domain.Key(key),
					Admitted: v.Success,
					Method:   r.Method,
					Path:     r.URL.Path,
					At:       time.Now(),
				}
				if err := opts.Events.Record(r.Context(), ev); err != nil {
					log.Warn("admission stats not recorded", "err", err)
				}
			}

			if !v.Success {
				w.Header().Set("Retry-After", formatInt(int(v.RetryAfter.Seconds())))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
