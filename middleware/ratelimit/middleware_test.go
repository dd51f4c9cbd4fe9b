package ratelimit

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"articles-gateway/middleware/ratelimit/domain"
	"articles-gateway/middleware/ratelimit/infra"
)

func okHandler(calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})
}

func denyAll() domain.Checker {
	return domain.CheckerFunc(func(context.Context, domain.Key) (domain.Verdict, error) {
		return domain.Verdict{Success: false}, nil
	})
}

func TestMiddleware_AllowsThenRejectsSameKey(t *testing.T) {
	store := infra.NewBucketStore(0.02, 1)

	calls := 0
	h := Middleware(Options{
		Checker:             store,
		Key:                 KeyOptions{Header: DefaultKeyHeader},
		RetryAfter:          1 * time.Second,
		AddRateLimitHeaders: true,
	})(okHandler(&calls))

	// 1) primeira passa
	r1 := httptest.NewRequest(http.MethodGet, "http://example/utils/list-articles", nil)
	r1.Header.Set("CF-Connecting-IP", "203.0.113.7")
	w1 := httptest.NewRecorder()
	h.ServeHTTP(w1, r1)
	if w1.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w1.Code)
	}
	if got := w1.Header().Get("X-RateLimit-Key"); got != "203.0.113.7" {
		t.Fatalf("expected X-RateLimit-Key=203.0.113.7, got %q", got)
	}
	if got := w1.Header().Get("X-RateLimit-RPS"); got != "0.02" {
		t.Fatalf("expected X-RateLimit-RPS=0.02, got %q", got)
	}
	if got := w1.Header().Get("X-RateLimit-Burst"); got != "1" {
		t.Fatalf("expected X-RateLimit-Burst=1, got %q", got)
	}

	// 2) segunda bloqueia (burst=1 e rps bem baixo)
	r2 := httptest.NewRequest(http.MethodGet, "http://example/utils/list-articles", nil)
	r2.Header.Set("CF-Connecting-IP", "203.0.113.7")
	w2 := httptest.NewRecorder()
	h.ServeHTTP(w2, r2)
	if w2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w2.Code)
	}
	if got := strings.TrimSpace(w2.Body.String()); got != "Too Many Requests" {
		t.Fatalf("expected plain text body, got %q", got)
	}
	if ct := w2.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("expected text/plain, got %q", ct)
	}

	if calls != 1 {
		t.Fatalf("expected next handler to be called once, got %d", calls)
	}
}

func TestMiddleware_DeniedOnAnyPath(t *testing.T) {
	calls := 0
	h := Middleware(Options{Checker: denyAll()})(okHandler(&calls))

	for _, path := range []string{"/", "/utils/list-articles", "/nope", "/utils/list-articles/x"} {
		r := httptest.NewRequest(http.MethodGet, "http://example"+path, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		if w.Code != http.StatusTooManyRequests {
			t.Fatalf("%s: expected 429, got %d", path, w.Code)
		}
	}
	if calls != 0 {
		t.Fatalf("expected next handler never called, got %d", calls)
	}
}

func TestMiddleware_MissingHeaderSharesUnknownKey(t *testing.T) {
	var seen []domain.Key
	checker := domain.CheckerFunc(func(_ context.Context, k domain.Key) (domain.Verdict, error) {
		seen = append(seen, k)
		return domain.Verdict{Success: true}, nil
	})

	calls := 0
	h := Middleware(Options{Checker: checker, Key: KeyOptions{Header: DefaultKeyHeader}})(okHandler(&calls))

	r := httptest.NewRequest(http.MethodGet, "http://example/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if len(seen) != 1 || seen[0] != FallbackKey {
		t.Fatalf("expected single check with key %q, got %v", FallbackKey, seen)
	}
}

func TestMiddleware_RetryAfterUsesSeconds(t *testing.T) {
	calls := 0
	h := Middleware(Options{
		Checker:    denyAll(),
		RetryAfter: 2500 * time.Millisecond,
	})(okHandler(&calls))

	r := httptest.NewRequest(http.MethodGet, "http://example/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if got := w.Header().Get("Retry-After"); got != "2" {
		// int(2.5s.Seconds()) == 2
		t.Fatalf("expected Retry-After=2, got %q", got)
	}
}

func TestMiddleware_CheckerErrorIs500(t *testing.T) {
	checker := domain.CheckerFunc(func(context.Context, domain.Key) (domain.Verdict, error) {
		return domain.Verdict{}, errors.New("binding unavailable")
	})

	calls := 0
	h := Middleware(Options{Checker: checker})(okHandler(&calls))

	r := httptest.NewRequest(http.MethodGet, "http://example/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if calls != 0 {
		t.Fatalf("expected next handler not called")
	}
}

func TestMiddleware_RecordsEvents(t *testing.T) {
	sink := infra.NewMemoryEventSink()
	store := infra.NewBucketStore(0.02, 1)

	calls := 0
	h := Middleware(Options{Checker: store, Events: sink})(okHandler(&calls))

	for i := 0; i < 3; i++ {
		r := httptest.NewRequest(http.MethodGet, "http://example/utils/list-articles", nil)
		h.ServeHTTP(httptest.NewRecorder(), r)
	}

	got := sink.Total()
	if got.Admitted != 1 || got.Rejected != 2 {
		t.Fatalf("expected 1 admitted / 2 rejected, got %+v", got)
	}
}

func TestMiddleware_WindowHeaders(t *testing.T) {
	window := infra.NewRedisWindow(nil, 30, 10*time.Second)

	calls := 0
	h := Middleware(Options{Checker: window, AddRateLimitHeaders: true})(okHandler(&calls))

	r := httptest.NewRequest(http.MethodGet, "http://example/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("X-RateLimit-Limit"); got != "30" {
		t.Fatalf("expected X-RateLimit-Limit=30, got %q", got)
	}
	if got := w.Header().Get("X-RateLimit-Period"); got != "10" {
		t.Fatalf("expected X-RateLimit-Period=10, got %q", got)
	}
}

func TestMiddleware_NoRateHeadersByDefault(t *testing.T) {
	calls := 0
	h := Middleware(Options{Checker: infra.NewBucketStore(5, 10)})(okHandler(&calls))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://example/", nil))

	for _, name := range []string{"X-RateLimit-Key", "X-RateLimit-RPS", "X-RateLimit-Burst"} {
		if got := w.Header().Get(name); got != "" {
			t.Fatalf("expected no %s header, got %q", name, got)
		}
	}
}
