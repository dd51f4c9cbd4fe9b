package articles

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"articles-gateway/articles/domain"
)

type listerFunc func(ctx context.Context) ([]domain.Article, error)

func (f listerFunc) List(ctx context.Context) ([]domain.Article, error) { return f(ctx) }

func serve(t *testing.T, l Lister) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "http://example"+Route, nil)
	w := httptest.NewRecorder()
	Handler{Catalog: l}.ServeHTTP(w, r)
	return w
}

func TestHandler_SuccessWritesIndentedJSON(t *testing.T) {
	w := serve(t, listerFunc(func(context.Context) ([]domain.Article, error) {
		return []domain.Article{{Slug: "a", Title: "A", Date: "2024-01-01", URL: "u"}}, nil
	}))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content-type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), "\n  {\n    \"slug\": \"a\",") {
		t.Fatalf("expected 2-space indented JSON, got:\n%s", w.Body.String())
	}

	var got []domain.Article
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got) != 1 || got[0].Title != "A" {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestHandler_EmptyCatalogIsEmptyArray(t *testing.T) {
	w := serve(t, listerFunc(func(context.Context) ([]domain.Article, error) { return nil, nil }))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("expected [], got %q", w.Body.String())
	}
}

func TestHandler_UpstreamStatusIs500WithCode(t *testing.T) {
	w := serve(t, listerFunc(func(context.Context) ([]domain.Article, error) {
		return nil, &domain.UpstreamStatusError{Op: "list articles", StatusCode: 404}
	}))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "404") {
		t.Fatalf("expected upstream status in body, got %q", w.Body.String())
	}
}

func TestHandler_OtherErrorIs500WithMessage(t *testing.T) {
	w := serve(t, listerFunc(func(context.Context) ([]domain.Article, error) {
		return nil, errors.New("dial tcp: connection refused")
	}))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "Worker error: dial tcp: connection refused" {
		t.Fatalf("unexpected body %q", got)
	}
}
