package infra

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"articles-gateway/articles/domain"
)

func TestGitHubSource_ListDirSendsHeaders(t *testing.T) {
	var gotPath, gotQuery, gotAccept, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAccept = r.Header.Get("Accept")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"name":"a.md","path":"articles/a.md","type":"file","download_url":"https://raw.example/a.md"},{"name":"img","type":"dir","download_url":null}]`)
	}))
	defer srv.Close()

	s := &GitHubSource{HTTP: srv.Client(), BaseURL: srv.URL + "/", Owner: "o", Repo: "r", Branch: "main", Token: "secret"}
	entries, err := s.ListDir(context.Background(), "articles")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/repos/o/r/contents/articles" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "ref=main" {
		t.Errorf("query = %q", gotQuery)
	}
	if gotAccept != "application/vnd.github.v3+json" {
		t.Errorf("accept = %q", gotAccept)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("authorization = %q", gotAuth)
	}
	if len(entries) != 2 || entries[0].DownloadURL != "https://raw.example/a.md" || entries[1].DownloadURL != "" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestGitHubSource_NoTokenNoAuthorization(t *testing.T) {
	auth := "unset"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	s := &GitHubSource{HTTP: srv.Client(), BaseURL: srv.URL, Owner: "o", Repo: "r", Branch: "main"}
	if _, err := s.ListDir(context.Background(), "articles"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auth != "" {
		t.Fatalf("expected no Authorization header, got %q", auth)
	}
}

func TestGitHubSource_ListDirStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	s := &GitHubSource{HTTP: srv.Client(), BaseURL: srv.URL, Owner: "o", Repo: "r", Branch: "main"}
	_, err := s.ListDir(context.Background(), "articles")

	var se *domain.UpstreamStatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected UpstreamStatusError, got %v", err)
	}
	if se.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", se.StatusCode)
	}
}

func TestGitHubSource_FetchRaw(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.md" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = io.WriteString(w, "---\ntitle: A\n---\n")
	}))
	defer srv.Close()

	s := &GitHubSource{HTTP: srv.Client()}

	body, err := s.FetchRaw(context.Background(), srv.URL+"/a.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != "---\ntitle: A\n---\n" {
		t.Fatalf("unexpected body %q", body)
	}

	if _, err := s.FetchRaw(context.Background(), srv.URL+"/missing.md"); err == nil {
		t.Fatalf("expected error for 404")
	}
	if _, err := s.FetchRaw(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty url")
	}
}
