package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"articles-gateway/articles/domain"
)

const (
	DefaultAPIURL = "https://api.github.com"
	acceptV3      = "application/vnd.github.v3+json"
	userAgent     = "articles-gateway"
)

// GitHubSource implementa domain.Source sobre a API REST de conteúdos.
//
// Sem timeout próprio e sem retry: o limite é o do http.Client recebido
// e o contexto da request.
type GitHubSource struct {
	HTTP    *http.Client
	BaseURL string
	Owner   string
	Repo    string
	Branch  string
	Token   string
}

func (s *GitHubSource) client() *http.Client {
	if s.HTTP != nil {
		return s.HTTP
	}
	return http.DefaultClient
}

func (s *GitHubSource) contentsURL(dir string) string {
	base := strings.TrimRight(s.BaseURL, "/")
	if base == "" {
		base = DefaultAPIURL
	}
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s",
		base,
		url.PathEscape(s.Owner),
		url.PathEscape(s.Repo),
		strings.Trim(dir, "/"),
		url.QueryEscape(s.Branch),
	)
}

// ListDir lista o diretório no branch configurado.
func (s *GitHubSource) ListDir(ctx context.Context, dir string) ([]domain.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.contentsURL(dir), nil)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	req.Header.Set("Accept", acceptV3)
	req.Header.Set("User-Agent", userAgent)
	if s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := s.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &domain.UpstreamStatusError{Op: "list " + dir, StatusCode: resp.StatusCode}
	}

	var entries []domain.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding listing of %s: %w", dir, err)
	}
	return entries, nil
}

// FetchRaw baixa o conteúdo bruto de download_url.
func (s *GitHubSource) FetchRaw(ctx context.Context, rawURL string) ([]byte, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("fetch raw: empty url")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch raw: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch raw: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &domain.UpstreamStatusError{Op: "fetch raw", StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading raw body: %w", err)
	}
	return body, nil
}
