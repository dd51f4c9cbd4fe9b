package domain

import (
	"context"
	"fmt"
	"strings"
)

// MarkdownExt é a extensão dos arquivos candidatos a artigo.
const MarkdownExt = ".md"

// Article é montado a cada request e descartado em seguida.
type Article struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	URL         string `json:"url"`
}

// Entry é um item da listagem de diretório do code host.
type Entry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// IsMarkdown indica se a entrada é candidata a artigo.
func (e Entry) IsMarkdown() bool { return strings.HasSuffix(e.Name, MarkdownExt) }

// Slug remove exatamente um sufixo .md do nome.
func (e Entry) Slug() string { return strings.TrimSuffix(e.Name, MarkdownExt) }

// Metadata é o bloco de front matter: chave/valor, sem tipos.
type Metadata map[string]string

// Visible: visível, a menos que show seja literalmente "false".
func (m Metadata) Visible() bool { return m["show"] != "false" }

// NewArticle monta o artigo a partir da entrada e do front matter.
func NewArticle(e Entry, meta Metadata) Article {
	title := meta["title"]
	if title == "" {
		title = e.Name
	}
	return Article{
		Slug:        e.Slug(),
		Title:       title,
		Description: meta["description"],
		Date:        meta["date"],
		URL:         e.DownloadURL,
	}
}

// Source é a capacidade externa do code host: listar diretório e baixar o
// conteúdo bruto de um arquivo. Cada chamada é feita uma única vez.
type Source interface {
	ListDir(ctx context.Context, dir string) ([]Entry, error)
	FetchRaw(ctx context.Context, url string) ([]byte, error)
}

// UpstreamStatusError indica resposta não-2xx do code host.
type UpstreamStatusError struct {
	Op         string
	StatusCode int
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
}
