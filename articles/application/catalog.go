package application

import (
	"context"
	"fmt"
	"sync"

	"articles-gateway/articles/domain"
	"articles-gateway/logging"
)

// DefaultDir é o diretório do repositório que contém os artigos.
const DefaultDir = "articles"

// Pool limita quantos downloads rodam ao mesmo tempo. Opcional.
type Pool interface {
	Acquire(ctx context.Context) (release func(), ok bool)
}

// Extractor extrai o front matter do texto bruto.
type Extractor func(text string) (domain.Metadata, error)

// Catalog monta o catálogo de artigos visíveis a cada chamada de List.
type Catalog struct {
	Source  domain.Source
	Extract Extractor
	Dir     string
	Pool    Pool
	Logger  logging.Logger
}

// List lista o diretório, processa cada .md em paralelo e devolve os artigos
// visíveis ordenados por data decrescente. Só a falha da listagem vira erro;
// falhas por arquivo são logadas e descartadas.
func (c Catalog) List(ctx context.Context) ([]domain.Article, error) {
	if c.Source == nil {
		return nil, fmt.Errorf("catalog: no source configured")
	}
	dir := c.Dir
	if dir == "" {
		dir = DefaultDir
	}
	log := logging.OrNoOp(c.Logger)

	entries, err := c.Source.ListDir(ctx, dir)
	if err != nil {
		return nil, err
	}

	var candidates []domain.Entry
	for _, e := range entries {
		if e.IsMarkdown() {
			candidates = append(candidates, e)
		}
	}

	outcomes := c.fanOut(ctx, candidates)

	articles := make([]domain.Article, 0, len(outcomes))
	for _, o := range outcomes {
		switch {
		case o.Failed():
			log.Warn("skipping article", "file", o.Entry.Name, "err", o.Err)
		case o.Article != nil:
			articles = append(articles, *o.Article)
		}
	}

	SortByDateDesc(articles)
	return articles, nil
}

// fanOut processa cada entrada numa goroutine e só retorna quando todas
// terminaram. Cada goroutine escreve apenas no seu índice.
func (c Catalog) fanOut(ctx context.Context, entries []domain.Entry) []domain.Outcome {
	outcomes := make([]domain.Outcome, len(entries))

	var wg sync.WaitGroup
	for i, e := range entries {
		wg.Add(1)
		go func(i int, e domain.Entry) {
			defer wg.Done()
			outcomes[i] = c.process(ctx, e)
		}(i, e)
	}
	wg.Wait()

	return outcomes
}

func (c Catalog) process(ctx context.Context, e domain.Entry) (out domain.Outcome) {
	out.Entry = e
	defer func() {
		if r := recover(); r != nil {
			out = domain.Outcome{Entry: e, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if c.Pool != nil {
		release, ok := c.Pool.Acquire(ctx)
		if !ok {
			out.Err = fmt.Errorf("no fetch slot: %w", ctx.Err())
			return out
		}
		defer release()
	}

	raw, err := c.Source.FetchRaw(ctx, e.DownloadURL)
	if err != nil {
		out.Err = err
		return out
	}

	meta := c.metadata(e, string(raw))
	if !meta.Visible() {
		out.Hidden = true
		return out
	}

	a := domain.NewArticle(e, meta)
	out.Article = &a
	return out
}

// metadata nunca falha a entrada: erro de parse vira metadata vazia.
func (c Catalog) metadata(e domain.Entry, text string) domain.Metadata {
	if c.Extract == nil {
		return domain.Metadata{}
	}
	meta, err := c.Extract(text)
	if err != nil {
		logging.OrNoOp(c.Logger).Warn("front matter parse error", "file", e.Name, "err", err)
		return domain.Metadata{}
	}
	return meta
}
