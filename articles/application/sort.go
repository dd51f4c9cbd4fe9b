package application

import (
	"sort"
	"time"

	"github.com/araddon/dateparse"

	"articles-gateway/articles/domain"
)

// parseDate interpreta a data em UTC. Vazia ou inválida: ok=false,
// e o artigo conta como o mais antigo possível.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SortByDateDesc ordena do mais novo para o mais antigo. Empates (inclusive
// entre datas inválidas) mantêm a ordem da listagem.
func SortByDateDesc(articles []domain.Article) {
	type keyed struct {
		at time.Time
		ok bool
	}
	keys := make([]keyed, len(articles))
	for i, a := range articles {
		t, ok := parseDate(a.Date)
		keys[i] = keyed{at: t, ok: ok}
	}

	idx := make([]int, len(articles))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		a, b := keys[idx[i]], keys[idx[j]]
		if a.ok != b.ok {
			return a.ok
		}
		return a.at.After(b.at)
	})

	sorted := make([]domain.Article, len(articles))
	for i, k := range idx {
		sorted[i] = articles[k]
	}
	copy(articles, sorted)
}
