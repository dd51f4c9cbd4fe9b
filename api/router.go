// Package api monta o roteamento do gateway: gate de admissão em todas as
// rotas e uma única rota servida.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"articles-gateway/articles"
)

type Options struct {
	// Admission envolve todas as requests, inclusive as que dão 404.
	Admission func(http.Handler) http.Handler
	Articles  http.Handler
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
}

// NewRouter casa o caminho exato de articles.Route; qualquer outro caminho,
// incluindo subcaminhos, é 404. Não há checagem de método.
func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()
	if opts.Admission != nil {
		r.Use(opts.Admission)
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	if opts.Articles != nil {
		r.Handle(articles.Route, opts.Articles)
	}
	return r
}
