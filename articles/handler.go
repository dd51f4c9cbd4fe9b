package articles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"articles-gateway/articles/domain"
	"articles-gateway/logging"
)

// Route é o único caminho servido pelo gateway.
const Route = "/utils/list-articles"

// Lister é o que o handler precisa do catálogo.
type Lister interface {
	List(ctx context.Context) ([]domain.Article, error)
}

// Handler serve o catálogo como JSON indentado.
type Handler struct {
	Catalog Lister
	Logger  logging.Logger
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logging.OrNoOp(h.Logger)

	list, err := h.Catalog.List(r.Context())
	if err != nil {
		var se *domain.UpstreamStatusError
		if errors.As(err, &se) {
			log.Error("article listing failed", "status", se.StatusCode)
			http.Error(w, fmt.Sprintf("GitHub API error: %d", se.StatusCode), http.StatusInternalServerError)
			return
		}
		log.Error("article catalog failed", "err", err)
		http.Error(w, "Worker error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []domain.Article{}
	}

	body, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		http.Error(w, "Worker error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
