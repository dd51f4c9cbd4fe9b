// Package application monta o catálogo: listagem, fan-out por arquivo,
// filtro de visibilidade e ordenação por data. Não conhece net/http.
package application
