package domain

import "context"

// SlotPool representa um recurso com capacidade finita.
//
// Acquire bloqueia até conseguir uma vaga ou até o ctx encerrar.
// A função de release deve ser chamada exatamente uma vez.
type SlotPool interface {
	Acquire(ctx context.Context) (release func(), ok bool)
}
