package domain

// Camada de domínio da admissão (rate limit).
//
// Contratos sem dependência de net/http: o gateway só precisa saber se a
// chave do cliente ainda tem orçamento.

import (
	"context"
	"time"
)

type Key string

// Verdict é a resposta da capacidade de rate limit para uma chave.
type Verdict struct {
	Success bool
	// RetryAfter é sugerido ao cliente quando Success=false.
	// Se 0, não há recomendação.
	RetryAfter time.Duration
}

// Checker é a capacidade externa de rate limit: check(key) -> {success}.
//
// A implementação pode ser local (token bucket) ou compartilhada (Redis).
// Erro significa que a capacidade não respondeu; não é uma negação.
type Checker interface {
	Check(ctx context.Context, key Key) (Verdict, error)
}

// CheckerFunc adapta uma função comum para Checker.
type CheckerFunc func(ctx context.Context, key Key) (Verdict, error)

func (f CheckerFunc) Check(ctx context.Context, key Key) (Verdict, error) { return f(ctx, key) }
