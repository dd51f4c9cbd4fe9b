package application

import (
	"context"
	"fmt"
	"time"

	"articles-gateway/middleware/ratelimit/domain"
)

// AdmissionService concentra a regra do gate de admissão.
//
// Ele não sabe nada sobre HTTP (headers/status), apenas consulta o Checker
// uma única vez por request e normaliza o veredito.
type AdmissionService struct {
	Checker    domain.Checker
	RetryAfter time.Duration
}

// Admit devolve o veredito para a chave. Sem Checker, tudo é admitido.
// Erro do Checker é propagado sem retry.
func (s AdmissionService) Admit(ctx context.Context, key domain.Key) (domain.Verdict, error) {
	if s.Checker == nil {
		return domain.Verdict{Success: true}, nil
	}

	v, err := s.Checker.Check(ctx, key)
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("admission check %q: %w", key, err)
	}
	if v.Success {
		return domain.Verdict{Success: true}, nil
	}

	if v.RetryAfter <= 0 {
		v.RetryAfter = s.RetryAfter
	}
	if v.RetryAfter <= 0 {
		v.RetryAfter = 1 * time.Second
	}
	return v, nil
}
