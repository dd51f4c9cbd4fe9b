package domain

import (
	"context"
	"time"
)

// AdmissionEvent registra uma decisão do gate.
//
// Method/Path são strings genéricas; cuidado com cardinalidade ao
// persistir Key/Path em Redis.
type AdmissionEvent struct {
	Key      Key
	Admitted bool

	Method string
	Path   string

	At time.Time
}

// EventSink persiste estatísticas de admissão. Best-effort: o middleware
// nunca derruba a request por erro aqui.
type EventSink interface {
	Record(ctx context.Context, ev AdmissionEvent) error
}
