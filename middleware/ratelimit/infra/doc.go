// Package infra contém implementações concretas para os contratos do pacote domain.
//
//   - BucketStore: token bucket por chave usando golang.org/x/time/rate
//   - RedisWindow: janela fixa compartilhada via Redis
//   - MemoryEventSink / RedisEventSink: estatísticas de admissão
//   - ChanPool: semáforo simples (limita o fan-out de downloads)
package infra
