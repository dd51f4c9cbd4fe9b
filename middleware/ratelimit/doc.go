// Package ratelimit fornece o gate de admissão (net/http) do gateway de artigos.
//
// Camadas:
//
//   - domain: contratos (Checker, Verdict, EventSink, SlotPool), sem net/http
//   - application: caso de uso Admit (consulta única + normalização do veredito)
//   - infra: token bucket em processo, janela fixa no Redis, estatísticas, semáforo
//   - ratelimit (este pacote): middleware HTTP + extração de chave + tradução para status/headers
//
// Fluxo:
//
//  1. Extrai a chave do cliente (CF-Connecting-IP, XFF, RemoteAddr ou "unknown")
//  2. Chama a camada application para obter o veredito
//  3. Se negado, responde 429 em texto puro
//  4. Se admitido, chama o próximo handler (o router)
package ratelimit
