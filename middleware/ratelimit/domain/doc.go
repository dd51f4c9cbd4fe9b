// Package domain define contratos e tipos de domínio do gate de admissão.
//
// Este pacote não depende de net/http nem de implementações concretas
// (x/time/rate, Redis), para que as regras sejam testáveis com fakes.
package domain
