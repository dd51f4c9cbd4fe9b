// Package domain define os tipos do catálogo de artigos (Article, Entry,
// Metadata, Outcome) e o contrato Source do code host.
package domain
