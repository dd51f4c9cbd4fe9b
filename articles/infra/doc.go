// Package infra implementa domain.Source sobre a API de conteúdos do GitHub
// e a extração mínima de front matter (ParseLines, ExtractMetadata).
package infra
