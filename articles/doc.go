// Package articles expõe o catálogo de artigos via HTTP.
//
// Camadas, como no gate de admissão:
//
//   - domain: Article, Entry, Metadata, Outcome e o contrato Source
//   - application: Catalog.List (listagem, fan-out, filtro, ordenação)
//   - infra: GitHubSource e a extração mínima de front matter
//   - articles (este pacote): Handler, que traduz o resultado em 200/500
//
// O front matter aceito é só `chave: valor` de uma linha. Não é YAML.
package articles
