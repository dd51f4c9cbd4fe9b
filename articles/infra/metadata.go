package infra

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"

	"articles-gateway/articles/domain"
)

// metaLine casa `chave: valor` numa única linha; a chave só tem caracteres de palavra.
var metaLine = regexp.MustCompile(`^(\w+):\s*(.*)$`)

// ParseLines lê um bloco de front matter linha a linha.
//
// Só entende escalares `chave: valor` de uma linha. Listas, mapas aninhados e
// valores multilinha não são YAML aqui: linhas que não casam são ignoradas.
// Última ocorrência de uma chave vence.
func ParseLines(text string) domain.Metadata {
	meta := domain.Metadata{}
	for _, line := range strings.Split(text, "\n") {
		m := metaLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		meta[strings.TrimSpace(m[1])] = unquote(strings.TrimSpace(m[2]))
	}
	return meta
}

// unquote remove um único par de aspas (duplas ou simples) que cubra o valor inteiro.
func unquote(v string) string {
	if len(v) < 2 {
		return v
	}
	first, last := v[0], v[len(v)-1]
	if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
		return v[1 : len(v)-1]
	}
	return v
}

// lineFormat delimita o bloco com --- e entrega o miolo ao ParseLines.
var lineFormat = frontmatter.NewFormat("---", "---", unmarshalLines)

func unmarshalLines(data []byte, v interface{}) error {
	meta, ok := v.(*domain.Metadata)
	if !ok {
		return fmt.Errorf("front matter: unsupported target %T", v)
	}
	*meta = ParseLines(string(data))
	return nil
}

// ExtractMetadata localiza o bloco de front matter no início do texto.
// O --- de abertura tem que estar no byte 0: linha em branco ou espaço antes
// dele significa que não há bloco. Sem bloco, devolve metadata vazia e nenhum erro.
func ExtractMetadata(text string) (domain.Metadata, error) {
	meta := domain.Metadata{}
	if !strings.HasPrefix(text, "---") {
		return meta, nil
	}
	if _, err := frontmatter.Parse(strings.NewReader(text), &meta, lineFormat); err != nil {
		return domain.Metadata{}, fmt.Errorf("front matter: %w", err)
	}
	return meta, nil
}
