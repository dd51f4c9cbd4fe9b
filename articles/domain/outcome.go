package domain

// Outcome é o resultado de uma entrada no fan-out: artigo, oculto ou falha.
// Só Outcomes com Article != nil entram no catálogo.
type Outcome struct {
	Entry   Entry
	Article *Article
	Hidden  bool
	Err     error
}

func (o Outcome) Failed() bool { return o.Err != nil }
