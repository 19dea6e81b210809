package repository

import "errors"

// Erros retornados pelas escritas condicionais. Os serviços de workflow
// traduzem esses erros para os tipos expostos pela API
var (
	// Registro não existe (ou deixou de existir antes da escrita)
	ErrNotFound = errors.New("registro não encontrado")

	// A escrita condicional encontrou um status diferente do esperado,
	// ou seja, outra transição foi confirmada primeiro
	ErrStaleStatus = errors.New("status do registro diferente do esperado")
)
