// Package workflow define os tipos de erro compartilhados pelas operações do
// ciclo de vida de campanhas, candidaturas e entregas
package workflow

import (
	"errors"
	"fmt"
)

// Tipos de erro do núcleo de workflow
var (
	// Entrada malformada ou valor de ação não permitido
	ErrValidation = errors.New("requisição inválida")

	// Ator autenticado sem direitos sobre o recurso
	ErrForbidden = errors.New("acesso negado ao recurso")

	// Campanha, candidatura ou entrega referenciada não existe
	ErrNotFound = errors.New("recurso não encontrado")

	// Operação não permitida a partir do estado atual da entidade
	ErrInvalidState = errors.New("operação inválida para o estado atual")

	// Transição de status fora das arestas permitidas
	ErrInvalidTransition = errors.New("transição de status não permitida")

	// Corrida de atualização concorrente perdida
	ErrConflict = errors.New("conflito de atualização concorrente")

	// Falha no armazenamento subjacente (único tipo elegível a retry)
	ErrStorage = errors.New("erro ao acessar o armazenamento")
)

// Error é um erro de workflow com contexto adicional
type Error struct {
	Err     error  // Tipo base (um dos sentinelas acima)
	Code    string // Código de erro para a API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError cria um novo erro de workflow
func NewError(baseErr error, code string, details string) *Error {
	return &Error{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

// IsRetryable indica se o erro é possivelmente transitório. Apenas falhas de
// armazenamento podem ser repetidas pelo chamador sem alterar a requisição
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStorage)
}
