package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros customizados do GoVidly.
// Ela permite que o Handler acesse a Categoria, o Status HTTP e a causa do erro.
type AppError interface {
	Error() string
	Category() string
	HTTPStatus() int
	Unwrap() error
}

// Categorias de regra de negócio (todas mapeadas para 400).
const (
	CategoryOutOfStock       = "OUT_OF_STOCK"
	CategoryAlreadyProcessed = "ALREADY_PROCESSED"
	CategoryDuplicateEmail   = "DUPLICATE_EMAIL"
	CategoryRentalNotFound   = "RENTAL_NOT_FOUND"
)

// --- Erros de Validação ---

// FieldViolation descreve uma única falha de validação em um campo do payload.
type FieldViolation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError representa falhas de validação de dados de entrada.
// Violations é opcional: erros simples (JSON malformado, ID ausente) não têm campos.
type ValidationError struct {
	Msg        string
	Violations []FieldViolation
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest }
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação sem violações de campo.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// NewFieldValidationError cria um erro de validação com a lista estruturada de violações.
func NewFieldValidationError(msg string, violations []FieldViolation) AppError {
	return &ValidationError{Msg: msg, Violations: violations}
}

// --- Autenticação e Autorização ---

// UnauthorizedError representa ausência de credenciais ou token inválido.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return fmt.Sprintf("Não autenticado: %s", e.Msg) }
func (e *UnauthorizedError) Category() string { return "UNAUTHENTICATED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized }
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError cria um novo erro 401.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// ForbiddenError representa um usuário autenticado sem a permissão necessária.
type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string    { return fmt.Sprintf("Acesso negado: %s", e.Msg) }
func (e *ForbiddenError) Category() string { return "FORBIDDEN" }
func (e *ForbiddenError) HTTPStatus() int  { return http.StatusForbidden }
func (e *ForbiddenError) Unwrap() error    { return nil }

// NewForbiddenError cria um novo erro 403.
func NewForbiddenError(msg string) AppError {
	return &ForbiddenError{Msg: msg}
}

// --- Recursos ---

// NotFoundError representa a ausência de um recurso solicitado.
// IDs malformados também resultam em NotFoundError.
type NotFoundError struct {
	Msg      string
	category string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string {
	if e.category != "" {
		return e.category
	}
	return "NOT_FOUND"
}
func (e *NotFoundError) HTTPStatus() int { return http.StatusNotFound }
func (e *NotFoundError) Unwrap() error   { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// NewRentalNotFoundError é usado quando não existe locação para o par cliente/filme.
func NewRentalNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg, category: CategoryRentalNotFound}
}

// RateLimitError indica que o cliente excedeu o limite de requisições.
type RateLimitError struct {
	Msg string
}

func (e *RateLimitError) Error() string    { return fmt.Sprintf("Limite de requisições excedido: %s", e.Msg) }
func (e *RateLimitError) Category() string { return "RATE_LIMITED" }
func (e *RateLimitError) HTTPStatus() int  { return http.StatusTooManyRequests }
func (e *RateLimitError) Unwrap() error    { return nil }

// NewRateLimitError cria um novo erro 429.
func NewRateLimitError(msg string) AppError {
	return &RateLimitError{Msg: msg}
}

// --- Regras de Negócio ---

// BusinessRuleError representa a violação de uma regra de negócio (estoque esgotado,
// devolução já processada, e-mail duplicado). Sempre 400.
type BusinessRuleError struct {
	Msg      string
	category string
}

func (e *BusinessRuleError) Error() string    { return e.Msg }
func (e *BusinessRuleError) Category() string { return e.category }
func (e *BusinessRuleError) HTTPStatus() int  { return http.StatusBadRequest }
func (e *BusinessRuleError) Unwrap() error    { return nil }

// NewOutOfStockError indica que o filme não possui unidades disponíveis.
func NewOutOfStockError(msg string) AppError {
	return &BusinessRuleError{Msg: msg, category: CategoryOutOfStock}
}

// NewAlreadyProcessedError indica que a locação já foi devolvida.
func NewAlreadyProcessedError(msg string) AppError {
	return &BusinessRuleError{Msg: msg, category: CategoryAlreadyProcessed}
}

// NewDuplicateEmailError indica que o e-mail já está cadastrado.
func NewDuplicateEmailError(msg string) AppError {
	return &BusinessRuleError{Msg: msg, category: CategoryDuplicateEmail}
}

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// InternalError representa falhas inesperadas no servidor, serviço ou repositório.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro do driver SQL)
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Erro Interno: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("Erro Interno: %s", e.Msg)
}
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError }
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (para falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para criar um InternalError específico de falhas no DB.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (DB)", msg), err)
}

// --- Helpers ---

// FromDB preserva erros já tipados (ex.: NotFound dentro de uma transação)
// e encapsula os demais como falha de DB.
func FromDB(msg string, err error) error {
	if err == nil {
		return nil
	}
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return err
	}
	return NewDBError(msg, err)
}

// HasCategory informa se algum erro da cadeia é um AppError da categoria indicada.
func HasCategory(err error, category string) bool {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return appErr.Category() == category
	}
	return false
}

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP e corpo de resposta.
// Erros internos nunca expõem a causa ao cliente.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		if appErr.HTTPStatus() >= http.StatusInternalServerError {
			return appErr.HTTPStatus(), appErr.Category(), "Ocorreu um erro inesperado."
		}
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	// Erro não tipado: tratado como erro interno genérico.
	return http.StatusInternalServerError, "UNKNOWN_ERROR", "Ocorreu um erro inesperado."
}

// Violations extrai as violações de campo, se o erro for um ValidationError.
func Violations(err error) []FieldViolation {
	var vErr *ValidationError
	if stderrors.As(err, &vErr) {
		return vErr.Violations
	}
	return nil
}
