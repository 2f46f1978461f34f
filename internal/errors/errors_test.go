package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperror "govidly/internal/errors"
)

func TestMapToHTTPStatus_BusinessRules(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		status   int
		category string
	}{
		{"estoque esgotado", apperror.NewOutOfStockError("sem estoque"), http.StatusBadRequest, apperror.CategoryOutOfStock},
		{"já processada", apperror.NewAlreadyProcessedError("já devolvida"), http.StatusBadRequest, apperror.CategoryAlreadyProcessed},
		{"email duplicado", apperror.NewDuplicateEmailError("em uso"), http.StatusBadRequest, apperror.CategoryDuplicateEmail},
		{"locação inexistente", apperror.NewRentalNotFoundError("nada"), http.StatusNotFound, apperror.CategoryRentalNotFound},
		{"não encontrado", apperror.NewNotFoundError("x"), http.StatusNotFound, "NOT_FOUND"},
		{"não autenticado", apperror.NewUnauthorizedError("x"), http.StatusUnauthorized, "UNAUTHENTICATED"},
		{"proibido", apperror.NewForbiddenError("x"), http.StatusForbidden, "FORBIDDEN"},
		{"validação", apperror.NewValidationError("x"), http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, category, _ := apperror.MapToHTTPStatus(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.category, category)
		})
	}
}

func TestMapToHTTPStatus_WrappedError(t *testing.T) {
	err := fmt.Errorf("camada de serviço: %w", apperror.NewOutOfStockError("sem estoque"))

	status, category, _ := apperror.MapToHTTPStatus(err)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apperror.CategoryOutOfStock, category)
	assert.True(t, apperror.HasCategory(err, apperror.CategoryOutOfStock))
}

func TestMapToHTTPStatus_InternalHidesCause(t *testing.T) {
	err := apperror.NewDBError("Falha ao buscar filme", stderrors.New("pq: connection refused"))

	status, category, message := apperror.MapToHTTPStatus(err)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", category)
	assert.NotContains(t, message, "connection refused")
	assert.ErrorContains(t, err, "connection refused")
}

func TestMapToHTTPStatus_UntypedError(t *testing.T) {
	status, category, _ := apperror.MapToHTTPStatus(stderrors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "UNKNOWN_ERROR", category)
}

func TestViolations(t *testing.T) {
	violations := []apperror.FieldViolation{{Field: "name", Rule: "min", Message: "muito curto"}}
	err := fmt.Errorf("wrap: %w", apperror.NewFieldValidationError("Payload inválido.", violations))

	assert.Equal(t, violations, apperror.Violations(err))
	assert.Nil(t, apperror.Violations(apperror.NewNotFoundError("x")))
}
