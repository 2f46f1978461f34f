package domain

import apperror "govidly/internal/errors"

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// @Description Estrutura padronizada para respostas de erro na API.
type ErrorResponse struct {
	Code       int                       `json:"code" example:"400"`
	Category   string                    `json:"category" example:"VALIDATION_ERROR"`
	Message    string                    `json:"message" example:"O nome do gênero deve ter entre 5 e 50 caracteres."`
	Violations []apperror.FieldViolation `json:"violations,omitempty"`
}
