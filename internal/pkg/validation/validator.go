package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperror "govidly/internal/errors"
)

// Validator encapsula o go-playground/validator e converte suas falhas
// em um ValidationError com a lista de violações por campo.
type Validator struct {
	v *validator.Validate
}

// New cria o validador usando o nome JSON dos campos nas violações.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{v: v}
}

// Validate valida a struct e retorna nil ou um *apperror.ValidationError.
func (v *Validator) Validate(ctx context.Context, i interface{}) error {
	err := v.v.StructCtx(ctx, i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperror.NewValidationError(err.Error())
	}

	violations := make([]apperror.FieldViolation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, apperror.FieldViolation{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}

	return apperror.NewFieldValidationError(violations[0].Message, violations)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s é obrigatório.", fe.Field())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s deve ter no mínimo %s caracteres.", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s deve ser no mínimo %s.", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s deve ter no máximo %s caracteres.", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s deve ser no máximo %s.", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s deve ser um e-mail válido.", fe.Field())
	case "uuid":
		return fmt.Sprintf("%s deve ser um identificador válido.", fe.Field())
	default:
		return fmt.Sprintf("%s falhou na regra '%s'.", fe.Field(), fe.Tag())
	}
}
