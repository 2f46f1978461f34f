package middleware

import (
	"encoding/json"
	"net/http"

	"govidly/internal/domain"
	apperror "govidly/internal/errors"
)

// writeError responde com o mesmo corpo JSON de erro usado pelos handlers.
func writeError(w http.ResponseWriter, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}
