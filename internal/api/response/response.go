// Package response concentra a escrita de respostas JSON e a decodificação
// de payloads compartilhadas pelos handlers.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"govidly/internal/domain"
	apperror "govidly/internal/errors"
	"govidly/internal/pkg/logger"
)

// Handle processa o resultado do serviço e envia a resposta padronizada ao cliente.
func Handle(w http.ResponseWriter, r *http.Request, log logger.Logger, data interface{}, err error, successStatus int) {
	if err == nil {
		JSON(w, log, successStatus, data)
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= http.StatusInternalServerError {
		log.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		log.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	JSON(w, log, status, domain.ErrorResponse{
		Code:       status,
		Category:   category,
		Message:    message,
		Violations: apperror.Violations(err),
	})
}

// JSON escreve data com o status informado.
func JSON(w http.ResponseWriter, log logger.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("Falha ao codificar JSON de resposta", err)
	}
}

// Decode lê o corpo JSON da requisição em dst.
func Decode(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return apperror.NewValidationError("Payload JSON inválido.")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.NewValidationError("Payload JSON inválido.")
	}
	return nil
}

// PathID devolve a variável {id} da rota.
func PathID(r *http.Request) string {
	return mux.Vars(r)["id"]
}
