package returns

import (
	"context"
	"net/http"

	"govidly/internal/api/response"
	"govidly/internal/domain"
	"govidly/internal/pkg/logger"
)

// ReturnService define o contrato que o Handler espera da camada de Serviço.
type ReturnService interface {
	Settle(ctx context.Context, input domain.ReturnInput) (domain.Rental, error)
}

// Handler expõe a devolução de filmes.
type Handler struct {
	Service ReturnService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ReturnService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// CreateReturnHandler lida com a requisição POST /returns.
// @Summary Devolve um filme
// @Description Fecha a locação do par cliente/filme, calcula a taxa e repõe o estoque.
// @Tags returns
// @Accept json
// @Produce json
// @Param return body domain.ReturnInput true "Cliente e filme"
// @Success 200 {object} domain.Rental "Locação fechada"
// @Failure 400 {object} domain.ErrorResponse "Campos ausentes ou ALREADY_PROCESSED"
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Failure 404 {object} domain.ErrorResponse "RENTAL_NOT_FOUND"
// @Security ApiKeyAuth
// @Router /returns [post]
func (h *Handler) CreateReturnHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.ReturnInput
	if err := response.Decode(r, &input); err != nil {
		response.Handle(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	rental, err := h.Service.Settle(r.Context(), input)
	response.Handle(w, r, h.Logger, rental, err, http.StatusOK)
}
