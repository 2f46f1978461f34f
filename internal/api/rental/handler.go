package rental

import (
	"context"
	"net/http"

	"govidly/internal/api/response"
	"govidly/internal/domain"
	"govidly/internal/pkg/logger"
	"govidly/internal/pkg/middleware"
)

// RentalService define o contrato que o Handler espera do livro de locações.
type RentalService interface {
	Checkout(ctx context.Context, input domain.RentalInput) (domain.Rental, error)
	List(ctx context.Context, sortParam string) ([]domain.Rental, error)
	GetByID(ctx context.Context, id string) (domain.Rental, error)
	UpdateDateOut(ctx context.Context, id string, input domain.RentalDateOutInput) (domain.Rental, error)
	Delete(ctx context.Context, id string) (domain.Rental, error)
}

// Handler agrupa todos os métodos de Handler de locações.
type Handler struct {
	Service RentalService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc RentalService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// ListRentalsHandler lida com a requisição GET /rentals.
// @Summary Lista locações
// @Description Ordenadas pela data de retirada, mais recentes primeiro por padrão.
// @Tags rentals
// @Produce json
// @Param sort query string false "dateOut ou -dateOut"
// @Success 200 {array} domain.Rental
// @Failure 400 {object} domain.ErrorResponse "Ordenação inválida"
// @Router /rentals [get]
func (h *Handler) ListRentalsHandler(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.Service.List(r.Context(), r.URL.Query().Get("sort"))
	response.Handle(w, r, h.Logger, rentals, err, http.StatusOK)
}

// CreateRentalHandler lida com a requisição POST /rentals (retirada).
// @Summary Retira um filme
// @Description Decrementa o estoque e cria a locação com os snapshots do cliente e do filme.
// @Tags rentals
// @Accept json
// @Produce json
// @Param rental body domain.RentalInput true "Cliente e filme"
// @Success 201 {object} domain.Rental
// @Failure 400 {object} domain.ErrorResponse "Validação ou OUT_OF_STOCK"
// @Failure 404 {object} domain.ErrorResponse "Cliente ou filme não encontrado"
// @Security ApiKeyAuth
// @Router /rentals [post]
func (h *Handler) CreateRentalHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.RentalInput
	if err := response.Decode(r, &input); err != nil {
		response.Handle(w, r, h.Logger, nil, err, http.StatusCreated)
		return
	}

	if identity, ok := middleware.IdentityFromContext(r.Context()); ok {
		h.Logger.Debug("Retirada solicitada.", map[string]interface{}{"user_id": identity.ID, "movie_id": input.MovieID})
	}

	rental, err := h.Service.Checkout(r.Context(), input)
	response.Handle(w, r, h.Logger, rental, err, http.StatusCreated)
}

// GetRentalHandler lida com a requisição GET /rentals/{id}.
// @Summary Busca uma locação
// @Tags rentals
// @Produce json
// @Param id path string true "ID da locação"
// @Success 200 {object} domain.Rental
// @Failure 404 {object} domain.ErrorResponse "Locação não encontrada"
// @Router /rentals/{id} [get]
func (h *Handler) GetRentalHandler(w http.ResponseWriter, r *http.Request) {
	rental, err := h.Service.GetByID(r.Context(), response.PathID(r))
	response.Handle(w, r, h.Logger, rental, err, http.StatusOK)
}

// UpdateRentalHandler lida com a requisição PUT /rentals/{id}.
// @Summary Corrige a data de retirada de uma locação aberta
// @Tags rentals
// @Accept json
// @Produce json
// @Param id path string true "ID da locação"
// @Param rental body domain.RentalDateOutInput true "Nova data de retirada"
// @Success 200 {object} domain.Rental
// @Failure 400 {object} domain.ErrorResponse "Validação ou ALREADY_PROCESSED"
// @Failure 404 {object} domain.ErrorResponse "Locação não encontrada"
// @Security ApiKeyAuth
// @Router /rentals/{id} [put]
func (h *Handler) UpdateRentalHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.RentalDateOutInput
	if err := response.Decode(r, &input); err != nil {
		response.Handle(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	rental, err := h.Service.UpdateDateOut(r.Context(), response.PathID(r), input)
	response.Handle(w, r, h.Logger, rental, err, http.StatusOK)
}

// DeleteRentalHandler lida com a requisição DELETE /rentals/{id}.
// @Summary Remove uma locação
// @Description Se a locação ainda estiver aberta, o exemplar volta ao estoque.
// @Tags rentals
// @Produce json
// @Param id path string true "ID da locação"
// @Success 200 {object} domain.Rental
// @Failure 404 {object} domain.ErrorResponse "Locação não encontrada"
// @Security ApiKeyAuth
// @Router /rentals/{id} [delete]
func (h *Handler) DeleteRentalHandler(w http.ResponseWriter, r *http.Request) {
	rental, err := h.Service.Delete(r.Context(), response.PathID(r))
	response.Handle(w, r, h.Logger, rental, err, http.StatusOK)
}
