package customer

import (
	"context"
	"net/http"

	"govidly/internal/api/response"
	"govidly/internal/domain"
	"govidly/internal/pkg/logger"
)

// CustomerService define o contrato que o Handler espera da camada de Serviço.
type CustomerService interface {
	Create(ctx context.Context, input domain.CustomerInput) (domain.Customer, error)
	GetByID(ctx context.Context, id string) (domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, id string, input domain.CustomerInput) (domain.Customer, error)
	Delete(ctx context.Context, id string) (domain.Customer, error)
}

// Handler agrupa todos os métodos de Handler de clientes.
type Handler struct {
	Service CustomerService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc CustomerService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// ListCustomersHandler lida com a requisição GET /customers.
// @Summary Lista clientes
// @Tags customers
// @Produce json
// @Success 200 {array} domain.Customer
// @Router /customers [get]
func (h *Handler) ListCustomersHandler(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Service.List(r.Context())
	response.Handle(w, r, h.Logger, customers, err, http.StatusOK)
}

// CreateCustomerHandler lida com a requisição POST /customers.
// @Summary Cria um cliente
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body domain.CustomerInput true "Dados do cliente"
// @Success 201 {object} domain.Customer
// @Failure 400 {object} domain.ErrorResponse "Violação de validação"
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Security ApiKeyAuth
// @Router /customers [post]
func (h *Handler) CreateCustomerHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.CustomerInput
	if err := response.Decode(r, &input); err != nil {
		response.Handle(w, r, h.Logger, nil, err, http.StatusCreated)
		return
	}

	customer, err := h.Service.Create(r.Context(), input)
	response.Handle(w, r, h.Logger, customer, err, http.StatusCreated)
}

// GetCustomerHandler lida com a requisição GET /customers/{id}.
// @Summary Busca um cliente
// @Tags customers
// @Produce json
// @Param id path string true "ID do cliente"
// @Success 200 {object} domain.Customer
// @Failure 404 {object} domain.ErrorResponse "Cliente não encontrado"
// @Router /customers/{id} [get]
func (h *Handler) GetCustomerHandler(w http.ResponseWriter, r *http.Request) {
	customer, err := h.Service.GetByID(r.Context(), response.PathID(r))
	response.Handle(w, r, h.Logger, customer, err, http.StatusOK)
}

// UpdateCustomerHandler lida com a requisição PUT /customers/{id}.
// @Summary Atualiza um cliente
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "ID do cliente"
// @Param customer body domain.CustomerInput true "Dados do cliente"
// @Success 200 {object} domain.Customer
// @Failure 400 {object} domain.ErrorResponse "Violação de validação"
// @Failure 404 {object} domain.ErrorResponse "Cliente não encontrado"
// @Security ApiKeyAuth
// @Router /customers/{id} [put]
func (h *Handler) UpdateCustomerHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.CustomerInput
	if err := response.Decode(r, &input); err != nil {
		response.Handle(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	customer, err := h.Service.Update(r.Context(), response.PathID(r), input)
	response.Handle(w, r, h.Logger, customer, err, http.StatusOK)
}

// DeleteCustomerHandler lida com a requisição DELETE /customers/{id}.
// @Summary Remove um cliente
// @Tags customers
// @Produce json
// @Param id path string true "ID do cliente"
// @Success 200 {object} domain.Customer
// @Failure 403 {object} domain.ErrorResponse "Requer administrador"
// @Failure 404 {object} domain.ErrorResponse "Cliente não encontrado"
// @Security ApiKeyAuth
// @Router /customers/{id} [delete]
func (h *Handler) DeleteCustomerHandler(w http.ResponseWriter, r *http.Request) {
	customer, err := h.Service.Delete(r.Context(), response.PathID(r))
	response.Handle(w, r, h.Logger, customer, err, http.StatusOK)
}
