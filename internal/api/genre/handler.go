package genre

import (
	"context"
	"net/http"

	"govidly/internal/api/response"
	"govidly/internal/domain"
	"govidly/internal/pkg/logger"
)

// GenreService define o contrato que o Handler espera da camada de Serviço.
type GenreService interface {
	Create(ctx context.Context, input domain.GenreInput) (domain.Genre, error)
	GetByID(ctx context.Context, id string) (domain.Genre, error)
	List(ctx context.Context) ([]domain.Genre, error)
	Update(ctx context.Context, id string, input domain.GenreInput) (domain.Genre, error)
	Delete(ctx context.Context, id string) (domain.Genre, error)
}

// Handler agrupa todos os métodos de Handler de gêneros.
type Handler struct {
	Service GenreService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc GenreService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// ListGenresHandler lida com a requisição GET /genres.
// @Summary Lista gêneros
// @Tags genres
// @Produce json
// @Success 200 {array} domain.Genre
// @Router /genres [get]
func (h *Handler) ListGenresHandler(w http.ResponseWriter, r *http.Request) {
	genres, err := h.Service.List(r.Context())
	response.Handle(w, r, h.Logger, genres, err, http.StatusOK)
}

// CreateGenreHandler lida com a requisição POST /genres.
// @Summary Cria um gênero
// @Tags genres
// @Accept json
// @Produce json
// @Param genre body domain.GenreInput true "Nome do gênero"
// @Success 201 {object} domain.Genre
// @Failure 400 {object} domain.ErrorResponse "Violação de validação"
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Security ApiKeyAuth
// @Router /genres [post]
func (h *Handler) CreateGenreHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.GenreInput
	if err := response.Decode(r, &input); err != nil {
		response.Handle(w, r, h.Logger, nil, err, http.StatusCreated)
		return
	}

	genre, err := h.Service.Create(r.Context(), input)
	response.Handle(w, r, h.Logger, genre, err, http.StatusCreated)
}

// GetGenreHandler lida com a requisição GET /genres/{id}.
// @Summary Busca um gênero
// @Tags genres
// @Produce json
// @Param id path string true "ID do gênero"
// @Success 200 {object} domain.Genre
// @Failure 404 {object} domain.ErrorResponse "Gênero não encontrado"
// @Router /genres/{id} [get]
func (h *Handler) GetGenreHandler(w http.ResponseWriter, r *http.Request) {
	genre, err := h.Service.GetByID(r.Context(), response.PathID(r))
	response.Handle(w, r, h.Logger, genre, err, http.StatusOK)
}

// UpdateGenreHandler lida com a requisição PUT /genres/{id}.
// @Summary Renomeia um gênero
// @Tags genres
// @Accept json
// @Produce json
// @Param id path string true "ID do gênero"
// @Param genre body domain.GenreInput true "Nome do gênero"
// @Success 200 {object} domain.Genre
// @Failure 404 {object} domain.ErrorResponse "Gênero não encontrado"
// @Security ApiKeyAuth
// @Router /genres/{id} [put]
func (h *Handler) UpdateGenreHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.GenreInput
	if err := response.Decode(r, &input); err != nil {
		response.Handle(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	genre, err := h.Service.Update(r.Context(), response.PathID(r), input)
	response.Handle(w, r, h.Logger, genre, err, http.StatusOK)
}

// DeleteGenreHandler lida com a requisição DELETE /genres/{id}.
// @Summary Remove um gênero
// @Tags genres
// @Produce json
// @Param id path string true "ID do gênero"
// @Success 200 {object} domain.Genre
// @Failure 403 {object} domain.ErrorResponse "Requer administrador"
// @Security ApiKeyAuth
// @Router /genres/{id} [delete]
func (h *Handler) DeleteGenreHandler(w http.ResponseWriter, r *http.Request) {
	genre, err := h.Service.Delete(r.Context(), response.PathID(r))
	response.Handle(w, r, h.Logger, genre, err, http.StatusOK)
}
