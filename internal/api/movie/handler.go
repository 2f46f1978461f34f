package movie

import (
	"context"
	"net/http"

	"govidly/internal/api/response"
	"govidly/internal/domain"
	"govidly/internal/pkg/logger"
)

// MovieService define o contrato que o Handler espera da camada de Serviço.
type MovieService interface {
	Create(ctx context.Context, input domain.MovieInput) (domain.Movie, error)
	GetByID(ctx context.Context, id string) (domain.Movie, error)
	List(ctx context.Context) ([]domain.Movie, error)
	Update(ctx context.Context, id string, input domain.MovieInput) (domain.Movie, error)
	Delete(ctx context.Context, id string) (domain.Movie, error)
}

// Handler agrupa todos os métodos de Handler de filmes.
type Handler struct {
	Service MovieService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc MovieService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// ListMoviesHandler lida com a requisição GET /movies.
// @Summary Lista filmes
// @Tags movies
// @Produce json
// @Success 200 {array} domain.Movie
// @Router /movies [get]
func (h *Handler) ListMoviesHandler(w http.ResponseWriter, r *http.Request) {
	movies, err := h.Service.List(r.Context())
	response.Handle(w, r, h.Logger, movies, err, http.StatusOK)
}

// CreateMovieHandler lida com a requisição POST /movies.
// @Summary Cria um filme
// @Description O gênero referenciado por genreId é copiado para dentro do filme.
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body domain.MovieInput true "Dados do filme"
// @Success 201 {object} domain.Movie
// @Failure 400 {object} domain.ErrorResponse "Violação de validação"
// @Failure 404 {object} domain.ErrorResponse "Gênero não encontrado"
// @Security ApiKeyAuth
// @Router /movies [post]
func (h *Handler) CreateMovieHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.MovieInput
	if err := response.Decode(r, &input); err != nil {
		response.Handle(w, r, h.Logger, nil, err, http.StatusCreated)
		return
	}

	movie, err := h.Service.Create(r.Context(), input)
	response.Handle(w, r, h.Logger, movie, err, http.StatusCreated)
}

// GetMovieHandler lida com a requisição GET /movies/{id}.
// @Summary Busca um filme
// @Tags movies
// @Produce json
// @Param id path string true "ID do filme"
// @Success 200 {object} domain.Movie
// @Failure 404 {object} domain.ErrorResponse "Filme não encontrado"
// @Router /movies/{id} [get]
func (h *Handler) GetMovieHandler(w http.ResponseWriter, r *http.Request) {
	movie, err := h.Service.GetByID(r.Context(), response.PathID(r))
	response.Handle(w, r, h.Logger, movie, err, http.StatusOK)
}

// UpdateMovieHandler lida com a requisição PUT /movies/{id}.
// @Summary Atualiza um filme
// @Tags movies
// @Accept json
// @Produce json
// @Param id path string true "ID do filme"
// @Param movie body domain.MovieInput true "Dados do filme"
// @Success 200 {object} domain.Movie
// @Failure 400 {object} domain.ErrorResponse "Violação de validação"
// @Failure 404 {object} domain.ErrorResponse "Filme ou gênero não encontrado"
// @Security ApiKeyAuth
// @Router /movies/{id} [put]
func (h *Handler) UpdateMovieHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.MovieInput
	if err := response.Decode(r, &input); err != nil {
		response.Handle(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	movie, err := h.Service.Update(r.Context(), response.PathID(r), input)
	response.Handle(w, r, h.Logger, movie, err, http.StatusOK)
}

// DeleteMovieHandler lida com a requisição DELETE /movies/{id}.
// @Summary Remove um filme
// @Tags movies
// @Produce json
// @Param id path string true "ID do filme"
// @Success 200 {object} domain.Movie
// @Failure 403 {object} domain.ErrorResponse "Requer administrador"
// @Failure 404 {object} domain.ErrorResponse "Filme não encontrado"
// @Security ApiKeyAuth
// @Router /movies/{id} [delete]
func (h *Handler) DeleteMovieHandler(w http.ResponseWriter, r *http.Request) {
	movie, err := h.Service.Delete(r.Context(), response.PathID(r))
	response.Handle(w, r, h.Logger, movie, err, http.StatusOK)
}
