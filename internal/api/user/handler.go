package user

import (
	"context"
	"net/http"

	"govidly/internal/api/response"
	"govidly/internal/domain"
	apperror "govidly/internal/errors"
	"govidly/internal/pkg/logger"
	"govidly/internal/pkg/middleware"
)

// UserService define o contrato para as operações de registro e login.
type UserService interface {
	Register(ctx context.Context, registration domain.UserRegistration) (domain.User, string, error)
	Login(ctx context.Context, credentials domain.Credentials) (string, error)
	Me(ctx context.Context, id string) (domain.User, error)
	Delete(ctx context.Context, id string) (domain.User, error)
}

// TokenResponse é o corpo de resposta do login.
type TokenResponse struct {
	Token string `json:"token"`
}

// Handler agrupa todos os métodos de Handler do usuário.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// RegisterUserHandler lida com a requisição POST /users.
// @Summary Registra um novo usuário
// @Description Cria um usuário comum, hasheia a senha e devolve o token no cabeçalho x-auth-token.
// @Tags users
// @Accept json
// @Produce json
// @Param registration body domain.UserRegistration true "Nome, email e senha"
// @Success 201 {object} domain.User "Usuário criado com sucesso"
// @Header 201 {string} x-auth-token "Token de sessão"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou DUPLICATE_EMAIL"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /users [post]
func (h *Handler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var reg domain.UserRegistration
	if err := response.Decode(r, &reg); err != nil {
		response.Handle(w, r, h.Logger, nil, err, http.StatusCreated)
		return
	}

	newUser, token, err := h.Service.Register(r.Context(), reg)
	if err != nil {
		response.Handle(w, r, h.Logger, nil, err, http.StatusCreated)
		return
	}

	w.Header().Set(middleware.TokenHeader, token)
	w.Header().Set("Access-Control-Expose-Headers", middleware.TokenHeader)
	response.Handle(w, r, h.Logger, newUser, nil, http.StatusCreated)
}

// LoginUserHandler lida com a requisição POST /auth.
// @Summary Autentica um usuário e retorna um JWT
// @Tags users
// @Accept json
// @Produce json
// @Param login body domain.Credentials true "Email e senha"
// @Success 200 {object} TokenResponse "Token JWT emitido"
// @Failure 400 {object} domain.ErrorResponse "Credenciais inválidas"
// @Failure 429 {object} domain.ErrorResponse "Muitas tentativas"
// @Router /auth [post]
func (h *Handler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	var credentials domain.Credentials
	if err := response.Decode(r, &credentials); err != nil {
		response.Handle(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	token, err := h.Service.Login(r.Context(), credentials)
	if err != nil {
		response.Handle(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	w.Header().Set(middleware.TokenHeader, token)
	response.Handle(w, r, h.Logger, TokenResponse{Token: token}, nil, http.StatusOK)
}

// MeHandler lida com a requisição GET /users/me.
// @Summary Usuário da sessão
// @Tags users
// @Produce json
// @Success 200 {object} domain.User
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Security ApiKeyAuth
// @Router /users/me [get]
func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Handle(w, r, h.Logger, nil, apperror.NewUnauthorizedError("Acesso negado. Nenhum token fornecido."), http.StatusOK)
		return
	}

	me, err := h.Service.Me(r.Context(), identity.ID)
	response.Handle(w, r, h.Logger, me, err, http.StatusOK)
}

// DeleteUserHandler lida com a requisição DELETE /users/{id}.
// @Summary Remove um usuário
// @Tags users
// @Produce json
// @Param id path string true "ID do usuário"
// @Success 200 {object} domain.User
// @Failure 403 {object} domain.ErrorResponse "Requer administrador"
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Security ApiKeyAuth
// @Router /users/{id} [delete]
func (h *Handler) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Service.Delete(r.Context(), response.PathID(r))
	response.Handle(w, r, h.Logger, deleted, err, http.StatusOK)
}
