package userservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"govidly/internal/domain"
	apperror "govidly/internal/errors"
	"govidly/internal/pkg/logger"
)

// UserRepository define o contrato que este Serviço espera da camada de Persistência.
type UserRepository interface {
	Save(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id string) (domain.User, error)
	Delete(ctx context.Context, id string) (domain.User, error)
	SetAdmin(ctx context.Context, email string, isAdmin bool) (domain.User, error)
}

// TokenService é o contrato da camada de token (internal/pkg/token)
type TokenService interface {
	GenerateToken(identity domain.Identity) (string, error)
}

// Validator valida payloads de entrada.
type Validator interface {
	Validate(ctx context.Context, i interface{}) error
}

// UserService define o serviço de lógica de negócio para a entidade User.
type UserService struct {
	UserRepo  UserRepository
	TokenSvc  TokenService
	validator Validator
	logger    logger.Logger
	cost      int
}

// NewService cria uma nova instância do UserService, injetando o Repositório.
func NewService(repo UserRepository, tokenSvc TokenService, validator Validator, logger logger.Logger) *UserService {
	return &UserService{
		UserRepo:  repo,
		TokenSvc:  tokenSvc,
		validator: validator,
		logger:    logger,
		cost:      bcrypt.DefaultCost,
	}
}

// WithHashCost ajusta o custo do bcrypt. Testes usam bcrypt.MinCost.
func (s *UserService) WithHashCost(cost int) *UserService {
	s.cost = cost
	return s
}

// Register registra um novo usuário comum e devolve o token de sessão.
// A senha é guardada apenas como hash.
func (s *UserService) Register(ctx context.Context, registration domain.UserRegistration) (domain.User, string, error) {
	// 1. Validação
	if err := s.validator.Validate(ctx, registration); err != nil {
		return domain.User{}, "", err
	}

	// 2. E-mail já cadastrado? A restrição única no DB cobre a corrida entre dois registros.
	_, err := s.UserRepo.FindByEmail(ctx, registration.Email)
	if err == nil {
		return domain.User{}, "", apperror.NewDuplicateEmailError("Usuário já registrado.")
	}
	var notFound *apperror.NotFoundError
	if !errors.As(err, &notFound) {
		return domain.User{}, "", err
	}

	// 3. Hashing da Senha
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(registration.Password), s.cost)
	if err != nil {
		return domain.User{}, "", apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	// 4. Persistência. O papel de administrador só é concedido pela ferramenta de promoção.
	user, err := s.UserRepo.Save(ctx, domain.User{
		Name:         registration.Name,
		Email:        registration.Email,
		PasswordHash: string(hashedPassword),
		IsAdmin:      false,
	})
	if err != nil {
		return domain.User{}, "", err
	}

	// 5. Token de sessão
	token, err := s.TokenSvc.GenerateToken(user.Identity())
	if err != nil {
		return domain.User{}, "", apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}

	s.logger.Info("Usuário registrado.", map[string]interface{}{"user_id": user.ID})
	return user, token, nil
}

// Login autentica um usuário, verifica a senha e gera um JWT.
// Credenciais inválidas resultam em 400, sem indicar qual campo falhou.
func (s *UserService) Login(ctx context.Context, credentials domain.Credentials) (string, error) {
	if err := s.validator.Validate(ctx, credentials); err != nil {
		return "", err
	}

	invalid := apperror.NewValidationError("Email ou senha inválidos.")

	user, err := s.UserRepo.FindByEmail(ctx, credentials.Email)
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			return "", invalid
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)); err != nil {
		s.logger.Info("Tentativa de login com senha incorreta.", map[string]interface{}{"user_id": user.ID})
		return "", invalid
	}

	tokenString, err := s.TokenSvc.GenerateToken(user.Identity())
	if err != nil {
		return "", apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}
	return tokenString, nil
}

// Me devolve o usuário dono da sessão.
func (s *UserService) Me(ctx context.Context, id string) (domain.User, error) {
	return s.UserRepo.FindByID(ctx, id)
}

// Delete remove um usuário pelo ID.
func (s *UserService) Delete(ctx context.Context, id string) (domain.User, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com ID %s não encontrado.", id))
	}
	id = parsed.String()

	user, err := s.UserRepo.Delete(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	s.logger.Info("Usuário removido.", map[string]interface{}{"user_id": id})
	return user, nil
}

// SetAdmin concede ou revoga o papel de administrador.
func (s *UserService) SetAdmin(ctx context.Context, email string, isAdmin bool) (domain.User, error) {
	user, err := s.UserRepo.SetAdmin(ctx, email, isAdmin)
	if err != nil {
		return domain.User{}, err
	}

	s.logger.Info("Papel de administrador alterado.", map[string]interface{}{"user_id": user.ID, "is_admin": isAdmin})
	return user, nil
}
