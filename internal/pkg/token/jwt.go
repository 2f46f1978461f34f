package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"govidly/internal/domain"
	apperror "govidly/internal/errors"
)

// CustomClaims define as informações de identidade armazenadas no JWT.
// É obrigatório incorporar jwt.RegisteredClaims.
type CustomClaims struct {
	UserID  string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Identity converte as claims para a identidade de domínio.
func (c *CustomClaims) Identity() domain.Identity {
	return domain.Identity{ID: c.UserID, Name: c.Name, Email: c.Email, IsAdmin: c.IsAdmin}
}

// Service emite e valida tokens de sessão assinados com HS256.
type Service struct {
	secretKey []byte
	expiry    time.Duration
	now       func() time.Time
}

// NewService cria uma nova instância do serviço Token.
func NewService(secretKey string, expiry time.Duration) *Service {
	return &Service{
		secretKey: []byte(secretKey),
		expiry:    expiry,
		now:       time.Now,
	}
}

// GenerateToken cria um novo JWT assinado contendo a identidade do usuário.
func (s *Service) GenerateToken(identity domain.Identity) (string, error) {
	issuedAt := s.now()
	claims := CustomClaims{
		UserID:  identity.ID,
		Name:    identity.Name,
		Email:   identity.Email,
		IsAdmin: identity.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			Issuer:    "GoVidly-API",
			Subject:   identity.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("falha ao assinar o token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken valida integridade e expiração do token e retorna as claims.
func (s *Service) ValidateToken(tokenString string) (*CustomClaims, error) {
	claims := &CustomClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		return nil, fmt.Errorf("token inválido: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("token não é válido")
	}

	return claims, nil
}

// Authenticate devolve a identidade embutida no token ou um UnauthorizedError.
func (s *Service) Authenticate(tokenString string) (domain.Identity, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return domain.Identity{}, apperror.NewUnauthorizedError("Token inválido ou expirado.")
	}
	return claims.Identity(), nil
}
