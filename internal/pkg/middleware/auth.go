package middleware

import (
	"context"
	"net/http"
	"strings"

	"govidly/internal/domain"
	apperror "govidly/internal/errors"
	"govidly/internal/pkg/authz"
	"govidly/internal/pkg/logger"
)

// TokenHeader é o cabeçalho customizado que transporta o token de sessão.
const TokenHeader = "x-auth-token"

// ContextKey é o tipo das chaves de contexto deste pacote.
type ContextKey int

const (
	IdentityKey ContextKey = iota
)

// Authenticator define o contrato de validação de token necessário para o middleware.
type Authenticator interface {
	Authenticate(tokenString string) (domain.Identity, error)
}

// Authorizer autentica a requisição e avalia a regra de acesso da rota.
type Authorizer struct {
	tokens Authenticator
	logger logger.Logger
}

// NewAuthorizer cria o middleware de autorização.
func NewAuthorizer(tokens Authenticator, log logger.Logger) *Authorizer {
	return &Authorizer{tokens: tokens, logger: log}
}

// Require devolve o middleware que aplica a regra à rota.
// Sem token (ou com token inválido) a resposta é 401; sem permissão, 403.
func (a *Authorizer) Require(rule authz.Rule) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var identity *domain.Identity

			if raw := extractToken(r); raw != "" {
				id, err := a.tokens.Authenticate(raw)
				if err != nil && rule != authz.Public {
					a.logger.Debug("Token rejeitado.", map[string]interface{}{"path": r.URL.Path})
					writeError(w, err)
					return
				}
				if err == nil {
					identity = &id
				}
			}

			decision := authz.Evaluate(identity, rule)
			if !decision.Allowed {
				a.logger.Debug("Acesso negado.", map[string]interface{}{"path": r.URL.Path, "rule": rule.String(), "reason": decision.Reason})
				if decision.Reason == authz.ReasonUnauthenticated {
					writeError(w, apperror.NewUnauthorizedError("Acesso negado. Nenhum token fornecido."))
					return
				}
				writeError(w, apperror.NewForbiddenError(decision.Reason))
				return
			}

			ctx := r.Context()
			if identity != nil {
				ctx = context.WithValue(ctx, IdentityKey, *identity)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken lê o x-auth-token (com ou sem prefixo Bearer) e, na falta dele,
// o cabeçalho Authorization: Bearer <token>.
func extractToken(r *http.Request) string {
	if raw := strings.TrimSpace(r.Header.Get(TokenHeader)); raw != "" {
		return strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
	}
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

// IdentityFromContext é uma função utilitária para extrair a identidade no handler.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(domain.Identity)
	return identity, ok
}

// WithIdentity anexa uma identidade ao contexto (usado em testes de handlers).
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}
