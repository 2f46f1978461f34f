// Package authz avalia se uma identidade pode executar uma operação,
// devolvendo uma decisão explícita em vez de interromper uma cadeia de handlers.
package authz

import "govidly/internal/domain"

// Rule é a exigência de acesso associada a uma rota.
type Rule int

const (
	Public Rule = iota
	Authenticated
	AdminOnly
)

func (r Rule) String() string {
	switch r {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	case AdminOnly:
		return "admin"
	default:
		return "unknown"
	}
}

// Motivos de negação.
const (
	ReasonUnauthenticated = "unauthenticated"
	ReasonNotAdmin        = "admin role required"
)

// Decision é o resultado da avaliação: Allowed ou Denied(Reason).
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow constrói uma decisão positiva.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny constrói uma decisão negativa com o motivo informado.
func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Evaluate decide o acesso. identity é nil quando a requisição não trouxe token válido.
func Evaluate(identity *domain.Identity, rule Rule) Decision {
	switch rule {
	case Public:
		return Allow()
	case Authenticated:
		if identity == nil {
			return Deny(ReasonUnauthenticated)
		}
		return Allow()
	case AdminOnly:
		if identity == nil {
			return Deny(ReasonUnauthenticated)
		}
		if !identity.IsAdmin {
			return Deny(ReasonNotAdmin)
		}
		return Allow()
	default:
		return Deny("unknown rule")
	}
}
