package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	apperror "govidly/internal/errors"
	"govidly/internal/pkg/cache"
	"govidly/internal/pkg/logger"
)

// RateLimiter aplica um limite global por IP usando contadores no Redis,
// compartilhados entre as instâncias da API.
func RateLimiter(client cache.Client, limit int, period time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "rate-limit:" + clientIP(r)
			ctx := r.Context()

			count, err := client.IncrWindow(ctx, key, period)
			if err != nil {
				// Redis indisponível não derruba a API: a requisição segue sem limite.
				log.Warn("Falha ao incrementar contador de rate limit.", map[string]interface{}{"key": key, "error": err.Error()})
				next.ServeHTTP(w, r)
				return
			}

			if count > int64(limit) {
				log.Info("Limite de requisições excedido.", map[string]interface{}{"key": key, "count": count})
				writeError(w, apperror.NewRateLimitError("tente novamente mais tarde."))
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(int64(limit)-count, 10))
			next.ServeHTTP(w, r)
		})
	}
}

// Throttle limita tentativas por IP em memória (token bucket), usado
// nas rotas de login e cadastro.
type Throttle struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	logger   logger.Logger
}

// NewThrottle cria o limitador com a taxa (por segundo) e a rajada informadas.
func NewThrottle(perSecond float64, burst int, log logger.Logger) *Throttle {
	return &Throttle{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(perSecond),
		burst:    burst,
		logger:   log,
	}
}

func (t *Throttle) limiter(key string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()

	l, ok := t.limiters[key]
	if !ok {
		l = rate.NewLimiter(t.rate, t.burst)
		t.limiters[key] = l
	}
	return l
}

// Handler devolve o middleware de throttling.
func (t *Throttle) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)
		if !t.limiter(key).Allow() {
			t.logger.Warn("Throttle de autenticação acionado.", map[string]interface{}{"ip": key, "path": r.URL.Path})
			writeError(w, apperror.NewRateLimitError("muitas tentativas, aguarde."))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Reset descarta os limitadores acumulados; chamado periodicamente pelo main.
func (t *Throttle) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.limiters = make(map[string]*rate.Limiter)
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
