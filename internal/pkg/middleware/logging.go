package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	apperror "govidly/internal/errors"
	"govidly/internal/pkg/logger"
)

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLogger registra método, caminho, status e latência de cada requisição.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			log.Info("Requisição HTTP processada.", map[string]interface{}{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     rec.status,
				"latency_ms": time.Since(start).Milliseconds(),
			})
		})
	}
}

// Recovery captura pânicos, registra a pilha e responde 500 mantendo o servidor no ar.
func Recovery(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					err := fmt.Errorf("panic em %s %s: %v\n%s", r.Method, r.URL.Path, p, debug.Stack())
					log.Error("Pânico recuperado no handler.", err)
					writeError(w, apperror.NewInternalError("pânico no handler", err))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
