package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"govidly/internal/domain"
	apperror "govidly/internal/errors"
	"govidly/internal/pkg/authz"
	"govidly/internal/pkg/cache"
	"govidly/internal/pkg/logger"
	"govidly/internal/pkg/middleware"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(tokenString string) (domain.Identity, error) {
	args := m.Called(tokenString)
	return args.Get(0).(domain.Identity), args.Error(1)
}

func identityEcho(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.IdentityFromContext(r.Context())
		if ok {
			w.Header().Set("X-User", identity.ID)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) domain.ErrorResponse {
	var body domain.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestAuthorizer_MissingTokenIs401(t *testing.T) {
	auth := new(MockAuthenticator)
	h := middleware.NewAuthorizer(auth, logger.NewNop()).Require(authz.Authenticated)(identityEcho(t))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/genres", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHENTICATED", decodeError(t, rec).Category)
	auth.AssertNotCalled(t, "Authenticate", mock.Anything)
}

func TestAuthorizer_InvalidTokenIs401(t *testing.T) {
	auth := new(MockAuthenticator)
	auth.On("Authenticate", "ruim").Return(domain.Identity{}, apperror.NewUnauthorizedError("Token inválido ou expirado."))
	h := middleware.NewAuthorizer(auth, logger.NewNop()).Require(authz.Authenticated)(identityEcho(t))

	req := httptest.NewRequest(http.MethodPost, "/genres", nil)
	req.Header.Set(middleware.TokenHeader, "ruim")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthorizer_NonAdminIs403(t *testing.T) {
	auth := new(MockAuthenticator)
	auth.On("Authenticate", "tok").Return(domain.Identity{ID: "u1"}, nil)
	h := middleware.NewAuthorizer(auth, logger.NewNop()).Require(authz.AdminOnly)(identityEcho(t))

	req := httptest.NewRequest(http.MethodDelete, "/genres/1", nil)
	req.Header.Set(middleware.TokenHeader, "tok")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", decodeError(t, rec).Category)
}

func TestAuthorizer_AdminPassesWithIdentity(t *testing.T) {
	auth := new(MockAuthenticator)
	auth.On("Authenticate", "tok").Return(domain.Identity{ID: "a1", IsAdmin: true}, nil)
	h := middleware.NewAuthorizer(auth, logger.NewNop()).Require(authz.AdminOnly)(identityEcho(t))

	req := httptest.NewRequest(http.MethodDelete, "/genres/1", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a1", rec.Header().Get("X-User"))
}

func TestAuthorizer_PublicIgnoresBadToken(t *testing.T) {
	auth := new(MockAuthenticator)
	auth.On("Authenticate", "ruim").Return(domain.Identity{}, apperror.NewUnauthorizedError("x"))
	h := middleware.NewAuthorizer(auth, logger.NewNop()).Require(authz.Public)(identityEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/genres", nil)
	req.Header.Set(middleware.TokenHeader, "Bearer ruim")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-User"))
}

// memoryCache é um cache.Client em memória para os testes do rate limiter.
type memoryCache struct {
	mu     sync.Mutex
	counts map[string]int64
	ttls   map[string]time.Duration
	err    error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{counts: map[string]int64{}, ttls: map[string]time.Duration{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) (string, error) {
	return "", cache.ErrCacheMiss
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, keys ...string) error { return nil }

func (c *memoryCache) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return 0, c.err
	}
	c.counts[key]++
	if c.counts[key] == 1 {
		c.ttls[key] = window
	}
	return c.counts[key], nil
}

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	h := middleware.RateLimiter(newMemoryCache(), 2, time.Minute, logger.NewNop())(identityEcho(t))

	codes := make([]int, 0, 3)
	remaining := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/movies", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
		remaining = append(remaining, rec.Header().Get("X-RateLimit-Remaining"))
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, []string{"1", "0", ""}, remaining)
}

func TestRateLimiter_ConcurrentRequestsNeverExceedLimit(t *testing.T) {
	const limit = 5
	const requests = 50

	store := newMemoryCache()
	h := middleware.RateLimiter(store, limit, time.Minute, logger.NewNop())(identityEcho(t))

	var wg sync.WaitGroup
	var mu sync.Mutex
	passed := 0
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "/movies", nil)
			req.RemoteAddr = "10.0.0.9:4000"
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code == http.StatusOK {
				mu.Lock()
				passed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, limit, passed)
	assert.Equal(t, int64(requests), store.counts["rate-limit:10.0.0.9"])
	// A janela é definida uma única vez, no primeiro incremento.
	assert.Equal(t, time.Minute, store.ttls["rate-limit:10.0.0.9"])
}

func TestRateLimiter_FailsOpenWhenCounterUnavailable(t *testing.T) {
	store := newMemoryCache()
	store.err = errors.New("connection refused")
	h := middleware.RateLimiter(store, 1, time.Minute, logger.NewNop())(identityEcho(t))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/movies", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestThrottle_PerIP(t *testing.T) {
	th := middleware.NewThrottle(0.001, 1, logger.NewNop())
	h := th.Handler(identityEcho(t))

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:2"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1"))

	th.Reset()
	assert.Equal(t, http.StatusOK, send("10.0.0.1:3"))
}

func TestRecovery_Returns500AndKeepsServing(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	h := middleware.Recovery(logger.NewNop())(panicking)

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", decodeError(t, rec).Category)
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	h := middleware.RequestLogger(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/genres", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
}
