package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"govidly/internal/api/customer"
	"govidly/internal/api/genre"
	"govidly/internal/api/movie"
	"govidly/internal/api/rental"
	"govidly/internal/api/returns"
	"govidly/internal/api/router"
	"govidly/internal/api/user"
	"govidly/internal/domain"
	"govidly/internal/pkg/cache"
	"govidly/internal/pkg/logger"
	"govidly/internal/pkg/metrics"
	"govidly/internal/pkg/middleware"
	"govidly/internal/pkg/token"
	"govidly/internal/pkg/validation"
	"govidly/internal/repository/memstore"
	"govidly/internal/service/customerservice"
	"govidly/internal/service/genreservice"
	"govidly/internal/service/movieservice"
	"govidly/internal/service/rentalservice"
	"govidly/internal/service/returnservice"
	"govidly/internal/service/userservice"
)

type testApp struct {
	handler http.Handler
	store   *memstore.Store
	tokens  *token.Service
}

func newTestApp(t *testing.T, throttle *middleware.Throttle) *testApp {
	t.Helper()

	log := logger.NewNop()
	store := memstore.New(log)
	v := validation.New()
	m := metrics.New()
	tokens := token.NewService("chave-de-teste", time.Hour)

	users := userservice.NewService(store.Users(), tokens, v, log).WithHashCost(bcrypt.MinCost)

	h := router.Handlers{
		Customer: customer.NewHandler(customerservice.NewService(store.Customers(), v, log), log),
		Genre:    genre.NewHandler(genreservice.NewService(store.Genres(), v, log), log),
		Movie:    movie.NewHandler(movieservice.NewService(store.Movies(), store.Genres(), v, log), log),
		Rental:   rental.NewHandler(rentalservice.NewService(store.Rentals(), store.Customers(), v, m, log), log),
		Returns:  returns.NewHandler(returnservice.NewService(store.Rentals(), v, m, log), log),
		User:     user.NewHandler(users, log),
	}

	return &testApp{
		handler: router.NewRouter(h, router.Options{
			Authorizer: middleware.NewAuthorizer(tokens, log),
			Metrics:    m,
			Cache:      cache.NoopClient{},
			Throttle:   throttle,
			Logger:     log,
		}),
		store:  store,
		tokens: tokens,
	}
}

func (a *testApp) do(t *testing.T, method, path, tok string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set(middleware.TokenHeader, tok)
	}

	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	return rr
}

func (a *testApp) adminToken(t *testing.T) string {
	t.Helper()
	tok, err := a.tokens.GenerateToken(domain.Identity{ID: "admin-1", Name: "Administrador", Email: "admin@vidly.com", IsAdmin: true})
	require.NoError(t, err)
	return tok
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rr.Body).Decode(dst))
}

func TestPing(t *testing.T) {
	app := newTestApp(t, nil)

	rr := app.do(t, http.MethodGet, "/ping", "", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", rr.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t, nil)
	app.do(t, http.MethodGet, "/genres", "", nil)

	rr := app.do(t, http.MethodGet, "/metrics", "", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "http_requests_total")
}

func TestAuthorizationRules(t *testing.T) {
	app := newTestApp(t, nil)

	userTok, err := app.tokens.GenerateToken(domain.Identity{ID: "u-1", Name: "Usuário comum", Email: "user@vidly.com"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   interface{}
		want   int
	}{
		{"lista pública", http.MethodGet, "/genres", "", nil, http.StatusOK},
		{"criação sem token", http.MethodPost, "/genres", "", domain.GenreInput{Name: "Comédia"}, http.StatusUnauthorized},
		{"token inválido", http.MethodPost, "/genres", "lixo", domain.GenreInput{Name: "Comédia"}, http.StatusUnauthorized},
		{"criação autenticada", http.MethodPost, "/genres", userTok, domain.GenreInput{Name: "Comédia"}, http.StatusCreated},
		{"remoção sem admin", http.MethodDelete, "/genres/6f1c1b7e-8a51-4b8e-9d55-3a2c7c1f0b9a", userTok, nil, http.StatusForbidden},
		{"remoção admin de id inexistente", http.MethodDelete, "/genres/6f1c1b7e-8a51-4b8e-9d55-3a2c7c1f0b9a", app.adminToken(t), nil, http.StatusNotFound},
		{"id malformado", http.MethodGet, "/customers/nao-e-uuid", "", nil, http.StatusNotFound},
		{"devolução sem token", http.MethodPost, "/returns", "", domain.ReturnInput{}, http.StatusUnauthorized},
		{"me sem token", http.MethodGet, "/users/me", "", nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := app.do(t, tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.want, rr.Code, rr.Body.String())
		})
	}
}

func TestRentalLifecycle(t *testing.T) {
	app := newTestApp(t, nil)

	// Cadastro devolve o token no cabeçalho.
	rr := app.do(t, http.MethodPost, "/users", "", domain.UserRegistration{Name: "Maria Silva", Email: "Maria@Vidly.com", Password: "segredo123"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	tok := rr.Header().Get(middleware.TokenHeader)
	require.NotEmpty(t, tok)
	assert.Contains(t, rr.Header().Get("Access-Control-Expose-Headers"), middleware.TokenHeader)

	rr = app.do(t, http.MethodPost, "/auth", "", domain.Credentials{Email: "maria@vidly.com", Password: "segredo123"})
	require.Equal(t, http.StatusOK, rr.Code)
	var login user.TokenResponse
	decode(t, rr, &login)
	assert.NotEmpty(t, login.Token)

	rr = app.do(t, http.MethodPost, "/genres", tok, domain.GenreInput{Name: "Suspense"})
	require.Equal(t, http.StatusCreated, rr.Code)
	var g domain.Genre
	decode(t, rr, &g)

	stock, rate := 1, 2.0
	rr = app.do(t, http.MethodPost, "/movies", tok, domain.MovieInput{Title: "Psicose", GenreID: g.ID, NumberInStock: &stock, DailyRentalRate: &rate})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var m domain.Movie
	decode(t, rr, &m)
	assert.Equal(t, "Suspense", m.Genre.Name)

	rr = app.do(t, http.MethodPost, "/customers", tok, domain.CustomerInput{Name: "João Souza", Phone: "11987654321"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var c domain.Customer
	decode(t, rr, &c)

	checkout := domain.RentalInput{CustomerID: c.ID, MovieID: m.ID}
	rr = app.do(t, http.MethodPost, "/rentals", tok, checkout)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	// Último exemplar já saiu.
	rr = app.do(t, http.MethodPost, "/rentals", tok, checkout)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	var errBody domain.ErrorResponse
	decode(t, rr, &errBody)
	assert.Equal(t, "OUT_OF_STOCK", errBody.Category)

	back := domain.ReturnInput{CustomerID: c.ID, MovieID: m.ID}
	rr = app.do(t, http.MethodPost, "/returns", tok, back)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var closed domain.Rental
	decode(t, rr, &closed)
	require.NotNil(t, closed.DateIn)
	require.NotNil(t, closed.RentalFee)
	assert.Equal(t, 0.0, *closed.RentalFee)

	rr = app.do(t, http.MethodPost, "/returns", tok, back)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	decode(t, rr, &errBody)
	assert.Equal(t, "ALREADY_PROCESSED", errBody.Category)

	rr = app.do(t, http.MethodGet, "/movies/"+m.ID, "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	decode(t, rr, &m)
	assert.Equal(t, 1, m.NumberInStock)

	rr = app.do(t, http.MethodGet, "/rentals?sort=dateOut", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list []domain.Rental
	decode(t, rr, &list)
	assert.Len(t, list, 1)
}

func TestReturnWithoutRental(t *testing.T) {
	app := newTestApp(t, nil)

	rr := app.do(t, http.MethodPost, "/returns", app.adminToken(t), domain.ReturnInput{
		CustomerID: "6f1c1b7e-8a51-4b8e-9d55-3a2c7c1f0b9a",
		MovieID:    "0b7e5c2a-1d3f-4a6b-8c9d-0e1f2a3b4c5d",
	})

	assert.Equal(t, http.StatusNotFound, rr.Code)
	var body domain.ErrorResponse
	decode(t, rr, &body)
	assert.Equal(t, "RENTAL_NOT_FOUND", body.Category)
}

func TestLoginThrottle(t *testing.T) {
	app := newTestApp(t, middleware.NewThrottle(0.001, 2, logger.NewNop()))
	creds := domain.Credentials{Email: "ninguem@vidly.com", Password: "errada123"}

	assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodPost, "/auth", "", creds).Code)
	assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodPost, "/auth", "", creds).Code)
	assert.Equal(t, http.StatusTooManyRequests, app.do(t, http.MethodPost, "/auth", "", creds).Code)

	// As rotas de leitura não passam pelo throttle.
	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/genres", "", nil).Code)
}
