package router

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"govidly/internal/api/customer"
	"govidly/internal/api/genre"
	"govidly/internal/api/movie"
	"govidly/internal/api/rental"
	"govidly/internal/api/returns"
	"govidly/internal/api/user"
	"govidly/internal/pkg/authz"
	"govidly/internal/pkg/cache"
	"govidly/internal/pkg/logger"
	"govidly/internal/pkg/metrics"
	"govidly/internal/pkg/middleware"
)

// Handlers agrupa os handlers já inicializados por injeção de dependências.
type Handlers struct {
	Customer *customer.Handler
	Genre    *genre.Handler
	Movie    *movie.Handler
	Rental   *rental.Handler
	Returns  *returns.Handler
	User     *user.Handler
}

// Options reúne a infraestrutura transversal do roteador.
type Options struct {
	Authorizer *middleware.Authorizer
	Metrics    *metrics.Metrics
	Cache      cache.Client
	Throttle   *middleware.Throttle
	RateLimit  int
	RatePeriod time.Duration
	Logger     logger.Logger
}

// NewRouter configura e retorna o roteador HTTP principal.
// Cada rota declara sua regra de autorização, avaliada antes do handler.
func NewRouter(h Handlers, opts Options) http.Handler {
	r := mux.NewRouter()

	// Ordem: métricas, log de requisição, limite global.
	r.Use(opts.Metrics.InstrumentHandler)
	r.Use(middleware.RequestLogger(opts.Logger))
	if opts.RateLimit > 0 {
		r.Use(middleware.RateLimiter(opts.Cache, opts.RateLimit, opts.RatePeriod, opts.Logger))
	}

	// --- Health check, métricas e documentação ---
	r.HandleFunc("/ping", PingHandler).Methods(http.MethodGet)
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler()).Methods(http.MethodGet)
	}
	r.PathPrefix("/swagger/").Handler(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	route := func(path, method string, rule authz.Rule, fn http.HandlerFunc) {
		r.Handle(path, opts.Authorizer.Require(rule)(fn)).Methods(method)
	}
	throttled := func(fn http.HandlerFunc) http.HandlerFunc {
		if opts.Throttle == nil {
			return fn
		}
		return opts.Throttle.Handler(fn).ServeHTTP
	}

	// --- Clientes ---
	route("/customers", http.MethodGet, authz.Public, h.Customer.ListCustomersHandler)
	route("/customers", http.MethodPost, authz.Authenticated, h.Customer.CreateCustomerHandler)
	route("/customers/{id}", http.MethodGet, authz.Public, h.Customer.GetCustomerHandler)
	route("/customers/{id}", http.MethodPut, authz.Authenticated, h.Customer.UpdateCustomerHandler)
	route("/customers/{id}", http.MethodDelete, authz.AdminOnly, h.Customer.DeleteCustomerHandler)

	// --- Gêneros ---
	route("/genres", http.MethodGet, authz.Public, h.Genre.ListGenresHandler)
	route("/genres", http.MethodPost, authz.Authenticated, h.Genre.CreateGenreHandler)
	route("/genres/{id}", http.MethodGet, authz.Public, h.Genre.GetGenreHandler)
	route("/genres/{id}", http.MethodPut, authz.Authenticated, h.Genre.UpdateGenreHandler)
	route("/genres/{id}", http.MethodDelete, authz.AdminOnly, h.Genre.DeleteGenreHandler)

	// --- Filmes ---
	route("/movies", http.MethodGet, authz.Public, h.Movie.ListMoviesHandler)
	route("/movies", http.MethodPost, authz.Authenticated, h.Movie.CreateMovieHandler)
	route("/movies/{id}", http.MethodGet, authz.Public, h.Movie.GetMovieHandler)
	route("/movies/{id}", http.MethodPut, authz.Authenticated, h.Movie.UpdateMovieHandler)
	route("/movies/{id}", http.MethodDelete, authz.AdminOnly, h.Movie.DeleteMovieHandler)

	// --- Locações e devoluções ---
	route("/rentals", http.MethodGet, authz.Public, h.Rental.ListRentalsHandler)
	route("/rentals", http.MethodPost, authz.Authenticated, h.Rental.CreateRentalHandler)
	route("/rentals/{id}", http.MethodGet, authz.Public, h.Rental.GetRentalHandler)
	route("/rentals/{id}", http.MethodPut, authz.AdminOnly, h.Rental.UpdateRentalHandler)
	route("/rentals/{id}", http.MethodDelete, authz.AdminOnly, h.Rental.DeleteRentalHandler)
	route("/returns", http.MethodPost, authz.Authenticated, h.Returns.CreateReturnHandler)

	// --- Usuários e sessão ---
	route("/users", http.MethodPost, authz.Public, throttled(h.User.RegisterUserHandler))
	route("/users/me", http.MethodGet, authz.Authenticated, h.User.MeHandler)
	route("/users/{id}", http.MethodDelete, authz.AdminOnly, h.User.DeleteUserHandler)
	route("/auth", http.MethodPost, authz.Public, throttled(h.User.LoginUserHandler))

	return middleware.Recovery(opts.Logger)(r)
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}
