package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"govidly/config"
	_ "govidly/docs" // Documentação Swagger gerada pelo swag
	"govidly/internal/pkg/cache"
	"govidly/internal/pkg/database"
	"govidly/internal/pkg/logger"
	"govidly/internal/pkg/metrics"
	"govidly/internal/pkg/middleware"
	"govidly/internal/pkg/token"
	"govidly/internal/pkg/validation"

	// Camadas para Injeção de Dependências
	"govidly/internal/api/customer"
	"govidly/internal/api/genre"
	"govidly/internal/api/movie"
	"govidly/internal/api/rental"
	"govidly/internal/api/returns"
	"govidly/internal/api/router"
	"govidly/internal/api/user"
	"govidly/internal/repository/customerrepo"
	"govidly/internal/repository/genrerepo"
	"govidly/internal/repository/memstore"
	"govidly/internal/repository/movierepo"
	"govidly/internal/repository/rentalrepo"
	"govidly/internal/repository/userrepo"
	"govidly/internal/service/customerservice"
	"govidly/internal/service/genreservice"
	"govidly/internal/service/movieservice"
	"govidly/internal/service/rentalservice"
	"govidly/internal/service/returnservice"
	"govidly/internal/service/userservice"
)

// @title GoVidly API
// @version 1.0
// @description Locadora de filmes: catálogo, clientes, locações e devoluções.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-auth-token

// repositories agrupa a camada de dados escolhida por STORAGE_DRIVER.
type repositories struct {
	customers customerservice.CustomerRepository
	genres    genreservice.GenreRepository
	movies    movieservice.MovieRepository
	rentals   rentalservice.RentalRepository
	settler   returnservice.RentalSettler
	users     userservice.UserRepository
	close     func()
}

func main() {
	log.Println("⚡ Inicializando serviço GoVidly...")
	if err := godotenv.Load(); err != nil {
		// Sem .env as variáveis podem vir do ambiente (ex: Docker).
		log.Println("⚠️ Aviso: Arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema.")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Erro de Configuração: %v", err)
	}
	appLog := logger.NewLogger(cfg.LogLevel)
	appLog.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment, "storage": cfg.StorageDriver})

	// 1. Cache (Redis), opcional
	var cacheClient cache.Client = cache.NoopClient{}
	if cfg.RedisAddr != "" {
		redisClient := cache.NewRedisClient(cfg.RedisAddr, appLog)
		defer redisClient.Close()
		cacheClient = redisClient
	}

	// 2. Repositórios
	repos, err := newRepositories(cfg, cacheClient, appLog)
	if err != nil {
		appLog.Fatal("Falha ao inicializar a camada de dados.", err)
	}
	defer repos.close()

	// 3. Serviços. Ordem: Repository -> Service -> Handler
	validator := validation.New()
	appMetrics := metrics.New()
	tokenSvc := token.NewService(cfg.JWTPrivateKey, cfg.TokenExpiry())

	customerSvc := customerservice.NewService(repos.customers, validator, appLog)
	genreSvc := genreservice.NewService(repos.genres, validator, appLog)
	movieSvc := movieservice.NewService(repos.movies, repos.genres, validator, appLog)
	rentalSvc := rentalservice.NewService(repos.rentals, repos.customers, validator, appMetrics, appLog)
	returnSvc := returnservice.NewService(repos.settler, validator, appMetrics, appLog)
	userSvc := userservice.NewService(repos.users, tokenSvc, validator, appLog)
	appLog.Debug("Serviços inicializados.", nil)

	// 4. Handlers e roteador
	handlers := router.Handlers{
		Customer: customer.NewHandler(customerSvc, appLog),
		Genre:    genre.NewHandler(genreSvc, appLog),
		Movie:    movie.NewHandler(movieSvc, appLog),
		Rental:   rental.NewHandler(rentalSvc, appLog),
		Returns:  returns.NewHandler(returnSvc, appLog),
		User:     user.NewHandler(userSvc, appLog),
	}

	throttle := middleware.NewThrottle(cfg.LoginRatePerSec, cfg.LoginBurst, appLog)
	opts := router.Options{
		Authorizer: middleware.NewAuthorizer(tokenSvc, appLog),
		Metrics:    appMetrics,
		Cache:      cacheClient,
		Throttle:   throttle,
		RatePeriod: cfg.RateLimitPeriod(),
		Logger:     appLog,
	}
	// O rate limit global depende de contadores compartilhados no Redis.
	if cfg.RedisAddr != "" {
		opts.RateLimit = cfg.RateLimitMaxRequests
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(handlers, opts),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go resetThrottle(ctx, throttle, 10*time.Minute)

	// 5. Execução e Graceful Shutdown
	go func() {
		appLog.Info("Servidor GoVidly ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	<-ctx.Done()
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}

// newRepositories monta os repositórios PostgreSQL ou o armazenamento em memória.
func newRepositories(cfg *config.Config, cacheClient cache.Client, appLog logger.Logger) (*repositories, error) {
	if cfg.StorageDriver == config.DriverMemory {
		appLog.Warn("Usando armazenamento em memória; os dados se perdem ao encerrar.", nil)
		store := memstore.New(appLog)
		rentals := store.Rentals()
		return &repositories{
			customers: store.Customers(),
			genres:    store.Genres(),
			movies:    store.Movies(),
			rentals:   rentals,
			settler:   rentals,
			users:     store.Users(),
			close:     func() {},
		}, nil
	}

	db, err := database.NewPostgresDB(cfg.DatabaseURL, appLog)
	if err != nil {
		return nil, err
	}
	appLog.Info("Conexão PostgreSQL estabelecida.", nil)

	rentals := rentalrepo.NewRentalRepository(db, cacheClient, cfg.DBTimeout(), appLog)
	return &repositories{
		customers: customerrepo.NewCustomerRepository(db, cfg.DBTimeout(), appLog),
		genres:    genrerepo.NewGenreRepository(db, cacheClient, cfg.DBTimeout(), cfg.CacheTTL(), appLog),
		movies:    movierepo.NewMovieRepository(db, cacheClient, cfg.DBTimeout(), cfg.CacheTTL(), appLog),
		rentals:   rentals,
		settler:   rentals,
		users:     userrepo.NewUserRepository(db, cfg.DBTimeout(), appLog),
		close: func() {
			if err := db.Close(); err != nil {
				appLog.Error("Falha ao fechar conexão com o banco.", err)
			}
		},
	}, nil
}

// resetThrottle descarta periodicamente os limitadores por IP acumulados.
func resetThrottle(ctx context.Context, t *middleware.Throttle, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Reset()
		}
	}
}
