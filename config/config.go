package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
)

// Drivers de armazenamento aceitos em STORAGE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config armazena todas as configurações do GoVidly.
// Os campos são preenchidos a partir das variáveis de ambiente via envdecode.
type Config struct {
	// Geral
	Port        string `env:"PORT,default=8080"`
	Environment string `env:"ENV,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`

	// Armazenamento
	StorageDriver string `env:"STORAGE_DRIVER,default=postgres"`
	DatabaseURL   string `env:"DATABASE_URL"`
	DBTimeoutSec  int    `env:"DB_TIMEOUT_SEC,default=5"`

	// Cache (Redis). Vazio desliga o cache e o rate limit global.
	RedisAddr   string `env:"REDIS_ADDR"`
	CacheTTLSec int    `env:"CACHE_TTL_SEC,default=300"`

	// Segurança (JWT)
	JWTPrivateKey string `env:"JWT_PRIVATE_KEY,required"`
	JWTExpiryMin  int    `env:"JWT_EXPIRY_MIN,default=60"`

	// Rate Limiting
	RateLimitMaxRequests int     `env:"RATE_LIMIT_MAX_REQUESTS,default=100"`
	RateLimitPeriodMin   int     `env:"RATE_LIMIT_PERIOD_MIN,default=1"`
	LoginRatePerSec      float64 `env:"LOGIN_RATE_PER_SEC,default=1"`
	LoginBurst           int     `env:"LOGIN_BURST,default=5"`
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
// Sem JWT_PRIVATE_KEY a aplicação não deve subir.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		if errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
			return nil, errors.New("FATAL ERROR: JWT_PRIVATE_KEY não está definida")
		}
		return nil, fmt.Errorf("falha ao ler configuração: %w", err)
	}

	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.JWTPrivateKey) == "" {
		return errors.New("FATAL ERROR: JWT_PRIVATE_KEY não está definida")
	}

	switch c.StorageDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL é obrigatória quando STORAGE_DRIVER=postgres")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("STORAGE_DRIVER inválido: %q (use postgres ou memory)", c.StorageDriver)
	}

	if c.DBTimeoutSec <= 0 || c.JWTExpiryMin <= 0 || c.RateLimitPeriodMin <= 0 {
		return errors.New("timeouts e períodos devem ser positivos")
	}
	return nil
}

// DBTimeout é o limite de cada operação no banco.
func (c *Config) DBTimeout() time.Duration {
	return time.Duration(c.DBTimeoutSec) * time.Second
}

// CacheTTL é a validade das entradas de cache.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSec) * time.Second
}

// TokenExpiry é a validade do token de sessão.
func (c *Config) TokenExpiry() time.Duration {
	return time.Duration(c.JWTExpiryMin) * time.Minute
}

// RateLimitPeriod é a janela do rate limit global.
func (c *Config) RateLimitPeriod() time.Duration {
	return time.Duration(c.RateLimitPeriodMin) * time.Minute
}
