package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"govidly/internal/pkg/logger"
)

// Client define o contrato de interface para qualquer serviço de cache que o Repositório possa usar.
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error)
}

// ErrCacheMiss é retornado quando a chave não é encontrada no cache.
var ErrCacheMiss = redis.Nil

// RedisClient é a implementação concreta da interface Client, usando Redis.
type RedisClient struct {
	rdb *redis.Client
}

// NewRedisClient cria e retorna uma nova instância do cliente Redis.
// Uma falha no PING é apenas registrada: o cache é opcional e os repositórios
// caem para o banco quando o Redis não responde.
func NewRedisClient(addr string, log logger.Logger) *RedisClient {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Não foi possível conectar ao Redis; seguindo sem cache efetivo.", map[string]interface{}{"addr": addr, "error": err.Error()})
	} else {
		log.Info("Conexão Redis estabelecida.", map[string]interface{}{"addr": addr})
	}

	return &RedisClient{rdb: rdb}
}

// Get recupera o valor associado a uma chave.
func (c *RedisClient) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set define um valor para uma chave com um tempo de expiração.
func (c *RedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

// Delete remove as chaves do cache (chaves inexistentes são ignoradas).
func (c *RedisClient) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// incrWindowScript incrementa o contador e, na primeira ocorrência da janela,
// define a expiração. O script roda atomicamente no Redis.
var incrWindowScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// IncrWindow incrementa o contador da janela de rate limit e devolve o novo valor.
// A chave expira window depois do primeiro incremento.
func (c *RedisClient) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	return incrWindowScript.Run(ctx, c.rdb, []string{key}, window.Milliseconds()).Int64()
}

// Close encerra o pool de conexões do Redis.
func (c *RedisClient) Close() error {
	return c.rdb.Close()
}

// NoopClient é usado quando REDIS_ADDR está vazio: toda leitura é um miss.
type NoopClient struct{}

func (NoopClient) Get(context.Context, string) (string, error) {
	return "", ErrCacheMiss
}

func (NoopClient) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}

func (NoopClient) Delete(context.Context, ...string) error {
	return nil
}

// IncrWindow sem Redis não conta nada: o rate limit global fica desligado.
func (NoopClient) IncrWindow(context.Context, string, time.Duration) (int64, error) {
	return 0, nil
}
