package genrerepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"govidly/internal/domain"
	apperror "govidly/internal/errors"
	"govidly/internal/pkg/cache"
	"govidly/internal/pkg/logger"
)

// Define a chave de cache para gêneros.
const genreCacheKey = "genre:%s"

// CacheKey devolve a chave de cache de um gênero.
// IDs em qualquer grafia aceita por uuid.Parse caem na mesma chave.
func CacheKey(id string) string {
	if parsed, err := uuid.Parse(id); err == nil {
		id = parsed.String()
	}
	return fmt.Sprintf(genreCacheKey, id)
}

// GenreRepository persiste gêneros no PostgreSQL com cache-aside no Redis.
type GenreRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewGenreRepository cria e retorna uma nova instância do Repositório de Gêneros.
func NewGenreRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, logger logger.Logger) *GenreRepository {
	return &GenreRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Save insere um novo gênero.
func (r *GenreRepository) Save(ctx context.Context, genre domain.Genre) (domain.Genre, error) {
	r.logger.Debug("Iniciando Save de gênero no repositório.", map[string]interface{}{"name": genre.Name})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if genre.ID == "" {
		genre.ID = uuid.NewString()
	}

	err := r.DB.QueryRowContext(ctxTimeout,
		`INSERT INTO genres (id, name) VALUES ($1, $2) RETURNING id, name`,
		genre.ID, genre.Name,
	).Scan(&genre.ID, &genre.Name)
	if err != nil {
		r.logger.Error("Falha ao inserir gênero no DB.", err)
		return domain.Genre{}, apperror.NewDBError("Falha ao criar gênero", err)
	}

	r.logger.Info("Gênero criado com sucesso.", map[string]interface{}{"id": genre.ID, "name": genre.Name})
	return genre, nil
}

// FindByID busca um gênero pelo ID, utilizando a estratégia Cache-Aside.
func (r *GenreRepository) FindByID(ctx context.Context, id string) (domain.Genre, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := CacheKey(id)
	var genre domain.Genre

	// Cache HIT
	cached, err := r.Cache.Get(ctxTimeout, key)
	if err == nil {
		if json.Unmarshal([]byte(cached), &genre) == nil {
			return genre, nil
		}
		r.logger.Warn("Entrada de cache de gênero corrompida.", map[string]interface{}{"key": key})
	} else if err != cache.ErrCacheMiss {
		r.logger.Warn("Falha ao ler do cache Redis.", map[string]interface{}{"key": key, "error": err.Error()})
	}

	err = r.DB.QueryRowContext(ctxTimeout, `SELECT id, name FROM genres WHERE id = $1`, id).Scan(&genre.ID, &genre.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Genre{}, apperror.NewNotFoundError(fmt.Sprintf("Gênero com ID %s não encontrado.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar gênero no DB.", err)
		return domain.Genre{}, apperror.NewDBError("Falha ao buscar gênero", err)
	}

	// Cache WRITE
	if payload, marshalErr := json.Marshal(genre); marshalErr == nil {
		if setErr := r.Cache.Set(ctxTimeout, key, payload, r.CacheTTL); setErr != nil {
			r.logger.Warn("Falha ao gravar gênero no cache.", map[string]interface{}{"key": key, "error": setErr.Error()})
		}
	}

	return genre, nil
}

// FindAll lista todos os gêneros ordenados por nome.
func (r *GenreRepository) FindAll(ctx context.Context) ([]domain.Genre, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, `SELECT id, name FROM genres ORDER BY name`)
	if err != nil {
		r.logger.Error("Falha ao listar gêneros no DB.", err)
		return nil, apperror.NewDBError("Falha ao listar gêneros", err)
	}
	defer rows.Close()

	genres := []domain.Genre{}
	for rows.Next() {
		var g domain.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			r.logger.Error("Falha ao escanear gênero.", err)
			return nil, apperror.NewDBError("Falha ao ler gêneros", err)
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Falha ao ler gêneros", err)
	}

	return genres, nil
}

// Update renomeia um gênero e invalida o cache.
// Filmes já cadastrados mantêm o snapshot antigo do gênero.
func (r *GenreRepository) Update(ctx context.Context, genre domain.Genre) (domain.Genre, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	err := r.DB.QueryRowContext(ctxTimeout,
		`UPDATE genres SET name = $2 WHERE id = $1 RETURNING id, name`,
		genre.ID, genre.Name,
	).Scan(&genre.ID, &genre.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Genre{}, apperror.NewNotFoundError(fmt.Sprintf("Gênero com ID %s não encontrado.", genre.ID))
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar gênero no DB.", err)
		return domain.Genre{}, apperror.NewDBError("Falha ao atualizar gênero", err)
	}

	r.invalidate(ctxTimeout, genre.ID)
	r.logger.Info("Gênero atualizado com sucesso.", map[string]interface{}{"id": genre.ID})
	return genre, nil
}

// Delete remove um gênero e devolve o registro removido.
func (r *GenreRepository) Delete(ctx context.Context, id string) (domain.Genre, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var genre domain.Genre
	err := r.DB.QueryRowContext(ctxTimeout,
		`DELETE FROM genres WHERE id = $1 RETURNING id, name`, id,
	).Scan(&genre.ID, &genre.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Genre{}, apperror.NewNotFoundError(fmt.Sprintf("Gênero com ID %s não encontrado.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao deletar gênero no DB.", err)
		return domain.Genre{}, apperror.NewDBError("Falha ao deletar gênero", err)
	}

	r.invalidate(ctxTimeout, id)
	r.logger.Info("Gênero deletado com sucesso.", map[string]interface{}{"id": id})
	return genre, nil
}

func (r *GenreRepository) invalidate(ctx context.Context, id string) {
	if err := r.Cache.Delete(ctx, CacheKey(id)); err != nil {
		r.logger.Warn("Falha ao invalidar cache de gênero.", map[string]interface{}{"id": id, "error": err.Error()})
	}
}
