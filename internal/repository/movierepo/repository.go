package movierepo

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

// Define a chave de cache para filmes.
const movieCacheKey = "movie:%s"

// CacheKey devolve a chave de cache de um filme. Também é usada pelo
// repositório de locações, que altera o estoque.
// IDs em qualquer grafia aceita por uuid.Parse caem na mesma chave.
func CacheKey(id string) string {
	if parsed, err := uuid.Parse(id); err == nil {
		id = parsed.String()
	}
	return fmt.Sprintf(movieCacheKey, id)
}

const movieColumns = `id, title, genre, number_in_stock, daily_rental_rate`

// MovieRepository persiste filmes no PostgreSQL com cache-aside no Redis.
type MovieRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewMovieRepository cria e retorna uma nova instância do Repositório de Filmes.
func NewMovieRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, logger logger.Logger) *MovieRepository {
	return &MovieRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Save persiste um novo filme com o snapshot do gênero embutido.
func (r *MovieRepository) Save(ctx context.Context, movie domain.Movie) (domain.Movie, error) {
	r.logger.Debug("Iniciando Save de filme no repositório.", map[string]interface{}{"title": movie.Title})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if movie.ID == "" {
		movie.ID = uuid.NewString()
	}

	query := `
        INSERT INTO movies (id, title, genre, number_in_stock, daily_rental_rate)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + movieColumns

	saved, err := scanMovie(r.DB.QueryRowContext(ctxTimeout, query,
		movie.ID, movie.Title, movie.Genre, movie.NumberInStock, movie.DailyRentalRate,
	))
	if err != nil {
		r.logger.Error("Falha ao inserir filme no DB.", err)
		return domain.Movie{}, apperror.NewDBError("Falha ao criar filme", err)
	}

	r.logger.Info("Filme criado com sucesso.", map[string]interface{}{"id": saved.ID, "title": saved.Title})
	return saved, nil
}

// FindByID busca um filme pelo ID, utilizando a estratégia Cache-Aside.
func (r *MovieRepository) FindByID(ctx context.Context, id string) (domain.Movie, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := CacheKey(id)
	var movie domain.Movie

	cached, err := r.Cache.Get(ctxTimeout, key)
	if err == nil {
		if json.Unmarshal([]byte(cached), &movie) == nil {
			return movie, nil
		}
		r.logger.Warn("Entrada de cache de filme corrompida.", map[string]interface{}{"key": key})
	} else if err != cache.ErrCacheMiss {
		r.logger.Warn("Falha ao ler do cache Redis.", map[string]interface{}{"key": key, "error": err.Error()})
	}

	movie, err = scanMovie(r.DB.QueryRowContext(ctxTimeout, `SELECT `+movieColumns+` FROM movies WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Movie{}, apperror.NewNotFoundError(fmt.Sprintf("Filme com ID %s não encontrado.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar filme no DB.", err)
		return domain.Movie{}, apperror.NewDBError("Falha ao buscar filme", err)
	}

	if payload, marshalErr := json.Marshal(movie); marshalErr == nil {
		if setErr := r.Cache.Set(ctxTimeout, key, payload, r.CacheTTL); setErr != nil {
			r.logger.Warn("Falha ao gravar filme no cache.", map[string]interface{}{"key": key, "error": setErr.Error()})
		}
	}

	return movie, nil
}

// FindAll lista todos os filmes ordenados por título.
func (r *MovieRepository) FindAll(ctx context.Context) ([]domain.Movie, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, `SELECT `+movieColumns+` FROM movies ORDER BY title`)
	if err != nil {
		r.logger.Error("Falha ao listar filmes no DB.", err)
		return nil, apperror.NewDBError("Falha ao listar filmes", err)
	}
	defer rows.Close()

	movies := []domain.Movie{}
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			r.logger.Error("Falha ao escanear filme.", err)
			return nil, apperror.NewDBError("Falha ao ler filmes", err)
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Falha ao ler filmes", err)
	}

	return movies, nil
}

// Update substitui os dados do filme (inclusive o snapshot do gênero) e invalida o cache.
func (r *MovieRepository) Update(ctx context.Context, movie domain.Movie) (domain.Movie, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE movies
        SET title = $2, genre = $3, number_in_stock = $4, daily_rental_rate = $5
        WHERE id = $1
        RETURNING ` + movieColumns

	updated, err := scanMovie(r.DB.QueryRowContext(ctxTimeout, query,
		movie.ID, movie.Title, movie.Genre, movie.NumberInStock, movie.DailyRentalRate,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Movie{}, apperror.NewNotFoundError(fmt.Sprintf("Filme com ID %s não encontrado.", movie.ID))
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar filme no DB.", err)
		return domain.Movie{}, apperror.NewDBError("Falha ao atualizar filme", err)
	}

	r.invalidate(ctxTimeout, movie.ID)
	r.logger.Info("Filme atualizado com sucesso.", map[string]interface{}{"id": updated.ID})
	return updated, nil
}

// Delete remove um filme e devolve o registro removido.
func (r *MovieRepository) Delete(ctx context.Context, id string) (domain.Movie, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	deleted, err := scanMovie(r.DB.QueryRowContext(ctxTimeout,
		`DELETE FROM movies WHERE id = $1 RETURNING `+movieColumns, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Movie{}, apperror.NewNotFoundError(fmt.Sprintf("Filme com ID %s não encontrado.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao deletar filme no DB.", err)
		return domain.Movie{}, apperror.NewDBError("Falha ao deletar filme", err)
	}

	r.invalidate(ctxTimeout, id)
	r.logger.Info("Filme deletado com sucesso.", map[string]interface{}{"id": id})
	return deleted, nil
}

func (r *MovieRepository) invalidate(ctx context.Context, id string) {
	if err := r.Cache.Delete(ctx, CacheKey(id)); err != nil {
		r.logger.Warn("Falha ao invalidar cache de filme.", map[string]interface{}{"id": id, "error": err.Error()})
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMovie(row rowScanner) (domain.Movie, error) {
	var m domain.Movie
	err := row.Scan(&m.ID, &m.Title, &m.Genre, &m.NumberInStock, &m.DailyRentalRate)
	return m, err
}
