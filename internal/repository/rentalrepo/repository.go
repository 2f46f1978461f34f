package rentalrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"govidly/internal/domain"
	apperror "govidly/internal/errors"
	"govidly/internal/pkg/cache"
	"govidly/internal/pkg/database"
	"govidly/internal/pkg/logger"
	"govidly/internal/repository/movierepo"
)

const rentalColumns = `id, customer, movie, date_out, date_in, rental_fee`

const (
	// Decremento atômico: a condição number_in_stock > 0 é reavaliada pelo
	// PostgreSQL após o lock da linha, então duas retiradas concorrentes do
	// último exemplar nunca passam juntas.
	decrementStockSQL = `
        UPDATE movies
        SET number_in_stock = number_in_stock - 1
        WHERE id = $1 AND number_in_stock > 0
        RETURNING id, title, daily_rental_rate`

	incrementStockSQL = `UPDATE movies SET number_in_stock = number_in_stock + 1 WHERE id = $1`

	movieExistsSQL = `SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1)`

	rentalExistsSQL = `SELECT EXISTS (SELECT 1 FROM rentals WHERE id = $1)`

	insertRentalSQL = `
        INSERT INTO rentals (id, customer_id, movie_id, customer, movie, date_out)
        VALUES ($1, $2, $3, $4, $5, $6)`

	// Locações abertas primeiro, depois a mais recente; a linha fica bloqueada
	// até o fim da transação de devolução.
	selectForSettleSQL = `
        SELECT ` + rentalColumns + `
        FROM rentals
        WHERE customer_id = $1 AND movie_id = $2
        ORDER BY (date_in IS NULL) DESC, date_out DESC
        LIMIT 1
        FOR UPDATE`

	closeRentalSQL = `
        UPDATE rentals
        SET date_in = $2, rental_fee = $3
        WHERE id = $1 AND date_in IS NULL`
)

// RentalRepository é o livro de locações no PostgreSQL.
// Toda operação que mexe em estoque e locação roda em uma única transação.
type RentalRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewRentalRepository cria e retorna uma nova instância do Repositório de Locações.
func NewRentalRepository(db *sql.DB, cacheClient cache.Client, dbTimeout time.Duration, logger logger.Logger) *RentalRepository {
	return &RentalRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// Checkout decrementa o estoque do filme e grava a nova locação aberta,
// tudo ou nada. Retorna NotFound se o filme não existir e OUT_OF_STOCK se
// o estoque estiver zerado.
func (r *RentalRepository) Checkout(ctx context.Context, customer domain.CustomerSnapshot, movieID string, dateOut time.Time) (domain.Rental, error) {
	r.logger.Debug("Iniciando retirada no repositório.", map[string]interface{}{"customer_id": customer.ID, "movie_id": movieID})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var rental domain.Rental
	err := database.WithTx(ctxTimeout, r.DB, func(tx *sql.Tx) error {
		// O ID do snapshot vem da linha do filme, não da grafia recebida.
		var movie domain.MovieSnapshot
		err := tx.QueryRowContext(ctxTimeout, decrementStockSQL, movieID).Scan(&movie.ID, &movie.Title, &movie.DailyRentalRate)
		if errors.Is(err, sql.ErrNoRows) {
			var exists bool
			if err := tx.QueryRowContext(ctxTimeout, movieExistsSQL, movieID).Scan(&exists); err != nil {
				return apperror.NewDBError("Falha ao verificar filme", err)
			}
			if !exists {
				return apperror.NewNotFoundError(fmt.Sprintf("Filme com ID %s não encontrado.", movieID))
			}
			return apperror.NewOutOfStockError("Filme sem exemplares disponíveis.")
		}
		if err != nil {
			return apperror.NewDBError("Falha ao decrementar estoque", err)
		}

		rental = domain.NewRental(uuid.NewString(), customer, movie, dateOut)
		if _, err := tx.ExecContext(ctxTimeout, insertRentalSQL,
			rental.ID, customer.ID, movie.ID, rental.Customer, rental.Movie, rental.DateOut,
		); err != nil {
			return apperror.NewDBError("Falha ao inserir locação", err)
		}
		return nil
	})
	if err != nil {
		if !apperror.HasCategory(err, apperror.CategoryOutOfStock) {
			r.logger.Error("Falha na transação de retirada.", err)
		}
		return domain.Rental{}, apperror.FromDB("Falha na transação de retirada", err)
	}

	r.invalidateMovie(ctx, rental.Movie.ID)
	r.logger.Info("Locação criada com sucesso.", map[string]interface{}{"id": rental.ID, "movie_id": rental.Movie.ID})
	return rental, nil
}

// FindOpen devolve a locação aberta mais recente do par cliente/filme.
// Locações já devolvidas nunca são retornadas.
func (r *RentalRepository) FindOpen(ctx context.Context, customerID, movieID string) (domain.Rental, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT ` + rentalColumns + `
        FROM rentals
        WHERE customer_id = $1 AND movie_id = $2 AND date_in IS NULL
        ORDER BY date_out DESC
        LIMIT 1`

	rental, err := scanRental(r.DB.QueryRowContext(ctxTimeout, query, customerID, movieID))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Rental{}, apperror.NewRentalNotFoundError("Nenhuma locação aberta para este cliente e filme.")
	}
	if err != nil {
		r.logger.Error("Falha ao buscar locação aberta no DB.", err)
		return domain.Rental{}, apperror.NewDBError("Falha ao buscar locação", err)
	}
	return rental, nil
}

// Settle localiza e bloqueia a locação do par, aplica close (que calcula a
// taxa e a data de devolução), grava o fechamento e devolve o exemplar ao
// estoque na mesma transação.
func (r *RentalRepository) Settle(ctx context.Context, customerID, movieID string, close func(*domain.Rental) error) (domain.Rental, error) {
	r.logger.Debug("Iniciando devolução no repositório.", map[string]interface{}{"customer_id": customerID, "movie_id": movieID})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var rental domain.Rental
	err := database.WithTx(ctxTimeout, r.DB, func(tx *sql.Tx) error {
		var err error
		rental, err = scanRental(tx.QueryRowContext(ctxTimeout, selectForSettleSQL, customerID, movieID))
		if errors.Is(err, sql.ErrNoRows) {
			return apperror.NewRentalNotFoundError("Locação não encontrada para este cliente e filme.")
		}
		if err != nil {
			return apperror.NewDBError("Falha ao bloquear locação", err)
		}

		if err := close(&rental); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctxTimeout, closeRentalSQL, rental.ID, *rental.DateIn, *rental.RentalFee)
		if err != nil {
			return apperror.NewDBError("Falha ao fechar locação", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return apperror.NewDBError("Falha ao verificar linhas afetadas", err)
		} else if n == 0 {
			return apperror.NewAlreadyProcessedError("Devolução já processada para esta locação.")
		}

		return r.restock(ctxTimeout, tx, rental.Movie.ID)
	})
	if err != nil {
		return domain.Rental{}, apperror.FromDB("Falha na transação de devolução", err)
	}

	r.invalidateMovie(ctx, rental.Movie.ID)
	r.logger.Info("Devolução processada com sucesso.", map[string]interface{}{"id": rental.ID, "fee": *rental.RentalFee})
	return rental, nil
}

// FindAll lista as locações pela data de retirada.
func (r *RentalRepository) FindAll(ctx context.Context, sort domain.RentalSort) ([]domain.Rental, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	order := "DESC"
	if sort == domain.SortDateOutAsc {
		order = "ASC"
	}

	rows, err := r.DB.QueryContext(ctxTimeout, `SELECT `+rentalColumns+` FROM rentals ORDER BY date_out `+order)
	if err != nil {
		r.logger.Error("Falha ao listar locações no DB.", err)
		return nil, apperror.NewDBError("Falha ao listar locações", err)
	}
	defer rows.Close()

	rentals := []domain.Rental{}
	for rows.Next() {
		rental, err := scanRental(rows)
		if err != nil {
			r.logger.Error("Falha ao escanear locação.", err)
			return nil, apperror.NewDBError("Falha ao ler locações", err)
		}
		rentals = append(rentals, rental)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Falha ao ler locações", err)
	}

	return rentals, nil
}

// FindByID busca uma locação pelo ID.
func (r *RentalRepository) FindByID(ctx context.Context, id string) (domain.Rental, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rental, err := scanRental(r.DB.QueryRowContext(ctxTimeout, `SELECT `+rentalColumns+` FROM rentals WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Rental{}, apperror.NewNotFoundError(fmt.Sprintf("Locação com ID %s não encontrada.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar locação no DB.", err)
		return domain.Rental{}, apperror.NewDBError("Falha ao buscar locação", err)
	}
	return rental, nil
}

// UpdateDateOut corrige a data de retirada de uma locação ainda aberta.
// Os snapshots não são tocados.
func (r *RentalRepository) UpdateDateOut(ctx context.Context, id string, dateOut time.Time) (domain.Rental, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE rentals SET date_out = $2
        WHERE id = $1 AND date_in IS NULL
        RETURNING ` + rentalColumns

	rental, err := scanRental(r.DB.QueryRowContext(ctxTimeout, query, id, dateOut))
	if errors.Is(err, sql.ErrNoRows) {
		var exists bool
		if err := r.DB.QueryRowContext(ctxTimeout, rentalExistsSQL, id).Scan(&exists); err != nil {
			return domain.Rental{}, apperror.NewDBError("Falha ao verificar locação", err)
		}
		if !exists {
			return domain.Rental{}, apperror.NewNotFoundError(fmt.Sprintf("Locação com ID %s não encontrada.", id))
		}
		return domain.Rental{}, apperror.NewAlreadyProcessedError("Locação já devolvida não pode ser alterada.")
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar locação no DB.", err)
		return domain.Rental{}, apperror.NewDBError("Falha ao atualizar locação", err)
	}

	r.logger.Info("Data de retirada corrigida.", map[string]interface{}{"id": id})
	return rental, nil
}

// Delete remove a locação. Se ainda estava aberta, o exemplar volta ao estoque
// na mesma transação.
func (r *RentalRepository) Delete(ctx context.Context, id string) (domain.Rental, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var rental domain.Rental
	err := database.WithTx(ctxTimeout, r.DB, func(tx *sql.Tx) error {
		var err error
		rental, err = scanRental(tx.QueryRowContext(ctxTimeout, `DELETE FROM rentals WHERE id = $1 RETURNING `+rentalColumns, id))
		if errors.Is(err, sql.ErrNoRows) {
			return apperror.NewNotFoundError(fmt.Sprintf("Locação com ID %s não encontrada.", id))
		}
		if err != nil {
			return apperror.NewDBError("Falha ao deletar locação", err)
		}
		if rental.IsOpen() {
			return r.restock(ctxTimeout, tx, rental.Movie.ID)
		}
		return nil
	})
	if err != nil {
		return domain.Rental{}, apperror.FromDB("Falha na transação de exclusão de locação", err)
	}

	if rental.IsOpen() {
		r.invalidateMovie(ctx, rental.Movie.ID)
	}
	r.logger.Info("Locação deletada com sucesso.", map[string]interface{}{"id": id, "was_open": rental.IsOpen()})
	return rental, nil
}

// restock devolve um exemplar ao estoque. Filme removido do catálogo não
// impede o fechamento da locação: apenas registra um aviso.
func (r *RentalRepository) restock(ctx context.Context, tx *sql.Tx, movieID string) error {
	res, err := tx.ExecContext(ctx, incrementStockSQL, movieID)
	if err != nil {
		return apperror.NewDBError("Falha ao incrementar estoque", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperror.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if n == 0 {
		r.logger.Warn("Filme da locação não existe mais; estoque não reposto.", map[string]interface{}{"movie_id": movieID})
	}
	return nil
}

func (r *RentalRepository) invalidateMovie(ctx context.Context, movieID string) {
	if err := r.Cache.Delete(ctx, movierepo.CacheKey(movieID)); err != nil {
		r.logger.Warn("Falha ao invalidar cache de filme.", map[string]interface{}{"movie_id": movieID, "error": err.Error()})
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRental(row rowScanner) (domain.Rental, error) {
	var (
		rental domain.Rental
		dateIn sql.NullTime
		fee    sql.NullFloat64
	)
	if err := row.Scan(&rental.ID, &rental.Customer, &rental.Movie, &rental.DateOut, &dateIn, &fee); err != nil {
		return domain.Rental{}, err
	}
	if dateIn.Valid {
		t := dateIn.Time
		rental.DateIn = &t
	}
	if fee.Valid {
		f := fee.Float64
		rental.RentalFee = &f
	}
	return rental, nil
}
