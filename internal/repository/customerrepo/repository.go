package customerrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"govidly/internal/domain"
	apperror "govidly/internal/errors"
	"govidly/internal/pkg/logger"
)

// CustomerRepository implementa a persistência de clientes no PostgreSQL.
type CustomerRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewCustomerRepository cria e retorna uma nova instância do Repositório de Clientes.
func NewCustomerRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *CustomerRepository {
	return &CustomerRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

const customerColumns = `id, name, phone, is_gold`

// Save insere um novo cliente no banco de dados.
func (r *CustomerRepository) Save(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	r.logger.Debug("Iniciando Save de cliente no repositório.", map[string]interface{}{"name": customer.Name})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}

	query := `
        INSERT INTO customers (id, name, phone, is_gold)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + customerColumns

	saved, err := scanCustomer(r.DB.QueryRowContext(ctxTimeout, query,
		customer.ID, customer.Name, customer.Phone, customer.IsGold,
	))
	if err != nil {
		r.logger.Error("Falha ao inserir cliente no DB.", err)
		return domain.Customer{}, apperror.NewDBError("Falha ao criar cliente", err)
	}

	r.logger.Info("Cliente criado com sucesso.", map[string]interface{}{"id": saved.ID})
	return saved, nil
}

// FindByID busca um cliente pelo ID.
func (r *CustomerRepository) FindByID(ctx context.Context, id string) (domain.Customer, error) {
	r.logger.Debug("Iniciando FindByID de cliente no repositório.", map[string]interface{}{"id": id})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	customer, err := scanCustomer(r.DB.QueryRowContext(ctxTimeout, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		r.logger.Info("Cliente não encontrado.", map[string]interface{}{"id": id})
		return domain.Customer{}, apperror.NewNotFoundError(fmt.Sprintf("Cliente com ID %s não encontrado.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar cliente no DB.", err)
		return domain.Customer{}, apperror.NewDBError("Falha ao buscar cliente", err)
	}

	return customer, nil
}

// FindAll lista todos os clientes ordenados por nome.
func (r *CustomerRepository) FindAll(ctx context.Context) ([]domain.Customer, error) {
	r.logger.Debug("Iniciando FindAll de clientes no repositório.", nil)

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, `SELECT `+customerColumns+` FROM customers ORDER BY name`)
	if err != nil {
		r.logger.Error("Falha ao listar clientes no DB.", err)
		return nil, apperror.NewDBError("Falha ao listar clientes", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			r.logger.Error("Falha ao escanear cliente.", err)
			return nil, apperror.NewDBError("Falha ao ler clientes", err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Erro durante a iteração de clientes.", err)
		return nil, apperror.NewDBError("Falha ao ler clientes", err)
	}

	return customers, nil
}

// Update substitui os dados de um cliente existente.
func (r *CustomerRepository) Update(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	r.logger.Debug("Iniciando Update de cliente no repositório.", map[string]interface{}{"id": customer.ID})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE customers SET name = $2, phone = $3, is_gold = $4
        WHERE id = $1
        RETURNING ` + customerColumns

	updated, err := scanCustomer(r.DB.QueryRowContext(ctxTimeout, query,
		customer.ID, customer.Name, customer.Phone, customer.IsGold,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Customer{}, apperror.NewNotFoundError(fmt.Sprintf("Cliente com ID %s não encontrado.", customer.ID))
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar cliente no DB.", err)
		return domain.Customer{}, apperror.NewDBError("Falha ao atualizar cliente", err)
	}

	r.logger.Info("Cliente atualizado com sucesso.", map[string]interface{}{"id": updated.ID})
	return updated, nil
}

// Delete remove um cliente e devolve o registro removido.
func (r *CustomerRepository) Delete(ctx context.Context, id string) (domain.Customer, error) {
	r.logger.Debug("Iniciando Delete de cliente no repositório.", map[string]interface{}{"id": id})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	deleted, err := scanCustomer(r.DB.QueryRowContext(ctxTimeout,
		`DELETE FROM customers WHERE id = $1 RETURNING `+customerColumns, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Customer{}, apperror.NewNotFoundError(fmt.Sprintf("Cliente com ID %s não encontrado.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao deletar cliente no DB.", err)
		return domain.Customer{}, apperror.NewDBError("Falha ao deletar cliente", err)
	}

	r.logger.Info("Cliente deletado com sucesso.", map[string]interface{}{"id": id})
	return deleted, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCustomer(row rowScanner) (domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.IsGold)
	return c, err
}
