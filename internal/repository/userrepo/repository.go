package userrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"govidly/internal/domain"
	apperror "govidly/internal/errors"
	"govidly/internal/pkg/logger"
)

// Código SQLSTATE de violação de unicidade no PostgreSQL.
const uniqueViolation = "23505"

const userColumns = `id, name, email, password_hash, is_admin`

// UserRepository persiste contas de usuário no PostgreSQL.
type UserRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUserRepository cria uma nova instância do UserRepository, injetando o DB.
func NewUserRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *UserRepository {
	return &UserRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// Save insere um novo usuário. O e-mail é normalizado em minúsculas e
// duplicidade vira DUPLICATE_EMAIL.
func (r *UserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	r.logger.Debug("Iniciando Save de usuário no repositório.", map[string]interface{}{"email": user.Email})

	// 1. Configura Contexto com Timeout
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	// 2. Prepara dados e ID
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.Email = strings.ToLower(user.Email)

	// 3. Executa o INSERT
	query := `
        INSERT INTO users (id, name, email, password_hash, is_admin)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + userColumns

	saved, err := scanUser(r.DB.QueryRowContext(ctxTimeout, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.IsAdmin,
	))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			r.logger.Info("E-mail já cadastrado.", map[string]interface{}{"email": user.Email})
			return domain.User{}, apperror.NewDuplicateEmailError("Usuário já registrado.")
		}
		r.logger.Error("Falha ao inserir usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("Falha ao inserir usuário", err)
	}

	r.logger.Info("Usuário salvo com sucesso no repositório.", map[string]interface{}{"user_id": saved.ID, "email": saved.Email})
	return saved, nil
}

// FindByEmail busca um usuário pelo endereço de e-mail.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	user, err := scanUser(r.DB.QueryRowContext(ctxTimeout,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Info("Usuário não encontrado no DB por email.", map[string]interface{}{"email": email})
			return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com email '%s' não encontrado", email))
		}
		r.logger.Error("Falha ao buscar usuário por email no DB.", err)
		return domain.User{}, apperror.NewDBError("Falha ao buscar usuário por email", err)
	}

	return user, nil
}

// FindByID busca um usuário pelo ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	user, err := scanUser(r.DB.QueryRowContext(ctxTimeout, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com ID %s não encontrado.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("Falha ao buscar usuário", err)
	}
	return user, nil
}

// Delete remove o usuário e devolve o registro removido.
func (r *UserRepository) Delete(ctx context.Context, id string) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	user, err := scanUser(r.DB.QueryRowContext(ctxTimeout, `DELETE FROM users WHERE id = $1 RETURNING `+userColumns, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com ID %s não encontrado.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao deletar usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("Falha ao deletar usuário", err)
	}

	r.logger.Info("Usuário deletado com sucesso.", map[string]interface{}{"user_id": id})
	return user, nil
}

// SetAdmin concede ou revoga o papel de administrador. Usado apenas pela
// ferramenta de linha de comando de promoção.
func (r *UserRepository) SetAdmin(ctx context.Context, email string, isAdmin bool) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	user, err := scanUser(r.DB.QueryRowContext(ctxTimeout,
		`UPDATE users SET is_admin = $2 WHERE email = $1 RETURNING `+userColumns, strings.ToLower(email), isAdmin))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com email '%s' não encontrado", email))
	}
	if err != nil {
		r.logger.Error("Falha ao alterar papel do usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("Falha ao alterar papel do usuário", err)
	}

	r.logger.Info("Papel de administrador alterado.", map[string]interface{}{"user_id": user.ID, "is_admin": isAdmin})
	return user, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsAdmin)
	return u, err
}
