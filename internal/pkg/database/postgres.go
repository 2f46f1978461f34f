package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Driver PostgreSQL registrado como "postgres"
	_ "github.com/lib/pq"

	"govidly/internal/pkg/logger"
)

// NewPostgresDB inicializa e configura o pool de conexões com o PostgreSQL.
// Retorna a conexão *sql.DB pronta para uso.
func NewPostgresDB(dataSourceName string, log logger.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir a conexão com o DB: %w", err)
	}

	// Garante que as credenciais e o servidor estão corretos
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("falha ao realizar o ping inicial no DB: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	log.Info("Pool de conexões PostgreSQL configurado e pronto.", map[string]interface{}{"max_open_conns": 25})

	return db, nil
}

// WithTx executa fn dentro de uma transação. Qualquer erro retornado por fn
// (ou pânico) desfaz a transação; caso contrário ela é commitada.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("falha ao iniciar transação: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("falha ao commitar transação: %w", err)
	}
	return nil
}
