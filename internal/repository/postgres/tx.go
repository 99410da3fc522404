package postgres

import (
	"context"
	"database/sql"

	"eventplanner/internal/domain"
)

type txManager struct {
	DB *sql.DB
}

// NewTxManager returns a TxBeginner backed by the connection pool.
func NewTxManager(db *sql.DB) domain.TxBeginner {
	return &txManager{DB: db}
}

func (m *txManager) BeginTx(ctx context.Context) (domain.Tx, error) {
	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &pgTx{tx: tx}, nil
}

type pgTx struct {
	tx *sql.Tx
}

func (t *pgTx) Commit() error   { return t.tx.Commit() }
func (t *pgTx) Rollback() error { return t.tx.Rollback() }

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// runner returns the transaction when one is supplied, otherwise the pool.
func runner(db *sql.DB, tx domain.Tx) querier {
	if t, ok := tx.(*pgTx); ok && t != nil {
		return t.tx
	}
	return db
}
