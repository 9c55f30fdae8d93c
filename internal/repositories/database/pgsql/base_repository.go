// Package pgsql implements the repository ports natively on pgx for PostgreSQL.
package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	portsrepo "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgUniqueViolation = "23505"
	defaultPageSize   = 20
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Store is the pgx implementation of portsrepo.Store.
type Store struct {
	Pool *pgxpool.Pool
}

var _ portsrepo.Store = (*Store)(nil)

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{Pool: pool}
}

// Repos returns repositories bound to the pool, outside any transaction.
func (s *Store) Repos() portsrepo.Repositories {
	return newRepositories(s.Pool)
}

// WithinTx runs fn in one transaction and commits only when fn returns nil.
func (s *Store) WithinTx(ctx context.Context, fn portsrepo.TxFunc) (err error) {
	tx, err := s.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			if rbErr := s.Rollback(ctx, tx); rbErr != nil {
				err = errors.Join(err, rbErr)
			}
		}
	}()

	if err = fn(ctx, newRepositories(tx)); err != nil {
		return err
	}
	return s.Commit(ctx, tx)
}

// Begin starts a new database transaction
func (s *Store) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (s *Store) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (s *Store) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

func newRepositories(db querier) portsrepo.Repositories {
	return portsrepo.Repositories{
		Accounts:         &PgxAccountRepository{db: db},
		Journals:         &PgxJournalRepository{db: db},
		Sequences:        &PgxSequenceRepository{db: db},
		Expenses:         &PgxExpenseRepository{db: db},
		Invoices:         &PgxInvoiceRepository{db: db},
		StockCounts:      &PgxStockCountRepository{db: db},
		Assets:           &PgxAssetRepository{db: db},
		CurrencyAccounts: &PgxCurrencyAccountRepository{db: db},
		ExchangeRates:    &PgxExchangeRateRepository{db: db},
		Revaluations:     &PgxRevaluationRepository{db: db},
		Payroll:          &PgxPayrollRepository{db: db},
	}
}

// mapError translates pgx errors into the application's sentinel errors.
func mapError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, apperrors.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%s: %w", what, apperrors.ErrDuplicate)
	}
	return apperrors.NewAppError(500, "failed to access "+what, err)
}

// getOne scans exactly one row into T by column name.
func getOne[T any](ctx context.Context, db querier, what, query string, args ...any) (T, error) {
	var zero T
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return zero, mapError(err, what)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		return zero, mapError(err, what)
	}
	return m, nil
}

// getAll scans every row into T by column name.
func getAll[T any](ctx context.Context, db querier, what, query string, args ...any) ([]T, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, what)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, mapError(err, what)
	}
	return out, nil
}

// execBatch sends b and surfaces the first failing statement.
func execBatch(ctx context.Context, db querier, b *pgx.Batch, what string) error {
	results := db.SendBatch(ctx, b)
	for i := 0; i < b.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return mapError(err, what)
		}
	}
	return mapError(results.Close(), what)
}

// expectOne reports ErrNotFound when the statement touched no rows.
func expectOne(tag pgconn.CommandTag, what string) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", what, apperrors.ErrNotFound)
	}
	return nil
}

// transitioned checks a conditional status update. When nothing changed it reads the
// current status to tell a missing row from a conflicting one.
func transitioned(ctx context.Context, db querier, tag pgconn.CommandTag, what, want, statusQuery string, args ...any) error {
	if tag.RowsAffected() > 0 {
		return nil
	}
	var current string
	if err := db.QueryRow(ctx, statusQuery, args...).Scan(&current); err != nil {
		return mapError(err, what)
	}
	return fmt.Errorf("%w: %s is %s, expected %s", apperrors.ErrConflict, what, current, want)
}
