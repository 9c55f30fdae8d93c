// Package sqlstore implements the repository ports on database/sql through sqlx, for the
// SQLite and MySQL drivers.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	portsrepo "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/repositories"
	"github.com/jmoiron/sqlx"
)

const (
	driverSQLite = "sqlite3"
	driverMySQL  = "mysql"
)

// dialect captures the few statements that differ between the supported drivers.
type dialect struct {
	name string
}

func (d dialect) isMySQL() bool { return d.name == driverMySQL }

// forUpdate returns the row-locking suffix. SQLite serialises writers and has none.
func (d dialect) forUpdate() string {
	if d.isMySQL() {
		return " FOR UPDATE"
	}
	return ""
}

// upsert renders the conflict clause that overwrites cols from the inserted row.
func (d dialect) upsert(conflict string, cols ...string) string {
	clause := ""
	for i, c := range cols {
		if i > 0 {
			clause += ", "
		}
		if d.isMySQL() {
			clause += fmt.Sprintf("%s = VALUES(%s)", c, c)
		} else {
			clause += fmt.Sprintf("%s = excluded.%s", c, c)
		}
	}
	if d.isMySQL() {
		return " ON DUPLICATE KEY UPDATE " + clause
	}
	return " ON CONFLICT (" + conflict + ") DO UPDATE SET " + clause
}

// Store is the sqlx implementation of portsrepo.Store.
type Store struct {
	db      *sqlx.DB
	dialect dialect
}

var _ portsrepo.Store = (*Store)(nil)

// NewStore wraps an open sqlx handle. The driver name selects the SQL dialect.
func NewStore(db *sqlx.DB) (*Store, error) {
	switch db.DriverName() {
	case driverSQLite, driverMySQL:
	default:
		return nil, fmt.Errorf("sqlstore: unsupported driver %q", db.DriverName())
	}
	return &Store{db: db, dialect: dialect{name: db.DriverName()}}, nil
}

// Repos returns repositories bound to the connection pool.
func (s *Store) Repos() portsrepo.Repositories {
	return newRepositories(s.db, s.dialect)
}

// WithinTx runs fn in a single transaction, committing only when fn returns nil.
func (s *Store) WithinTx(ctx context.Context, fn portsrepo.TxFunc) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, apperrors.NewAppError(500, "failed to rollback transaction", rbErr))
			}
		}
	}()

	if err = fn(ctx, newRepositories(tx, s.dialect)); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

func newRepositories(db sqlx.ExtContext, d dialect) portsrepo.Repositories {
	return portsrepo.Repositories{
		Accounts:         &accountRepository{db: db, d: d},
		Journals:         &journalRepository{db: db, d: d},
		Sequences:        &sequenceRepository{db: db, d: d},
		Expenses:         &expenseRepository{db: db},
		Invoices:         &invoiceRepository{db: db},
		StockCounts:      &stockCountRepository{db: db},
		Assets:           &assetRepository{db: db},
		CurrencyAccounts: &currencyAccountRepository{db: db},
		ExchangeRates:    &exchangeRateRepository{db: db, d: d},
		Revaluations:     &revaluationRepository{db: db, d: d},
		Payroll:          &payrollRepository{db: db},
	}
}
