package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

const mysqlDuplicateEntry = 1062

// mapError translates driver errors into the application's sentinel errors.
func mapError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%s: %w", what, apperrors.ErrNotFound)
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", what, apperrors.ErrDuplicate)
	}
	return apperrors.NewAppError(500, "failed to access "+what, err)
}

func isUniqueViolation(err error) bool {
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique || liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	return false
}

// expectOne reports ErrNotFound when res touched no rows.
func expectOne(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewAppError(500, "failed to read affected rows for "+what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, apperrors.ErrNotFound)
	}
	return nil
}

// transitioned checks the outcome of a conditional status update. When nothing changed it
// reads the current status to tell a missing row from a conflicting one.
func transitioned(ctx context.Context, db sqlx.QueryerContext, res sql.Result, what, want, statusQuery string, args ...interface{}) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewAppError(500, "failed to read affected rows for "+what, err)
	}
	if n > 0 {
		return nil
	}
	var current string
	if err := sqlx.GetContext(ctx, db, &current, statusQuery, args...); err != nil {
		return mapError(err, what)
	}
	return fmt.Errorf("%w: %s is %s, expected %s", apperrors.ErrConflict, what, current, want)
}
