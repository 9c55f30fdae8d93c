package repositories

import (
	"context"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for GL account data
type AccountReader interface {
	// FindAccountByID retrieves a tenant's account by id.
	FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves a tenant's account by its chart-of-accounts code.
	FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves the tenant's accounts among ids. Missing ids are simply absent from the map.
	FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a page of the tenant's accounts ordered by code. A limit of
	// zero or less returns every account.
	ListAccounts(ctx context.Context, tenantID string, limit, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for GL account data
type AccountWriter interface {
	// SaveAccount persists a new account. A duplicate code returns ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates the descriptive fields of an account. Balance is not touched.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, tenantID, accountID, userID string, now time.Time) error
}

// AccountBalanceWriter is used by the ledger inside a unit of work.
type AccountBalanceWriter interface {
	// FindAccountsByIDsForUpdate locks the accounts in id order and returns them.
	FindAccountsByIDsForUpdate(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceDeltas increments each account balance by its delta in place.
	ApplyBalanceDeltas(ctx context.Context, tenantID string, deltas map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepository combines all account repository interfaces
type AccountRepository interface {
	AccountReader
	AccountWriter
	AccountBalanceWriter
}
