package pgsql

import (
	"context"
	"sort"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	portsrepo "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/repositories"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/models"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, tenant_id, code, name, account_type, currency_code, description, is_active, balance,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	db querier
}

var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	m, err := getOne[models.Account](ctx, r.db, "account "+accountID,
		`SELECT `+accountColumns+` FROM accounts WHERE tenant_id = $1 AND account_id = $2`, tenantID, accountID)
	if err != nil {
		return nil, err
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	m, err := getOne[models.Account](ctx, r.db, "account code "+code,
		`SELECT `+accountColumns+` FROM accounts WHERE tenant_id = $1 AND code = $2`, tenantID, code)
	if err != nil {
		return nil, err
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	return r.findByIDs(ctx, tenantID, accountIDs, "")
}

// FindAccountsByIDsForUpdate locks the rows in account id order until the transaction ends.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	return r.findByIDs(ctx, tenantID, accountIDs, " FOR UPDATE")
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context, tenantID string, limit, offset int) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 ORDER BY code`
	args := []any{tenantID}
	if limit > 0 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}
	rows, err := getAll[models.Account](ctx, r.db, "accounts of tenant "+tenantID, query, args...)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainAccountSlice(rows), nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	_, err := r.db.Exec(ctx,
		`INSERT INTO accounts (`+accountColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		m.AccountID, m.TenantID, m.Code, m.Name, m.AccountType, m.CurrencyCode, m.Description, m.IsActive, m.Balance,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	return mapError(err, "account "+account.Code)
}

func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE accounts SET name = $1, description = $2, last_updated_at = $3, last_updated_by = $4
		WHERE tenant_id = $5 AND account_id = $6`,
		account.Name, account.Description, account.LastUpdatedAt.UTC(), account.LastUpdatedBy, account.TenantID, account.AccountID)
	if err != nil {
		return mapError(err, "account "+account.AccountID)
	}
	return expectOne(tag, "account "+account.AccountID)
}

func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, tenantID, accountID, userID string, now time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE accounts SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2 WHERE tenant_id = $3 AND account_id = $4`,
		now.UTC(), userID, tenantID, accountID)
	if err != nil {
		return mapError(err, "account "+accountID)
	}
	return expectOne(tag, "account "+accountID)
}

// ApplyBalanceDeltas adds each delta in account id order so concurrent posters lock
// rows in the same sequence.
func (r *PgxAccountRepository) ApplyBalanceDeltas(ctx context.Context, tenantID string, deltas map[string]decimal.Decimal, userID string, now time.Time) error {
	ids := make([]string, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		tag, err := r.db.Exec(ctx,
			`UPDATE accounts SET balance = balance + $1, last_updated_at = $2, last_updated_by = $3
			WHERE tenant_id = $4 AND account_id = $5`,
			deltas[id], now.UTC(), userID, tenantID, id)
		if err != nil {
			return mapError(err, "balance of account "+id)
		}
		if err := expectOne(tag, "account "+id); err != nil {
			return err
		}
	}
	return nil
}

func (r *PgxAccountRepository) findByIDs(ctx context.Context, tenantID string, accountIDs []string, suffix string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	rows, err := getAll[models.Account](ctx, r.db, "accounts",
		`SELECT `+accountColumns+` FROM accounts WHERE tenant_id = $1 AND account_id = ANY($2) ORDER BY account_id`+suffix,
		tenantID, accountIDs)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainAccountMap(rows), nil
}
