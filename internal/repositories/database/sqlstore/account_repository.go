package sqlstore

import (
	"context"
	"sort"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	portsrepo "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/repositories"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/models"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils/mapping"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, tenant_id, code, name, account_type, currency_code, description, is_active, balance,
	created_at, created_by, last_updated_at, last_updated_by`

type accountRepository struct {
	db sqlx.ExtContext
	d  dialect
}

var _ portsrepo.AccountRepository = (*accountRepository)(nil)

func (r *accountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	var m models.Account
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = ? AND account_id = ?`
	if err := sqlx.GetContext(ctx, r.db, &m, query, tenantID, accountID); err != nil {
		return nil, mapError(err, "account "+accountID)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

func (r *accountRepository) FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	var m models.Account
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = ? AND code = ?`
	if err := sqlx.GetContext(ctx, r.db, &m, query, tenantID, code); err != nil {
		return nil, mapError(err, "account code "+code)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

func (r *accountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	return r.findByIDs(ctx, tenantID, accountIDs, "")
}

func (r *accountRepository) ListAccounts(ctx context.Context, tenantID string, limit, offset int) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = ? ORDER BY code`
	args := []interface{}{tenantID}
	if limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, offset)
	}
	var rows []models.Account
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, mapError(err, "accounts of tenant "+tenantID)
	}
	return mapping.ToDomainAccountSlice(rows), nil
}

func (r *accountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `INSERT INTO accounts (` + accountColumns + `) VALUES (:account_id, :tenant_id, :code, :name, :account_type,
		:currency_code, :description, :is_active, :balance, :created_at, :created_by, :last_updated_at, :last_updated_by)`
	_, err := sqlx.NamedExecContext(ctx, r.db, query, mapping.ToModelAccount(account))
	return mapError(err, "account "+account.Code)
}

func (r *accountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET name = ?, description = ?, last_updated_at = ?, last_updated_by = ?
		WHERE tenant_id = ? AND account_id = ?`,
		account.Name, account.Description, account.LastUpdatedAt.UTC(), account.LastUpdatedBy, account.TenantID, account.AccountID)
	if err != nil {
		return mapError(err, "account "+account.AccountID)
	}
	return expectOne(res, "account "+account.AccountID)
}

func (r *accountRepository) DeactivateAccount(ctx context.Context, tenantID, accountID, userID string, now time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET is_active = ?, last_updated_at = ?, last_updated_by = ? WHERE tenant_id = ? AND account_id = ?`,
		false, now.UTC(), userID, tenantID, accountID)
	if err != nil {
		return mapError(err, "account "+accountID)
	}
	return expectOne(res, "account "+accountID)
}

func (r *accountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	return r.findByIDs(ctx, tenantID, accountIDs, r.d.forUpdate())
}

// ApplyBalanceDeltas reads and rewrites each balance in account id order. SQLite keeps
// decimals as TEXT, so the addition is done in Go rather than in SQL.
func (r *accountRepository) ApplyBalanceDeltas(ctx context.Context, tenantID string, deltas map[string]decimal.Decimal, userID string, now time.Time) error {
	ids := make([]string, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		var balance decimal.Decimal
		err := sqlx.GetContext(ctx, r.db, &balance,
			`SELECT balance FROM accounts WHERE tenant_id = ? AND account_id = ?`+r.d.forUpdate(), tenantID, id)
		if err != nil {
			return mapError(err, "account "+id)
		}
		_, err = r.db.ExecContext(ctx,
			`UPDATE accounts SET balance = ?, last_updated_at = ?, last_updated_by = ? WHERE tenant_id = ? AND account_id = ?`,
			balance.Add(deltas[id]), now.UTC(), userID, tenantID, id)
		if err != nil {
			return mapError(err, "balance of account "+id)
		}
	}
	return nil
}

func (r *accountRepository) findByIDs(ctx context.Context, tenantID string, accountIDs []string, suffix string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	ids := append([]string(nil), accountIDs...)
	sort.Strings(ids)

	query, args, err := sqlx.In(`SELECT `+accountColumns+` FROM accounts WHERE tenant_id = ? AND account_id IN (?) ORDER BY account_id`+suffix, tenantID, ids)
	if err != nil {
		return nil, mapError(err, "accounts")
	}
	var rows []models.Account
	if err := sqlx.SelectContext(ctx, r.db, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, mapError(err, "accounts")
	}
	return mapping.ToDomainAccountMap(rows), nil
}
