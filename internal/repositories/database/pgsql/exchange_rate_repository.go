package pgsql

import (
	"context"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	portsrepo "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/repositories"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/models"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils/mapping"
)

const rateColumns = `exchange_rate_id, from_currency, to_currency, rate, effective_date,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxExchangeRateRepository struct {
	db querier
}

var _ portsrepo.ExchangeRateRepository = (*PgxExchangeRateRepository)(nil)

// SaveExchangeRate stores the rate, replacing any rate already recorded for the same pair
// and effective date.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)
	_, err := r.db.Exec(ctx,
		`INSERT INTO exchange_rates (`+rateColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (from_currency, to_currency, effective_date) DO UPDATE
		SET rate = EXCLUDED.rate, last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by`,
		m.ExchangeRateID, m.FromCurrency, m.ToCurrency, m.Rate, m.EffectiveDate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	return mapError(err, "exchange rate "+rate.FromCurrency+"/"+rate.ToCurrency)
}

func (r *PgxExchangeRateRepository) FindRateOnOrBefore(ctx context.Context, fromCurrency, toCurrency string, date time.Time) (*domain.ExchangeRate, error) {
	m, err := getOne[models.ExchangeRate](ctx, r.db,
		"exchange rate "+fromCurrency+"/"+toCurrency+" on or before "+date.Format("2006-01-02"),
		`SELECT `+rateColumns+` FROM exchange_rates
		WHERE from_currency = $1 AND to_currency = $2 AND effective_date <= $3
		ORDER BY effective_date DESC LIMIT 1`,
		fromCurrency, toCurrency, date.UTC())
	if err != nil {
		return nil, err
	}
	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context, fromCurrency, toCurrency string, limit int) ([]domain.ExchangeRate, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	rows, err := getAll[models.ExchangeRate](ctx, r.db, "exchange rates "+fromCurrency+"/"+toCurrency,
		`SELECT `+rateColumns+` FROM exchange_rates WHERE from_currency = $1 AND to_currency = $2
		ORDER BY effective_date DESC LIMIT $3`,
		fromCurrency, toCurrency, limit)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainExchangeRateSlice(rows), nil
}

const currencyAccountColumns = `account_id, tenant_id, name, currency_code, balance, opening_rate, gl_account_id,
	is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxCurrencyAccountRepository struct {
	db querier
}

var _ portsrepo.CurrencyAccountRepository = (*PgxCurrencyAccountRepository)(nil)

func (r *PgxCurrencyAccountRepository) SaveCurrencyAccount(ctx context.Context, account domain.CurrencyAccount) error {
	m := mapping.ToModelCurrencyAccount(account)
	_, err := r.db.Exec(ctx,
		`INSERT INTO currency_accounts (`+currencyAccountColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		m.AccountID, m.TenantID, m.Name, m.CurrencyCode, m.Balance, m.OpeningRate, m.GLAccountID, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	return mapError(err, "currency account "+account.Name)
}

func (r *PgxCurrencyAccountRepository) FindCurrencyAccountByID(ctx context.Context, tenantID, accountID string) (*domain.CurrencyAccount, error) {
	m, err := getOne[models.CurrencyAccount](ctx, r.db, "currency account "+accountID,
		`SELECT `+currencyAccountColumns+` FROM currency_accounts WHERE tenant_id = $1 AND account_id = $2`, tenantID, accountID)
	if err != nil {
		return nil, err
	}
	acc := mapping.ToDomainCurrencyAccount(m)
	return &acc, nil
}

func (r *PgxCurrencyAccountRepository) ListActiveCurrencyAccounts(ctx context.Context, tenantID, homeCurrency string) ([]domain.CurrencyAccount, error) {
	rows, err := getAll[models.CurrencyAccount](ctx, r.db, "currency accounts of tenant "+tenantID,
		`SELECT `+currencyAccountColumns+` FROM currency_accounts
		WHERE tenant_id = $1 AND is_active AND currency_code <> $2 ORDER BY name, account_id`,
		tenantID, homeCurrency)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainCurrencyAccountSlice(rows), nil
}

const revaluationColumns = `revaluation_id, tenant_id, account_id, period, currency_code, foreign_balance,
	previous_rate, current_rate, previous_value, current_value, unrealized_gain_loss,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxRevaluationRepository struct {
	db querier
}

var _ portsrepo.RevaluationRepository = (*PgxRevaluationRepository)(nil)

func (r *PgxRevaluationRepository) FindLatestBefore(ctx context.Context, tenantID, accountID, period string) (*domain.RevaluationEntry, error) {
	m, err := getOne[models.RevaluationEntry](ctx, r.db, "revaluation of account "+accountID+" before "+period,
		`SELECT `+revaluationColumns+` FROM revaluation_entries
		WHERE tenant_id = $1 AND account_id = $2 AND period < $3 ORDER BY period DESC LIMIT 1`,
		tenantID, accountID, period)
	if err != nil {
		return nil, err
	}
	e := mapping.ToDomainRevaluation(m)
	return &e, nil
}

// UpsertRevaluation keeps one row per account and period and returns the stored row.
func (r *PgxRevaluationRepository) UpsertRevaluation(ctx context.Context, entry domain.RevaluationEntry) (*domain.RevaluationEntry, error) {
	m := mapping.ToModelRevaluation(entry)
	stored, err := getOne[models.RevaluationEntry](ctx, r.db, "revaluation of account "+entry.AccountID+" for "+entry.Period,
		`INSERT INTO revaluation_entries (`+revaluationColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
		$12, $13, $14, $15)
		ON CONFLICT (account_id, period) DO UPDATE SET foreign_balance = EXCLUDED.foreign_balance,
		previous_rate = EXCLUDED.previous_rate, current_rate = EXCLUDED.current_rate,
		previous_value = EXCLUDED.previous_value, current_value = EXCLUDED.current_value,
		unrealized_gain_loss = EXCLUDED.unrealized_gain_loss, last_updated_at = EXCLUDED.last_updated_at,
		last_updated_by = EXCLUDED.last_updated_by
		RETURNING `+revaluationColumns,
		m.RevaluationID, m.TenantID, m.AccountID, m.Period, m.CurrencyCode, m.ForeignBalance, m.PreviousRate,
		m.CurrentRate, m.PreviousValue, m.CurrentValue, m.UnrealizedGainLoss, m.CreatedAt, m.CreatedBy,
		m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return nil, err
	}
	e := mapping.ToDomainRevaluation(stored)
	return &e, nil
}

func (r *PgxRevaluationRepository) ListRevaluations(ctx context.Context, tenantID, period string) ([]domain.RevaluationEntry, error) {
	rows, err := getAll[models.RevaluationEntry](ctx, r.db, "revaluations for "+period,
		`SELECT `+revaluationColumns+` FROM revaluation_entries WHERE tenant_id = $1 AND period = $2 ORDER BY account_id`,
		tenantID, period)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainRevaluationSlice(rows), nil
}
