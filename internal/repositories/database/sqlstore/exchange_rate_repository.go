package sqlstore

import (
	"context"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	portsrepo "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/repositories"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/models"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils/mapping"
	"github.com/jmoiron/sqlx"
)

const rateColumns = `exchange_rate_id, from_currency, to_currency, rate, effective_date,
	created_at, created_by, last_updated_at, last_updated_by`

type exchangeRateRepository struct {
	db sqlx.ExtContext
	d  dialect
}

var _ portsrepo.ExchangeRateRepository = (*exchangeRateRepository)(nil)

func (r *exchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	query := `INSERT INTO exchange_rates (` + rateColumns + `) VALUES (:exchange_rate_id, :from_currency, :to_currency,
		:rate, :effective_date, :created_at, :created_by, :last_updated_at, :last_updated_by)` +
		r.d.upsert("from_currency, to_currency, effective_date", "rate", "last_updated_at", "last_updated_by")
	_, err := sqlx.NamedExecContext(ctx, r.db, query, mapping.ToModelExchangeRate(rate))
	return mapError(err, "exchange rate "+rate.FromCurrency+"/"+rate.ToCurrency)
}

func (r *exchangeRateRepository) FindRateOnOrBefore(ctx context.Context, fromCurrency, toCurrency string, date time.Time) (*domain.ExchangeRate, error) {
	var m models.ExchangeRate
	query := `SELECT ` + rateColumns + ` FROM exchange_rates
		WHERE from_currency = ? AND to_currency = ? AND effective_date <= ?
		ORDER BY effective_date DESC LIMIT 1`
	if err := sqlx.GetContext(ctx, r.db, &m, query, fromCurrency, toCurrency, date.UTC()); err != nil {
		return nil, mapError(err, "exchange rate "+fromCurrency+"/"+toCurrency+" on or before "+date.Format("2006-01-02"))
	}
	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

func (r *exchangeRateRepository) ListExchangeRates(ctx context.Context, fromCurrency, toCurrency string, limit int) ([]domain.ExchangeRate, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	var rows []models.ExchangeRate
	query := `SELECT ` + rateColumns + ` FROM exchange_rates WHERE from_currency = ? AND to_currency = ?
		ORDER BY effective_date DESC LIMIT ?`
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, fromCurrency, toCurrency, limit); err != nil {
		return nil, mapError(err, "exchange rates "+fromCurrency+"/"+toCurrency)
	}
	return mapping.ToDomainExchangeRateSlice(rows), nil
}

const currencyAccountColumns = `account_id, tenant_id, name, currency_code, balance, opening_rate, gl_account_id,
	is_active, created_at, created_by, last_updated_at, last_updated_by`

type currencyAccountRepository struct {
	db sqlx.ExtContext
}

var _ portsrepo.CurrencyAccountRepository = (*currencyAccountRepository)(nil)

func (r *currencyAccountRepository) SaveCurrencyAccount(ctx context.Context, account domain.CurrencyAccount) error {
	query := `INSERT INTO currency_accounts (` + currencyAccountColumns + `) VALUES (:account_id, :tenant_id, :name,
		:currency_code, :balance, :opening_rate, :gl_account_id, :is_active, :created_at, :created_by, :last_updated_at,
		:last_updated_by)`
	_, err := sqlx.NamedExecContext(ctx, r.db, query, mapping.ToModelCurrencyAccount(account))
	return mapError(err, "currency account "+account.Name)
}

func (r *currencyAccountRepository) FindCurrencyAccountByID(ctx context.Context, tenantID, accountID string) (*domain.CurrencyAccount, error) {
	var m models.CurrencyAccount
	query := `SELECT ` + currencyAccountColumns + ` FROM currency_accounts WHERE tenant_id = ? AND account_id = ?`
	if err := sqlx.GetContext(ctx, r.db, &m, query, tenantID, accountID); err != nil {
		return nil, mapError(err, "currency account "+accountID)
	}
	acc := mapping.ToDomainCurrencyAccount(m)
	return &acc, nil
}

func (r *currencyAccountRepository) ListActiveCurrencyAccounts(ctx context.Context, tenantID, homeCurrency string) ([]domain.CurrencyAccount, error) {
	var rows []models.CurrencyAccount
	query := `SELECT ` + currencyAccountColumns + ` FROM currency_accounts
		WHERE tenant_id = ? AND is_active = ? AND currency_code <> ? ORDER BY name, account_id`
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, tenantID, true, homeCurrency); err != nil {
		return nil, mapError(err, "currency accounts of tenant "+tenantID)
	}
	return mapping.ToDomainCurrencyAccountSlice(rows), nil
}

const revaluationColumns = `revaluation_id, tenant_id, account_id, period, currency_code, foreign_balance,
	previous_rate, current_rate, previous_value, current_value, unrealized_gain_loss,
	created_at, created_by, last_updated_at, last_updated_by`

type revaluationRepository struct {
	db sqlx.ExtContext
	d  dialect
}

var _ portsrepo.RevaluationRepository = (*revaluationRepository)(nil)

func (r *revaluationRepository) FindLatestBefore(ctx context.Context, tenantID, accountID, period string) (*domain.RevaluationEntry, error) {
	var m models.RevaluationEntry
	query := `SELECT ` + revaluationColumns + ` FROM revaluation_entries
		WHERE tenant_id = ? AND account_id = ? AND period < ? ORDER BY period DESC LIMIT 1`
	if err := sqlx.GetContext(ctx, r.db, &m, query, tenantID, accountID, period); err != nil {
		return nil, mapError(err, "revaluation of account "+accountID+" before "+period)
	}
	e := mapping.ToDomainRevaluation(m)
	return &e, nil
}

func (r *revaluationRepository) UpsertRevaluation(ctx context.Context, entry domain.RevaluationEntry) (*domain.RevaluationEntry, error) {
	query := `INSERT INTO revaluation_entries (` + revaluationColumns + `) VALUES (:revaluation_id, :tenant_id, :account_id,
		:period, :currency_code, :foreign_balance, :previous_rate, :current_rate, :previous_value, :current_value,
		:unrealized_gain_loss, :created_at, :created_by, :last_updated_at, :last_updated_by)` +
		r.d.upsert("account_id, period", "foreign_balance", "previous_rate", "current_rate", "previous_value",
			"current_value", "unrealized_gain_loss", "last_updated_at", "last_updated_by")
	if _, err := sqlx.NamedExecContext(ctx, r.db, query, mapping.ToModelRevaluation(entry)); err != nil {
		return nil, mapError(err, "revaluation of account "+entry.AccountID+" for "+entry.Period)
	}

	var m models.RevaluationEntry
	if err := sqlx.GetContext(ctx, r.db, &m,
		`SELECT `+revaluationColumns+` FROM revaluation_entries WHERE account_id = ? AND period = ?`,
		entry.AccountID, entry.Period); err != nil {
		return nil, mapError(err, "revaluation of account "+entry.AccountID+" for "+entry.Period)
	}
	stored := mapping.ToDomainRevaluation(m)
	return &stored, nil
}

func (r *revaluationRepository) ListRevaluations(ctx context.Context, tenantID, period string) ([]domain.RevaluationEntry, error) {
	var rows []models.RevaluationEntry
	query := `SELECT ` + revaluationColumns + ` FROM revaluation_entries WHERE tenant_id = ? AND period = ? ORDER BY account_id`
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, tenantID, period); err != nil {
		return nil, mapError(err, "revaluations for "+period)
	}
	return mapping.ToDomainRevaluationSlice(rows), nil
}
