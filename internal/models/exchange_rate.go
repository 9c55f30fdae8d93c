package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores the conversion rate between two currencies for a specific date.
type ExchangeRate struct {
	ExchangeRateID string          `db:"exchange_rate_id"`
	FromCurrency   string          `db:"from_currency"`
	ToCurrency     string          `db:"to_currency"`
	Rate           decimal.Decimal `db:"rate"`
	EffectiveDate  time.Time       `db:"effective_date"`
	AuditFields
}

type CurrencyAccount struct {
	AccountID    string          `db:"account_id"`
	TenantID     string          `db:"tenant_id"`
	Name         string          `db:"name"`
	CurrencyCode string          `db:"currency_code"`
	Balance      decimal.Decimal `db:"balance"`
	OpeningRate  decimal.Decimal `db:"opening_rate"`
	GLAccountID  *string         `db:"gl_account_id"`
	IsActive     bool            `db:"is_active"`
	AuditFields
}

type RevaluationEntry struct {
	RevaluationID      string          `db:"revaluation_id"`
	TenantID           string          `db:"tenant_id"`
	AccountID          string          `db:"account_id"`
	Period             string          `db:"period"`
	CurrencyCode       string          `db:"currency_code"`
	ForeignBalance     decimal.Decimal `db:"foreign_balance"`
	PreviousRate       decimal.Decimal `db:"previous_rate"`
	CurrentRate        decimal.Decimal `db:"current_rate"`
	PreviousValue      decimal.Decimal `db:"previous_value"`
	CurrentValue       decimal.Decimal `db:"current_value"`
	UnrealizedGainLoss decimal.Decimal `db:"unrealized_gain_loss"`
	AuditFields
}
