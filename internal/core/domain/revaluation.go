package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyAccount is a foreign-currency bank or cash account revalued at month end.
// Balance is held in CurrencyCode; OpeningRate is the booking rate to the home currency.
type CurrencyAccount struct {
	AccountID    string          `json:"accountID"`
	TenantID     string          `json:"tenantID"`
	Name         string          `json:"name"`
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
	OpeningRate  decimal.Decimal `json:"openingRate"`
	GLAccountID  string          `json:"glAccountID,omitempty"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}

// ExchangeRate is the number of ToCurrency units per one FromCurrency unit, effective
// from EffectiveDate.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	FromCurrency   string          `json:"fromCurrency"`
	ToCurrency     string          `json:"toCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	EffectiveDate  time.Time       `json:"effectiveDate"`
	AuditFields
}

// RevaluationEntry is unique per (account, period).
// UnrealizedGainLoss = CurrentValue - PreviousValue.
type RevaluationEntry struct {
	RevaluationID      string          `json:"revaluationID"`
	TenantID           string          `json:"tenantID"`
	AccountID          string          `json:"accountID"`
	Period             string          `json:"period"`
	CurrencyCode       string          `json:"currencyCode"`
	ForeignBalance     decimal.Decimal `json:"foreignBalance"`
	PreviousRate       decimal.Decimal `json:"previousRate"`
	CurrentRate        decimal.Decimal `json:"currentRate"`
	PreviousValue      decimal.Decimal `json:"previousValue"`
	CurrentValue       decimal.Decimal `json:"currentValue"`
	UnrealizedGainLoss decimal.Decimal `json:"unrealizedGainLoss"`
	AuditFields
}
