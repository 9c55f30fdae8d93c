package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest defines the structure for recording a dated exchange rate.
type CreateExchangeRateRequest struct {
	FromCurrency  string          `json:"fromCurrency" binding:"required,len=3,uppercase"`
	ToCurrency    string          `json:"toCurrency" binding:"required,len=3,uppercase,nefield=FromCurrency"`
	Rate          decimal.Decimal `json:"rate" binding:"required,dgt=0"`
	EffectiveDate time.Time       `json:"effectiveDate" binding:"required"`
}

// CreateCurrencyAccountRequest registers a foreign-currency bank or cash account.
type CreateCurrencyAccountRequest struct {
	Name         string          `json:"name" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3,uppercase"`
	Balance      decimal.Decimal `json:"balance"`
	OpeningRate  decimal.Decimal `json:"openingRate" binding:"required,dgt=0"`
	GLAccountID  string          `json:"glAccountID"`
}

// RevaluationRunRequest names the month to revalue, as YYYY-MM.
type RevaluationRunRequest struct {
	Period string `json:"period" binding:"required,datetime=2006-01"`
}

// ListExchangeRatesParams selects the rate history of one currency pair.
type ListExchangeRatesParams struct {
	From  string `form:"from" binding:"required,len=3,uppercase"`
	To    string `form:"to" binding:"required,len=3,uppercase"`
	Limit int    `form:"limit,default=20" binding:"omitempty,min=1,max=500"`
}

// PeriodParams names a month as YYYY-MM in a query string.
type PeriodParams struct {
	Period string `form:"period" binding:"required,datetime=2006-01"`
}
