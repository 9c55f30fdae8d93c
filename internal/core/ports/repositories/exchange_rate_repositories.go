package repositories

import (
	"context"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
)

// ExchangeRateRepository stores dated conversion rates.
type ExchangeRateRepository interface {
	// SaveExchangeRate inserts a rate or replaces the rate already stored for the same
	// (from, to, effective date).
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error

	// FindRateOnOrBefore returns the latest rate effective on or before date, or ErrNotFound.
	FindRateOnOrBefore(ctx context.Context, fromCurrency, toCurrency string, date time.Time) (*domain.ExchangeRate, error)

	// ListExchangeRates returns rates for a pair, newest first.
	ListExchangeRates(ctx context.Context, fromCurrency, toCurrency string, limit int) ([]domain.ExchangeRate, error)
}

// CurrencyAccountRepository stores foreign-currency bank and cash accounts.
type CurrencyAccountRepository interface {
	SaveCurrencyAccount(ctx context.Context, account domain.CurrencyAccount) error
	FindCurrencyAccountByID(ctx context.Context, tenantID, accountID string) (*domain.CurrencyAccount, error)

	// ListActiveCurrencyAccounts returns active accounts not held in homeCurrency.
	ListActiveCurrencyAccounts(ctx context.Context, tenantID, homeCurrency string) ([]domain.CurrencyAccount, error)
}

// RevaluationRepository stores one revaluation per (account, period).
type RevaluationRepository interface {
	// FindLatestBefore returns the most recent revaluation of the account for a period
	// strictly before period, or ErrNotFound.
	FindLatestBefore(ctx context.Context, tenantID, accountID, period string) (*domain.RevaluationEntry, error)

	// UpsertRevaluation inserts the entry or updates the one already stored for its
	// (account, period) in place, and returns the stored row.
	UpsertRevaluation(ctx context.Context, entry domain.RevaluationEntry) (*domain.RevaluationEntry, error)

	ListRevaluations(ctx context.Context, tenantID, period string) ([]domain.RevaluationEntry, error)
}
