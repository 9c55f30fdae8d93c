package services

import (
	"context"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/dto"
)

// GCTSvc aggregates posted sales and purchases into a consumption-tax return.
type GCTSvc interface {
	ComputeReturn(ctx context.Context, tenantID string, from, to time.Time) (*domain.GCTReturn, error)
}

// RevaluationReaderSvc defines read operations for FX revaluation data
type RevaluationReaderSvc interface {
	ListRevaluations(ctx context.Context, tenantID string, period domain.Period) ([]domain.RevaluationEntry, error)
	ListExchangeRates(ctx context.Context, fromCurrency, toCurrency string, limit int) ([]domain.ExchangeRate, error)

	// PreviewRevaluation computes the run for period without persisting anything.
	PreviewRevaluation(ctx context.Context, tenantID string, period domain.Period) (domain.BatchSummary[domain.RevaluationEntry], error)
}

// RevaluationWriterSvc defines write operations for FX revaluation data
type RevaluationWriterSvc interface {
	CreateCurrencyAccount(ctx context.Context, tenantID, userID string, req dto.CreateCurrencyAccountRequest) (*domain.CurrencyAccount, error)
	SaveExchangeRate(ctx context.Context, userID string, req dto.CreateExchangeRateRequest) (*domain.ExchangeRate, error)

	// RunRevaluation revalues every active foreign-currency account at the period-end rate,
	// upserting one entry per (account, period). Accounts without a rate are skipped.
	RunRevaluation(ctx context.Context, tenantID, userID string, period domain.Period) (domain.BatchSummary[domain.RevaluationEntry], error)
}

// RevaluationSvcFacade combines all revaluation-related service interfaces
type RevaluationSvcFacade interface {
	RevaluationReaderSvc
	RevaluationWriterSvc
}

// PayrollSvc computes and records termination gratuities.
type PayrollSvc interface {
	// CalculateGratuity runs the formula only.
	CalculateGratuity(ctx context.Context, req dto.GratuityRequest) (domain.GratuityResult, error)

	// ProcessGratuity records an eligible gratuity as a tax-exempt special payment and posts it.
	ProcessGratuity(ctx context.Context, tenantID, userID string, req dto.GratuityRequest) (*dto.GratuityResponse, error)

	ListSpecialPayments(ctx context.Context, tenantID, employeeID string) ([]domain.SpecialPayment, error)
}
