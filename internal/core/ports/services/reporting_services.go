package services

import (
	"context"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/dto"
)

// ReportingService defines operations for ledger-wide figures
type ReportingService interface {
	// GetTrialBalance totals posted activity per account up to asOf.
	GetTrialBalance(ctx context.Context, tenantID string, asOf time.Time) (*dto.TrialBalanceResponse, error)

	// ReconcileBalances compares every stored account balance with the sum of its posted lines.
	ReconcileBalances(ctx context.Context, tenantID string) (*dto.ReconciliationResponse, error)
}
