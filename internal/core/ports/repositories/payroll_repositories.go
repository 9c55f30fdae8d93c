package repositories

import (
	"context"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
)

// PayrollRepository stores payments made outside the regular pay run.
type PayrollRepository interface {
	SaveSpecialPayment(ctx context.Context, payment domain.SpecialPayment) error
	ListSpecialPayments(ctx context.Context, tenantID, employeeID string) ([]domain.SpecialPayment, error)
}
