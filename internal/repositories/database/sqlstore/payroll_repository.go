package sqlstore

import (
	"context"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	portsrepo "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/repositories"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/models"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils/mapping"
	"github.com/jmoiron/sqlx"
)

const specialPaymentColumns = `payment_id, tenant_id, employee_id, payment_type, payment_date, gross_amount,
	income_tax, nis, nht, education_tax, net_amount, tax_exempt, journal_entry_id, notes,
	created_at, created_by, last_updated_at, last_updated_by`

type payrollRepository struct {
	db sqlx.ExtContext
}

var _ portsrepo.PayrollRepository = (*payrollRepository)(nil)

func (r *payrollRepository) SaveSpecialPayment(ctx context.Context, payment domain.SpecialPayment) error {
	query := `INSERT INTO special_payments (` + specialPaymentColumns + `) VALUES (:payment_id, :tenant_id, :employee_id,
		:payment_type, :payment_date, :gross_amount, :income_tax, :nis, :nht, :education_tax, :net_amount, :tax_exempt,
		:journal_entry_id, :notes, :created_at, :created_by, :last_updated_at, :last_updated_by)`
	_, err := sqlx.NamedExecContext(ctx, r.db, query, mapping.ToModelSpecialPayment(payment))
	return mapError(err, "special payment "+payment.PaymentID)
}

// ListSpecialPayments returns the tenant's payments newest first, for one employee when
// employeeID is set.
func (r *payrollRepository) ListSpecialPayments(ctx context.Context, tenantID, employeeID string) ([]domain.SpecialPayment, error) {
	query := `SELECT ` + specialPaymentColumns + ` FROM special_payments WHERE tenant_id = ?`
	args := []interface{}{tenantID}
	if employeeID != "" {
		query += ` AND employee_id = ?`
		args = append(args, employeeID)
	}
	query += ` ORDER BY payment_date DESC, created_at DESC`

	var rows []models.SpecialPayment
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, mapError(err, "special payments of tenant "+tenantID)
	}
	return mapping.ToDomainSpecialPaymentSlice(rows), nil
}
