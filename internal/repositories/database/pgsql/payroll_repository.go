package pgsql

import (
	"context"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	portsrepo "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/repositories"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/models"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils/mapping"
)

const specialPaymentColumns = `payment_id, tenant_id, employee_id, payment_type, payment_date, gross_amount,
	income_tax, nis, nht, education_tax, net_amount, tax_exempt, journal_entry_id, notes,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxPayrollRepository struct {
	db querier
}

var _ portsrepo.PayrollRepository = (*PgxPayrollRepository)(nil)

func (r *PgxPayrollRepository) SaveSpecialPayment(ctx context.Context, payment domain.SpecialPayment) error {
	m := mapping.ToModelSpecialPayment(payment)
	_, err := r.db.Exec(ctx,
		`INSERT INTO special_payments (`+specialPaymentColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
		$12, $13, $14, $15, $16, $17, $18)`,
		m.PaymentID, m.TenantID, m.EmployeeID, m.PaymentType, m.PaymentDate, m.GrossAmount, m.IncomeTax, m.NIS, m.NHT,
		m.EducationTax, m.NetAmount, m.TaxExempt, m.JournalEntryID, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	return mapError(err, "special payment "+payment.PaymentID)
}

func (r *PgxPayrollRepository) ListSpecialPayments(ctx context.Context, tenantID, employeeID string) ([]domain.SpecialPayment, error) {
	query := `SELECT ` + specialPaymentColumns + ` FROM special_payments WHERE tenant_id = $1`
	args := []any{tenantID}
	if employeeID != "" {
		query += ` AND employee_id = $2`
		args = append(args, employeeID)
	}
	query += ` ORDER BY payment_date DESC, created_at DESC`

	rows, err := getAll[models.SpecialPayment](ctx, r.db, "special payments of tenant "+tenantID, query, args...)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainSpecialPaymentSlice(rows), nil
}
