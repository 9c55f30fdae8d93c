package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SpecialPayment struct {
	PaymentID      string          `db:"payment_id"`
	TenantID       string          `db:"tenant_id"`
	EmployeeID     string          `db:"employee_id"`
	PaymentType    string          `db:"payment_type"`
	PaymentDate    time.Time       `db:"payment_date"`
	GrossAmount    decimal.Decimal `db:"gross_amount"`
	IncomeTax      decimal.Decimal `db:"income_tax"`
	NIS            decimal.Decimal `db:"nis"`
	NHT            decimal.Decimal `db:"nht"`
	EducationTax   decimal.Decimal `db:"education_tax"`
	NetAmount      decimal.Decimal `db:"net_amount"`
	TaxExempt      bool            `db:"tax_exempt"`
	JournalEntryID *string         `db:"journal_entry_id"`
	Notes          string          `db:"notes"`
	AuditFields
}
