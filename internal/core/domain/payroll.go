package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PayFrequency string

const (
	PayWeekly      PayFrequency = "WEEKLY"
	PayFortnightly PayFrequency = "FORTNIGHTLY"
	PaySemiMonthly PayFrequency = "SEMI_MONTHLY"
	PayMonthly     PayFrequency = "MONTHLY"
	PayAnnually    PayFrequency = "ANNUALLY"
)

// PeriodsPerYear returns how many pay periods of this frequency fall in a year.
func (f PayFrequency) PeriodsPerYear() (int64, bool) {
	switch f {
	case PayWeekly:
		return 52, true
	case PayFortnightly:
		return 26, true
	case PaySemiMonthly:
		return 24, true
	case PayMonthly:
		return 12, true
	case PayAnnually:
		return 1, true
	}
	return 0, false
}

type TerminationReason string

const (
	ReasonRedundancy      TerminationReason = "REDUNDANCY"
	ReasonRetirement      TerminationReason = "RETIREMENT"
	ReasonDeath           TerminationReason = "DEATH"
	ReasonResignation     TerminationReason = "RESIGNATION"
	ReasonDismissal       TerminationReason = "DISMISSAL"
	ReasonEndOfContract   TerminationReason = "END_OF_CONTRACT"
	ReasonMutualAgreement TerminationReason = "MUTUAL_AGREEMENT"
)

// GratuityResult is the outcome of the gratuity formula. Amount is zero when not eligible.
type GratuityResult struct {
	Eligible       bool            `json:"eligible"`
	Reason         string          `json:"reason,omitempty"`
	CompletedYears int             `json:"completedYears"`
	CreditedYears  int             `json:"creditedYears"`
	WeeklyPay      decimal.Decimal `json:"weeklyPay"`
	WeeksPerYear   int             `json:"weeksPerYear"`
	Amount         decimal.Decimal `json:"amount"`
	TaxExempt      bool            `json:"taxExempt"`
}

type SpecialPaymentType string

const SpecialPaymentGratuity SpecialPaymentType = "GRATUITY"

// SpecialPayment is a payroll entry outside the regular pay run.
// Statutory withholdings are zero for tax-exempt payments.
type SpecialPayment struct {
	PaymentID      string             `json:"paymentID"`
	TenantID       string             `json:"tenantID"`
	EmployeeID     string             `json:"employeeID"`
	PaymentType    SpecialPaymentType `json:"paymentType"`
	PaymentDate    time.Time          `json:"paymentDate"`
	GrossAmount    decimal.Decimal    `json:"grossAmount"`
	IncomeTax      decimal.Decimal    `json:"incomeTax"`
	NIS            decimal.Decimal    `json:"nis"`
	NHT            decimal.Decimal    `json:"nht"`
	EducationTax   decimal.Decimal    `json:"educationTax"`
	NetAmount      decimal.Decimal    `json:"netAmount"`
	TaxExempt      bool               `json:"taxExempt"`
	JournalEntryID string             `json:"journalEntryID,omitempty"`
	Notes          string             `json:"notes"`
	AuditFields
}
