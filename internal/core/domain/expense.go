package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExpenseStatus string

const (
	ExpensePending ExpenseStatus = "PENDING"
	ExpensePosted  ExpenseStatus = "POSTED"
)

// ExpenseRecord is a recorded purchase awaiting (or having received) its ledger posting.
// Amount is net of GCT.
type ExpenseRecord struct {
	ExpenseID        string          `json:"expenseID"`
	TenantID         string          `json:"tenantID"`
	ExpenseDate      time.Time       `json:"expenseDate"`
	Vendor           string          `json:"vendor"`
	Description      string          `json:"description"`
	Category         TaxCategory     `json:"category"`
	Amount           decimal.Decimal `json:"amount"`
	GCTAmount        decimal.Decimal `json:"gctAmount"`
	GCTClaimable     bool            `json:"gctClaimable"`
	ExpenseAccountID string          `json:"expenseAccountID"`
	PaymentAccountID string          `json:"paymentAccountID"`
	Status           ExpenseStatus   `json:"status"`
	JournalEntryID   string          `json:"journalEntryID,omitempty"`
	AuditFields
}

// Gross is the amount paid including GCT.
func (e ExpenseRecord) Gross() decimal.Decimal {
	return e.Amount.Add(e.GCTAmount)
}
