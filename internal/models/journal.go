package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of journal_entries. Metadata holds the JSON encoded map.
type JournalEntry struct {
	EntryID          string          `db:"entry_id"`
	TenantID         string          `db:"tenant_id"`
	EntryNumber      string          `db:"entry_number"`
	EntryDate        time.Time       `db:"entry_date"`
	Description      string          `db:"description"`
	Reference        string          `db:"reference"`
	SourceModule     string          `db:"source_module"`
	SourceDocumentID string          `db:"source_document_id"`
	Status           string          `db:"status"`
	TotalDebits      decimal.Decimal `db:"total_debits"`
	TotalCredits     decimal.Decimal `db:"total_credits"`
	PostedAt         *time.Time      `db:"posted_at"`
	PostedBy         *string         `db:"posted_by"`
	VoidedAt         *time.Time      `db:"voided_at"`
	VoidedBy         *string         `db:"voided_by"`
	VoidReason       *string         `db:"void_reason"`
	Metadata         string          `db:"metadata"`
	AuditFields
}

// JournalLine is a row of journal_lines.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	LineNumber  int             `db:"line_number"`
	AccountID   string          `db:"account_id"`
	Description string          `db:"description"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
}

// AccountActivity is the aggregate read by the trial balance and reconciliation.
type AccountActivity struct {
	AccountID    string          `db:"account_id"`
	AccountType  string          `db:"account_type"`
	TotalDebits  decimal.Decimal `db:"total_debits"`
	TotalCredits decimal.Decimal `db:"total_credits"`
}
