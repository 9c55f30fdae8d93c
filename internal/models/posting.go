package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ExpenseID        string          `db:"expense_id"`
	TenantID         string          `db:"tenant_id"`
	ExpenseDate      time.Time       `db:"expense_date"`
	Vendor           string          `db:"vendor"`
	Description      string          `db:"description"`
	Category         string          `db:"category"`
	Amount           decimal.Decimal `db:"amount"`
	GCTAmount        decimal.Decimal `db:"gct_amount"`
	GCTClaimable     bool            `db:"gct_claimable"`
	ExpenseAccountID string          `db:"expense_account_id"`
	PaymentAccountID string          `db:"payment_account_id"`
	Status           string          `db:"status"`
	JournalEntryID   *string         `db:"journal_entry_id"`
	AuditFields
}

type SalesInvoice struct {
	InvoiceID      string    `db:"invoice_id"`
	TenantID       string    `db:"tenant_id"`
	InvoiceNumber  string    `db:"invoice_number"`
	InvoiceDate    time.Time `db:"invoice_date"`
	CustomerName   string    `db:"customer_name"`
	Status         string    `db:"status"`
	JournalEntryID *string   `db:"journal_entry_id"`
	AuditFields
}

type SalesInvoiceLine struct {
	LineID           string          `db:"line_id"`
	InvoiceID        string          `db:"invoice_id"`
	LineNumber       int             `db:"line_number"`
	Description      string          `db:"description"`
	RevenueAccountID string          `db:"revenue_account_id"`
	Bucket           string          `db:"bucket"`
	NetAmount        decimal.Decimal `db:"net_amount"`
	TaxAmount        decimal.Decimal `db:"tax_amount"`
}

// SalesTaxLine joins an invoice line with its invoice date.
type SalesTaxLine struct {
	InvoiceID   string          `db:"invoice_id"`
	InvoiceDate time.Time       `db:"invoice_date"`
	Bucket      string          `db:"bucket"`
	NetAmount   decimal.Decimal `db:"net_amount"`
	TaxAmount   decimal.Decimal `db:"tax_amount"`
}

type StockCount struct {
	StockCountID   string  `db:"stock_count_id"`
	TenantID       string  `db:"tenant_id"`
	CountNumber    string  `db:"count_number"`
	Description    string  `db:"description"`
	Status         string  `db:"status"`
	JournalEntryID *string `db:"journal_entry_id"`
	AuditFields
}

type StockCountItem struct {
	ItemID       string              `db:"item_id"`
	StockCountID string              `db:"stock_count_id"`
	ProductID    string              `db:"product_id"`
	ProductName  string              `db:"product_name"`
	ExpectedQty  decimal.Decimal     `db:"expected_qty"`
	CountedQty   decimal.NullDecimal `db:"counted_qty"`
	UnitCost     decimal.Decimal     `db:"unit_cost"`
}
