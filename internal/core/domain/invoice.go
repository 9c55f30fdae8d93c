package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceDraft  InvoiceStatus = "DRAFT"
	InvoicePosted InvoiceStatus = "POSTED"
)

// SalesInvoice is a customer invoice whose posted lines feed GCT output tax.
type SalesInvoice struct {
	InvoiceID      string             `json:"invoiceID"`
	TenantID       string             `json:"tenantID"`
	InvoiceNumber  string             `json:"invoiceNumber"`
	InvoiceDate    time.Time          `json:"invoiceDate"`
	CustomerName   string             `json:"customerName"`
	Status         InvoiceStatus      `json:"status"`
	JournalEntryID string             `json:"journalEntryID,omitempty"`
	Lines          []SalesInvoiceLine `json:"lines"`
	AuditFields
}

// SalesInvoiceLine is net of tax; TaxAmount is the GCT charged on it.
type SalesInvoiceLine struct {
	LineID           string          `json:"lineID"`
	InvoiceID        string          `json:"invoiceID"`
	LineNumber       int             `json:"lineNumber"`
	Description      string          `json:"description"`
	RevenueAccountID string          `json:"revenueAccountID"`
	Bucket           GCTBucket       `json:"bucket"`
	NetAmount        decimal.Decimal `json:"netAmount"`
	TaxAmount        decimal.Decimal `json:"taxAmount"`
}

// SalesTaxLine is the shape the GCT engine reads for output tax.
type SalesTaxLine struct {
	InvoiceID   string          `json:"invoiceID"`
	InvoiceDate time.Time       `json:"invoiceDate"`
	Bucket      GCTBucket       `json:"bucket"`
	NetAmount   decimal.Decimal `json:"netAmount"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`
}
