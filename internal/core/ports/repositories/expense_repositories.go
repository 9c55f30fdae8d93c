package repositories

import (
	"context"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
)

// ExpenseRepository persists purchases and exposes them to the input-tax engine.
type ExpenseRepository interface {
	SaveExpense(ctx context.Context, expense domain.ExpenseRecord) error
	FindExpenseByID(ctx context.Context, tenantID, expenseID string) (*domain.ExpenseRecord, error)

	// MarkExpensePosted links the journal entry and flips PENDING to POSTED.
	// Returns ErrConflict when the expense is not PENDING.
	MarkExpensePosted(ctx context.Context, tenantID, expenseID, entryID, userID string, now time.Time) error

	// ListTaxablePurchases returns posted, claimable expenses dated within [from, to].
	ListTaxablePurchases(ctx context.Context, tenantID string, from, to time.Time) ([]domain.PurchaseTaxLine, error)
}

// InvoiceRepository persists sales invoices and exposes posted lines to the output-tax engine.
type InvoiceRepository interface {
	SaveInvoice(ctx context.Context, invoice domain.SalesInvoice) error
	FindInvoiceByID(ctx context.Context, tenantID, invoiceID string) (*domain.SalesInvoice, error)

	// MarkInvoicePosted flips DRAFT to POSTED. Returns ErrConflict when the invoice is not DRAFT.
	MarkInvoicePosted(ctx context.Context, tenantID, invoiceID, entryID, userID string, now time.Time) error

	// ListPostedSalesLines returns the lines of posted invoices dated within [from, to].
	ListPostedSalesLines(ctx context.Context, tenantID string, from, to time.Time) ([]domain.SalesTaxLine, error)
}
