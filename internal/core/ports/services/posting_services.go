package services

import (
	"context"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/dto"
)

// ExpenseSvc records purchases and posts them to the ledger.
type ExpenseSvc interface {
	// CreateExpense records a PENDING expense, posting it at once when req.Post is set.
	CreateExpense(ctx context.Context, tenantID, userID string, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error)
	GetExpense(ctx context.Context, tenantID, expenseID string) (*domain.ExpenseRecord, error)

	// PostExpense creates and posts the expense's entry and marks it POSTED in one unit of work.
	PostExpense(ctx context.Context, tenantID, expenseID, userID string) (*domain.JournalEntry, error)
}

// InvoiceSvc records sales invoices and posts them to the ledger.
type InvoiceSvc interface {
	CreateInvoice(ctx context.Context, tenantID, userID string, req dto.CreateInvoiceRequest) (*domain.SalesInvoice, error)
	GetInvoice(ctx context.Context, tenantID, invoiceID string) (*domain.SalesInvoice, error)
	PostInvoice(ctx context.Context, tenantID, invoiceID, userID string) (*domain.JournalEntry, error)
}

// StockCountSvc drives a physical count from DRAFT to POSTED.
type StockCountSvc interface {
	CreateStockCount(ctx context.Context, tenantID, userID string, req dto.CreateStockCountRequest) (*domain.StockCount, error)
	GetStockCount(ctx context.Context, tenantID, stockCountID string) (*domain.StockCount, error)

	// RecordCount stores one product's counted quantity and re-derives the count's status.
	RecordCount(ctx context.Context, tenantID, stockCountID, userID string, req dto.RecordCountRequest) (*domain.StockCount, error)

	// ApproveStockCount moves a fully COUNTED count to APPROVED.
	ApproveStockCount(ctx context.Context, tenantID, stockCountID, userID string) (*domain.StockCount, error)

	// PostVariance posts the variance of an APPROVED count and marks it POSTED.
	PostVariance(ctx context.Context, tenantID, stockCountID, userID string) (*dto.StockCountPostingResponse, error)
}
