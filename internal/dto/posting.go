package dto

import (
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest records a purchase. Amount is net of GCT.
type CreateExpenseRequest struct {
	ExpenseDate      time.Time          `json:"expenseDate" binding:"required"`
	Vendor           string             `json:"vendor" binding:"required"`
	Description      string             `json:"description"`
	Category         domain.TaxCategory `json:"category" binding:"omitempty,oneof=GENERAL ENTERTAINMENT MOTOR_VEHICLE FOOD_SERVICE CAPITAL_GOODS"`
	Amount           decimal.Decimal    `json:"amount" binding:"required,dgt=0"`
	GCTAmount        decimal.Decimal    `json:"gctAmount" binding:"dgte=0"`
	GCTClaimable     bool               `json:"gctClaimable"`
	ExpenseAccountID string             `json:"expenseAccountID" binding:"required"`
	PaymentAccountID string             `json:"paymentAccountID" binding:"required"`
	Post             bool               `json:"post"`
}

// ExpenseResponse is the recorded expense and, once posted, its journal entry.
type ExpenseResponse struct {
	Expense *domain.ExpenseRecord `json:"expense"`
	Entry   *JournalEntryResponse `json:"entry,omitempty"`
}

// InvoiceLineRequest is one net sales line. TaxAmount is computed from the bucket rate when omitted.
type InvoiceLineRequest struct {
	Description      string           `json:"description"`
	RevenueAccountID string           `json:"revenueAccountID" binding:"required"`
	Bucket           domain.GCTBucket `json:"bucket" binding:"required,oneof=STANDARD TELECOM TOURISM ZERO_RATED EXEMPT"`
	NetAmount        decimal.Decimal  `json:"netAmount" binding:"required,dgt=0"`
	TaxAmount        *decimal.Decimal `json:"taxAmount"`
}

// CreateInvoiceRequest records a DRAFT sales invoice.
type CreateInvoiceRequest struct {
	InvoiceNumber string               `json:"invoiceNumber" binding:"required"`
	InvoiceDate   time.Time            `json:"invoiceDate" binding:"required"`
	CustomerName  string               `json:"customerName" binding:"required"`
	Lines         []InvoiceLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// StockCountItemRequest is one product expected on the shelf.
type StockCountItemRequest struct {
	ProductID   string          `json:"productID" binding:"required"`
	ProductName string          `json:"productName"`
	ExpectedQty decimal.Decimal `json:"expectedQty" binding:"dgte=0"`
	UnitCost    decimal.Decimal `json:"unitCost" binding:"dgte=0"`
}

// CreateStockCountRequest opens a DRAFT physical count.
type CreateStockCountRequest struct {
	CountNumber string                  `json:"countNumber" binding:"required"`
	Description string                  `json:"description"`
	Items       []StockCountItemRequest `json:"items" binding:"required,min=1,dive"`
}

// RecordCountRequest records the counted quantity of one product.
type RecordCountRequest struct {
	ProductID  string          `json:"productID" binding:"required"`
	CountedQty decimal.Decimal `json:"countedQty" binding:"dgte=0"`
}

// StockCountPostingResponse is the posted count and the variance entry, if any.
type StockCountPostingResponse struct {
	StockCount    *domain.StockCount    `json:"stockCount"`
	VarianceValue decimal.Decimal       `json:"varianceValue"`
	Entry         *JournalEntryResponse `json:"entry,omitempty"`
}
