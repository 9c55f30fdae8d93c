package domain

import (
	"github.com/shopspring/decimal"
)

type StockCountStatus string

const (
	StockCountDraft      StockCountStatus = "DRAFT"
	StockCountInProgress StockCountStatus = "IN_PROGRESS"
	StockCountCounted    StockCountStatus = "COUNTED"
	StockCountApproved   StockCountStatus = "APPROVED"
	StockCountPosted     StockCountStatus = "POSTED"
	StockCountCancelled  StockCountStatus = "CANCELLED"
)

// StockCount is a physical inventory count whose variance is posted to the ledger.
type StockCount struct {
	StockCountID   string           `json:"stockCountID"`
	TenantID       string           `json:"tenantID"`
	CountNumber    string           `json:"countNumber"`
	Description    string           `json:"description"`
	Status         StockCountStatus `json:"status"`
	JournalEntryID string           `json:"journalEntryID,omitempty"`
	Items          []StockCountItem `json:"items"`
	AuditFields
}

// StockCountItem holds the expected and counted quantity of one product.
// CountedQty is nil until the product has been counted.
type StockCountItem struct {
	ItemID       string           `json:"itemID"`
	StockCountID string           `json:"stockCountID"`
	ProductID    string           `json:"productID"`
	ProductName  string           `json:"productName"`
	ExpectedQty  decimal.Decimal  `json:"expectedQty"`
	CountedQty   *decimal.Decimal `json:"countedQty,omitempty"`
	UnitCost     decimal.Decimal  `json:"unitCost"`
}

func (i StockCountItem) IsCounted() bool {
	return i.CountedQty != nil
}

// VarianceQty is counted minus expected; zero while uncounted.
func (i StockCountItem) VarianceQty() decimal.Decimal {
	if i.CountedQty == nil {
		return decimal.Zero
	}
	return i.CountedQty.Sub(i.ExpectedQty)
}

// VarianceValue is the unrounded value of the variance at unit cost.
func (i StockCountItem) VarianceValue() decimal.Decimal {
	return i.VarianceQty().Mul(i.UnitCost)
}

// TotalVarianceValue sums item variances and rounds once, to the cent.
// Positive is a surplus, negative a shortage.
func TotalVarianceValue(items []StockCountItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.VarianceValue())
	}
	return total.Round(2)
}

// DeriveStockCountStatus computes the parent status implied by the full item set.
// Approved, posted and cancelled counts are frozen and keep their status.
func DeriveStockCountStatus(current StockCountStatus, items []StockCountItem) StockCountStatus {
	switch current {
	case StockCountApproved, StockCountPosted, StockCountCancelled:
		return current
	}
	counted := 0
	for _, it := range items {
		if it.IsCounted() {
			counted++
		}
	}
	switch {
	case counted == 0:
		return StockCountDraft
	case counted < len(items):
		return StockCountInProgress
	default:
		return StockCountCounted
	}
}
