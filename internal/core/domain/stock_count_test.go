package domain_test

import (
	"testing"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func counted(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestTotalVarianceValue(t *testing.T) {
	items := []domain.StockCountItem{
		{ProductID: "a", ExpectedQty: dec("10"), CountedQty: counted("8"), UnitCost: dec("150.00")},
		{ProductID: "b", ExpectedQty: dec("4"), CountedQty: counted("5"), UnitCost: dec("50.00")},
		{ProductID: "c", ExpectedQty: dec("3"), UnitCost: dec("999.00")},
	}

	assert.True(t, dec("-2").Equal(items[0].VarianceQty()))
	assert.True(t, items[2].VarianceQty().IsZero(), "uncounted items carry no variance")
	assert.True(t, dec("-250.00").Equal(domain.TotalVarianceValue(items)))
}

func TestTotalVarianceValue_RoundsOnce(t *testing.T) {
	items := []domain.StockCountItem{
		{ExpectedQty: dec("0"), CountedQty: counted("1"), UnitCost: dec("0.335")},
		{ExpectedQty: dec("0"), CountedQty: counted("1"), UnitCost: dec("0.335")},
		{ExpectedQty: dec("0"), CountedQty: counted("1"), UnitCost: dec("0.335")},
	}
	// per-item rounding would give 1.02
	assert.True(t, dec("1.01").Equal(domain.TotalVarianceValue(items)))
}

func TestDeriveStockCountStatus(t *testing.T) {
	uncounted := domain.StockCountItem{ExpectedQty: dec("1")}
	done := domain.StockCountItem{ExpectedQty: dec("1"), CountedQty: counted("1")}

	tests := []struct {
		name    string
		current domain.StockCountStatus
		items   []domain.StockCountItem
		want    domain.StockCountStatus
	}{
		{"nothing counted", domain.StockCountInProgress, []domain.StockCountItem{uncounted, uncounted}, domain.StockCountDraft},
		{"no items", domain.StockCountDraft, nil, domain.StockCountDraft},
		{"partially counted", domain.StockCountDraft, []domain.StockCountItem{done, uncounted}, domain.StockCountInProgress},
		{"fully counted", domain.StockCountInProgress, []domain.StockCountItem{done, done}, domain.StockCountCounted},
		{"approved is frozen", domain.StockCountApproved, []domain.StockCountItem{uncounted}, domain.StockCountApproved},
		{"posted is frozen", domain.StockCountPosted, []domain.StockCountItem{done}, domain.StockCountPosted},
		{"cancelled is frozen", domain.StockCountCancelled, []domain.StockCountItem{done}, domain.StockCountCancelled},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.DeriveStockCountStatus(tc.current, tc.items))
		})
	}
}
