package calculators_test

import (
	"testing"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/calculators"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeInputCredit_EntertainmentRestrictedToHalf(t *testing.T) {
	rules := calculators.DefaultGCTRules()

	credit := calculators.ComputeInputCredit(rules, domain.PurchaseTaxLine{
		PurchaseID: "exp-1",
		Category:   domain.CategoryEntertainment,
		NetAmount:  d("10000.00"),
		TaxPaid:    d("1500.00"),
	})

	assertDecimal(t, "750.00", credit.Claimable)
	assertDecimal(t, "750.00", credit.Restricted)
	assertDecimal(t, "0.5", credit.ClaimableFraction)
	assert.False(t, credit.PhasedRecovery)
}

func TestComputeInputCredit_CapitalGoodsFlaggedForPhasedRecovery(t *testing.T) {
	rules := calculators.DefaultGCTRules()

	credit := calculators.ComputeInputCredit(rules, domain.PurchaseTaxLine{
		PurchaseID: "exp-2",
		Category:   domain.CategoryCapitalGoods,
		NetAmount:  d("2000000.00"),
		TaxPaid:    d("300000.00"),
	})

	assert.True(t, credit.PhasedRecovery)
	assert.True(t, credit.Claimable.IsZero())
	assertDecimal(t, "300000.00", credit.Deferred)

	small := calculators.ComputeInputCredit(rules, domain.PurchaseTaxLine{
		PurchaseID: "exp-3",
		Category:   domain.CategoryCapitalGoods,
		NetAmount:  d("1000000.00"),
		TaxPaid:    d("150000.00"),
	})
	assert.False(t, small.PhasedRecovery, "threshold itself is not above the threshold")
	assertDecimal(t, "150000.00", small.Claimable)
}

func TestSplitExpenseGCT(t *testing.T) {
	rules := calculators.DefaultGCTRules()

	recv, absorbed := calculators.SplitExpenseGCT(rules, domain.CategoryGeneral, d("150.00"), true)
	assertDecimal(t, "150.00", recv)
	assertDecimal(t, "0", absorbed)

	recv, absorbed = calculators.SplitExpenseGCT(rules, domain.CategoryFoodService, d("10.05"), true)
	assertDecimal(t, "5.03", recv)
	assertDecimal(t, "5.02", absorbed)

	recv, absorbed = calculators.SplitExpenseGCT(rules, domain.CategoryGeneral, d("150.00"), false)
	assert.True(t, recv.IsZero())
	assertDecimal(t, "150.00", absorbed)
}

func TestComputeGCTReturn_RoundsAtAggregation(t *testing.T) {
	rules := calculators.DefaultGCTRules()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	sales := []domain.SalesTaxLine{
		{InvoiceID: "inv-1", Bucket: domain.BucketStandard, NetAmount: d("100.033"), TaxAmount: d("15.005")},
		{InvoiceID: "inv-2", Bucket: domain.BucketStandard, NetAmount: d("100.033"), TaxAmount: d("15.005")},
		{InvoiceID: "inv-3", Bucket: domain.BucketTelecom, NetAmount: d("400.00"), TaxAmount: d("100.00")},
		{InvoiceID: "inv-4", Bucket: domain.BucketExempt, NetAmount: d("50.00"), TaxAmount: d("0")},
	}
	purchases := []domain.PurchaseTaxLine{
		{PurchaseID: "p-1", Category: domain.CategoryGeneral, NetAmount: d("200.00"), TaxPaid: d("30.00")},
		{PurchaseID: "p-2", Category: domain.CategoryEntertainment, NetAmount: d("10000.00"), TaxPaid: d("1500.00")},
		{PurchaseID: "p-3", Category: domain.CategoryGeneral, NetAmount: d("10.00"), TaxPaid: d("0")},
	}

	ret := calculators.ComputeGCTReturn(rules, "tenant-1", from, to, sales, purchases)

	require.Len(t, ret.Output, len(domain.AllBuckets))
	assert.Equal(t, domain.BucketStandard, ret.Output[0].Bucket)
	// 15.005 + 15.005 = 30.01; rounding each line first would give 30.02
	assertDecimal(t, "30.01", ret.Output[0].TaxCollected)
	assertDecimal(t, "200.07", ret.Output[0].TaxableSales)
	assert.Equal(t, 2, ret.Output[0].LineCount)
	assertDecimal(t, "130.01", ret.TotalOutputTax)

	require.Len(t, ret.Inputs, 2, "purchases without tax paid are not credits")
	assertDecimal(t, "1530.00", ret.TotalInputPaid)
	assertDecimal(t, "780.00", ret.TotalClaimable)
	assertDecimal(t, "750.00", ret.TotalRestricted)

	assertDecimal(t, "-649.99", ret.NetAmount)
	assert.Equal(t, domain.PositionRefundable, ret.Position)
}

func TestComputeGCTReturn_Payable(t *testing.T) {
	rules := calculators.DefaultGCTRules()
	ret := calculators.ComputeGCTReturn(rules, "tenant-1", time.Time{}, time.Time{},
		[]domain.SalesTaxLine{{Bucket: domain.BucketStandard, NetAmount: d("1000.00"), TaxAmount: d("150.00")}},
		nil)

	assertDecimal(t, "150.00", ret.NetAmount)
	assert.Equal(t, domain.PositionPayable, ret.Position)
	assert.Empty(t, ret.Inputs)
}
