package calculators

import (
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// GCTRules configures the consumption-tax engine.
type GCTRules struct {
	BucketRates           map[domain.GCTBucket]decimal.Decimal
	RestrictedFractions   map[domain.TaxCategory]decimal.Decimal
	CapitalGoodsThreshold decimal.Decimal
}

// DefaultGCTRules returns the standard rate buckets, the 50% restricted categories and a
// capital-goods threshold of JMD 1,000,000.
func DefaultGCTRules() GCTRules {
	half := decimal.RequireFromString("0.5")
	return GCTRules{
		BucketRates: map[domain.GCTBucket]decimal.Decimal{
			domain.BucketStandard:  decimal.RequireFromString("0.15"),
			domain.BucketTelecom:   decimal.RequireFromString("0.25"),
			domain.BucketTourism:   decimal.RequireFromString("0.10"),
			domain.BucketZeroRated: decimal.Zero,
			domain.BucketExempt:    decimal.Zero,
		},
		RestrictedFractions: map[domain.TaxCategory]decimal.Decimal{
			domain.CategoryEntertainment: half,
			domain.CategoryMotorVehicle:  half,
			domain.CategoryFoodService:   half,
		},
		CapitalGoodsThreshold: decimal.RequireFromString("1000000.00"),
	}
}

// ClaimableFraction is the share of tax paid on a purchase of category that may be claimed.
func (r GCTRules) ClaimableFraction(category domain.TaxCategory) decimal.Decimal {
	if f, ok := r.RestrictedFractions[category]; ok {
		return f
	}
	return decimal.NewFromInt(1)
}

// IsPhasedCapitalGoods reports whether a purchase falls under the capital-goods rule.
func (r GCTRules) IsPhasedCapitalGoods(category domain.TaxCategory, net decimal.Decimal) bool {
	return category == domain.CategoryCapitalGoods && net.GreaterThan(r.CapitalGoodsThreshold)
}

// OutputTax computes the tax due on net in bucket, rounded to the cent.
func (r GCTRules) OutputTax(bucket domain.GCTBucket, net decimal.Decimal) decimal.Decimal {
	return accounting.Round2(accounting.ApplyRate(net, r.BucketRates[bucket]))
}

// ComputeInputCredit determines the claim on one purchase. Figures are left unrounded;
// rounding happens when credits are aggregated.
func ComputeInputCredit(r GCTRules, p domain.PurchaseTaxLine) domain.InputCredit {
	fraction := r.ClaimableFraction(p.Category)
	claimable := accounting.ApplyRate(p.TaxPaid, fraction)
	credit := domain.InputCredit{
		PurchaseID:        p.PurchaseID,
		Category:          p.Category,
		TaxPaid:           p.TaxPaid,
		ClaimableFraction: fraction,
		Claimable:         claimable,
		Restricted:        p.TaxPaid.Sub(claimable),
		Deferred:          decimal.Zero,
	}
	if r.IsPhasedCapitalGoods(p.Category, p.NetAmount) {
		credit.PhasedRecovery = true
		credit.Deferred = claimable
		credit.Claimable = decimal.Zero
	}
	return credit
}

// SplitExpenseGCT divides the GCT on an expense into the part debited to GCT receivable
// and the part absorbed into the expense, both in whole cents. Deferred capital-goods
// credits remain receivable.
func SplitExpenseGCT(r GCTRules, category domain.TaxCategory, gct decimal.Decimal, claimable bool) (receivable, absorbed decimal.Decimal) {
	if !claimable || !gct.IsPositive() {
		return decimal.Zero, gct
	}
	receivable = accounting.Round2(accounting.ApplyRate(gct, r.ClaimableFraction(category)))
	return receivable, gct.Sub(receivable)
}

// ComputeGCTReturn aggregates posted sales lines and claimable purchases for a period.
func ComputeGCTReturn(r GCTRules, tenantID string, from, to time.Time, sales []domain.SalesTaxLine, purchases []domain.PurchaseTaxLine) domain.GCTReturn {
	buckets := make(map[domain.GCTBucket]*domain.OutputBucketTotal, len(domain.AllBuckets))
	for _, b := range domain.AllBuckets {
		buckets[b] = &domain.OutputBucketTotal{Bucket: b, TaxableSales: decimal.Zero, TaxCollected: decimal.Zero}
	}
	for _, s := range sales {
		bt, ok := buckets[s.Bucket]
		if !ok {
			bt = &domain.OutputBucketTotal{Bucket: s.Bucket, TaxableSales: decimal.Zero, TaxCollected: decimal.Zero}
			buckets[s.Bucket] = bt
		}
		bt.TaxableSales = bt.TaxableSales.Add(s.NetAmount)
		bt.TaxCollected = bt.TaxCollected.Add(s.TaxAmount)
		bt.LineCount++
	}

	ret := domain.GCTReturn{
		TenantID:    tenantID,
		PeriodStart: from,
		PeriodEnd:   to,
		Output:      make([]domain.OutputBucketTotal, 0, len(buckets)),
		Inputs:      make([]domain.InputCredit, 0, len(purchases)),
	}

	outputTax := decimal.Zero
	for _, b := range domain.AllBuckets {
		bt := buckets[b]
		outputTax = outputTax.Add(bt.TaxCollected)
		bt.TaxableSales = accounting.Round2(bt.TaxableSales)
		bt.TaxCollected = accounting.Round2(bt.TaxCollected)
		ret.Output = append(ret.Output, *bt)
	}

	paid, claimable, restricted, deferred := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for _, p := range purchases {
		if !p.TaxPaid.IsPositive() {
			continue
		}
		c := ComputeInputCredit(r, p)
		paid = paid.Add(c.TaxPaid)
		claimable = claimable.Add(c.Claimable)
		restricted = restricted.Add(c.Restricted)
		deferred = deferred.Add(c.Deferred)
		ret.Inputs = append(ret.Inputs, c)
	}

	ret.TotalOutputTax = accounting.Round2(outputTax)
	ret.TotalInputPaid = accounting.Round2(paid)
	ret.TotalClaimable = accounting.Round2(claimable)
	ret.TotalRestricted = accounting.Round2(restricted)
	ret.TotalDeferred = accounting.Round2(deferred)
	ret.NetAmount = ret.TotalOutputTax.Sub(ret.TotalClaimable)
	switch {
	case ret.NetAmount.IsPositive():
		ret.Position = domain.PositionPayable
	case ret.NetAmount.IsNegative():
		ret.Position = domain.PositionRefundable
	default:
		ret.Position = domain.PositionNil
	}
	return ret
}
