// Package calculators holds the pure tax and valuation formulas used by the posting
// adapters, batch jobs and reporting. Nothing here touches persistence.
package calculators

import (
	"fmt"
	"sort"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// AllowanceRule defines the capital-allowance treatment of one asset class.
// CostCap, when set, is the ceiling on cost eligible for allowances.
type AllowanceRule struct {
	Class       domain.AllowanceClass `json:"class"`
	Description string                `json:"description"`
	InitialRate decimal.Decimal       `json:"initialRate"`
	AnnualRate  decimal.Decimal       `json:"annualRate"`
	CostCap     *decimal.Decimal      `json:"costCap,omitempty"`
}

// AllowanceTable maps class codes to their rules.
type AllowanceTable map[domain.AllowanceClass]AllowanceRule

func rate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func capAt(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// DefaultAllowanceTable returns the statutory class table.
func DefaultAllowanceTable() AllowanceTable {
	rules := []AllowanceRule{
		{Class: domain.ClassIndustrialBuilding, Description: "Industrial buildings", InitialRate: rate("0.10"), AnnualRate: rate("0.04")},
		{Class: domain.ClassPlantMachinery, Description: "Plant and machinery", InitialRate: rate("0.25"), AnnualRate: rate("0.125")},
		{Class: domain.ClassMotorVehicle, Description: "Motor vehicles", InitialRate: rate("0.20"), AnnualRate: rate("0.25"), CostCap: capAt("5000000.00")},
		{Class: domain.ClassComputerEquipment, Description: "Computer equipment", InitialRate: rate("0.25"), AnnualRate: rate("0.20")},
		{Class: domain.ClassFurnitureFixtures, Description: "Furniture and fixtures", InitialRate: rate("0.25"), AnnualRate: rate("0.10")},
		{Class: domain.ClassOfficeEquipment, Description: "Office equipment", InitialRate: rate("0.25"), AnnualRate: rate("0.10")},
	}
	t := make(AllowanceTable, len(rules))
	for _, r := range rules {
		t[r.Class] = r
	}
	return t
}

// Lookup returns the rule for class or an ErrMissingData error.
func (t AllowanceTable) Lookup(class domain.AllowanceClass) (AllowanceRule, error) {
	r, ok := t[class]
	if !ok {
		return AllowanceRule{}, fmt.Errorf("%w: no capital allowance class %q", apperrors.ErrMissingData, class)
	}
	return r, nil
}

// Rules lists the table sorted by class code.
func (t AllowanceTable) Rules() []AllowanceRule {
	out := make([]AllowanceRule, 0, len(t))
	for _, r := range t {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Class < out[j].Class })
	return out
}

// AllowableCost applies the class cost cap.
func (r AllowanceRule) AllowableCost(cost decimal.Decimal) decimal.Decimal {
	if r.CostCap == nil {
		return cost
	}
	return accounting.MinDecimal(cost, *r.CostCap)
}

// AllowanceYear is one year's claim on an asset.
type AllowanceYear struct {
	Year       int             `json:"year"`
	OpeningWDV decimal.Decimal `json:"openingWDV"`
	Initial    decimal.Decimal `json:"initial"`
	Annual     decimal.Decimal `json:"annual"`
	Total      decimal.Decimal `json:"total"`
	ClosingWDV decimal.Decimal `json:"closingWDV"`
}

// FirstYearAllowance computes the acquisition-year claim on cost.
func FirstYearAllowance(r AllowanceRule, cost decimal.Decimal, year int) AllowanceYear {
	allowable := r.AllowableCost(cost)
	initial := accounting.Round2(accounting.ApplyRate(allowable, r.InitialRate))
	annual := accounting.Round2(accounting.ApplyRate(allowable.Sub(initial), r.AnnualRate))
	total := initial.Add(annual)
	return AllowanceYear{
		Year:       year,
		OpeningWDV: allowable,
		Initial:    initial,
		Annual:     annual,
		Total:      total,
		ClosingWDV: allowable.Sub(total),
	}
}

// ReducingBalanceAllowance computes a post-acquisition year's claim on the current WDV.
// A residue too small to produce a cent of allowance is written off in full so the
// schedule terminates at zero.
func ReducingBalanceAllowance(r AllowanceRule, wdv decimal.Decimal, year int) AllowanceYear {
	if !wdv.IsPositive() {
		return AllowanceYear{Year: year, OpeningWDV: wdv, Initial: decimal.Zero, Annual: decimal.Zero, Total: decimal.Zero, ClosingWDV: wdv}
	}
	annual := accounting.Round2(accounting.ApplyRate(wdv, r.AnnualRate))
	if annual.IsZero() || annual.GreaterThan(wdv) {
		annual = wdv
	}
	return AllowanceYear{
		Year:       year,
		OpeningWDV: wdv,
		Initial:    decimal.Zero,
		Annual:     annual,
		Total:      annual,
		ClosingWDV: wdv.Sub(annual),
	}
}

// AllowanceForYear computes the claim for asset in a year of assessment.
func AllowanceForYear(r AllowanceRule, asset domain.FixedAsset, year int) (AllowanceYear, error) {
	acqYear := asset.AcquisitionDate.Year()
	if year < acqYear {
		return AllowanceYear{}, fmt.Errorf("%w: asset %s acquired in %d, cannot claim for %d", apperrors.ErrValidation, asset.AssetNumber, acqYear, year)
	}
	unclaimed := asset.LastAllowanceYear == 0 && asset.AccumulatedAllowances.IsZero()
	if unclaimed && year > acqYear {
		return AllowanceYear{}, fmt.Errorf("%w: asset %s has no claim for its acquisition year %d", apperrors.ErrMissingData, asset.AssetNumber, acqYear)
	}
	if year == acqYear && unclaimed {
		return FirstYearAllowance(r, asset.TaxEligibleCost, year), nil
	}
	return ReducingBalanceAllowance(r, asset.WrittenDownValue, year), nil
}

// AllowanceSchedule projects claims from the acquisition year for up to years years,
// stopping early once WDV reaches zero.
func AllowanceSchedule(r AllowanceRule, cost decimal.Decimal, acquisitionYear, years int) []AllowanceYear {
	if years <= 0 {
		return []AllowanceYear{}
	}
	first := FirstYearAllowance(r, cost, acquisitionYear)
	schedule := []AllowanceYear{first}
	wdv := first.ClosingWDV
	for y := acquisitionYear + 1; len(schedule) < years && wdv.IsPositive(); y++ {
		next := ReducingBalanceAllowance(r, wdv, y)
		schedule = append(schedule, next)
		wdv = next.ClosingWDV
	}
	return schedule
}

// BalancingAdjustment is the tax consequence of disposing of an asset.
type BalancingAdjustment struct {
	Amount    decimal.Decimal `json:"amount"`
	Charge    decimal.Decimal `json:"charge"`
	Allowance decimal.Decimal `json:"allowance"`
}

// ComputeBalancingAdjustment returns proceeds - wdv split into a balancing charge (capped
// at the allowances already claimed) or a balancing allowance.
func ComputeBalancingAdjustment(proceeds, wdv, claimed decimal.Decimal) BalancingAdjustment {
	amount := accounting.Round2(proceeds.Sub(wdv))
	adj := BalancingAdjustment{Amount: amount, Charge: decimal.Zero, Allowance: decimal.Zero}
	switch {
	case amount.IsPositive():
		adj.Charge = accounting.MinDecimal(amount, claimed)
	case amount.IsNegative():
		adj.Allowance = amount.Neg()
	}
	return adj
}
