package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type FixedAsset struct {
	AssetID                 string          `db:"asset_id"`
	TenantID                string          `db:"tenant_id"`
	AssetNumber             string          `db:"asset_number"`
	Name                    string          `db:"name"`
	AllowanceClass          string          `db:"allowance_class"`
	AcquisitionDate         time.Time       `db:"acquisition_date"`
	AcquisitionCost         decimal.Decimal `db:"acquisition_cost"`
	TotalCapitalizedCost    decimal.Decimal `db:"total_capitalized_cost"`
	DepreciationMethod      string          `db:"depreciation_method"`
	UsefulLifeMonths        int             `db:"useful_life_months"`
	ResidualValue           decimal.Decimal `db:"residual_value"`
	AnnualDepreciationRate  decimal.Decimal `db:"annual_depreciation_rate"`
	AccumulatedDepreciation decimal.Decimal `db:"accumulated_depreciation"`
	NetBookValue            decimal.Decimal `db:"net_book_value"`
	LastDepreciationPeriod  string          `db:"last_depreciation_period"`
	TaxEligibleCost         decimal.Decimal `db:"tax_eligible_cost"`
	AccumulatedAllowances   decimal.Decimal `db:"accumulated_allowances"`
	WrittenDownValue        decimal.Decimal `db:"written_down_value"`
	LastAllowanceYear       int             `db:"last_allowance_year"`
	Status                  string          `db:"status"`
	DisposedAt              *time.Time      `db:"disposed_at"`
	AuditFields
}

type DisposalRecord struct {
	DisposalID         string          `db:"disposal_id"`
	TenantID           string          `db:"tenant_id"`
	AssetID            string          `db:"asset_id"`
	DisposalNumber     string          `db:"disposal_number"`
	DisposalDate       time.Time       `db:"disposal_date"`
	Method             string          `db:"method"`
	Proceeds           decimal.Decimal `db:"proceeds"`
	NetBookValue       decimal.Decimal `db:"net_book_value"`
	BookGainLoss       decimal.Decimal `db:"book_gain_loss"`
	WrittenDownValue   decimal.Decimal `db:"written_down_value"`
	TaxBalancingAmount decimal.Decimal `db:"tax_balancing_amount"`
	BalancingCharge    decimal.Decimal `db:"balancing_charge"`
	BalancingAllowance decimal.Decimal `db:"balancing_allowance"`
	Notes              string          `db:"notes"`
	AuditFields
}
