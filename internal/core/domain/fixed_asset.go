package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AssetStatus string

const (
	AssetActive   AssetStatus = "ACTIVE"
	AssetDisposed AssetStatus = "DISPOSED"
)

type DepreciationMethod string

const (
	StraightLine    DepreciationMethod = "STRAIGHT_LINE"
	ReducingBalance DepreciationMethod = "REDUCING_BALANCE"
)

// AllowanceClass is a capital-allowance class code.
type AllowanceClass string

const (
	ClassIndustrialBuilding AllowanceClass = "BUILDING_INDUSTRIAL"
	ClassPlantMachinery     AllowanceClass = "PLANT_MACHINERY"
	ClassMotorVehicle       AllowanceClass = "MOTOR_VEHICLE"
	ClassComputerEquipment  AllowanceClass = "COMPUTER_EQUIPMENT"
	ClassFurnitureFixtures  AllowanceClass = "FURNITURE_FIXTURES"
	ClassOfficeEquipment    AllowanceClass = "OFFICE_EQUIPMENT"
)

// FixedAsset carries both the book side (NBV) and the tax side (WDV) of an asset.
// NBV = TotalCapitalizedCost - AccumulatedDepreciation.
// WDV = TaxEligibleCost - AccumulatedAllowances.
type FixedAsset struct {
	AssetID                 string             `json:"assetID"`
	TenantID                string             `json:"tenantID"`
	AssetNumber             string             `json:"assetNumber"`
	Name                    string             `json:"name"`
	AllowanceClass          AllowanceClass     `json:"allowanceClass"`
	AcquisitionDate         time.Time          `json:"acquisitionDate"`
	AcquisitionCost         decimal.Decimal    `json:"acquisitionCost"`
	TotalCapitalizedCost    decimal.Decimal    `json:"totalCapitalizedCost"`
	DepreciationMethod      DepreciationMethod `json:"depreciationMethod"`
	UsefulLifeMonths        int                `json:"usefulLifeMonths"`
	ResidualValue           decimal.Decimal    `json:"residualValue"`
	AnnualDepreciationRate  decimal.Decimal    `json:"annualDepreciationRate"`
	AccumulatedDepreciation decimal.Decimal    `json:"accumulatedDepreciation"`
	NetBookValue            decimal.Decimal    `json:"netBookValue"`
	LastDepreciationPeriod  string             `json:"lastDepreciationPeriod,omitempty"`
	TaxEligibleCost         decimal.Decimal    `json:"taxEligibleCost"`
	AccumulatedAllowances   decimal.Decimal    `json:"accumulatedAllowances"`
	WrittenDownValue        decimal.Decimal    `json:"writtenDownValue"`
	LastAllowanceYear       int                `json:"lastAllowanceYear,omitempty"`
	Status                  AssetStatus        `json:"status"`
	DisposedAt              *time.Time         `json:"disposedAt,omitempty"`
	AuditFields
}

// ApplyBookDepreciation adds amount to accumulated depreciation and refreshes NBV.
func (a *FixedAsset) ApplyBookDepreciation(amount decimal.Decimal, p Period) {
	a.AccumulatedDepreciation = a.AccumulatedDepreciation.Add(amount)
	a.NetBookValue = a.TotalCapitalizedCost.Sub(a.AccumulatedDepreciation)
	a.LastDepreciationPeriod = p.String()
}

// ApplyAllowance adds amount to accumulated allowances and refreshes WDV.
func (a *FixedAsset) ApplyAllowance(amount decimal.Decimal, year int) {
	a.AccumulatedAllowances = a.AccumulatedAllowances.Add(amount)
	a.WrittenDownValue = a.TaxEligibleCost.Sub(a.AccumulatedAllowances)
	a.LastAllowanceYear = year
}

// DepreciatedThrough returns the last period book depreciation was run for.
func (a FixedAsset) DepreciatedThrough() (Period, bool) {
	if a.LastDepreciationPeriod == "" {
		return Period{}, false
	}
	p, err := ParsePeriod(a.LastDepreciationPeriod)
	if err != nil {
		return Period{}, false
	}
	return p, true
}

type DisposalMethod string

const (
	DisposalSale     DisposalMethod = "SALE"
	DisposalScrap    DisposalMethod = "SCRAP"
	DisposalDonation DisposalMethod = "DONATION"
	DisposalTradeIn  DisposalMethod = "TRADE_IN"
	DisposalWriteOff DisposalMethod = "WRITE_OFF"
)

// DisposalRecord freezes the book and tax position of an asset at disposal.
// TaxBalancingAmount = Proceeds - WDV; a positive amount is a balancing charge capped at
// the allowances claimed, a negative one a balancing allowance.
type DisposalRecord struct {
	DisposalID         string          `json:"disposalID"`
	TenantID           string          `json:"tenantID"`
	AssetID            string          `json:"assetID"`
	DisposalNumber     string          `json:"disposalNumber"`
	DisposalDate       time.Time       `json:"disposalDate"`
	Method             DisposalMethod  `json:"method"`
	Proceeds           decimal.Decimal `json:"proceeds"`
	NetBookValue       decimal.Decimal `json:"netBookValue"`
	BookGainLoss       decimal.Decimal `json:"bookGainLoss"`
	WrittenDownValue   decimal.Decimal `json:"writtenDownValue"`
	TaxBalancingAmount decimal.Decimal `json:"taxBalancingAmount"`
	BalancingCharge    decimal.Decimal `json:"balancingCharge"`
	BalancingAllowance decimal.Decimal `json:"balancingAllowance"`
	Notes              string          `json:"notes"`
	AuditFields
}

// DisposalNumberSequence is the tenant counter disposal numbers are drawn from.
const DisposalNumberSequence = "DSP"

// DepreciationPosting is one asset's result in a book depreciation run.
type DepreciationPosting struct {
	AssetID                 string          `json:"assetID"`
	AssetNumber             string          `json:"assetNumber"`
	Period                  string          `json:"period"`
	Amount                  decimal.Decimal `json:"amount"`
	AccumulatedDepreciation decimal.Decimal `json:"accumulatedDepreciation"`
	NetBookValue            decimal.Decimal `json:"netBookValue"`
	JournalEntryID          string          `json:"journalEntryID"`
}

// AllowanceClaim is one asset's result in a capital-allowance claim run.
type AllowanceClaim struct {
	AssetID          string          `json:"assetID"`
	AssetNumber      string          `json:"assetNumber"`
	Year             int             `json:"year"`
	Initial          decimal.Decimal `json:"initial"`
	Annual           decimal.Decimal `json:"annual"`
	Total            decimal.Decimal `json:"total"`
	WrittenDownValue decimal.Decimal `json:"writtenDownValue"`
}
