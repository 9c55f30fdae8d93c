package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GCTBucket is an output-tax rate bucket.
type GCTBucket string

const (
	BucketStandard  GCTBucket = "STANDARD"
	BucketTelecom   GCTBucket = "TELECOM"
	BucketTourism   GCTBucket = "TOURISM"
	BucketZeroRated GCTBucket = "ZERO_RATED"
	BucketExempt    GCTBucket = "EXEMPT"
)

// AllBuckets lists buckets in return order.
var AllBuckets = []GCTBucket{BucketStandard, BucketTelecom, BucketTourism, BucketZeroRated, BucketExempt}

// TaxCategory classifies purchases for input-credit restriction.
type TaxCategory string

const (
	CategoryGeneral       TaxCategory = "GENERAL"
	CategoryEntertainment TaxCategory = "ENTERTAINMENT"
	CategoryMotorVehicle  TaxCategory = "MOTOR_VEHICLE"
	CategoryFoodService   TaxCategory = "FOOD_SERVICE"
	CategoryCapitalGoods  TaxCategory = "CAPITAL_GOODS"
)

// PurchaseTaxLine is a purchase with GCT paid, as read by the input-credit engine.
type PurchaseTaxLine struct {
	PurchaseID   string          `json:"purchaseID"`
	PurchaseDate time.Time       `json:"purchaseDate"`
	Category     TaxCategory     `json:"category"`
	NetAmount    decimal.Decimal `json:"netAmount"`
	TaxPaid      decimal.Decimal `json:"taxPaid"`
}

// OutputBucketTotal aggregates sales for one bucket.
type OutputBucketTotal struct {
	Bucket       GCTBucket       `json:"bucket"`
	TaxableSales decimal.Decimal `json:"taxableSales"`
	TaxCollected decimal.Decimal `json:"taxCollected"`
	LineCount    int             `json:"lineCount"`
}

// InputCredit is the claim computed for one purchase.
type InputCredit struct {
	PurchaseID        string          `json:"purchaseID"`
	Category          TaxCategory     `json:"category"`
	TaxPaid           decimal.Decimal `json:"taxPaid"`
	ClaimableFraction decimal.Decimal `json:"claimableFraction"`
	Claimable         decimal.Decimal `json:"claimable"`
	Restricted        decimal.Decimal `json:"restricted"`
	Deferred          decimal.Decimal `json:"deferred"`
	PhasedRecovery    bool            `json:"phasedRecovery"`
}

type NetPosition string

const (
	PositionPayable    NetPosition = "PAYABLE"
	PositionRefundable NetPosition = "REFUNDABLE"
	PositionNil        NetPosition = "NIL"
)

// GCTReturn is the aggregate a statutory return is rendered from.
type GCTReturn struct {
	TenantID        string              `json:"tenantID"`
	PeriodStart     time.Time           `json:"periodStart"`
	PeriodEnd       time.Time           `json:"periodEnd"`
	Output          []OutputBucketTotal `json:"output"`
	TotalOutputTax  decimal.Decimal     `json:"totalOutputTax"`
	Inputs          []InputCredit       `json:"inputs"`
	TotalInputPaid  decimal.Decimal     `json:"totalInputPaid"`
	TotalClaimable  decimal.Decimal     `json:"totalClaimable"`
	TotalRestricted decimal.Decimal     `json:"totalRestricted"`
	TotalDeferred   decimal.Decimal     `json:"totalDeferred"`
	NetAmount       decimal.Decimal     `json:"netAmount"`
	Position        NetPosition         `json:"position"`
}
