package dto

import (
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAssetRequest registers an acquired fixed asset.
type CreateAssetRequest struct {
	AssetNumber            string                    `json:"assetNumber" binding:"required"`
	Name                   string                    `json:"name" binding:"required"`
	AllowanceClass         domain.AllowanceClass     `json:"allowanceClass" binding:"required"`
	AcquisitionDate        time.Time                 `json:"acquisitionDate" binding:"required"`
	AcquisitionCost        decimal.Decimal           `json:"acquisitionCost" binding:"required,dgt=0"`
	DepreciationMethod     domain.DepreciationMethod `json:"depreciationMethod" binding:"required,oneof=STRAIGHT_LINE REDUCING_BALANCE"`
	UsefulLifeMonths       int                       `json:"usefulLifeMonths" binding:"omitempty,min=1"`
	ResidualValue          decimal.Decimal           `json:"residualValue" binding:"dgte=0"`
	AnnualDepreciationRate decimal.Decimal           `json:"annualDepreciationRate" binding:"dgte=0"`
}

// DisposeAssetRequest describes the disposal of an ACTIVE asset.
type DisposeAssetRequest struct {
	DisposalDate time.Time             `json:"disposalDate" binding:"required"`
	Method       domain.DisposalMethod `json:"method" binding:"required,oneof=SALE SCRAP DONATION TRADE_IN WRITE_OFF"`
	Proceeds     decimal.Decimal       `json:"proceeds" binding:"dgte=0"`
	Notes        string                `json:"notes"`
}

// DepreciationRunRequest names the month to depreciate, as YYYY-MM.
type DepreciationRunRequest struct {
	Period string `json:"period" binding:"required,datetime=2006-01"`
}

// AllowanceClaimRequest names the year of assessment to claim capital allowances for.
type AllowanceClaimRequest struct {
	Year int `json:"year" binding:"required,min=1900,max=9999"`
}

// AllowanceScheduleParams bounds a schedule preview.
type AllowanceScheduleParams struct {
	Years int `form:"years,default=10" binding:"omitempty,min=1,max=100"`
}
