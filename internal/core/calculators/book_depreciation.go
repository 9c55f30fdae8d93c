package calculators

import (
	"fmt"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

// MonthlyBookDepreciation returns one month's book depreciation for asset, never taking
// NBV below the residual value. Zero means the asset is fully depreciated.
func MonthlyBookDepreciation(asset domain.FixedAsset) (decimal.Decimal, error) {
	remaining := asset.NetBookValue.Sub(asset.ResidualValue)
	if !remaining.IsPositive() {
		return decimal.Zero, nil
	}

	var monthly decimal.Decimal
	switch asset.DepreciationMethod {
	case domain.StraightLine:
		if asset.UsefulLifeMonths <= 0 {
			return decimal.Zero, fmt.Errorf("%w: asset %s has no useful life", apperrors.ErrMissingData, asset.AssetNumber)
		}
		depreciable := asset.TotalCapitalizedCost.Sub(asset.ResidualValue)
		monthly = accounting.Round2(depreciable.Div(decimal.NewFromInt(int64(asset.UsefulLifeMonths))))
	case domain.ReducingBalance:
		if !asset.AnnualDepreciationRate.IsPositive() {
			return decimal.Zero, fmt.Errorf("%w: asset %s has no reducing-balance rate", apperrors.ErrMissingData, asset.AssetNumber)
		}
		monthly = accounting.Round2(asset.NetBookValue.Mul(asset.AnnualDepreciationRate).Div(monthsPerYear))
	default:
		return decimal.Zero, fmt.Errorf("%w: asset %s has unknown depreciation method %q", apperrors.ErrValidation, asset.AssetNumber, asset.DepreciationMethod)
	}

	if monthly.IsZero() || monthly.GreaterThan(remaining) {
		monthly = remaining
	}
	return monthly, nil
}
