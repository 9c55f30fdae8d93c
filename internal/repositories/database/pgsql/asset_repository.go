package pgsql

import (
	"context"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	portsrepo "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/repositories"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/models"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils/mapping"
)

const assetColumns = `asset_id, tenant_id, asset_number, name, allowance_class, acquisition_date, acquisition_cost,
	total_capitalized_cost, depreciation_method, useful_life_months, residual_value, annual_depreciation_rate,
	accumulated_depreciation, net_book_value, last_depreciation_period, tax_eligible_cost, accumulated_allowances,
	written_down_value, last_allowance_year, status, disposed_at, created_at, created_by, last_updated_at, last_updated_by`

const disposalColumns = `disposal_id, tenant_id, asset_id, disposal_number, disposal_date, method, proceeds,
	net_book_value, book_gain_loss, written_down_value, tax_balancing_amount, balancing_charge, balancing_allowance,
	notes, created_at, created_by, last_updated_at, last_updated_by`

type PgxAssetRepository struct {
	db querier
}

var _ portsrepo.FixedAssetRepository = (*PgxAssetRepository)(nil)

func (r *PgxAssetRepository) FindAssetByID(ctx context.Context, tenantID, assetID string) (*domain.FixedAsset, error) {
	m, err := getOne[models.FixedAsset](ctx, r.db, "asset "+assetID,
		`SELECT `+assetColumns+` FROM fixed_assets WHERE tenant_id = $1 AND asset_id = $2`, tenantID, assetID)
	if err != nil {
		return nil, err
	}
	a := mapping.ToDomainFixedAsset(m)
	return &a, nil
}

func (r *PgxAssetRepository) ListActiveAssets(ctx context.Context, tenantID string) ([]domain.FixedAsset, error) {
	rows, err := getAll[models.FixedAsset](ctx, r.db, "assets of tenant "+tenantID,
		`SELECT `+assetColumns+` FROM fixed_assets WHERE tenant_id = $1 AND status = $2 ORDER BY asset_number`,
		tenantID, string(domain.AssetActive))
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainFixedAssetSlice(rows), nil
}

func (r *PgxAssetRepository) FindDisposalByAssetID(ctx context.Context, tenantID, assetID string) (*domain.DisposalRecord, error) {
	m, err := getOne[models.DisposalRecord](ctx, r.db, "disposal of asset "+assetID,
		`SELECT `+disposalColumns+` FROM asset_disposals WHERE tenant_id = $1 AND asset_id = $2`, tenantID, assetID)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainDisposal(m)
	return &d, nil
}

func (r *PgxAssetRepository) SaveAsset(ctx context.Context, asset domain.FixedAsset) error {
	m := mapping.ToModelFixedAsset(asset)
	_, err := r.db.Exec(ctx,
		`INSERT INTO fixed_assets (`+assetColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)`,
		m.AssetID, m.TenantID, m.AssetNumber, m.Name, m.AllowanceClass, m.AcquisitionDate, m.AcquisitionCost,
		m.TotalCapitalizedCost, m.DepreciationMethod, m.UsefulLifeMonths, m.ResidualValue, m.AnnualDepreciationRate,
		m.AccumulatedDepreciation, m.NetBookValue, m.LastDepreciationPeriod, m.TaxEligibleCost, m.AccumulatedAllowances,
		m.WrittenDownValue, m.LastAllowanceYear, m.Status, m.DisposedAt, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt,
		m.LastUpdatedBy)
	return mapError(err, "asset "+asset.AssetNumber)
}

// UpdateBookDepreciation only applies when the stored period still matches previousPeriod,
// so two runs for the same month cannot both advance the asset.
func (r *PgxAssetRepository) UpdateBookDepreciation(ctx context.Context, asset domain.FixedAsset, previousPeriod string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE fixed_assets SET accumulated_depreciation = $1, net_book_value = $2, last_depreciation_period = $3,
		last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $6 AND asset_id = $7 AND status = $8 AND last_depreciation_period = $9`,
		asset.AccumulatedDepreciation, asset.NetBookValue, asset.LastDepreciationPeriod,
		asset.LastUpdatedAt.UTC(), asset.LastUpdatedBy, asset.TenantID, asset.AssetID, string(domain.AssetActive), previousPeriod)
	if err != nil {
		return mapError(err, "asset "+asset.AssetNumber)
	}
	return transitioned(ctx, r.db, tag, "asset "+asset.AssetNumber, string(domain.AssetActive)+" at period "+previousPeriod,
		`SELECT status FROM fixed_assets WHERE tenant_id = $1 AND asset_id = $2`, asset.TenantID, asset.AssetID)
}

func (r *PgxAssetRepository) UpdateAllowances(ctx context.Context, asset domain.FixedAsset, previousYear int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE fixed_assets SET accumulated_allowances = $1, written_down_value = $2, last_allowance_year = $3,
		last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $6 AND asset_id = $7 AND status = $8 AND last_allowance_year = $9`,
		asset.AccumulatedAllowances, asset.WrittenDownValue, asset.LastAllowanceYear,
		asset.LastUpdatedAt.UTC(), asset.LastUpdatedBy, asset.TenantID, asset.AssetID, string(domain.AssetActive), previousYear)
	if err != nil {
		return mapError(err, "asset "+asset.AssetNumber)
	}
	return transitioned(ctx, r.db, tag, "asset "+asset.AssetNumber, string(domain.AssetActive)+" with unchanged allowances",
		`SELECT status FROM fixed_assets WHERE tenant_id = $1 AND asset_id = $2`, asset.TenantID, asset.AssetID)
}

func (r *PgxAssetRepository) MarkAssetDisposed(ctx context.Context, tenantID, assetID string, disposedAt time.Time, userID string, now time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE fixed_assets SET status = $1, disposed_at = $2, last_updated_at = $3, last_updated_by = $4
		WHERE tenant_id = $5 AND asset_id = $6 AND status = $7`,
		string(domain.AssetDisposed), disposedAt.UTC(), now.UTC(), userID, tenantID, assetID, string(domain.AssetActive))
	if err != nil {
		return mapError(err, "asset "+assetID)
	}
	return transitioned(ctx, r.db, tag, "asset "+assetID, string(domain.AssetActive),
		`SELECT status FROM fixed_assets WHERE tenant_id = $1 AND asset_id = $2`, tenantID, assetID)
}

func (r *PgxAssetRepository) SaveDisposal(ctx context.Context, record domain.DisposalRecord) error {
	m := mapping.ToModelDisposal(record)
	_, err := r.db.Exec(ctx,
		`INSERT INTO asset_disposals (`+disposalColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		$13, $14, $15, $16, $17, $18)`,
		m.DisposalID, m.TenantID, m.AssetID, m.DisposalNumber, m.DisposalDate, m.Method, m.Proceeds, m.NetBookValue,
		m.BookGainLoss, m.WrittenDownValue, m.TaxBalancingAmount, m.BalancingCharge, m.BalancingAllowance, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	return mapError(err, "disposal of asset "+record.AssetID)
}
