package sqlstore

import (
	"context"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	portsrepo "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/repositories"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/models"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils/mapping"
	"github.com/jmoiron/sqlx"
)

const assetColumns = `asset_id, tenant_id, asset_number, name, allowance_class, acquisition_date, acquisition_cost,
	total_capitalized_cost, depreciation_method, useful_life_months, residual_value, annual_depreciation_rate,
	accumulated_depreciation, net_book_value, last_depreciation_period, tax_eligible_cost, accumulated_allowances,
	written_down_value, last_allowance_year, status, disposed_at, created_at, created_by, last_updated_at, last_updated_by`

const disposalColumns = `disposal_id, tenant_id, asset_id, disposal_number, disposal_date, method, proceeds,
	net_book_value, book_gain_loss, written_down_value, tax_balancing_amount, balancing_charge, balancing_allowance,
	notes, created_at, created_by, last_updated_at, last_updated_by`

type assetRepository struct {
	db sqlx.ExtContext
}

var _ portsrepo.FixedAssetRepository = (*assetRepository)(nil)

func (r *assetRepository) FindAssetByID(ctx context.Context, tenantID, assetID string) (*domain.FixedAsset, error) {
	var m models.FixedAsset
	query := `SELECT ` + assetColumns + ` FROM fixed_assets WHERE tenant_id = ? AND asset_id = ?`
	if err := sqlx.GetContext(ctx, r.db, &m, query, tenantID, assetID); err != nil {
		return nil, mapError(err, "asset "+assetID)
	}
	a := mapping.ToDomainFixedAsset(m)
	return &a, nil
}

func (r *assetRepository) ListActiveAssets(ctx context.Context, tenantID string) ([]domain.FixedAsset, error) {
	var rows []models.FixedAsset
	query := `SELECT ` + assetColumns + ` FROM fixed_assets WHERE tenant_id = ? AND status = ? ORDER BY asset_number`
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, tenantID, string(domain.AssetActive)); err != nil {
		return nil, mapError(err, "assets of tenant "+tenantID)
	}
	return mapping.ToDomainFixedAssetSlice(rows), nil
}

func (r *assetRepository) FindDisposalByAssetID(ctx context.Context, tenantID, assetID string) (*domain.DisposalRecord, error) {
	var m models.DisposalRecord
	query := `SELECT ` + disposalColumns + ` FROM asset_disposals WHERE tenant_id = ? AND asset_id = ?`
	if err := sqlx.GetContext(ctx, r.db, &m, query, tenantID, assetID); err != nil {
		return nil, mapError(err, "disposal of asset "+assetID)
	}
	d := mapping.ToDomainDisposal(m)
	return &d, nil
}

func (r *assetRepository) SaveAsset(ctx context.Context, asset domain.FixedAsset) error {
	query := `INSERT INTO fixed_assets (` + assetColumns + `) VALUES (:asset_id, :tenant_id, :asset_number, :name,
		:allowance_class, :acquisition_date, :acquisition_cost, :total_capitalized_cost, :depreciation_method,
		:useful_life_months, :residual_value, :annual_depreciation_rate, :accumulated_depreciation, :net_book_value,
		:last_depreciation_period, :tax_eligible_cost, :accumulated_allowances, :written_down_value, :last_allowance_year,
		:status, :disposed_at, :created_at, :created_by, :last_updated_at, :last_updated_by)`
	_, err := sqlx.NamedExecContext(ctx, r.db, query, mapping.ToModelFixedAsset(asset))
	return mapError(err, "asset "+asset.AssetNumber)
}

func (r *assetRepository) UpdateBookDepreciation(ctx context.Context, asset domain.FixedAsset, previousPeriod string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE fixed_assets SET accumulated_depreciation = ?, net_book_value = ?, last_depreciation_period = ?,
		last_updated_at = ?, last_updated_by = ?
		WHERE tenant_id = ? AND asset_id = ? AND status = ? AND last_depreciation_period = ?`,
		asset.AccumulatedDepreciation, asset.NetBookValue, asset.LastDepreciationPeriod,
		asset.LastUpdatedAt.UTC(), asset.LastUpdatedBy, asset.TenantID, asset.AssetID, string(domain.AssetActive), previousPeriod)
	if err != nil {
		return mapError(err, "asset "+asset.AssetNumber)
	}
	return transitioned(ctx, r.db, res, "asset "+asset.AssetNumber, string(domain.AssetActive)+" at period "+previousPeriod,
		`SELECT status FROM fixed_assets WHERE tenant_id = ? AND asset_id = ?`, asset.TenantID, asset.AssetID)
}

func (r *assetRepository) UpdateAllowances(ctx context.Context, asset domain.FixedAsset, previousYear int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE fixed_assets SET accumulated_allowances = ?, written_down_value = ?, last_allowance_year = ?,
		last_updated_at = ?, last_updated_by = ?
		WHERE tenant_id = ? AND asset_id = ? AND status = ? AND last_allowance_year = ?`,
		asset.AccumulatedAllowances, asset.WrittenDownValue, asset.LastAllowanceYear,
		asset.LastUpdatedAt.UTC(), asset.LastUpdatedBy, asset.TenantID, asset.AssetID, string(domain.AssetActive), previousYear)
	if err != nil {
		return mapError(err, "asset "+asset.AssetNumber)
	}
	return transitioned(ctx, r.db, res, "asset "+asset.AssetNumber, string(domain.AssetActive)+" with unchanged allowances",
		`SELECT status FROM fixed_assets WHERE tenant_id = ? AND asset_id = ?`, asset.TenantID, asset.AssetID)
}

func (r *assetRepository) MarkAssetDisposed(ctx context.Context, tenantID, assetID string, disposedAt time.Time, userID string, now time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE fixed_assets SET status = ?, disposed_at = ?, last_updated_at = ?, last_updated_by = ?
		WHERE tenant_id = ? AND asset_id = ? AND status = ?`,
		string(domain.AssetDisposed), disposedAt.UTC(), now.UTC(), userID, tenantID, assetID, string(domain.AssetActive))
	if err != nil {
		return mapError(err, "asset "+assetID)
	}
	return transitioned(ctx, r.db, res, "asset "+assetID, string(domain.AssetActive),
		`SELECT status FROM fixed_assets WHERE tenant_id = ? AND asset_id = ?`, tenantID, assetID)
}

func (r *assetRepository) SaveDisposal(ctx context.Context, record domain.DisposalRecord) error {
	query := `INSERT INTO asset_disposals (` + disposalColumns + `) VALUES (:disposal_id, :tenant_id, :asset_id,
		:disposal_number, :disposal_date, :method, :proceeds, :net_book_value, :book_gain_loss, :written_down_value,
		:tax_balancing_amount, :balancing_charge, :balancing_allowance, :notes, :created_at, :created_by,
		:last_updated_at, :last_updated_by)`
	_, err := sqlx.NamedExecContext(ctx, r.db, query, mapping.ToModelDisposal(record))
	return mapError(err, "disposal of asset "+record.AssetID)
}
