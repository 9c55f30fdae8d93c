package services

import (
	"context"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/calculators"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/dto"
)

// AssetReaderSvc defines read operations for fixed assets
type AssetReaderSvc interface {
	GetAsset(ctx context.Context, tenantID, assetID string) (*domain.FixedAsset, error)
	ListActiveAssets(ctx context.Context, tenantID string) ([]domain.FixedAsset, error)

	// PreviewAllowanceSchedule projects year-by-year capital allowances without persisting anything.
	PreviewAllowanceSchedule(ctx context.Context, tenantID, assetID string, years int) ([]calculators.AllowanceYear, error)
}

// AssetWriterSvc defines asset lifecycle operations
type AssetWriterSvc interface {
	CreateAsset(ctx context.Context, tenantID, userID string, req dto.CreateAssetRequest) (*domain.FixedAsset, error)

	// DisposeAsset freezes an ACTIVE asset and records its book gain/loss and tax balancing adjustment.
	DisposeAsset(ctx context.Context, tenantID, assetID, userID string, req dto.DisposeAssetRequest) (*domain.DisposalRecord, error)
}

// AssetBatchSvc defines the periodic asset runs. Items that cannot be processed are
// reported as skipped and do not abort the run.
type AssetBatchSvc interface {
	RunDepreciation(ctx context.Context, tenantID, userID string, period domain.Period) (domain.BatchSummary[domain.DepreciationPosting], error)
	ClaimAllowances(ctx context.Context, tenantID, userID string, year int) (domain.BatchSummary[domain.AllowanceClaim], error)
}

// AssetSvcFacade combines all asset-related service interfaces
type AssetSvcFacade interface {
	AssetReaderSvc
	AssetWriterSvc
	AssetBatchSvc
}
