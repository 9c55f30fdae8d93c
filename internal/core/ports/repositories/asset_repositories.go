package repositories

import (
	"context"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
)

// FixedAssetReader defines read operations for fixed assets
type FixedAssetReader interface {
	FindAssetByID(ctx context.Context, tenantID, assetID string) (*domain.FixedAsset, error)

	// ListActiveAssets returns every ACTIVE asset of the tenant ordered by asset number.
	ListActiveAssets(ctx context.Context, tenantID string) ([]domain.FixedAsset, error)

	FindDisposalByAssetID(ctx context.Context, tenantID, assetID string) (*domain.DisposalRecord, error)
}

// FixedAssetWriter defines write operations for fixed assets
type FixedAssetWriter interface {
	SaveAsset(ctx context.Context, asset domain.FixedAsset) error

	// UpdateBookDepreciation stores the book-side figures of an ACTIVE asset provided its
	// last depreciation period is still previousPeriod. ErrConflict otherwise.
	UpdateBookDepreciation(ctx context.Context, asset domain.FixedAsset, previousPeriod string) error

	// UpdateAllowances stores the tax-side figures of an ACTIVE asset provided its last
	// allowance year is still previousYear. ErrConflict otherwise.
	UpdateAllowances(ctx context.Context, asset domain.FixedAsset, previousYear int) error

	// MarkAssetDisposed flips ACTIVE to DISPOSED. ErrConflict when already disposed.
	MarkAssetDisposed(ctx context.Context, tenantID, assetID string, disposedAt time.Time, userID string, now time.Time) error

	SaveDisposal(ctx context.Context, record domain.DisposalRecord) error
}

// FixedAssetRepository combines all fixed asset repository interfaces
type FixedAssetRepository interface {
	FixedAssetReader
	FixedAssetWriter
}
