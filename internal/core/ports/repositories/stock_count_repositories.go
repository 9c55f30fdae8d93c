package repositories

import (
	"context"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StockCountRepository persists physical counts and their items.
type StockCountRepository interface {
	SaveStockCount(ctx context.Context, count domain.StockCount) error

	// FindStockCountByID retrieves a count with all of its items.
	FindStockCountByID(ctx context.Context, tenantID, stockCountID string) (*domain.StockCount, error)

	// UpdateItemCount records the counted quantity of one product. ErrNotFound when the
	// product is not part of the count.
	UpdateItemCount(ctx context.Context, stockCountID, productID string, counted decimal.Decimal) error

	// UpdateStockCountStatus moves a count from one status to another and optionally links a
	// journal entry. Returns ErrConflict when the stored status is not from.
	UpdateStockCountStatus(ctx context.Context, tenantID, stockCountID string, from, to domain.StockCountStatus, entryID, userID string, now time.Time) error
}
