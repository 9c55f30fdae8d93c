package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	portsrepo "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/repositories"
	portssvc "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/services"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/dto"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/platform/config"
)

type stockCountService struct {
	BaseService
	ledger portssvc.LedgerPoster
	codes  config.PostingAccountCodes
}

// NewStockCountService creates the stock-count variance adapter.
func NewStockCountService(store portsrepo.Store, ledger portssvc.LedgerPoster, codes config.PostingAccountCodes, opts ...ServiceOption) portssvc.StockCountSvc {
	return &stockCountService{
		BaseService: newBaseService(store, opts...),
		ledger:      ledger,
		codes:       codes,
	}
}

var _ portssvc.StockCountSvc = (*stockCountService)(nil)

func isFrozen(status domain.StockCountStatus) bool {
	switch status {
	case domain.StockCountApproved, domain.StockCountPosted, domain.StockCountCancelled:
		return true
	}
	return false
}

func (s *stockCountService) CreateStockCount(ctx context.Context, tenantID, userID string, req dto.CreateStockCountRequest) (*domain.StockCount, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: a stock count needs at least one item", apperrors.ErrValidation)
	}
	count := domain.StockCount{
		StockCountID: uuid.NewString(),
		TenantID:     tenantID,
		CountNumber:  req.CountNumber,
		Description:  req.Description,
		Status:       domain.StockCountDraft,
		Items:        make([]domain.StockCountItem, len(req.Items)),
		AuditFields:  domain.NewAuditFields(userID, s.Now()),
	}
	seen := make(map[string]struct{}, len(req.Items))
	for i, it := range req.Items {
		if _, dup := seen[it.ProductID]; dup {
			return nil, fmt.Errorf("%w: product %s listed twice", apperrors.ErrValidation, it.ProductID)
		}
		seen[it.ProductID] = struct{}{}
		if it.ExpectedQty.IsNegative() || it.UnitCost.IsNegative() {
			return nil, fmt.Errorf("%w: product %s has a negative quantity or cost", apperrors.ErrValidation, it.ProductID)
		}
		count.Items[i] = domain.StockCountItem{
			ItemID:       uuid.NewString(),
			StockCountID: count.StockCountID,
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			ExpectedQty:  it.ExpectedQty,
			UnitCost:     it.UnitCost,
		}
	}

	if err := s.store.Repos().StockCounts.SaveStockCount(ctx, count); err != nil {
		return nil, err
	}
	return &count, nil
}

func (s *stockCountService) GetStockCount(ctx context.Context, tenantID, stockCountID string) (*domain.StockCount, error) {
	return s.store.Repos().StockCounts.FindStockCountByID(ctx, tenantID, stockCountID)
}

// RecordCount stores one counted quantity and re-derives the parent status from the
// complete item set.
func (s *stockCountService) RecordCount(ctx context.Context, tenantID, stockCountID, userID string, req dto.RecordCountRequest) (*domain.StockCount, error) {
	if req.CountedQty.IsNegative() {
		return nil, fmt.Errorf("%w: counted quantity cannot be negative", apperrors.ErrValidation)
	}
	var result *domain.StockCount
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		count, err := repos.StockCounts.FindStockCountByID(ctx, tenantID, stockCountID)
		if err != nil {
			return err
		}
		if isFrozen(count.Status) {
			return fmt.Errorf("%w: stock count %s is %s", apperrors.ErrConflict, count.CountNumber, count.Status)
		}

		found := false
		for i := range count.Items {
			if count.Items[i].ProductID == req.ProductID {
				qty := req.CountedQty
				count.Items[i].CountedQty = &qty
				found = true
			}
		}
		if !found {
			return fmt.Errorf("%w: product %s is not part of stock count %s", apperrors.ErrNotFound, req.ProductID, count.CountNumber)
		}
		if err := repos.StockCounts.UpdateItemCount(ctx, stockCountID, req.ProductID, req.CountedQty); err != nil {
			return err
		}

		next := domain.DeriveStockCountStatus(count.Status, count.Items)
		if next != count.Status {
			now := s.Now()
			if err := repos.StockCounts.UpdateStockCountStatus(ctx, tenantID, stockCountID, count.Status, next, "", userID, now); err != nil {
				return err
			}
			count.Status = next
			count.Touch(userID, now)
		}
		result = count
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *stockCountService) ApproveStockCount(ctx context.Context, tenantID, stockCountID, userID string) (*domain.StockCount, error) {
	var result *domain.StockCount
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		count, err := repos.StockCounts.FindStockCountByID(ctx, tenantID, stockCountID)
		if err != nil {
			return err
		}
		switch count.Status {
		case domain.StockCountCounted:
		case domain.StockCountDraft, domain.StockCountInProgress:
			return fmt.Errorf("%w: stock count %s is %s, every item must be counted first", apperrors.ErrValidation, count.CountNumber, count.Status)
		default:
			return fmt.Errorf("%w: stock count %s is %s", apperrors.ErrConflict, count.CountNumber, count.Status)
		}
		now := s.Now()
		if err := repos.StockCounts.UpdateStockCountStatus(ctx, tenantID, stockCountID, domain.StockCountCounted, domain.StockCountApproved, "", userID, now); err != nil {
			return err
		}
		count.Status = domain.StockCountApproved
		count.Touch(userID, now)
		result = count
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// PostVariance values the count's variance at unit cost. A surplus debits inventory and
// credits the variance account; a shortage does the reverse.
func (s *stockCountService) PostVariance(ctx context.Context, tenantID, stockCountID, userID string) (*dto.StockCountPostingResponse, error) {
	resp := &dto.StockCountPostingResponse{}
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		count, err := repos.StockCounts.FindStockCountByID(ctx, tenantID, stockCountID)
		if err != nil {
			return err
		}
		switch count.Status {
		case domain.StockCountApproved:
		case domain.StockCountPosted:
			return fmt.Errorf("%w: stock count %s is already POSTED", apperrors.ErrConflict, count.CountNumber)
		default:
			return fmt.Errorf("%w: stock count %s is %s, it must be APPROVED before posting", apperrors.ErrValidation, count.CountNumber, count.Status)
		}

		variance := domain.TotalVarianceValue(count.Items)
		resp.VarianceValue = variance
		entryID := ""

		if !variance.IsZero() {
			inventory, err := resolvePostingAccount(ctx, repos, tenantID, "inventory", s.codes.Inventory)
			if err != nil {
				return err
			}
			varianceAcc, err := resolvePostingAccount(ctx, repos, tenantID, "inventory variance", s.codes.InventoryVariance)
			if err != nil {
				return err
			}
			var b lineBuilder
			if variance.IsPositive() {
				b.debit(inventory.AccountID, "Stock surplus", variance)
				b.credit(varianceAcc.AccountID, "Stock surplus", variance)
			} else {
				b.debit(varianceAcc.AccountID, "Stock shortage", variance.Neg())
				b.credit(inventory.AccountID, "Stock shortage", variance.Neg())
			}
			entry, err := s.ledger.CreateAndPostInTx(ctx, repos, tenantID, userID, domain.JournalEntry{
				EntryDate:        s.Now(),
				Description:      "Stock count variance " + count.CountNumber,
				Reference:        count.CountNumber,
				SourceModule:     domain.SourceStockCount,
				SourceDocumentID: count.StockCountID,
				Metadata: map[string]domain.Value{
					"items": domain.NumberValue(decimal.NewFromInt(int64(len(count.Items)))),
				},
				Lines: b.lines,
			})
			if err != nil {
				return err
			}
			er := dto.ToJournalEntryResponse(entry)
			resp.Entry = &er
			entryID = entry.EntryID
		}

		now := s.Now()
		if err := repos.StockCounts.UpdateStockCountStatus(ctx, tenantID, stockCountID, domain.StockCountApproved, domain.StockCountPosted, entryID, userID, now); err != nil {
			return err
		}
		count.Status = domain.StockCountPosted
		count.JournalEntryID = entryID
		count.Touch(userID, now)
		resp.StockCount = count
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Stock count variance posted",
		slog.String("stock_count_id", stockCountID),
		slog.String("variance", resp.VarianceValue.StringFixed(2)))
	return resp, nil
}
