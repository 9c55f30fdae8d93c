package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/calculators"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	portsrepo "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/repositories"
	portssvc "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/services"
)

type gctService struct {
	BaseService
	rules calculators.GCTRules
}

// NewGCTService creates the consumption-tax return service.
func NewGCTService(store portsrepo.Store, rules calculators.GCTRules, opts ...ServiceOption) portssvc.GCTSvc {
	return &gctService{BaseService: newBaseService(store, opts...), rules: rules}
}

var _ portssvc.GCTSvc = (*gctService)(nil)

// ComputeReturn reads posted sales lines and posted claimable purchases dated within
// [from, to] and aggregates them. Nothing is persisted.
func (s *gctService) ComputeReturn(ctx context.Context, tenantID string, from, to time.Time) (*domain.GCTReturn, error) {
	from, to = domain.DateOf(from), domain.DateOf(to)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: period end %s is before start %s", apperrors.ErrValidation,
			to.Format(time.DateOnly), from.Format(time.DateOnly))
	}
	repos := s.store.Repos()
	sales, err := repos.Invoices.ListPostedSalesLines(ctx, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales lines: %w", err)
	}
	purchases, err := repos.Expenses.ListTaxablePurchases(ctx, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load purchases: %w", err)
	}

	ret := calculators.ComputeGCTReturn(s.rules, tenantID, from, to, sales, purchases)
	s.LogInfo(ctx, "GCT return computed",
		slog.String("tenant_id", tenantID),
		slog.String("net", ret.NetAmount.StringFixed(2)),
		slog.String("position", string(ret.Position)))
	return &ret, nil
}
