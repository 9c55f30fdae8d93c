package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	portsrepo "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/repositories"
	portssvc "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/services"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/dto"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(store portsrepo.Store, opts ...ServiceOption) portssvc.ReportingService {
	return &reportingService{BaseService: newBaseService(store, opts...)}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// GetTrialBalance places each account's net posted activity in its debit or credit column.
func (s *reportingService) GetTrialBalance(ctx context.Context, tenantID string, asOf time.Time) (*dto.TrialBalanceResponse, error) {
	repos := s.store.Repos()
	day := domain.DateOf(asOf)

	activity, err := repos.Journals.ListPostedActivity(ctx, tenantID, &day)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data",
			slog.String("tenant_id", tenantID),
			slog.String("asOf", day.Format(time.DateOnly)))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}
	ids := make([]string, len(activity))
	for i, a := range activity {
		ids[i] = a.AccountID
	}
	accounts, err := repos.Accounts.FindAccountsByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}

	resp := &dto.TrialBalanceResponse{AsOf: day.Format(time.DateOnly), Rows: make([]domain.TrialBalanceRow, 0, len(activity))}
	resp.Totals.Debit, resp.Totals.Credit = decimal.Zero, decimal.Zero
	for _, a := range activity {
		net := a.TotalDebits.Sub(a.TotalCredits)
		if net.IsZero() {
			continue
		}
		acc := accounts[a.AccountID]
		row := domain.TrialBalanceRow{
			AccountID:   a.AccountID,
			Code:        acc.Code,
			AccountName: acc.Name,
			AccountType: a.AccountType,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		if net.IsPositive() {
			row.Debit = net
		} else {
			row.Credit = net.Neg()
		}
		resp.Totals.Debit = resp.Totals.Debit.Add(row.Debit)
		resp.Totals.Credit = resp.Totals.Credit.Add(row.Credit)
		resp.Rows = append(resp.Rows, row)
	}
	sort.Slice(resp.Rows, func(i, j int) bool { return resp.Rows[i].Code < resp.Rows[j].Code })

	s.LogInfo(ctx, "Trial balance report generated successfully",
		slog.String("tenant_id", tenantID),
		slog.String("asOf", resp.AsOf),
		slog.Int("row_count", len(resp.Rows)))
	return resp, nil
}

// ReconcileBalances recomputes every balance from posted lines and reports drift.
func (s *reportingService) ReconcileBalances(ctx context.Context, tenantID string) (*dto.ReconciliationResponse, error) {
	repos := s.store.Repos()
	accounts, err := repos.Accounts.ListAccounts(ctx, tenantID, 0, 0)
	if err != nil {
		return nil, err
	}
	activity, err := repos.Journals.ListPostedActivity(ctx, tenantID, nil)
	if err != nil {
		return nil, err
	}
	posted := make(map[string]decimal.Decimal, len(activity))
	for _, a := range activity {
		delta, err := domain.SignedDelta(a.AccountType, a.TotalDebits, a.TotalCredits)
		if err != nil {
			return nil, err
		}
		posted[a.AccountID] = delta
	}

	resp := &dto.ReconciliationResponse{AccountsChecked: len(accounts), Discrepancies: []domain.BalanceDiscrepancy{}}
	for _, acc := range accounts {
		expected := posted[acc.AccountID]
		if acc.Balance.Equal(expected) {
			continue
		}
		resp.Discrepancies = append(resp.Discrepancies, domain.BalanceDiscrepancy{
			AccountID:     acc.AccountID,
			Code:          acc.Code,
			StoredBalance: acc.Balance,
			PostedBalance: expected,
			Difference:    acc.Balance.Sub(expected),
		})
	}
	if len(resp.Discrepancies) > 0 {
		s.LogWarn(ctx, "Account balances drifted from posted lines",
			slog.String("tenant_id", tenantID), slog.Int("discrepancies", len(resp.Discrepancies)))
	}
	return resp, nil
}
