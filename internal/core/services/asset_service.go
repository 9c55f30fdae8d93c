package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/calculators"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	portsrepo "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/repositories"
	portssvc "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/services"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/dto"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/platform/config"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils/accounting"
)

// assetService carries fixed assets through acquisition, monthly book depreciation,
// yearly capital allowances and disposal.
type assetService struct {
	BaseService
	ledger     portssvc.LedgerPoster
	allowances calculators.AllowanceTable
	codes      config.PostingAccountCodes
}

// NewAssetService creates the fixed-asset service.
func NewAssetService(store portsrepo.Store, ledger portssvc.LedgerPoster, allowances calculators.AllowanceTable, codes config.PostingAccountCodes, opts ...ServiceOption) portssvc.AssetSvcFacade {
	return &assetService{
		BaseService: newBaseService(store, opts...),
		ledger:      ledger,
		allowances:  allowances,
		codes:       codes,
	}
}

var _ portssvc.AssetSvcFacade = (*assetService)(nil)

func (s *assetService) CreateAsset(ctx context.Context, tenantID, userID string, req dto.CreateAssetRequest) (*domain.FixedAsset, error) {
	rule, err := s.allowances.Lookup(req.AllowanceClass)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	cost := accounting.Round2(req.AcquisitionCost)
	if !cost.IsPositive() {
		return nil, fmt.Errorf("%w: acquisition cost must be positive", apperrors.ErrValidation)
	}
	residual := accounting.Round2(req.ResidualValue)
	if residual.IsNegative() || residual.GreaterThanOrEqual(cost) {
		return nil, fmt.Errorf("%w: residual value must be between zero and the acquisition cost", apperrors.ErrValidation)
	}
	switch req.DepreciationMethod {
	case domain.StraightLine:
		if req.UsefulLifeMonths <= 0 {
			return nil, fmt.Errorf("%w: straight-line depreciation needs a useful life", apperrors.ErrValidation)
		}
	case domain.ReducingBalance:
		if !req.AnnualDepreciationRate.IsPositive() || req.AnnualDepreciationRate.GreaterThan(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("%w: reducing-balance depreciation needs a rate in (0, 1]", apperrors.ErrValidation)
		}
	default:
		return nil, fmt.Errorf("%w: unknown depreciation method %q", apperrors.ErrValidation, req.DepreciationMethod)
	}

	eligible := rule.AllowableCost(cost)
	asset := domain.FixedAsset{
		AssetID:                 uuid.NewString(),
		TenantID:                tenantID,
		AssetNumber:             strings.TrimSpace(req.AssetNumber),
		Name:                    req.Name,
		AllowanceClass:          req.AllowanceClass,
		AcquisitionDate:         domain.DateOf(req.AcquisitionDate),
		AcquisitionCost:         cost,
		TotalCapitalizedCost:    cost,
		DepreciationMethod:      req.DepreciationMethod,
		UsefulLifeMonths:        req.UsefulLifeMonths,
		ResidualValue:           residual,
		AnnualDepreciationRate:  req.AnnualDepreciationRate,
		AccumulatedDepreciation: decimal.Zero,
		NetBookValue:            cost,
		TaxEligibleCost:         eligible,
		AccumulatedAllowances:   decimal.Zero,
		WrittenDownValue:        eligible,
		Status:                  domain.AssetActive,
		AuditFields:             domain.NewAuditFields(userID, s.Now()),
	}
	if err := s.store.Repos().Assets.SaveAsset(ctx, asset); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Fixed asset registered", slog.String("asset_id", asset.AssetID), slog.String("asset_number", asset.AssetNumber))
	return &asset, nil
}

func (s *assetService) GetAsset(ctx context.Context, tenantID, assetID string) (*domain.FixedAsset, error) {
	return s.store.Repos().Assets.FindAssetByID(ctx, tenantID, assetID)
}

func (s *assetService) ListActiveAssets(ctx context.Context, tenantID string) ([]domain.FixedAsset, error) {
	return s.store.Repos().Assets.ListActiveAssets(ctx, tenantID)
}

func (s *assetService) PreviewAllowanceSchedule(ctx context.Context, tenantID, assetID string, years int) ([]calculators.AllowanceYear, error) {
	asset, err := s.store.Repos().Assets.FindAssetByID(ctx, tenantID, assetID)
	if err != nil {
		return nil, err
	}
	rule, err := s.allowances.Lookup(asset.AllowanceClass)
	if err != nil {
		return nil, err
	}
	return calculators.AllowanceSchedule(rule, asset.TaxEligibleCost, asset.AcquisitionDate.Year(), years), nil
}

// DisposeAsset freezes the asset's book and tax position. No journal is posted; the
// disposal record carries the figures.
func (s *assetService) DisposeAsset(ctx context.Context, tenantID, assetID, userID string, req dto.DisposeAssetRequest) (*domain.DisposalRecord, error) {
	if req.Proceeds.IsNegative() {
		return nil, fmt.Errorf("%w: proceeds cannot be negative", apperrors.ErrValidation)
	}
	var record *domain.DisposalRecord
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		asset, err := repos.Assets.FindAssetByID(ctx, tenantID, assetID)
		if err != nil {
			return err
		}
		if asset.Status == domain.AssetDisposed {
			return fmt.Errorf("%w: asset %s is already DISPOSED", apperrors.ErrConflict, asset.AssetNumber)
		}
		disposalDate := domain.DateOf(req.DisposalDate)
		if disposalDate.Before(asset.AcquisitionDate) {
			return fmt.Errorf("%w: disposal date %s is before acquisition date %s", apperrors.ErrValidation,
				disposalDate.Format(time.DateOnly), asset.AcquisitionDate.Format(time.DateOnly))
		}

		n, err := repos.Sequences.Next(ctx, tenantID, domain.DisposalNumberSequence)
		if err != nil {
			return err
		}
		proceeds := accounting.Round2(req.Proceeds)
		adj := calculators.ComputeBalancingAdjustment(proceeds, asset.WrittenDownValue, asset.AccumulatedAllowances)
		now := s.Now()
		rec := domain.DisposalRecord{
			DisposalID:         uuid.NewString(),
			TenantID:           tenantID,
			AssetID:            assetID,
			DisposalNumber:     fmt.Sprintf("%s-%06d", domain.DisposalNumberSequence, n),
			DisposalDate:       disposalDate,
			Method:             req.Method,
			Proceeds:           proceeds,
			NetBookValue:       asset.NetBookValue,
			BookGainLoss:       proceeds.Sub(asset.NetBookValue),
			WrittenDownValue:   asset.WrittenDownValue,
			TaxBalancingAmount: adj.Amount,
			BalancingCharge:    adj.Charge,
			BalancingAllowance: adj.Allowance,
			Notes:              req.Notes,
			AuditFields:        domain.NewAuditFields(userID, now),
		}
		if err := repos.Assets.MarkAssetDisposed(ctx, tenantID, assetID, disposalDate, userID, now); err != nil {
			return err
		}
		if err := repos.Assets.SaveDisposal(ctx, rec); err != nil {
			return err
		}
		record = &rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Fixed asset disposed",
		slog.String("asset_id", assetID),
		slog.String("disposal_number", record.DisposalNumber),
		slog.String("gain_loss", record.BookGainLoss.StringFixed(2)))
	return record, nil
}

func depreciationSourceID(assetID string, p domain.Period) string {
	return assetID + ":" + p.String()
}

// RunDepreciation posts one month of book depreciation per active asset, each in its own
// unit of work. Assets that cannot be depreciated are reported as skipped.
func (s *assetService) RunDepreciation(ctx context.Context, tenantID, userID string, period domain.Period) (domain.BatchSummary[domain.DepreciationPosting], error) {
	summary := domain.NewBatchSummary[domain.DepreciationPosting]()
	repos := s.store.Repos()

	assets, err := repos.Assets.ListActiveAssets(ctx, tenantID)
	if err != nil {
		return summary, err
	}

	expenseAcc, accumAcc, err := s.depreciationAccounts(ctx, repos, tenantID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrMissingData) {
			return summary, err
		}
		for _, a := range assets {
			summary.Skip(a.AssetID, a.Name, err.Error())
		}
		s.logRun(ctx, "Depreciation run finished", tenantID, period.String(), 0, len(summary.Skipped))
		return summary, nil
	}

	for _, a := range assets {
		posting, reason, err := s.depreciateOne(ctx, tenantID, userID, a, period, expenseAcc.AccountID, accumAcc.AccountID)
		switch {
		case err != nil:
			s.LogWarn(ctx, "Depreciation skipped", slog.String("asset_id", a.AssetID), slog.String("error", err.Error()))
			summary.Skip(a.AssetID, a.Name, err.Error())
		case reason != "":
			summary.Skip(a.AssetID, a.Name, reason)
		default:
			summary.Add(*posting)
		}
	}
	s.logRun(ctx, "Depreciation run finished", tenantID, period.String(), len(summary.Processed), len(summary.Skipped))
	return summary, nil
}

func (s *assetService) depreciationAccounts(ctx context.Context, repos portsrepo.Repositories, tenantID string) (expense, accumulated *domain.Account, err error) {
	expense, err = resolvePostingAccount(ctx, repos, tenantID, "depreciation expense", s.codes.DepreciationExpense)
	if err != nil {
		return nil, nil, err
	}
	accumulated, err = resolvePostingAccount(ctx, repos, tenantID, "accumulated depreciation", s.codes.AccumulatedDepreciation)
	if err != nil {
		return nil, nil, err
	}
	return expense, accumulated, nil
}

// depreciateOne returns a skip reason instead of a posting when there is nothing to do.
func (s *assetService) depreciateOne(ctx context.Context, tenantID, userID string, asset domain.FixedAsset, period domain.Period, expenseID, accumID string) (*domain.DepreciationPosting, string, error) {
	if period.End().Before(asset.AcquisitionDate) {
		return nil, "acquired after " + period.String(), nil
	}
	if last, ok := asset.DepreciatedThrough(); ok && !last.Before(period) {
		return nil, "already depreciated through " + last.String(), nil
	}

	var posting *domain.DepreciationPosting
	var skip string
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		current, err := repos.Assets.FindAssetByID(ctx, tenantID, asset.AssetID)
		if err != nil {
			return err
		}
		amount, err := calculators.MonthlyBookDepreciation(*current)
		if err != nil {
			return err
		}
		if !amount.IsPositive() {
			skip = "fully depreciated"
			return nil
		}

		var b lineBuilder
		b.debit(expenseID, "Depreciation "+current.AssetNumber, amount)
		b.credit(accumID, "Depreciation "+current.AssetNumber, amount)
		entry, err := s.ledger.CreateAndPostInTx(ctx, repos, tenantID, userID, domain.JournalEntry{
			EntryDate:        period.End(),
			Description:      fmt.Sprintf("Depreciation %s for %s", current.AssetNumber, period),
			Reference:        current.AssetNumber,
			SourceModule:     domain.SourceDepreciation,
			SourceDocumentID: depreciationSourceID(current.AssetID, period),
			Metadata: map[string]domain.Value{
				"period": domain.StringValue(period.String()),
				"method": domain.StringValue(string(current.DepreciationMethod)),
			},
			Lines: b.lines,
		})
		if err != nil {
			return err
		}

		previous := current.LastDepreciationPeriod
		current.ApplyBookDepreciation(amount, period)
		current.Touch(userID, s.Now())
		if err := repos.Assets.UpdateBookDepreciation(ctx, *current, previous); err != nil {
			return err
		}
		posting = &domain.DepreciationPosting{
			AssetID:                 current.AssetID,
			AssetNumber:             current.AssetNumber,
			Period:                  period.String(),
			Amount:                  amount,
			AccumulatedDepreciation: current.AccumulatedDepreciation,
			NetBookValue:            current.NetBookValue,
			JournalEntryID:          entry.EntryID,
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return posting, skip, nil
}

// ClaimAllowances claims the year's capital allowance on every active asset.
func (s *assetService) ClaimAllowances(ctx context.Context, tenantID, userID string, year int) (domain.BatchSummary[domain.AllowanceClaim], error) {
	summary := domain.NewBatchSummary[domain.AllowanceClaim]()
	assets, err := s.store.Repos().Assets.ListActiveAssets(ctx, tenantID)
	if err != nil {
		return summary, err
	}

	for _, a := range assets {
		claim, reason, err := s.claimOne(ctx, tenantID, userID, a, year)
		switch {
		case err != nil:
			s.LogWarn(ctx, "Allowance claim skipped", slog.String("asset_id", a.AssetID), slog.String("error", err.Error()))
			summary.Skip(a.AssetID, a.Name, err.Error())
		case reason != "":
			summary.Skip(a.AssetID, a.Name, reason)
		default:
			summary.Add(*claim)
		}
	}
	s.logRun(ctx, "Allowance claim finished", tenantID, fmt.Sprint(year), len(summary.Processed), len(summary.Skipped))
	return summary, nil
}

func (s *assetService) claimOne(ctx context.Context, tenantID, userID string, asset domain.FixedAsset, year int) (*domain.AllowanceClaim, string, error) {
	if asset.LastAllowanceYear >= year {
		return nil, fmt.Sprintf("allowances already claimed through %d", asset.LastAllowanceYear), nil
	}
	if asset.AcquisitionDate.Year() > year {
		return nil, fmt.Sprintf("acquired after %d", year), nil
	}
	if acqYear := asset.AcquisitionDate.Year(); asset.LastAllowanceYear == 0 && asset.AccumulatedAllowances.IsZero() && year > acqYear {
		return nil, fmt.Sprintf("acquisition-year claim for %d outstanding", acqYear), nil
	}
	rule, err := s.allowances.Lookup(asset.AllowanceClass)
	if err != nil {
		return nil, "", err
	}
	if !asset.WrittenDownValue.IsPositive() {
		return nil, "written down value is zero", nil
	}

	var claim *domain.AllowanceClaim
	var skip string
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		current, err := repos.Assets.FindAssetByID(ctx, tenantID, asset.AssetID)
		if err != nil {
			return err
		}
		ay, err := calculators.AllowanceForYear(rule, *current, year)
		if err != nil {
			return err
		}
		if !ay.Total.IsPositive() {
			skip = "no allowance due"
			return nil
		}
		previous := current.LastAllowanceYear
		current.ApplyAllowance(ay.Total, year)
		current.Touch(userID, s.Now())
		if err := repos.Assets.UpdateAllowances(ctx, *current, previous); err != nil {
			return err
		}
		claim = &domain.AllowanceClaim{
			AssetID:          current.AssetID,
			AssetNumber:      current.AssetNumber,
			Year:             year,
			Initial:          ay.Initial,
			Annual:           ay.Annual,
			Total:            ay.Total,
			WrittenDownValue: current.WrittenDownValue,
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return claim, skip, nil
}

func (s *assetService) logRun(ctx context.Context, msg, tenantID, period string, processed, skipped int) {
	s.LogInfo(ctx, msg,
		slog.String("tenant_id", tenantID),
		slog.String("period", period),
		slog.Int("processed", processed),
		slog.Int("skipped", skipped))
}
