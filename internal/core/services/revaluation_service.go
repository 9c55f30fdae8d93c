package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/calculators"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	portsrepo "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/repositories"
	portssvc "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/services"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/dto"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils/accounting"
)

// revaluationService restates foreign-currency balances in the home currency at month end.
type revaluationService struct {
	BaseService
	homeCurrency   string
	maxRateAgeDays int
}

// NewRevaluationService creates the FX revaluation service. A rate effective more than
// maxRateAgeDays before the period end is treated as missing; 0 accepts any age.
func NewRevaluationService(store portsrepo.Store, homeCurrency string, maxRateAgeDays int, opts ...ServiceOption) portssvc.RevaluationSvcFacade {
	return &revaluationService{BaseService: newBaseService(store, opts...), homeCurrency: homeCurrency, maxRateAgeDays: maxRateAgeDays}
}

var _ portssvc.RevaluationSvcFacade = (*revaluationService)(nil)

func (s *revaluationService) CreateCurrencyAccount(ctx context.Context, tenantID, userID string, req dto.CreateCurrencyAccountRequest) (*domain.CurrencyAccount, error) {
	currency := strings.ToUpper(req.CurrencyCode)
	if currency == s.homeCurrency {
		return nil, fmt.Errorf("%w: %s is the home currency", apperrors.ErrValidation, currency)
	}
	if !req.OpeningRate.IsPositive() {
		return nil, fmt.Errorf("%w: opening rate must be positive", apperrors.ErrValidation)
	}
	repos := s.store.Repos()
	if req.GLAccountID != "" {
		if _, err := repos.Accounts.FindAccountByID(ctx, tenantID, req.GLAccountID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: GL account %s does not exist", apperrors.ErrValidation, req.GLAccountID)
			}
			return nil, err
		}
	}
	acc := domain.CurrencyAccount{
		AccountID:    uuid.NewString(),
		TenantID:     tenantID,
		Name:         req.Name,
		CurrencyCode: currency,
		Balance:      accounting.Round2(req.Balance),
		OpeningRate:  req.OpeningRate,
		GLAccountID:  req.GLAccountID,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(userID, s.Now()),
	}
	if err := repos.CurrencyAccounts.SaveCurrencyAccount(ctx, acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

func (s *revaluationService) SaveExchangeRate(ctx context.Context, userID string, req dto.CreateExchangeRateRequest) (*domain.ExchangeRate, error) {
	from, to := strings.ToUpper(req.FromCurrency), strings.ToUpper(req.ToCurrency)
	if from == to {
		return nil, fmt.Errorf("%w: rate must convert between two different currencies", apperrors.ErrValidation)
	}
	if !req.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: rate must be positive", apperrors.ErrValidation)
	}
	rate := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		FromCurrency:   from,
		ToCurrency:     to,
		Rate:           req.Rate,
		EffectiveDate:  domain.DateOf(req.EffectiveDate),
		AuditFields:    domain.NewAuditFields(userID, s.Now()),
	}
	if err := s.store.Repos().ExchangeRates.SaveExchangeRate(ctx, rate); err != nil {
		return nil, err
	}
	return &rate, nil
}

func (s *revaluationService) ListExchangeRates(ctx context.Context, fromCurrency, toCurrency string, limit int) ([]domain.ExchangeRate, error) {
	return s.store.Repos().ExchangeRates.ListExchangeRates(ctx, strings.ToUpper(fromCurrency), strings.ToUpper(toCurrency), limit)
}

func (s *revaluationService) ListRevaluations(ctx context.Context, tenantID string, period domain.Period) ([]domain.RevaluationEntry, error) {
	return s.store.Repos().Revaluations.ListRevaluations(ctx, tenantID, period.String())
}

func (s *revaluationService) PreviewRevaluation(ctx context.Context, tenantID string, period domain.Period) (domain.BatchSummary[domain.RevaluationEntry], error) {
	return s.revalue(ctx, tenantID, "", period, false)
}

func (s *revaluationService) RunRevaluation(ctx context.Context, tenantID, userID string, period domain.Period) (domain.BatchSummary[domain.RevaluationEntry], error) {
	return s.revalue(ctx, tenantID, userID, period, true)
}

// revalue computes one entry per active foreign account. The previous rate chains from
// the latest earlier revaluation, falling back to the account's opening rate. Accounts
// without a rate on or before the period end, or whose latest rate is stale, are skipped.
func (s *revaluationService) revalue(ctx context.Context, tenantID, userID string, period domain.Period, persist bool) (domain.BatchSummary[domain.RevaluationEntry], error) {
	summary := domain.NewBatchSummary[domain.RevaluationEntry]()
	repos := s.store.Repos()

	accounts, err := repos.CurrencyAccounts.ListActiveCurrencyAccounts(ctx, tenantID, s.homeCurrency)
	if err != nil {
		return summary, err
	}

	for _, acc := range accounts {
		rate, err := repos.ExchangeRates.FindRateOnOrBefore(ctx, acc.CurrencyCode, s.homeCurrency, period.End())
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				summary.Skip(acc.AccountID, acc.Name, fmt.Sprintf("no %s/%s rate on or before %s",
					acc.CurrencyCode, s.homeCurrency, period.End().Format("2006-01-02")))
				continue
			}
			return summary, err
		}
		if s.maxRateAgeDays > 0 && rate.EffectiveDate.Before(period.End().AddDate(0, 0, -s.maxRateAgeDays)) {
			summary.Skip(acc.AccountID, acc.Name, fmt.Sprintf("latest %s/%s rate is from %s, more than %d days before %s",
				acc.CurrencyCode, s.homeCurrency, rate.EffectiveDate.Format("2006-01-02"), s.maxRateAgeDays,
				period.End().Format("2006-01-02")))
			continue
		}

		previousRate := acc.OpeningRate
		prior, err := repos.Revaluations.FindLatestBefore(ctx, tenantID, acc.AccountID, period.String())
		switch {
		case err == nil:
			previousRate = prior.CurrentRate
		case !errors.Is(err, apperrors.ErrNotFound):
			return summary, err
		}

		figures := calculators.Revalue(acc.Balance, previousRate, rate.Rate)
		now := s.Now()
		entry := domain.RevaluationEntry{
			RevaluationID:      uuid.NewString(),
			TenantID:           tenantID,
			AccountID:          acc.AccountID,
			Period:             period.String(),
			CurrencyCode:       acc.CurrencyCode,
			ForeignBalance:     acc.Balance,
			PreviousRate:       previousRate,
			CurrentRate:        rate.Rate,
			PreviousValue:      figures.PreviousValue,
			CurrentValue:       figures.CurrentValue,
			UnrealizedGainLoss: figures.GainLoss,
			AuditFields:        domain.NewAuditFields(userID, now),
		}

		if persist {
			stored, err := repos.Revaluations.UpsertRevaluation(ctx, entry)
			if err != nil {
				s.LogWarn(ctx, "Revaluation not stored", slog.String("account_id", acc.AccountID), slog.String("error", err.Error()))
				summary.Skip(acc.AccountID, acc.Name, err.Error())
				continue
			}
			entry = *stored
		}
		summary.Add(entry)
	}

	if persist {
		s.LogInfo(ctx, "Revaluation run finished",
			slog.String("tenant_id", tenantID),
			slog.String("period", period.String()),
			slog.Int("processed", len(summary.Processed)),
			slog.Int("skipped", len(summary.Skipped)))
	}
	return summary, nil
}
