package services_test

import (
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/dto"
)

func (s *LedgerSuite) saveRate(from string, rate string, effective time.Time) {
	_, err := s.svc.Revaluation.SaveExchangeRate(s.ctx, testUser, dto.CreateExchangeRateRequest{
		FromCurrency:  from,
		ToCurrency:    "JMD",
		Rate:          dec(rate),
		EffectiveDate: effective,
	})
	s.Require().NoError(err)
}

func (s *LedgerSuite) TestRevaluation_ChainsPreviousRate() {
	usd, err := s.svc.Revaluation.CreateCurrencyAccount(s.ctx, testTenant, testUser, dto.CreateCurrencyAccountRequest{
		Name:         "USD operating",
		CurrencyCode: "USD",
		Balance:      dec("1000"),
		OpeningRate:  dec("150"),
	})
	s.Require().NoError(err)
	_, err = s.svc.Revaluation.CreateCurrencyAccount(s.ctx, testTenant, testUser, dto.CreateCurrencyAccountRequest{
		Name:         "EUR reserve",
		CurrencyCode: "EUR",
		Balance:      dec("500"),
		OpeningRate:  dec("165"),
	})
	s.Require().NoError(err)

	s.saveRate("USD", "155", date(2024, time.January, 31))
	s.saveRate("USD", "157", date(2024, time.February, 29))

	jan := domain.Period{Year: 2024, Month: time.January}
	preview, err := s.svc.Revaluation.PreviewRevaluation(s.ctx, testTenant, jan)
	s.Require().NoError(err)
	s.Require().Len(preview.Processed, 1)
	stored, err := s.svc.Revaluation.ListRevaluations(s.ctx, testTenant, jan)
	s.Require().NoError(err)
	s.Empty(stored)

	run, err := s.svc.Revaluation.RunRevaluation(s.ctx, testTenant, testUser, jan)
	s.Require().NoError(err)
	s.Require().Len(run.Processed, 1)
	s.Require().Len(run.Skipped, 1)
	s.Contains(run.Skipped[0].Reason, "EUR/JMD")

	entry := run.Processed[0]
	s.Equal(usd.AccountID, entry.AccountID)
	s.Equal("150000.00", entry.PreviousValue.StringFixed(2))
	s.Equal("155000.00", entry.CurrentValue.StringFixed(2))
	s.Equal("5000.00", entry.UnrealizedGainLoss.StringFixed(2))

	feb, err := s.svc.Revaluation.RunRevaluation(s.ctx, testTenant, testUser, domain.Period{Year: 2024, Month: time.February})
	s.Require().NoError(err)
	s.Require().Len(feb.Processed, 1)
	s.True(dec("155").Equal(feb.Processed[0].PreviousRate))
	s.Equal("2000.00", feb.Processed[0].UnrealizedGainLoss.StringFixed(2))

	// Re-running a period replaces its entry.
	_, err = s.svc.Revaluation.RunRevaluation(s.ctx, testTenant, testUser, jan)
	s.Require().NoError(err)
	stored, err = s.svc.Revaluation.ListRevaluations(s.ctx, testTenant, jan)
	s.Require().NoError(err)
	s.Len(stored, 1)
}

func (s *LedgerSuite) TestRevaluation_RateOnOrBeforePeriodEnd() {
	_, err := s.svc.Revaluation.CreateCurrencyAccount(s.ctx, testTenant, testUser, dto.CreateCurrencyAccountRequest{
		Name:         "USD operating",
		CurrencyCode: "USD",
		Balance:      dec("100"),
		OpeningRate:  dec("150"),
	})
	s.Require().NoError(err)
	// Only a rate dated after the period end exists.
	s.saveRate("USD", "160", date(2024, time.February, 1))

	run, err := s.svc.Revaluation.RunRevaluation(s.ctx, testTenant, testUser, domain.Period{Year: 2024, Month: time.January})
	s.Require().NoError(err)
	s.Empty(run.Processed)
	s.Len(run.Skipped, 1)
}

func (s *LedgerSuite) TestRevaluation_StaleRateSkipped() {
	_, err := s.svc.Revaluation.CreateCurrencyAccount(s.ctx, testTenant, testUser, dto.CreateCurrencyAccountRequest{
		Name:         "USD operating",
		CurrencyCode: "USD",
		Balance:      dec("100"),
		OpeningRate:  dec("150"),
	})
	s.Require().NoError(err)
	s.saveRate("USD", "152", date(2023, time.October, 31))

	run, err := s.svc.Revaluation.RunRevaluation(s.ctx, testTenant, testUser, domain.Period{Year: 2024, Month: time.January})
	s.Require().NoError(err)
	s.Empty(run.Processed)
	s.Require().Len(run.Skipped, 1)
	s.Contains(run.Skipped[0].Reason, "2023-10-31")

	// A rate inside the window is used.
	s.saveRate("USD", "155", date(2024, time.January, 5))
	run, err = s.svc.Revaluation.RunRevaluation(s.ctx, testTenant, testUser, domain.Period{Year: 2024, Month: time.January})
	s.Require().NoError(err)
	s.Require().Len(run.Processed, 1)
	s.True(dec("155").Equal(run.Processed[0].CurrentRate))
}

func (s *LedgerSuite) TestCurrencyAccount_HomeCurrencyRejected() {
	_, err := s.svc.Revaluation.CreateCurrencyAccount(s.ctx, testTenant, testUser, dto.CreateCurrencyAccountRequest{
		Name:         "Local",
		CurrencyCode: "JMD",
		OpeningRate:  dec("1"),
	})
	s.ErrorIs(err, apperrors.ErrValidation)
}
