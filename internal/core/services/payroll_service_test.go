package services_test

import (
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/dto"
)

func gratuityRequest(reason domain.TerminationReason, hired time.Time) dto.GratuityRequest {
	return dto.GratuityRequest{
		EmployeeID:      "EMP-7",
		BaseSalary:      dec("520000"),
		PayFrequency:    domain.PayAnnually,
		HireDate:        hired,
		TerminationDate: date(2024, time.March, 1),
		Reason:          reason,
	}
}

func (s *LedgerSuite) TestProcessGratuity_PostsAndRecordsPayment() {
	resp, err := s.svc.Payroll.ProcessGratuity(s.ctx, testTenant, testUser, gratuityRequest(domain.ReasonRedundancy, date(2015, time.March, 1)))
	s.Require().NoError(err)

	s.True(resp.Result.Eligible)
	s.Equal(9, resp.Result.CompletedYears)
	s.Equal(5, resp.Result.CreditedYears)
	s.Equal("100000.00", resp.Result.Amount.StringFixed(2))

	s.Require().NotNil(resp.Payment)
	s.True(resp.Payment.TaxExempt)
	s.True(resp.Payment.IncomeTax.IsZero())
	s.Equal(resp.Payment.GrossAmount.String(), resp.Payment.NetAmount.String())
	s.NotEmpty(resp.Payment.JournalEntryID)

	s.Equal("100000.00", s.balance("6300"))
	s.Equal("100000.00", s.balance("2200"))

	payments, err := s.svc.Payroll.ListSpecialPayments(s.ctx, testTenant, "EMP-7")
	s.Require().NoError(err)
	s.Len(payments, 1)
}

func (s *LedgerSuite) TestProcessGratuity_IneligibleRecordsNothing() {
	resp, err := s.svc.Payroll.ProcessGratuity(s.ctx, testTenant, testUser, gratuityRequest(domain.ReasonResignation, date(2021, time.March, 1)))
	s.Require().NoError(err)

	s.False(resp.Result.Eligible)
	s.Contains(resp.Result.Reason, "resignation")
	s.Nil(resp.Payment)
	s.Equal("0.00", s.balance("6300"))

	payments, err := s.svc.Payroll.ListSpecialPayments(s.ctx, testTenant, "")
	s.Require().NoError(err)
	s.Empty(payments)
}

func (s *LedgerSuite) TestCalculateGratuity_DoesNotPersist() {
	result, err := s.svc.Payroll.CalculateGratuity(s.ctx, gratuityRequest(domain.ReasonRetirement, date(2021, time.March, 1)))
	s.Require().NoError(err)
	s.True(result.Eligible)
	s.Equal(3, result.CreditedYears)
	s.Equal("60000.00", result.Amount.StringFixed(2))
	s.Equal("0.00", s.balance("6300"))
}

func (s *LedgerSuite) TestProcessGratuity_RetryIsRefused() {
	req := gratuityRequest(domain.ReasonRedundancy, date(2015, time.March, 1))
	_, err := s.svc.Payroll.ProcessGratuity(s.ctx, testTenant, testUser, req)
	s.Require().NoError(err)

	_, err = s.svc.Payroll.ProcessGratuity(s.ctx, testTenant, testUser, req)
	s.ErrorIs(err, apperrors.ErrConflict)

	s.Equal("100000.00", s.balance("6300"))
	s.Equal("100000.00", s.balance("2200"))

	payments, err := s.svc.Payroll.ListSpecialPayments(s.ctx, testTenant, "EMP-7")
	s.Require().NoError(err)
	s.Len(payments, 1)
}
