package calculators

import (
	"fmt"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// GratuityRules holds the statutory parameters of the termination gratuity.
type GratuityRules struct {
	WeeksPerYear        int
	MaxCreditedYears    int
	MinCompletedYears   int
	ResignationMinYears int
}

// DefaultGratuityRules: two weeks' pay per completed year, at most five years credited.
func DefaultGratuityRules() GratuityRules {
	return GratuityRules{WeeksPerYear: 2, MaxCreditedYears: 5, MinCompletedYears: 1, ResignationMinYears: 5}
}

// GratuityInput is what the formula needs about the employee and the termination.
type GratuityInput struct {
	BaseSalary      decimal.Decimal
	PayFrequency    domain.PayFrequency
	HireDate        time.Time
	TerminationDate time.Time
	Reason          domain.TerminationReason
}

var weeksInYear = decimal.NewFromInt(52)

// CompletedYears counts full anniversaries of hire on or before asOf.
func CompletedYears(hire, asOf time.Time) int {
	years := asOf.Year() - hire.Year()
	if asOf.Month() < hire.Month() || (asOf.Month() == hire.Month() && asOf.Day() < hire.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// WeeklyPay converts a salary paid at frequency into an unrounded weekly amount.
func WeeklyPay(salary decimal.Decimal, frequency domain.PayFrequency) (decimal.Decimal, error) {
	periods, ok := frequency.PeriodsPerYear()
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: unknown pay frequency %q", apperrors.ErrValidation, frequency)
	}
	return salary.Mul(decimal.NewFromInt(periods)).Div(weeksInYear), nil
}

// ComputeGratuity applies eligibility rules and the capped formula.
func ComputeGratuity(r GratuityRules, in GratuityInput) (domain.GratuityResult, error) {
	if !in.BaseSalary.IsPositive() {
		return domain.GratuityResult{}, fmt.Errorf("%w: base salary must be positive", apperrors.ErrValidation)
	}
	if in.TerminationDate.Before(in.HireDate) {
		return domain.GratuityResult{}, fmt.Errorf("%w: termination date %s is before hire date %s",
			apperrors.ErrValidation, in.TerminationDate.Format(time.DateOnly), in.HireDate.Format(time.DateOnly))
	}
	weekly, err := WeeklyPay(in.BaseSalary, in.PayFrequency)
	if err != nil {
		return domain.GratuityResult{}, err
	}

	completed := CompletedYears(in.HireDate, in.TerminationDate)
	res := domain.GratuityResult{
		CompletedYears: completed,
		WeeklyPay:      accounting.Round2(weekly),
		WeeksPerYear:   r.WeeksPerYear,
		Amount:         decimal.Zero,
	}

	switch {
	case completed < r.MinCompletedYears:
		res.Reason = fmt.Sprintf("fewer than %d completed year(s) of service", r.MinCompletedYears)
		return res, nil
	case in.Reason == domain.ReasonDismissal:
		res.Reason = "dismissal for cause does not attract gratuity"
		return res, nil
	case in.Reason == domain.ReasonResignation && completed < r.ResignationMinYears:
		res.Reason = fmt.Sprintf("resignation with fewer than %d completed years of service", r.ResignationMinYears)
		return res, nil
	}

	credited := completed
	if credited > r.MaxCreditedYears {
		credited = r.MaxCreditedYears
	}
	res.Eligible = true
	res.TaxExempt = true
	res.CreditedYears = credited
	res.Amount = accounting.Round2(weekly.Mul(decimal.NewFromInt(int64(r.WeeksPerYear * credited))))
	return res, nil
}
