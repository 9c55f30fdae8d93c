package accounting

import (
	"fmt"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ValidateJournalLine checks a single line: an account, exactly one positive side and
// whole-cent amounts.
func ValidateJournalLine(l domain.JournalLine) error {
	if l.AccountID == "" {
		return fmt.Errorf("%w: line %d has no account", apperrors.ErrValidation, l.LineNumber)
	}
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, l.LineNumber)
	}
	// Exactly one side positive: a line with both or neither is rejected.
	if l.Debit.IsPositive() == l.Credit.IsPositive() {
		return fmt.Errorf("%w: line %d must have exactly one of debit or credit", apperrors.ErrValidation, l.LineNumber)
	}
	if HasSubCentPrecision(l.Debit) || HasSubCentPrecision(l.Credit) {
		return fmt.Errorf("%w: line %d amount has sub-cent precision", apperrors.ErrValidation, l.LineNumber)
	}
	return nil
}

// ValidateJournalBalance checks that lines form a postable entry and returns its totals.
func ValidateJournalBalance(lines []domain.JournalLine) (debits, credits decimal.Decimal, err error) {
	if len(lines) < 2 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)
	}
	for _, l := range lines {
		if err := ValidateJournalLine(l); err != nil {
			return decimal.Zero, decimal.Zero, err
		}
	}
	debits, credits = domain.Totals(lines)
	if !WithinTolerance(debits, credits) {
		return debits, credits, fmt.Errorf("%w: entry does not balance: debits %s, credits %s",
			apperrors.ErrValidation, debits.StringFixed(2), credits.StringFixed(2))
	}
	return debits, credits, nil
}

// RoundLines rounds every line amount to the cent in place.
func RoundLines(lines []domain.JournalLine) {
	for i := range lines {
		lines[i].Debit = Round2(lines[i].Debit)
		lines[i].Credit = Round2(lines[i].Credit)
	}
}
