package accounting_test

import (
	"testing"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dr(n int, account, amount string) domain.JournalLine {
	return domain.JournalLine{LineNumber: n, AccountID: account, Debit: decimal.RequireFromString(amount), Credit: decimal.Zero}
}

func cr(n int, account, amount string) domain.JournalLine {
	return domain.JournalLine{LineNumber: n, AccountID: account, Debit: decimal.Zero, Credit: decimal.RequireFromString(amount)}
}

func TestValidateJournalBalance(t *testing.T) {
	debits, credits, err := accounting.ValidateJournalBalance([]domain.JournalLine{
		dr(1, "exp", "1000.00"),
		dr(2, "gct", "150.00"),
		cr(3, "bank", "1150.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "1150.00", debits.StringFixed(2))
	assert.True(t, debits.Equal(credits))
}

func TestValidateJournalBalance_Rejections(t *testing.T) {
	both := dr(2, "bank", "10.00")
	both.Credit = decimal.RequireFromString("10.00")

	tests := []struct {
		name  string
		lines []domain.JournalLine
	}{
		{"single line", []domain.JournalLine{dr(1, "a", "10.00")}},
		{"unbalanced by a cent", []domain.JournalLine{dr(1, "a", "10.00"), cr(2, "b", "9.99")}},
		{"both sides on one line", []domain.JournalLine{dr(1, "a", "10.00"), both, cr(3, "b", "10.00")}},
		{"zero line", []domain.JournalLine{dr(1, "a", "10.00"), cr(2, "b", "10.00"), dr(3, "c", "0")}},
		{"negative amount", []domain.JournalLine{dr(1, "a", "-10.00"), cr(2, "b", "-10.00")}},
		{"sub-cent amount", []domain.JournalLine{dr(1, "a", "10.005"), cr(2, "b", "10.005")}},
		{"missing account", []domain.JournalLine{dr(1, "", "10.00"), cr(2, "b", "10.00")}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := accounting.ValidateJournalBalance(tc.lines)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestRoundLines(t *testing.T) {
	lines := []domain.JournalLine{dr(1, "a", "10.005"), cr(2, "b", "10.004")}
	accounting.RoundLines(lines)
	assert.Equal(t, "10.01", lines[0].Debit.String())
	assert.Equal(t, "10", lines[1].Credit.String())
}

func TestWithinTolerance(t *testing.T) {
	a := decimal.RequireFromString("100.00")
	assert.True(t, accounting.WithinTolerance(a, decimal.RequireFromString("100.009")))
	assert.False(t, accounting.WithinTolerance(a, decimal.RequireFromString("100.01")))
}

func TestMoneyPrimitives(t *testing.T) {
	d := decimal.RequireFromString

	assert.Equal(t, "0.15", accounting.Percent(decimal.NewFromInt(1), d("15")).String())
	assert.Equal(t, "412.5", accounting.Percent(d("2750"), d("15")).String())
	assert.Equal(t, "412.5", accounting.ApplyRate(d("2750"), d("0.15")).String())
	assert.Equal(t, "0.3", accounting.Sum(d("0.1"), d("0.2")).String())
	assert.Equal(t, "-2.68", accounting.Round2(d("-2.675")).String())
	assert.True(t, accounting.HasSubCentPrecision(d("1.005")))
	assert.Equal(t, "1", accounting.MinDecimal(d("1"), d("2")).String())
}
