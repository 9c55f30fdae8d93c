package calculators

import (
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// RevaluationFigures restates one foreign balance at two rates.
type RevaluationFigures struct {
	PreviousValue decimal.Decimal `json:"previousValue"`
	CurrentValue  decimal.Decimal `json:"currentValue"`
	GainLoss      decimal.Decimal `json:"gainLoss"`
}

// Revalue converts balance at both rates (rounded to the cent) and returns the unrealized
// gain or loss between them.
func Revalue(balance, previousRate, currentRate decimal.Decimal) RevaluationFigures {
	prev := accounting.Round2(accounting.ApplyRate(balance, previousRate))
	curr := accounting.Round2(accounting.ApplyRate(balance, currentRate))
	return RevaluationFigures{PreviousValue: prev, CurrentValue: curr, GainLoss: curr.Sub(prev)}
}
