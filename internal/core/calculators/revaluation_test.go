package calculators_test

import (
	"testing"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/calculators"
)

func TestRevalue(t *testing.T) {
	got := calculators.Revalue(d("1000.00"), d("155.25"), d("157.1234"))

	assertDecimal(t, "155250.00", got.PreviousValue)
	assertDecimal(t, "157123.40", got.CurrentValue)
	assertDecimal(t, "1873.40", got.GainLoss)
	assertDecimal(t, got.CurrentValue.Sub(got.PreviousValue).String(), got.GainLoss)

	loss := calculators.Revalue(d("250.50"), d("160"), d("158.5"))
	assertDecimal(t, "-375.75", loss.GainLoss)
}
