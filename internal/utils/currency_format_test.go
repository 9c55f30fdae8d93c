package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1873.40", FormatAmount(decimal.RequireFromString("1873.4")))
	assert.Equal(t, "-375.75", FormatAmount(decimal.RequireFromString("-375.75")))
	assert.Equal(t, "0.00", FormatAmount(decimal.Zero))
}

func TestFormatWithPrecision(t *testing.T) {
	assert.Equal(t, "157.1235", FormatWithPrecision(decimal.RequireFromString("157.12345"), 4))
	assert.Equal(t, "12", FormatWithPrecision(decimal.RequireFromString("12.3456"), 0))
}
