package validation_test

import (
	"testing"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils/validation"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type amounts struct {
	Positive    decimal.Decimal `validate:"dgt=0"`
	NonNegative decimal.Decimal `validate:"dgte=0,cents"`
}

func TestRegisterDecimal(t *testing.T) {
	v := validator.New()
	require.NoError(t, validation.RegisterDecimal(v))

	tests := []struct {
		name    string
		in      amounts
		wantErr string
	}{
		{"valid", amounts{decimal.RequireFromString("0.01"), decimal.RequireFromString("12.50")}, ""},
		{"zero not greater", amounts{decimal.Zero, decimal.Zero}, "dgt"},
		{"negative", amounts{decimal.NewFromInt(1), decimal.RequireFromString("-1")}, "dgte"},
		{"sub-cent", amounts{decimal.NewFromInt(1), decimal.RequireFromString("1.005")}, "cents"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.wantErr, verrs[0].Tag())
		})
	}
}

func TestRegister_Idempotent(t *testing.T) {
	require.NoError(t, validation.Register())
	require.NoError(t, validation.Register())
}
