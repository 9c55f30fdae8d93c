package calculators_test

import (
	"testing"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/calculators"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, d(want).Equal(got), append([]interface{}{"want %s got %s", want, got.String()}, msgAndArgs...)...)
}

func TestFirstYearAllowance_UsesCappedCostForVehicles(t *testing.T) {
	table := calculators.DefaultAllowanceTable()
	rule, err := table.Lookup(domain.ClassMotorVehicle)
	require.NoError(t, err)

	got := calculators.FirstYearAllowance(rule, d("8000000.00"), 2026)

	// capped cost 5,000,000: initial 20% = 1,000,000; annual 25% of 4,000,000 = 1,000,000
	assertDecimal(t, "5000000.00", got.OpeningWDV)
	assertDecimal(t, "1000000.00", got.Initial)
	assertDecimal(t, "1000000.00", got.Annual)
	assertDecimal(t, "2000000.00", got.Total)
	assertDecimal(t, "3000000.00", got.ClosingWDV)

	uncapped := calculators.FirstYearAllowance(rule, d("4000000.00"), 2026)
	assertDecimal(t, "800000.00", uncapped.Initial)
	assertDecimal(t, "800000.00", uncapped.Annual)
}

func TestFirstYearAllowance_RoundsEachComponent(t *testing.T) {
	rule, err := calculators.DefaultAllowanceTable().Lookup(domain.ClassPlantMachinery)
	require.NoError(t, err)

	got := calculators.FirstYearAllowance(rule, d("1234.57"), 2025)

	// initial = round2(308.6425) = 308.64; annual = round2(925.93 * 0.125) = round2(115.74125)
	assertDecimal(t, "308.64", got.Initial)
	assertDecimal(t, "115.74", got.Annual)
	assertDecimal(t, "810.19", got.ClosingWDV)
}

func TestAllowanceSchedule_ReducingBalanceReachesZero(t *testing.T) {
	rule, err := calculators.DefaultAllowanceTable().Lookup(domain.ClassComputerEquipment)
	require.NoError(t, err)

	schedule := calculators.AllowanceSchedule(rule, d("100.00"), 2020, 500)
	require.NotEmpty(t, schedule)

	last := schedule[len(schedule)-1]
	assert.True(t, last.ClosingWDV.IsZero(), "schedule should end at zero WDV, got %s", last.ClosingWDV)
	assert.Less(t, len(schedule), 500)

	total := decimal.Zero
	for i, y := range schedule {
		assert.Equal(t, 2020+i, y.Year)
		if i > 0 {
			assert.True(t, y.OpeningWDV.Equal(schedule[i-1].ClosingWDV))
			assert.True(t, y.Initial.IsZero())
		}
		total = total.Add(y.Total)
	}
	assertDecimal(t, "100.00", total)
}

func TestAllowanceSchedule_SecondYearOnReducingBalance(t *testing.T) {
	rule, err := calculators.DefaultAllowanceTable().Lookup(domain.ClassFurnitureFixtures)
	require.NoError(t, err)

	schedule := calculators.AllowanceSchedule(rule, d("10000.00"), 2024, 3)
	require.Len(t, schedule, 3)

	assertDecimal(t, "2500.00", schedule[0].Initial)
	assertDecimal(t, "750.00", schedule[0].Annual)
	assertDecimal(t, "6750.00", schedule[0].ClosingWDV)
	assertDecimal(t, "675.00", schedule[1].Annual)
	assertDecimal(t, "6075.00", schedule[1].ClosingWDV)
	assertDecimal(t, "607.50", schedule[2].Annual)
}

func TestAllowanceForYear(t *testing.T) {
	rule, err := calculators.DefaultAllowanceTable().Lookup(domain.ClassOfficeEquipment)
	require.NoError(t, err)

	asset := domain.FixedAsset{
		AssetNumber:           "FA-1",
		AcquisitionDate:       time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		TaxEligibleCost:       d("2000.00"),
		AccumulatedAllowances: decimal.Zero,
		WrittenDownValue:      d("2000.00"),
	}

	first, err := calculators.AllowanceForYear(rule, asset, 2025)
	require.NoError(t, err)
	assertDecimal(t, "650.00", first.Total)

	asset.ApplyAllowance(first.Total, 2025)
	second, err := calculators.AllowanceForYear(rule, asset, 2026)
	require.NoError(t, err)
	assertDecimal(t, "135.00", second.Total)

	_, err = calculators.AllowanceForYear(rule, asset, 2024)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAllowanceForYear_AcquisitionYearMustBeClaimedFirst(t *testing.T) {
	rule, err := calculators.DefaultAllowanceTable().Lookup(domain.ClassOfficeEquipment)
	require.NoError(t, err)

	asset := domain.FixedAsset{
		AssetNumber:           "FA-2",
		AcquisitionDate:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		TaxEligibleCost:       d("2000.00"),
		AccumulatedAllowances: decimal.Zero,
		WrittenDownValue:      d("2000.00"),
	}

	_, err = calculators.AllowanceForYear(rule, asset, 2025)
	assert.ErrorIs(t, err, apperrors.ErrMissingData)

	first, err := calculators.AllowanceForYear(rule, asset, 2024)
	require.NoError(t, err)
	assertDecimal(t, "500.00", first.Initial)
}

func TestAllowanceTable_UnknownClass(t *testing.T) {
	_, err := calculators.DefaultAllowanceTable().Lookup("SPACESHIP")
	assert.ErrorIs(t, err, apperrors.ErrMissingData)
}

func TestComputeBalancingAdjustment(t *testing.T) {
	tests := []struct {
		name          string
		proceeds      string
		wdv           string
		claimed       string
		wantAmount    string
		wantCharge    string
		wantAllowance string
	}{
		{"charge below claimed", "700.00", "500.00", "500.00", "200.00", "200.00", "0"},
		{"charge capped at claimed", "1500.00", "500.00", "500.00", "1000.00", "500.00", "0"},
		{"balancing allowance", "100.00", "500.00", "500.00", "-400.00", "0", "400.00"},
		{"exact wdv", "500.00", "500.00", "500.00", "0", "0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adj := calculators.ComputeBalancingAdjustment(d(tt.proceeds), d(tt.wdv), d(tt.claimed))
			assertDecimal(t, tt.wantAmount, adj.Amount)
			assertDecimal(t, tt.wantCharge, adj.Charge)
			assertDecimal(t, tt.wantAllowance, adj.Allowance)
		})
	}
}

func TestMonthlyBookDepreciation(t *testing.T) {
	base := domain.FixedAsset{
		AssetNumber:          "FA-2",
		TotalCapitalizedCost: d("12000.00"),
		ResidualValue:        d("0"),
		NetBookValue:         d("12000.00"),
	}

	t.Run("straight line", func(t *testing.T) {
		a := base
		a.DepreciationMethod = domain.StraightLine
		a.UsefulLifeMonths = 36
		got, err := calculators.MonthlyBookDepreciation(a)
		require.NoError(t, err)
		assertDecimal(t, "333.33", got)
	})

	t.Run("reducing balance", func(t *testing.T) {
		a := base
		a.DepreciationMethod = domain.ReducingBalance
		a.AnnualDepreciationRate = d("0.25")
		got, err := calculators.MonthlyBookDepreciation(a)
		require.NoError(t, err)
		assertDecimal(t, "250.00", got)
	})

	t.Run("never below residual", func(t *testing.T) {
		a := base
		a.DepreciationMethod = domain.StraightLine
		a.UsefulLifeMonths = 12
		a.ResidualValue = d("100.00")
		a.NetBookValue = d("150.00")
		got, err := calculators.MonthlyBookDepreciation(a)
		require.NoError(t, err)
		assertDecimal(t, "50.00", got)
	})

	t.Run("fully depreciated", func(t *testing.T) {
		a := base
		a.DepreciationMethod = domain.StraightLine
		a.UsefulLifeMonths = 12
		a.NetBookValue = decimal.Zero
		got, err := calculators.MonthlyBookDepreciation(a)
		require.NoError(t, err)
		assert.True(t, got.IsZero())
	})

	t.Run("missing useful life", func(t *testing.T) {
		a := base
		a.DepreciationMethod = domain.StraightLine
		_, err := calculators.MonthlyBookDepreciation(a)
		assert.ErrorIs(t, err, apperrors.ErrMissingData)
	})
}
