package domain_test

import (
	"testing"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriod(t *testing.T) {
	p, err := domain.ParsePeriod("2024-02")
	require.NoError(t, err)

	assert.Equal(t, "2024-02", p.String())
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), p.End())
	assert.Equal(t, "2024-03", p.Next().String())
	assert.Equal(t, "2024-01", p.Previous().String())
	assert.Equal(t, "2023-12", p.Previous().Previous().String())
	assert.True(t, p.Previous().Before(p))
	assert.False(t, p.Before(p))
	assert.True(t, domain.Period{Year: 2023, Month: time.December}.Before(p))

	_, err = domain.ParsePeriod("2024-13")
	assert.Error(t, err)
	_, err = domain.ParsePeriod("Feb 2024")
	assert.Error(t, err)
}

func TestFixedAsset_DepreciatedThrough(t *testing.T) {
	a := domain.FixedAsset{TotalCapitalizedCost: dec("1200")}
	_, ok := a.DepreciatedThrough()
	assert.False(t, ok)

	a.ApplyBookDepreciation(dec("100"), domain.Period{Year: 2026, Month: time.March})
	p, ok := a.DepreciatedThrough()
	require.True(t, ok)
	assert.Equal(t, "2026-03", p.String())
	assert.True(t, dec("1100").Equal(a.NetBookValue))
}
