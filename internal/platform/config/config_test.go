package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, "JMD", cfg.HomeCurrency)
	assert.Equal(t, "1000000", cfg.GCTCapitalGoodsThreshold.String())
	assert.Equal(t, "15", cfg.GCTStandardRatePercent.String())
	assert.Equal(t, 31, cfg.RevaluationMaxRateAgeDays)
	assert.Equal(t, 5, cfg.GratuityResignationMinYears)
	assert.Equal(t, 10*time.Minute, cfg.JobTimeout)
	assert.Equal(t, "1150", cfg.Posting.GCTReceivable)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.JobTenants)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("STORE_DRIVER", "SQLite3")
	v.Set("JOB_TENANTS", " acme, globex ,,")
	v.Set("HOME_CURRENCY", "usd")
	v.Set("WORKER_CONCURRENCY", 0)

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, []string{"acme", "globex"}, cfg.JobTenants)
	assert.Equal(t, "USD", cfg.HomeCurrency)
	assert.Equal(t, 1, cfg.WorkerConcurrency)
}

func TestFromViper_Invalid(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("STORE_DRIVER", "oracle")
	_, err := fromViper(v)
	assert.Error(t, err)

	v.Set("STORE_DRIVER", DriverMySQL)
	v.Set("GCT_CAPITAL_GOODS_THRESHOLD", "lots")
	_, err = fromViper(v)
	assert.Error(t, err)
}
