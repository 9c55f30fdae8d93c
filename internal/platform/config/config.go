package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite3"
)

// PostingAccountCodes are the chart-of-accounts codes adapters post to. They are resolved
// per tenant at posting time.
type PostingAccountCodes struct {
	Cash                    string
	AccountsPayable         string
	AccountsReceivable      string
	GCTReceivable           string
	GCTPayable              string
	SalesRevenue            string
	Inventory               string
	InventoryVariance       string
	DepreciationExpense     string
	AccumulatedDepreciation string
	GratuityExpense         string
	PayrollPayable          string
}

// Config holds application configuration.
type Config struct {
	StoreDriver  string
	DatabaseURL  string
	Port         string
	IsProduction bool
	HomeCurrency string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	WorkerConcurrency int
	JobTenants        []string
	JobUserID         string
	JobTimeout        time.Duration

	RateLimit          string
	CORSAllowedOrigins []string

	GCTStandardRatePercent      decimal.Decimal
	GCTCapitalGoodsThreshold    decimal.Decimal
	GratuityResignationMinYears int
	RevaluationMaxRateAgeDays   int

	Posting PostingAccountCodes
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("STORE_DRIVER", DriverPostgres)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("HOME_CURRENCY", "JMD")

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("WORKER_CONCURRENCY", 5)
	v.SetDefault("JOB_TENANTS", "")
	v.SetDefault("JOB_USER_ID", "system")
	v.SetDefault("JOB_TIMEOUT", "10m")

	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	v.SetDefault("GCT_STANDARD_RATE_PERCENT", "15")
	v.SetDefault("GCT_CAPITAL_GOODS_THRESHOLD", "1000000.00")
	v.SetDefault("GRATUITY_RESIGNATION_MIN_YEARS", 5)
	v.SetDefault("REVALUATION_MAX_RATE_AGE_DAYS", 31)

	v.SetDefault("POSTING_CASH_CODE", "1000")
	v.SetDefault("POSTING_RECEIVABLE_CODE", "1100")
	v.SetDefault("POSTING_GCT_RECEIVABLE_CODE", "1150")
	v.SetDefault("POSTING_INVENTORY_CODE", "1200")
	v.SetDefault("POSTING_ACCUMULATED_DEPRECIATION_CODE", "1590")
	v.SetDefault("POSTING_PAYABLE_CODE", "2000")
	v.SetDefault("POSTING_GCT_PAYABLE_CODE", "2150")
	v.SetDefault("POSTING_PAYROLL_PAYABLE_CODE", "2300")
	v.SetDefault("POSTING_SALES_REVENUE_CODE", "4000")
	v.SetDefault("POSTING_INVENTORY_VARIANCE_CODE", "5150")
	v.SetDefault("POSTING_DEPRECIATION_EXPENSE_CODE", "5300")
	v.SetDefault("POSTING_GRATUITY_EXPENSE_CODE", "5400")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		StoreDriver:  strings.ToLower(v.GetString("STORE_DRIVER")),
		DatabaseURL:  v.GetString("DATABASE_URL"),
		Port:         v.GetString("PORT"),
		IsProduction: v.GetBool("IS_PRODUCTION"),
		HomeCurrency: strings.ToUpper(v.GetString("HOME_CURRENCY")),

		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),

		WorkerConcurrency: v.GetInt("WORKER_CONCURRENCY"),
		JobTenants:        splitList(v.GetString("JOB_TENANTS")),
		JobUserID:         v.GetString("JOB_USER_ID"),

		RateLimit:          v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),

		GratuityResignationMinYears: v.GetInt("GRATUITY_RESIGNATION_MIN_YEARS"),
		RevaluationMaxRateAgeDays:   v.GetInt("REVALUATION_MAX_RATE_AGE_DAYS"),

		Posting: PostingAccountCodes{
			Cash:                    v.GetString("POSTING_CASH_CODE"),
			AccountsPayable:         v.GetString("POSTING_PAYABLE_CODE"),
			AccountsReceivable:      v.GetString("POSTING_RECEIVABLE_CODE"),
			GCTReceivable:           v.GetString("POSTING_GCT_RECEIVABLE_CODE"),
			GCTPayable:              v.GetString("POSTING_GCT_PAYABLE_CODE"),
			SalesRevenue:            v.GetString("POSTING_SALES_REVENUE_CODE"),
			Inventory:               v.GetString("POSTING_INVENTORY_CODE"),
			InventoryVariance:       v.GetString("POSTING_INVENTORY_VARIANCE_CODE"),
			DepreciationExpense:     v.GetString("POSTING_DEPRECIATION_EXPENSE_CODE"),
			AccumulatedDepreciation: v.GetString("POSTING_ACCUMULATED_DEPRECIATION_CODE"),
			GratuityExpense:         v.GetString("POSTING_GRATUITY_EXPENSE_CODE"),
			PayrollPayable:          v.GetString("POSTING_PAYROLL_PAYABLE_CODE"),
		},
	}

	switch cfg.StoreDriver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL environment variable not set.")
	}

	threshold, err := decimal.NewFromString(v.GetString("GCT_CAPITAL_GOODS_THRESHOLD"))
	if err != nil {
		return nil, fmt.Errorf("invalid GCT_CAPITAL_GOODS_THRESHOLD: %w", err)
	}
	cfg.GCTCapitalGoodsThreshold = threshold

	standardRate, err := decimal.NewFromString(v.GetString("GCT_STANDARD_RATE_PERCENT"))
	if err != nil || standardRate.IsNegative() {
		return nil, fmt.Errorf("invalid GCT_STANDARD_RATE_PERCENT %q", v.GetString("GCT_STANDARD_RATE_PERCENT"))
	}
	cfg.GCTStandardRatePercent = standardRate

	jobTimeout, err := time.ParseDuration(v.GetString("JOB_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid JOB_TIMEOUT: %w", err)
	}
	cfg.JobTimeout = jobTimeout

	if cfg.WorkerConcurrency <= 0 {
		cfg.WorkerConcurrency = 1
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
