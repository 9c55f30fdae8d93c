package services

import (
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/calculators"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	portsrepo "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/repositories"
	portssvc "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/services"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/platform/config"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, store portsrepo.Store, opts ...ServiceOption) *portssvc.ServiceContainer {
	gctRules := calculators.DefaultGCTRules()
	if cfg.GCTCapitalGoodsThreshold.IsPositive() {
		gctRules.CapitalGoodsThreshold = cfg.GCTCapitalGoodsThreshold
	}
	if cfg.GCTStandardRatePercent.IsPositive() {
		gctRules.BucketRates[domain.BucketStandard] = accounting.Percent(decimal.NewFromInt(1), cfg.GCTStandardRatePercent)
	}
	gratuityRules := calculators.DefaultGratuityRules()
	if cfg.GratuityResignationMinYears > 0 {
		gratuityRules.ResignationMinYears = cfg.GratuityResignationMinYears
	}

	// The journal service is the ledger every adapter posts through.
	journal := NewJournalService(store, opts...)

	return &portssvc.ServiceContainer{
		Account:     NewAccountService(store, cfg.HomeCurrency, opts...),
		Journal:     journal,
		Reporting:   NewReportingService(store, opts...),
		Expense:     NewExpenseService(store, journal, gctRules, cfg.Posting, opts...),
		Invoice:     NewInvoiceService(store, journal, gctRules, cfg.Posting, opts...),
		StockCount:  NewStockCountService(store, journal, cfg.Posting, opts...),
		Asset:       NewAssetService(store, journal, calculators.DefaultAllowanceTable(), cfg.Posting, opts...),
		GCT:         NewGCTService(store, gctRules, opts...),
		Revaluation: NewRevaluationService(store, cfg.HomeCurrency, cfg.RevaluationMaxRateAgeDays, opts...),
		Payroll:     NewPayrollService(store, journal, gratuityRules, cfg.Posting, opts...),
	}
}
