package repositories

// Repositories holds every repository a service may use, bound to either the
// connection pool or a single transaction.
type Repositories struct {
	Accounts         AccountRepository
	Journals         JournalRepository
	Sequences        SequenceRepository
	Expenses         ExpenseRepository
	Invoices         InvoiceRepository
	StockCounts      StockCountRepository
	Assets           FixedAssetRepository
	CurrencyAccounts CurrencyAccountRepository
	ExchangeRates    ExchangeRateRepository
	Revaluations     RevaluationRepository
	Payroll          PayrollRepository
}
