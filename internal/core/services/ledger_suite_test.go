package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	portssvc "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/services"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/services"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/dto"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/platform/config"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/repositories/database/sqlstore"
	"github.com/Mani87-nq/yardbooks-web-sub011/migrations"
)

const (
	testTenant = "tenant-1"
	testUser   = "user-1"
)

var fixedNow = time.Date(2024, time.June, 30, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// LedgerSuite runs the services against a migrated in-memory SQLite store.
type LedgerSuite struct {
	suite.Suite
	ctx      context.Context
	db       *sqlx.DB
	svc      *portssvc.ServiceContainer
	accounts map[string]string // code -> account id
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerSuite))
}

func testConfig() *config.Config {
	return &config.Config{
		StoreDriver:  config.DriverSQLite,
		HomeCurrency: "JMD",
		Posting: config.PostingAccountCodes{
			Cash:                    "1000",
			AccountsReceivable:      "1100",
			GCTReceivable:           "1200",
			Inventory:               "1300",
			AccumulatedDepreciation: "1590",
			AccountsPayable:         "2000",
			GCTPayable:              "2100",
			PayrollPayable:          "2200",
			SalesRevenue:            "4000",
			DepreciationExpense:     "6100",
			InventoryVariance:       "6200",
			GratuityExpense:         "6300",
		},
		GCTCapitalGoodsThreshold:    dec("1000000"),
		GratuityResignationMinYears: 5,
		RevaluationMaxRateAgeDays:   31,
	}
}

func (s *LedgerSuite) SetupTest() {
	s.ctx = context.Background()

	db, err := sqlx.Open("sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	s.Require().NoError(err)
	db.SetMaxOpenConns(1)
	s.Require().NoError(migrations.Up(db.DB, config.DriverSQLite, nil))
	s.db = db

	store, err := sqlstore.NewStore(db)
	s.Require().NoError(err)
	s.svc = services.NewServiceContainer(testConfig(), store, services.WithClock(func() time.Time { return fixedNow }))

	s.accounts = map[string]string{}
	chart := []struct {
		code string
		name string
		typ  domain.AccountType
	}{
		{"1000", "Cash at bank", domain.Asset},
		{"1100", "Accounts receivable", domain.Asset},
		{"1200", "GCT receivable", domain.Asset},
		{"1300", "Inventory", domain.Asset},
		{"1590", "Accumulated depreciation", domain.Asset},
		{"2000", "Accounts payable", domain.Liability},
		{"2100", "GCT payable", domain.Liability},
		{"2200", "Payroll payable", domain.Liability},
		{"3000", "Owner's equity", domain.Equity},
		{"4000", "Sales", domain.Income},
		{"6000", "Office expenses", domain.Expense},
		{"6100", "Depreciation expense", domain.Expense},
		{"6200", "Inventory variance", domain.Expense},
		{"6300", "Gratuity expense", domain.Expense},
	}
	for _, c := range chart {
		acc, err := s.svc.Account.CreateAccount(s.ctx, testTenant, testUser, dto.CreateAccountRequest{
			Code:        c.code,
			Name:        c.name,
			AccountType: c.typ,
		})
		s.Require().NoError(err)
		s.accounts[c.code] = acc.AccountID
	}
}

func (s *LedgerSuite) TearDownTest() {
	s.NoError(s.db.Close())
}

// balance returns the stored balance of the account with code.
func (s *LedgerSuite) balance(code string) string {
	acc, err := s.svc.Account.GetAccountByID(s.ctx, testTenant, s.accounts[code])
	s.Require().NoError(err)
	return acc.Balance.StringFixed(2)
}

func (s *LedgerSuite) line(code string, debit, credit string) dto.JournalLineRequest {
	l := dto.JournalLineRequest{AccountID: s.accounts[code], Debit: decimal.Zero, Credit: decimal.Zero}
	if debit != "" {
		l.Debit = dec(debit)
	}
	if credit != "" {
		l.Credit = dec(credit)
	}
	return l
}

// capitalInjection is a balanced manual entry: cash in from the owner.
func (s *LedgerSuite) capitalInjection(amount string) dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		EntryDate:   date(2024, time.January, 2),
		Description: "Owner capital",
		Lines: []dto.JournalLineRequest{
			s.line("1000", amount, ""),
			s.line("3000", "", amount),
		},
	}
}
