package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// IsDebitNormal reports whether a debit increases accounts of this type.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// Account is a tenant-scoped general ledger account.
// Balance is only ever changed by posting or voiding journal entries.
type Account struct {
	AccountID    string          `json:"accountID"`
	TenantID     string          `json:"tenantID"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	AccountType  AccountType     `json:"accountType"`
	CurrencyCode string          `json:"currencyCode"`
	Description  string          `json:"description"`
	IsActive     bool            `json:"isActive"`
	Balance      decimal.Decimal `json:"balance"`
	AuditFields
}

// SignedDelta returns the balance effect of a debit/credit pair on an account of type t.
// Debit-normal: debit - credit. Credit-normal: credit - debit.
func SignedDelta(t AccountType, debit, credit decimal.Decimal) (decimal.Decimal, error) {
	switch t {
	case Asset, Expense:
		return debit.Sub(credit), nil
	case Liability, Equity, Income:
		return credit.Sub(debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type %q", t)
	}
}
