package domain

import (
	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single row in a trial balance report
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// AccountActivity is the posted debit and credit volume on one account.
type AccountActivity struct {
	AccountID    string          `json:"accountID"`
	AccountType  AccountType     `json:"accountType"`
	TotalDebits  decimal.Decimal `json:"totalDebits"`
	TotalCredits decimal.Decimal `json:"totalCredits"`
}

// BalanceDiscrepancy reports an account whose stored balance disagrees with its posted lines.
type BalanceDiscrepancy struct {
	AccountID     string          `json:"accountID"`
	Code          string          `json:"code"`
	StoredBalance decimal.Decimal `json:"storedBalance"`
	PostedBalance decimal.Decimal `json:"postedBalance"`
	Difference    decimal.Decimal `json:"difference"`
}
