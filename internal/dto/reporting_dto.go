package dto

import (
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	AsOf string                   `json:"asOf"`
	Rows []domain.TrialBalanceRow `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// ReconciliationResponse lists accounts whose stored balance drifted from their posted lines.
type ReconciliationResponse struct {
	AccountsChecked int                         `json:"accountsChecked"`
	Discrepancies   []domain.BalanceDiscrepancy `json:"discrepancies"`
}

// GCTReturnParams defines the reporting window of a GCT return.
type GCTReturnParams struct {
	From string `form:"from" binding:"required,datetime=2006-01-02"`
	To   string `form:"to" binding:"required,datetime=2006-01-02"`
}

// TrialBalanceParams selects the cut-off date of a trial balance. Empty means today.
type TrialBalanceParams struct {
	AsOf string `form:"asOf" binding:"omitempty,datetime=2006-01-02"`
}
