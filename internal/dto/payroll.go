package dto

import (
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GratuityRequest carries the employment facts the gratuity formula needs.
type GratuityRequest struct {
	EmployeeID      string                   `json:"employeeID" binding:"required"`
	BaseSalary      decimal.Decimal          `json:"baseSalary" binding:"required,dgt=0"`
	PayFrequency    domain.PayFrequency      `json:"payFrequency" binding:"required,oneof=WEEKLY FORTNIGHTLY SEMI_MONTHLY MONTHLY ANNUALLY"`
	HireDate        time.Time                `json:"hireDate" binding:"required"`
	TerminationDate time.Time                `json:"terminationDate" binding:"required"`
	Reason          domain.TerminationReason `json:"reason" binding:"required"`
	PaymentDate     *time.Time               `json:"paymentDate"`
	Notes           string                   `json:"notes"`
}

// GratuityResponse is the computed gratuity and, when eligible and processed, the
// recorded special payment.
type GratuityResponse struct {
	Result  domain.GratuityResult  `json:"result"`
	Payment *domain.SpecialPayment `json:"payment,omitempty"`
}

// ListSpecialPaymentsParams optionally narrows special payments to one employee.
type ListSpecialPaymentsParams struct {
	EmployeeID string `form:"employeeID"`
}
