package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/calculators"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	portsrepo "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/repositories"
	portssvc "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/services"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/dto"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/platform/config"
)

type payrollService struct {
	BaseService
	ledger portssvc.LedgerPoster
	rules  calculators.GratuityRules
	codes  config.PostingAccountCodes
}

// NewPayrollService creates the gratuity service.
func NewPayrollService(store portsrepo.Store, ledger portssvc.LedgerPoster, rules calculators.GratuityRules, codes config.PostingAccountCodes, opts ...ServiceOption) portssvc.PayrollSvc {
	return &payrollService{
		BaseService: newBaseService(store, opts...),
		ledger:      ledger,
		rules:       rules,
		codes:       codes,
	}
}

var _ portssvc.PayrollSvc = (*payrollService)(nil)

func gratuityInput(req dto.GratuityRequest) calculators.GratuityInput {
	return calculators.GratuityInput{
		BaseSalary:      req.BaseSalary,
		PayFrequency:    req.PayFrequency,
		HireDate:        domain.DateOf(req.HireDate),
		TerminationDate: domain.DateOf(req.TerminationDate),
		Reason:          req.Reason,
	}
}

// gratuitySource identifies one termination, so a retried request maps onto the same
// journal source and is refused instead of posted twice.
func gratuitySource(req dto.GratuityRequest) string {
	return req.EmployeeID + ":" + domain.DateOf(req.TerminationDate).Format("2006-01-02")
}

// ensureNoGratuity rejects a second gratuity for the same employee.
func ensureNoGratuity(ctx context.Context, repos portsrepo.Repositories, tenantID, employeeID string) error {
	payments, err := repos.Payroll.ListSpecialPayments(ctx, tenantID, employeeID)
	if err != nil {
		return err
	}
	for _, p := range payments {
		if p.PaymentType == domain.SpecialPaymentGratuity {
			return fmt.Errorf("%w: gratuity for employee %s already paid on %s (entry %s)", apperrors.ErrConflict,
				employeeID, p.PaymentDate.Format("2006-01-02"), p.JournalEntryID)
		}
	}
	return nil
}

func (s *payrollService) CalculateGratuity(ctx context.Context, req dto.GratuityRequest) (domain.GratuityResult, error) {
	return calculators.ComputeGratuity(s.rules, gratuityInput(req))
}

// ProcessGratuity posts an eligible gratuity as DEBIT gratuity expense / CREDIT payroll
// payable and records it as a tax-exempt special payment.
func (s *payrollService) ProcessGratuity(ctx context.Context, tenantID, userID string, req dto.GratuityRequest) (*dto.GratuityResponse, error) {
	result, err := calculators.ComputeGratuity(s.rules, gratuityInput(req))
	if err != nil {
		return nil, err
	}
	resp := &dto.GratuityResponse{Result: result}
	if !result.Eligible {
		s.LogInfo(ctx, "Employee not eligible for gratuity", slog.String("employee_id", req.EmployeeID), slog.String("reason", result.Reason))
		return resp, nil
	}

	paymentDate := domain.DateOf(req.TerminationDate)
	if req.PaymentDate != nil {
		paymentDate = domain.DateOf(*req.PaymentDate)
	}

	err = s.store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		if err := ensureNoGratuity(ctx, repos, tenantID, req.EmployeeID); err != nil {
			return err
		}
		expense, err := resolvePostingAccount(ctx, repos, tenantID, "gratuity expense", s.codes.GratuityExpense)
		if err != nil {
			return err
		}
		payable, err := resolvePostingAccount(ctx, repos, tenantID, "payroll payable", s.codes.PayrollPayable)
		if err != nil {
			return err
		}

		paymentID := uuid.NewString()
		var b lineBuilder
		b.debit(expense.AccountID, "Gratuity "+req.EmployeeID, result.Amount)
		b.credit(payable.AccountID, "Gratuity "+req.EmployeeID, result.Amount)
		entry, err := s.ledger.CreateAndPostInTx(ctx, repos, tenantID, userID, domain.JournalEntry{
			EntryDate:        paymentDate,
			Description:      "Termination gratuity " + req.EmployeeID,
			Reference:        req.EmployeeID,
			SourceModule:     domain.SourcePayroll,
			SourceDocumentID: gratuitySource(req),
			Metadata: map[string]domain.Value{
				"employeeID":    domain.StringValue(req.EmployeeID),
				"reason":        domain.StringValue(string(req.Reason)),
				"creditedYears": domain.NumberValue(decimal.NewFromInt(int64(result.CreditedYears))),
			},
			Lines: b.lines,
		})
		if err != nil {
			return err
		}

		payment := domain.SpecialPayment{
			PaymentID:      paymentID,
			TenantID:       tenantID,
			EmployeeID:     req.EmployeeID,
			PaymentType:    domain.SpecialPaymentGratuity,
			PaymentDate:    paymentDate,
			GrossAmount:    result.Amount,
			IncomeTax:      decimal.Zero,
			NIS:            decimal.Zero,
			NHT:            decimal.Zero,
			EducationTax:   decimal.Zero,
			NetAmount:      result.Amount,
			TaxExempt:      result.TaxExempt,
			JournalEntryID: entry.EntryID,
			Notes:          req.Notes,
			AuditFields:    domain.NewAuditFields(userID, s.Now()),
		}
		if err := repos.Payroll.SaveSpecialPayment(ctx, payment); err != nil {
			return err
		}
		resp.Payment = &payment
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Gratuity processed", slog.String("employee_id", req.EmployeeID), slog.String("amount", result.Amount.StringFixed(2)))
	return resp, nil
}

func (s *payrollService) ListSpecialPayments(ctx context.Context, tenantID, employeeID string) ([]domain.SpecialPayment, error) {
	return s.store.Repos().Payroll.ListSpecialPayments(ctx, tenantID, employeeID)
}
