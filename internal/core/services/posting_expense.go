package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/calculators"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	portsrepo "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/repositories"
	portssvc "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/services"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/dto"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/platform/config"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils/accounting"
)

type expenseService struct {
	BaseService
	ledger portssvc.LedgerPoster
	rules  calculators.GCTRules
	codes  config.PostingAccountCodes
}

// NewExpenseService creates the expense posting adapter.
func NewExpenseService(store portsrepo.Store, ledger portssvc.LedgerPoster, rules calculators.GCTRules, codes config.PostingAccountCodes, opts ...ServiceOption) portssvc.ExpenseSvc {
	return &expenseService{
		BaseService: newBaseService(store, opts...),
		ledger:      ledger,
		rules:       rules,
		codes:       codes,
	}
}

var _ portssvc.ExpenseSvc = (*expenseService)(nil)

func (s *expenseService) CreateExpense(ctx context.Context, tenantID, userID string, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}
	if req.GCTAmount.IsNegative() {
		return nil, fmt.Errorf("%w: GCT amount cannot be negative", apperrors.ErrValidation)
	}
	category := req.Category
	if category == "" {
		category = domain.CategoryGeneral
	}

	expense := domain.ExpenseRecord{
		ExpenseID:        uuid.NewString(),
		TenantID:         tenantID,
		ExpenseDate:      domain.DateOf(req.ExpenseDate),
		Vendor:           req.Vendor,
		Description:      req.Description,
		Category:         category,
		Amount:           accounting.Round2(req.Amount),
		GCTAmount:        accounting.Round2(req.GCTAmount),
		GCTClaimable:     req.GCTClaimable,
		ExpenseAccountID: req.ExpenseAccountID,
		PaymentAccountID: req.PaymentAccountID,
		Status:           domain.ExpensePending,
		AuditFields:      domain.NewAuditFields(userID, s.Now()),
	}

	resp := &dto.ExpenseResponse{Expense: &expense}
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		if err := repos.Expenses.SaveExpense(ctx, expense); err != nil {
			return err
		}
		if !req.Post {
			return nil
		}
		entry, err := s.postInTx(ctx, repos, &expense, userID)
		if err != nil {
			return err
		}
		er := dto.ToJournalEntryResponse(entry)
		resp.Entry = &er
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Expense recorded", slog.String("expense_id", expense.ExpenseID), slog.Bool("posted", req.Post))
	return resp, nil
}

func (s *expenseService) GetExpense(ctx context.Context, tenantID, expenseID string) (*domain.ExpenseRecord, error) {
	return s.store.Repos().Expenses.FindExpenseByID(ctx, tenantID, expenseID)
}

func (s *expenseService) PostExpense(ctx context.Context, tenantID, expenseID, userID string) (*domain.JournalEntry, error) {
	var entry *domain.JournalEntry
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		expense, err := repos.Expenses.FindExpenseByID(ctx, tenantID, expenseID)
		if err != nil {
			return err
		}
		if expense.Status != domain.ExpensePending {
			return fmt.Errorf("%w: expense %s is %s", apperrors.ErrConflict, expenseID, expense.Status)
		}
		entry, err = s.postInTx(ctx, repos, expense, userID)
		return err
	})
	if err != nil {
		s.LogWarn(ctx, "Expense not posted", slog.String("expense_id", expenseID), slog.String("error", err.Error()))
		return nil, err
	}
	return entry, nil
}

// postInTx debits the expense with its net amount plus any GCT that cannot be claimed,
// debits GCT receivable with the claimable part and credits the payment account gross.
func (s *expenseService) postInTx(ctx context.Context, repos portsrepo.Repositories, expense *domain.ExpenseRecord, userID string) (*domain.JournalEntry, error) {
	receivable, absorbed := calculators.SplitExpenseGCT(s.rules, expense.Category, expense.GCTAmount, expense.GCTClaimable)

	var b lineBuilder
	b.debit(expense.ExpenseAccountID, expense.Description, expense.Amount.Add(absorbed))
	if receivable.IsPositive() {
		gctAcc, err := resolvePostingAccount(ctx, repos, expense.TenantID, "GCT receivable", s.codes.GCTReceivable)
		if err != nil {
			return nil, err
		}
		b.debit(gctAcc.AccountID, "Input GCT", receivable)
	}
	b.credit(expense.PaymentAccountID, "Payment to "+expense.Vendor, expense.Gross())

	entry, err := s.ledger.CreateAndPostInTx(ctx, repos, expense.TenantID, userID, domain.JournalEntry{
		EntryDate:        expense.ExpenseDate,
		Description:      "Expense: " + expense.Vendor,
		Reference:        expense.ExpenseID,
		SourceModule:     domain.SourceExpense,
		SourceDocumentID: expense.ExpenseID,
		Metadata: map[string]domain.Value{
			"vendor":      domain.StringValue(expense.Vendor),
			"category":    domain.StringValue(string(expense.Category)),
			"gctAbsorbed": domain.NumberValue(absorbed),
		},
		Lines: b.lines,
	})
	if err != nil {
		return nil, err
	}

	now := s.Now()
	if err := repos.Expenses.MarkExpensePosted(ctx, expense.TenantID, expense.ExpenseID, entry.EntryID, userID, now); err != nil {
		return nil, err
	}
	expense.Status = domain.ExpensePosted
	expense.JournalEntryID = entry.EntryID
	expense.Touch(userID, now)
	return entry, nil
}
