package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	portsrepo "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/repositories"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// resolvePostingAccount finds the tenant account configured under code. An unknown or
// inactive code is missing configuration, not a caller error.
func resolvePostingAccount(ctx context.Context, repos portsrepo.Repositories, tenantID, purpose, code string) (*domain.Account, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: no account code configured for %s", apperrors.ErrMissingData, purpose)
	}
	acc, err := repos.Accounts.FindAccountByCode(ctx, tenantID, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s account %s does not exist for tenant %s", apperrors.ErrMissingData, purpose, code, tenantID)
		}
		return nil, err
	}
	if !acc.IsActive {
		return nil, fmt.Errorf("%w: %s account %s is inactive", apperrors.ErrMissingData, purpose, code)
	}
	return acc, nil
}

// lineBuilder accumulates entry lines, dropping zero amounts.
type lineBuilder struct {
	lines []domain.JournalLine
}

func (b *lineBuilder) debit(accountID, description string, amount decimal.Decimal) {
	amount = accounting.Round2(amount)
	if !amount.IsPositive() {
		return
	}
	b.lines = append(b.lines, domain.JournalLine{AccountID: accountID, Description: description, Debit: amount, Credit: decimal.Zero})
}

func (b *lineBuilder) credit(accountID, description string, amount decimal.Decimal) {
	amount = accounting.Round2(amount)
	if !amount.IsPositive() {
		return
	}
	b.lines = append(b.lines, domain.JournalLine{AccountID: accountID, Description: description, Debit: decimal.Zero, Credit: amount})
}
