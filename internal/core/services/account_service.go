package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	portsrepo "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/repositories"
	portssvc "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/services"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/dto"
)

// accountService manages the chart of accounts. Balances are never written here.
type accountService struct {
	BaseService
	homeCurrency string
}

// NewAccountService creates a new account service.
func NewAccountService(store portsrepo.Store, homeCurrency string, opts ...ServiceOption) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService:  newBaseService(store, opts...),
		homeCurrency: homeCurrency,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, tenantID, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}
	currency := strings.ToUpper(req.CurrencyCode)
	if currency == "" {
		currency = s.homeCurrency
	}

	acc := domain.Account{
		AccountID:    uuid.NewString(),
		TenantID:     tenantID,
		Code:         code,
		Name:         req.Name,
		AccountType:  req.AccountType,
		CurrencyCode: currency,
		Description:  req.Description,
		IsActive:     true,
		Balance:      decimal.Zero,
		AuditFields:  domain.NewAuditFields(userID, s.Now()),
	}

	if err := s.store.Repos().Accounts.SaveAccount(ctx, acc); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, code)
		}
		s.LogError(ctx, err, "Failed to save account", slog.String("tenant_id", tenantID), slog.String("code", code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", acc.AccountID), slog.String("code", code))
	return &acc, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	return s.store.Repos().Accounts.FindAccountByID(ctx, tenantID, accountID)
}

func (s *accountService) GetAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	return s.store.Repos().Accounts.FindAccountByCode(ctx, tenantID, code)
}

func (s *accountService) ListAccounts(ctx context.Context, tenantID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	accounts, err := s.store.Repos().Accounts.ListAccounts(ctx, tenantID, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("tenant_id", tenantID))
		return nil, err
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, tenantID, accountID, userID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	var updated *domain.Account
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		acc, err := repos.Accounts.FindAccountByID(ctx, tenantID, accountID)
		if err != nil {
			return err
		}
		if req.Name != nil {
			if strings.TrimSpace(*req.Name) == "" {
				return fmt.Errorf("%w: account name cannot be empty", apperrors.ErrValidation)
			}
			acc.Name = *req.Name
		}
		if req.Description != nil {
			acc.Description = *req.Description
		}
		acc.Touch(userID, s.Now())
		if err := repos.Accounts.UpdateAccount(ctx, *acc); err != nil {
			return err
		}
		updated = acc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, tenantID, accountID, userID string) error {
	if err := s.store.Repos().Accounts.DeactivateAccount(ctx, tenantID, accountID, userID, s.Now()); err != nil {
		return err
	}
	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}
