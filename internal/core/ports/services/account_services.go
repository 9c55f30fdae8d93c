package services

import (
	"context"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/dto"
)

// AccountReaderSvc defines read operations for GL account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account of the tenant.
	GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its chart-of-accounts code.
	GetAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error)

	// ListAccounts retrieves a page of the tenant's chart of accounts.
	ListAccounts(ctx context.Context, tenantID string, params dto.ListAccountsParams) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for GL account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account with a zero balance.
	CreateAccount(ctx context.Context, tenantID, userID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount updates descriptive fields only.
	UpdateAccount(ctx context.Context, tenantID, accountID, userID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeactivateAccount soft-deletes an account. It keeps its balance and history.
	DeactivateAccount(ctx context.Context, tenantID, accountID, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
