package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	portsrepo "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/repositories"
	portssvc "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/services"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/dto"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/handlers"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/middleware"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils/validation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, tenantID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) CreateAccount(ctx context.Context, tenantID, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, tenantID, accountID, userID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeactivateAccount(ctx context.Context, tenantID, accountID, userID string) error {
	return m.Called(ctx, tenantID, accountID, userID).Error(0)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) entry(args mock.Arguments) (*domain.JournalEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) GetEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, tenantID, entryID))
}
func (m *MockJournalService) ListEntries(ctx context.Context, tenantID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalEntriesResponse), args.Error(1)
}
func (m *MockJournalService) CreateEntry(ctx context.Context, tenantID, userID string, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, tenantID, userID, req))
}
func (m *MockJournalService) UpdateEntry(ctx context.Context, tenantID, entryID, userID string, req dto.UpdateJournalEntryRequest) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, tenantID, entryID, userID, req))
}
func (m *MockJournalService) PostEntry(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, tenantID, entryID, userID))
}
func (m *MockJournalService) VoidEntry(ctx context.Context, tenantID, entryID, userID, reason string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, tenantID, entryID, userID, reason))
}
func (m *MockJournalService) DeleteEntry(ctx context.Context, tenantID, entryID, userID string) error {
	return m.Called(ctx, tenantID, entryID, userID).Error(0)
}
func (m *MockJournalService) CreateAndPostInTx(ctx context.Context, repos portsrepo.Repositories, tenantID, userID string, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, repos, tenantID, userID, entry))
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Test Suite ---
type LedgerHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	mockJournalService *MockJournalService
	tenantID           string
	userID             string
}

func (suite *LedgerHandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(validation.Register())
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	suite.mockAccountService = new(MockAccountService)
	suite.mockJournalService = new(MockJournalService)
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &portssvc.ServiceContainer{
		Account: suite.mockAccountService,
		Journal: suite.mockJournalService,
	}, handlers.Jobs{})
}

func (suite *LedgerHandlerTestSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.TenantHeader, suite.tenantID)
	req.Header.Set(middleware.UserHeader, suite.userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *LedgerHandlerTestSuite) TestHealth() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestMissingTenantHeader() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestCreateAccount_Success() {
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset}
	created := &domain.Account{AccountID: uuid.NewString(), TenantID: suite.tenantID, Code: "1000", Name: "Cash",
		AccountType: domain.Asset, CurrencyCode: "JMD", IsActive: true, Balance: decimal.Zero}

	suite.mockAccountService.On("CreateAccount", mock.Anything, suite.tenantID, suite.userID, req).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.AccountID, resp.AccountID)
	suite.True(resp.Balance.IsZero())
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestCreateAccount_InvalidType() {
	w := suite.do(http.MethodPost, "/api/v1/accounts", map[string]string{"code": "1000", "name": "Cash", "accountType": "CASH"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestCreateAccount_DuplicateCode() {
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset}
	suite.mockAccountService.On("CreateAccount", mock.Anything, suite.tenantID, suite.userID, req).
		Return(nil, fmt.Errorf("account code 1000: %w", apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", req)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestGetAccountByCode_NotFound() {
	suite.mockAccountService.On("GetAccountByCode", mock.Anything, suite.tenantID, "9999").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/by-code/9999", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestListAccounts_Defaults() {
	suite.mockAccountService.On("ListAccounts", mock.Anything, suite.tenantID,
		mock.MatchedBy(func(p dto.ListAccountsParams) bool { return p.Limit == 50 && p.Offset == 0 })).
		Return([]domain.Account{{AccountID: "a1", Code: "1000"}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListAccountsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Accounts, 1)
}

func (suite *LedgerHandlerTestSuite) TestDeactivateAccount_StoreFailureHidesDetail() {
	suite.mockAccountService.On("DeactivateAccount", mock.Anything, suite.tenantID, "a1", suite.userID).
		Return(apperrors.NewAppError(500, "failed to access account a1", fmt.Errorf("connection refused"))).Once()

	w := suite.do(http.MethodDelete, "/api/v1/accounts/a1", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "connection refused")
}

func (suite *LedgerHandlerTestSuite) TestCreateEntry_Success() {
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Description: "Owner contribution",
		Lines: []dto.JournalLineRequest{
			{AccountID: "cash", Debit: decimal.NewFromInt(500)},
			{AccountID: "equity", Credit: decimal.NewFromInt(500)},
		},
	}
	draft := &domain.JournalEntry{EntryID: "e1", EntryNumber: "JE-000001", Status: domain.Draft,
		TotalDebits: decimal.NewFromInt(500), TotalCredits: decimal.NewFromInt(500)}
	suite.mockJournalService.On("CreateEntry", mock.Anything, suite.tenantID, suite.userID,
		mock.MatchedBy(func(r dto.CreateJournalEntryRequest) bool { return len(r.Lines) == 2 })).
		Return(draft, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalEntryResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("JE-000001", resp.EntryNumber)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestCreateEntry_SingleLineRejected() {
	w := suite.do(http.MethodPost, "/api/v1/journal-entries", dto.CreateJournalEntryRequest{
		EntryDate:   time.Now(),
		Description: "half an entry",
		Lines:       []dto.JournalLineRequest{{AccountID: "cash", Debit: decimal.NewFromInt(1)}},
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestCreateEntry_NegativeAmountRejected() {
	w := suite.do(http.MethodPost, "/api/v1/journal-entries", dto.CreateJournalEntryRequest{
		EntryDate:   time.Now(),
		Description: "negative",
		Lines: []dto.JournalLineRequest{
			{AccountID: "cash", Debit: decimal.NewFromInt(-5)},
			{AccountID: "equity", Credit: decimal.NewFromInt(-5)},
		},
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestPostEntry_Conflict() {
	suite.mockJournalService.On("PostEntry", mock.Anything, suite.tenantID, "e1", suite.userID).
		Return(nil, fmt.Errorf("%w: entry e1 is POSTED, expected DRAFT", apperrors.ErrConflict)).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries/e1/post", nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "expected DRAFT")
}

func (suite *LedgerHandlerTestSuite) TestVoidEntry_RequiresReason() {
	w := suite.do(http.MethodPost, "/api/v1/journal-entries/e1/void", map[string]string{})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "VoidEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestVoidEntry_Success() {
	voided := &domain.JournalEntry{EntryID: "e1", Status: domain.Void, VoidReason: "duplicate"}
	suite.mockJournalService.On("VoidEntry", mock.Anything, suite.tenantID, "e1", suite.userID, "duplicate").
		Return(voided, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries/e1/void", dto.VoidJournalEntryRequest{Reason: "duplicate"})

	suite.Equal(http.StatusOK, w.Code)
	suite.mockJournalService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestLedgerHandlers(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
