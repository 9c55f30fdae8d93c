package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/dto"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockRevaluationService struct {
	mock.Mock
}

func (m *MockRevaluationService) CreateCurrencyAccount(ctx context.Context, tenantID, userID string, req dto.CreateCurrencyAccountRequest) (*domain.CurrencyAccount, error) {
	args := m.Called(ctx, tenantID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyAccount), args.Error(1)
}

func (m *MockRevaluationService) SaveExchangeRate(ctx context.Context, userID string, req dto.CreateExchangeRateRequest) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockRevaluationService) RunRevaluation(ctx context.Context, tenantID, userID string, period domain.Period) (domain.BatchSummary[domain.RevaluationEntry], error) {
	args := m.Called(ctx, tenantID, userID, period)
	return args.Get(0).(domain.BatchSummary[domain.RevaluationEntry]), args.Error(1)
}

type MockAssetBatchService struct {
	mock.Mock
}

func (m *MockAssetBatchService) RunDepreciation(ctx context.Context, tenantID, userID string, period domain.Period) (domain.BatchSummary[domain.DepreciationPosting], error) {
	args := m.Called(ctx, tenantID, userID, period)
	return args.Get(0).(domain.BatchSummary[domain.DepreciationPosting]), args.Error(1)
}

func (m *MockAssetBatchService) ClaimAllowances(ctx context.Context, tenantID, userID string, year int) (domain.BatchSummary[domain.AllowanceClaim], error) {
	args := m.Called(ctx, tenantID, userID, year)
	return args.Get(0).(domain.BatchSummary[domain.AllowanceClaim]), args.Error(1)
}

type MockSummaryStore struct {
	mock.Mock
}

func (m *MockSummaryStore) Save(ctx context.Context, s RunSummary) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSummaryStore) Latest(ctx context.Context, tenantID string, kind Kind) (*RunSummary, error) {
	args := m.Called(ctx, tenantID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RunSummary), args.Error(1)
}

type ProcessorTestSuite struct {
	suite.Suite
	revaluation *MockRevaluationService
	assets      *MockAssetBatchService
	summaries   *MockSummaryStore
	processor   *Processor
}

var processorNow = time.Date(2024, time.March, 1, 1, 0, 0, 0, time.UTC)

func (s *ProcessorTestSuite) SetupTest() {
	s.revaluation = new(MockRevaluationService)
	s.assets = new(MockAssetBatchService)
	s.summaries = new(MockSummaryStore)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.processor = NewProcessor(s.revaluation, s.assets, s.summaries, logger,
		WithProcessorClock(func() time.Time { return processorNow }))
}

func (s *ProcessorTestSuite) task(kind Kind, p RunPayload) *asynq.Task {
	task, err := NewRunTask(kind, p)
	s.Require().NoError(err)
	return task
}

func (s *ProcessorTestSuite) TestRevaluationDefaultsToPreviousMonth() {
	batch := domain.NewBatchSummary[domain.RevaluationEntry]()
	batch.Add(domain.RevaluationEntry{AccountID: "ca-1"})
	batch.Skip("ca-2", "EUR account", "no rate")

	s.revaluation.On("RunRevaluation", mock.Anything, "t1", "system", domain.Period{Year: 2024, Month: time.February}).
		Return(batch, nil).Once()
	s.summaries.On("Save", mock.Anything, mock.MatchedBy(func(rs RunSummary) bool {
		return rs.Kind == KindRevaluation && rs.TenantID == "t1" && rs.Key == "2024-02" &&
			rs.Processed == 1 && len(rs.Skipped) == 1 && rs.CompletedAt.Equal(processorNow)
	})).Return(nil).Once()

	err := s.processor.HandleRevaluationRun(context.Background(), s.task(KindRevaluation, RunPayload{TenantID: "t1"}))
	s.NoError(err)
	s.revaluation.AssertExpectations(s.T())
	s.summaries.AssertExpectations(s.T())
}

func (s *ProcessorTestSuite) TestDepreciationExplicitPeriod() {
	s.assets.On("RunDepreciation", mock.Anything, "t1", "ops", domain.Period{Year: 2024, Month: time.January}).
		Return(domain.NewBatchSummary[domain.DepreciationPosting](), nil).Once()
	s.summaries.On("Save", mock.Anything, mock.MatchedBy(func(rs RunSummary) bool {
		return rs.Kind == KindDepreciation && rs.Key == "2024-01" && rs.Processed == 0
	})).Return(nil).Once()

	err := s.processor.HandleDepreciationRun(context.Background(),
		s.task(KindDepreciation, RunPayload{TenantID: "t1", UserID: "ops", Period: "2024-01"}))
	s.NoError(err)
	s.assets.AssertExpectations(s.T())
}

func (s *ProcessorTestSuite) TestAllowanceClaimDefaultsToPreviousYear() {
	s.assets.On("ClaimAllowances", mock.Anything, "t1", "system", 2023).
		Return(domain.NewBatchSummary[domain.AllowanceClaim](), nil).Once()
	s.summaries.On("Save", mock.Anything, mock.MatchedBy(func(rs RunSummary) bool {
		return rs.Kind == KindAllowances && rs.Key == "2023"
	})).Return(nil).Once()

	s.NoError(s.processor.HandleAllowanceClaim(context.Background(), s.task(KindAllowances, RunPayload{TenantID: "t1"})))
	s.assets.AssertExpectations(s.T())
}

func (s *ProcessorTestSuite) TestInvalidPayloadIsNotRetried() {
	task := asynq.NewTask(TypeRevaluationRun, []byte(`{"tenant_id":""}`))
	err := s.processor.HandleRevaluationRun(context.Background(), task)
	s.ErrorIs(err, asynq.SkipRetry)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.revaluation.AssertNotCalled(s.T(), "RunRevaluation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ProcessorTestSuite) TestStoreFailureIsRetried() {
	boom := errors.New("connection reset")
	s.assets.On("RunDepreciation", mock.Anything, "t1", "system", mock.Anything).
		Return(domain.BatchSummary[domain.DepreciationPosting]{}, boom).Once()

	err := s.processor.HandleDepreciationRun(context.Background(), s.task(KindDepreciation, RunPayload{TenantID: "t1"}))
	s.ErrorIs(err, boom)
	s.NotErrorIs(err, asynq.SkipRetry)
	s.summaries.AssertNotCalled(s.T(), "Save", mock.Anything, mock.Anything)
}

func (s *ProcessorTestSuite) TestMissingDataIsNotRetried() {
	s.assets.On("ClaimAllowances", mock.Anything, "t1", "system", 2023).
		Return(domain.BatchSummary[domain.AllowanceClaim]{}, apperrors.ErrMissingData).Once()

	err := s.processor.HandleAllowanceClaim(context.Background(), s.task(KindAllowances, RunPayload{TenantID: "t1"}))
	s.ErrorIs(err, asynq.SkipRetry)
}

func (s *ProcessorTestSuite) TestSummaryFailureDoesNotFailTask() {
	s.revaluation.On("RunRevaluation", mock.Anything, "t1", "system", mock.Anything).
		Return(domain.NewBatchSummary[domain.RevaluationEntry](), nil).Once()
	s.summaries.On("Save", mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()

	s.NoError(s.processor.HandleRevaluationRun(context.Background(), s.task(KindRevaluation, RunPayload{TenantID: "t1"})))
}

func TestProcessor(t *testing.T) {
	suite.Run(t, new(ProcessorTestSuite))
}
