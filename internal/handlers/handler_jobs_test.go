package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	portssvc "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/services"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/dto"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/handlers"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/middleware"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/worker"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEnqueuer struct {
	mock.Mock
}

func (m *MockEnqueuer) Enqueue(ctx context.Context, kind worker.Kind, p worker.RunPayload) (string, error) {
	args := m.Called(ctx, kind, p)
	return args.String(0), args.Error(1)
}

type MockSummaryStore struct {
	mock.Mock
}

func (m *MockSummaryStore) Save(ctx context.Context, s worker.RunSummary) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSummaryStore) Latest(ctx context.Context, tenantID string, kind worker.Kind) (*worker.RunSummary, error) {
	args := m.Called(ctx, tenantID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worker.RunSummary), args.Error(1)
}

func jobsRouter(jobs handlers.Jobs) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers.RegisterRoutes(r, &portssvc.ServiceContainer{}, jobs)
	return r
}

func serveJob(r *gin.Engine, method, url, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.TenantHeader, "t1")
	req.Header.Set(middleware.UserHeader, "u1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestEnqueueJob(t *testing.T) {
	enqueuer := new(MockEnqueuer)
	r := jobsRouter(handlers.Jobs{Enqueuer: enqueuer})

	enqueuer.On("Enqueue", mock.Anything, worker.KindDepreciation,
		worker.RunPayload{TenantID: "t1", UserID: "u1", Period: "2024-02"}).Return("task-1", nil).Once()

	w := serveJob(r, http.MethodPost, "/api/v1/jobs/depreciation", `{"period":"2024-02"}`)

	require.Equal(t, http.StatusAccepted, w.Code)
	var resp dto.EnqueueJobResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "task-1", resp.TaskID)
	assert.Equal(t, "depreciation", resp.Kind)
	enqueuer.AssertExpectations(t)
}

func TestEnqueueJob_EmptyBodyUsesDefaults(t *testing.T) {
	enqueuer := new(MockEnqueuer)
	r := jobsRouter(handlers.Jobs{Enqueuer: enqueuer})

	enqueuer.On("Enqueue", mock.Anything, worker.KindAllowances,
		worker.RunPayload{TenantID: "t1", UserID: "u1"}).Return("task-2", nil).Once()

	w := serveJob(r, http.MethodPost, "/api/v1/jobs/allowances", "")
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestEnqueueJob_Errors(t *testing.T) {
	enqueuer := new(MockEnqueuer)
	r := jobsRouter(handlers.Jobs{Enqueuer: enqueuer})

	w := serveJob(r, http.MethodPost, "/api/v1/jobs/payroll", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serveJob(r, http.MethodPost, "/api/v1/jobs/revaluation", `{"period":"March"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	enqueuer.On("Enqueue", mock.Anything, worker.KindRevaluation, mock.Anything).
		Return("", fmt.Errorf("%w: revaluation run already queued", apperrors.ErrConflict)).Once()
	w = serveJob(r, http.MethodPost, "/api/v1/jobs/revaluation", `{"period":"2024-02"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestJobs_NotConfigured(t *testing.T) {
	r := jobsRouter(handlers.Jobs{})

	assert.Equal(t, http.StatusServiceUnavailable, serveJob(r, http.MethodPost, "/api/v1/jobs/revaluation", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, serveJob(r, http.MethodGet, "/api/v1/jobs/revaluation/latest", "").Code)
}

func TestLatestJobSummary(t *testing.T) {
	summaries := new(MockSummaryStore)
	r := jobsRouter(handlers.Jobs{Summaries: summaries})

	summaries.On("Latest", mock.Anything, "t1", worker.KindRevaluation).Return(&worker.RunSummary{
		Kind: worker.KindRevaluation, TenantID: "t1", Key: "2024-02", Processed: 3, CompletedAt: time.Now().UTC(),
	}, nil).Once()
	summaries.On("Latest", mock.Anything, "t1", worker.KindDepreciation).Return(nil, apperrors.ErrNotFound).Once()

	w := serveJob(r, http.MethodGet, "/api/v1/jobs/revaluation/latest", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2024-02")

	w = serveJob(r, http.MethodGet, "/api/v1/jobs/depreciation/latest", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
