package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/dto"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/middleware"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/worker"
	"github.com/gin-gonic/gin"
)

// JobEnqueuer queues background batch runs. *worker.Client implements it.
type JobEnqueuer interface {
	Enqueue(ctx context.Context, kind worker.Kind, p worker.RunPayload) (string, error)
}

// jobHandler queues revaluation, depreciation and allowance runs for the worker.
// Either dependency may be nil when Redis is not configured.
type jobHandler struct {
	enqueuer  JobEnqueuer
	summaries worker.SummaryStore
}

func registerJobRoutes(rg *gin.RouterGroup, enqueuer JobEnqueuer, summaries worker.SummaryStore) {
	h := &jobHandler{enqueuer: enqueuer, summaries: summaries}

	jobs := rg.Group("/jobs")
	{
		jobs.POST("/:kind", h.enqueue)
		jobs.GET("/:kind/latest", h.latest)
	}
}

// enqueue queues a worker run. Duplicate runs for the same period are rejected.
func (h *jobHandler) enqueue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if h.enqueuer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Background jobs are not configured"})
		return
	}
	kind, err := worker.ParseKind(c.Param("kind"))
	if err != nil {
		respondError(c, err, "Failed to queue job")
		return
	}
	var req dto.EnqueueJobRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req, "EnqueueJob") {
		return
	}
	tenantID, userID, ok := scope(c)
	if !ok {
		return
	}

	payload := worker.RunPayload{TenantID: tenantID, UserID: userID, Period: req.Period, Year: req.Year}
	taskID, err := h.enqueuer.Enqueue(c.Request.Context(), kind, payload)
	if err != nil {
		respondError(c, err, "Failed to queue job")
		return
	}

	logger.Info("Batch run queued", slog.String("kind", string(kind)), slog.String("task_id", taskID))
	c.JSON(http.StatusAccepted, dto.EnqueueJobResponse{TaskID: taskID, Kind: string(kind)})
}

func (h *jobHandler) latest(c *gin.Context) {
	if h.summaries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Background jobs are not configured"})
		return
	}
	kind, err := worker.ParseKind(c.Param("kind"))
	if err != nil {
		respondError(c, err, "Failed to read job summary")
		return
	}
	tenantID, _, ok := scope(c)
	if !ok {
		return
	}

	summary, err := h.summaries.Latest(c.Request.Context(), tenantID, kind)
	if err != nil {
		respondError(c, err, "Failed to read job summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}
