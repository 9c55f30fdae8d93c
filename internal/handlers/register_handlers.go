package handlers

import (
	"net/http"

	portssvc "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/services"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/middleware"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/worker"
	"github.com/gin-gonic/gin"
)

// Jobs carries the optional background-job dependencies. Both are nil without Redis.
type Jobs struct {
	Enqueuer  JobEnqueuer
	Summaries worker.SummaryStore
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer, jobs Jobs) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, services, jobs)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer, jobs Jobs) {
	v1 := r.Group("/api/v1", middleware.TenantContext())

	registerAccountRoutes(v1, services.Account)
	registerJournalRoutes(v1, services.Journal)
	registerPostingRoutes(v1, services.Expense, services.Invoice, services.StockCount)
	registerAssetRoutes(v1, services.Asset)
	registerRevaluationRoutes(v1, services.Revaluation)
	registerReportingRoutes(v1, services.Reporting, services.GCT)
	registerPayrollRoutes(v1, services.Payroll)
	registerJobRoutes(v1, jobs.Enqueuer, jobs.Summaries)
}
