package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/services"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/dto"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/middleware"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// reportingHandler handles ledger-wide reports and the GCT return.
type reportingHandler struct {
	reportingService portssvc.ReportingService
	gctService       portssvc.GCTSvc
}

func newReportingHandler(rs portssvc.ReportingService, gs portssvc.GCTSvc) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		gctService:       gs,
	}
}

// registerReportingRoutes registers routes related to reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, gctService portssvc.GCTSvc) {
	h := newReportingHandler(reportingService, gctService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/reconciliation", h.reconcileBalances)
		reports.GET("/gct-return", h.getGCTReturn)
	}
}

// getTrialBalance totals posted debits and credits per account up to a date.
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.TrialBalanceParams
	if !bindQuery(c, &params, "GetTrialBalance") {
		return
	}
	tenantID, _, ok := scope(c)
	if !ok {
		return
	}

	asOf := time.Now().UTC()
	if params.AsOf != "" {
		asOf, _ = time.Parse(dateLayout, params.AsOf)
	}
	logger = logger.With(slog.String("asOf", asOf.Format(dateLayout)))
	logger.Info("Received request to generate trial balance report")

	resp, err := h.reportingService.GetTrialBalance(c.Request.Context(), tenantID, asOf)
	if err != nil {
		respondError(c, err, "Failed to generate trial balance report")
		return
	}

	logger.Info("Trial balance report generated successfully", slog.Int("row_count", len(resp.Rows)))
	c.JSON(http.StatusOK, resp)
}

func (h *reportingHandler) reconcileBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _, ok := scope(c)
	if !ok {
		return
	}

	resp, err := h.reportingService.ReconcileBalances(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err, "Failed to reconcile balances")
		return
	}
	if len(resp.Discrepancies) > 0 {
		logger.Warn("Account balances drifted from posted lines", slog.Int("discrepancies", len(resp.Discrepancies)))
	}
	c.JSON(http.StatusOK, resp)
}

// getGCTReturn reports output tax by rate bucket from posted invoices and input credits
// from posted expenses.
func (h *reportingHandler) getGCTReturn(c *gin.Context) {
	var params dto.GCTReturnParams
	if !bindQuery(c, &params, "GetGCTReturn") {
		return
	}
	tenantID, _, ok := scope(c)
	if !ok {
		return
	}
	// Both dates already passed the datetime binding.
	from, _ := time.Parse(dateLayout, params.From)
	to, _ := time.Parse(dateLayout, params.To)

	ret, err := h.gctService.ComputeReturn(c.Request.Context(), tenantID, from, to)
	if err != nil {
		respondError(c, err, "Failed to compute GCT return")
		return
	}
	c.JSON(http.StatusOK, ret)
}
