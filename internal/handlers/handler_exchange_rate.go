package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	portssvc "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/services"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/dto"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/middleware"
	"github.com/gin-gonic/gin"
)

// revaluationHandler handles exchange rates, foreign-currency accounts and their
// month-end revaluation.
type revaluationHandler struct {
	revaluationService portssvc.RevaluationSvcFacade
}

func newRevaluationHandler(rs portssvc.RevaluationSvcFacade) *revaluationHandler {
	return &revaluationHandler{
		revaluationService: rs,
	}
}

func registerRevaluationRoutes(rg *gin.RouterGroup, revaluationService portssvc.RevaluationSvcFacade) {
	h := newRevaluationHandler(revaluationService)

	rates := rg.Group("/exchange-rates")
	{
		rates.POST("", h.saveExchangeRate)
		rates.GET("", h.listExchangeRates)
	}

	rg.POST("/currency-accounts", h.createCurrencyAccount)

	revaluations := rg.Group("/revaluations")
	{
		revaluations.GET("", h.listRevaluations)
		revaluations.GET("/preview", h.previewRevaluation)
		revaluations.POST("/runs", h.runRevaluation)
	}
}

// saveExchangeRate stores a dated rate for a currency pair, replacing any rate already
// recorded for that date.
func (h *revaluationHandler) saveExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExchangeRateRequest
	if !bindJSON(c, &req, "SaveExchangeRate") {
		return
	}
	_, userID, ok := scope(c)
	if !ok {
		return
	}

	rate, err := h.revaluationService.SaveExchangeRate(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to save exchange rate")
		return
	}

	logger.Info("Exchange rate saved", slog.String("pair", rate.FromCurrency+"/"+rate.ToCurrency), slog.String("rate", rate.Rate.String()))
	c.JSON(http.StatusCreated, rate)
}

func (h *revaluationHandler) listExchangeRates(c *gin.Context) {
	var params dto.ListExchangeRatesParams
	if !bindQuery(c, &params, "ListExchangeRates") {
		return
	}
	rates, err := h.revaluationService.ListExchangeRates(c.Request.Context(), params.From, params.To, params.Limit)
	if err != nil {
		respondError(c, err, "Failed to list exchange rates")
		return
	}
	c.JSON(http.StatusOK, gin.H{"rates": rates})
}

func (h *revaluationHandler) createCurrencyAccount(c *gin.Context) {
	var req dto.CreateCurrencyAccountRequest
	if !bindJSON(c, &req, "CreateCurrencyAccount") {
		return
	}
	tenantID, userID, ok := scope(c)
	if !ok {
		return
	}

	account, err := h.revaluationService.CreateCurrencyAccount(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		respondError(c, err, "Failed to create currency account")
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (h *revaluationHandler) listRevaluations(c *gin.Context) {
	period, tenantID, ok := h.periodQuery(c, "ListRevaluations")
	if !ok {
		return
	}
	entries, err := h.revaluationService.ListRevaluations(c.Request.Context(), tenantID, period)
	if err != nil {
		respondError(c, err, "Failed to list revaluations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"period": period.String(), "revaluations": entries})
}

// previewRevaluation computes unrealized gains and losses at the period-end rate without
// storing them.
func (h *revaluationHandler) previewRevaluation(c *gin.Context) {
	period, tenantID, ok := h.periodQuery(c, "PreviewRevaluation")
	if !ok {
		return
	}
	batch, err := h.revaluationService.PreviewRevaluation(c.Request.Context(), tenantID, period)
	if err != nil {
		respondError(c, err, "Failed to preview revaluation")
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (h *revaluationHandler) runRevaluation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RevaluationRunRequest
	if !bindJSON(c, &req, "RunRevaluation") {
		return
	}
	tenantID, userID, ok := scope(c)
	if !ok {
		return
	}
	period, err := domain.ParsePeriod(req.Period)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	batch, err := h.revaluationService.RunRevaluation(c.Request.Context(), tenantID, userID, period)
	if err != nil {
		respondError(c, err, "Failed to run revaluation")
		return
	}

	logger.Info("Revaluation run completed", slog.String("period", period.String()),
		slog.Int("processed", len(batch.Processed)), slog.Int("skipped", len(batch.Skipped)))
	c.JSON(http.StatusOK, batch)
}

func (h *revaluationHandler) periodQuery(c *gin.Context, op string) (domain.Period, string, bool) {
	var params dto.PeriodParams
	if !bindQuery(c, &params, op) {
		return domain.Period{}, "", false
	}
	tenantID, _, ok := scope(c)
	if !ok {
		return domain.Period{}, "", false
	}
	period, err := domain.ParsePeriod(params.Period)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return domain.Period{}, "", false
	}
	return period, tenantID, true
}
