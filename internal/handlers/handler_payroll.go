package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/services"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/dto"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/middleware"
	"github.com/gin-gonic/gin"
)

type payrollHandler struct {
	payrollService portssvc.PayrollSvc
}

func registerPayrollRoutes(rg *gin.RouterGroup, payrollService portssvc.PayrollSvc) {
	h := &payrollHandler{payrollService: payrollService}

	payroll := rg.Group("/payroll")
	{
		payroll.POST("/gratuity/calculate", h.calculateGratuity)
		payroll.POST("/gratuity", h.processGratuity)
		payroll.GET("/special-payments", h.listSpecialPayments)
	}
}

func (h *payrollHandler) calculateGratuity(c *gin.Context) {
	var req dto.GratuityRequest
	if !bindJSON(c, &req, "CalculateGratuity") {
		return
	}
	result, err := h.payrollService.CalculateGratuity(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to calculate gratuity")
		return
	}
	c.JSON(http.StatusOK, result)
}

// processGratuity records an eligible gratuity as a tax-exempt special payment and posts it.
func (h *payrollHandler) processGratuity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GratuityRequest
	if !bindJSON(c, &req, "ProcessGratuity") {
		return
	}
	tenantID, userID, ok := scope(c)
	if !ok {
		return
	}

	resp, err := h.payrollService.ProcessGratuity(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		respondError(c, err, "Failed to process gratuity")
		return
	}

	logger.Info("Gratuity processed", slog.String("employee_id", req.EmployeeID), slog.Bool("paid", resp.Payment != nil))
	c.JSON(http.StatusOK, resp)
}

func (h *payrollHandler) listSpecialPayments(c *gin.Context) {
	var params dto.ListSpecialPaymentsParams
	if !bindQuery(c, &params, "ListSpecialPayments") {
		return
	}
	tenantID, _, ok := scope(c)
	if !ok {
		return
	}
	payments, err := h.payrollService.ListSpecialPayments(c.Request.Context(), tenantID, params.EmployeeID)
	if err != nil {
		respondError(c, err, "Failed to list special payments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}
