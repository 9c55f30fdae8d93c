package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/services"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/dto"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/middleware"
	"github.com/gin-gonic/gin"
)

// postingHandler serves the source documents that post into the ledger.
type postingHandler struct {
	expenseService    portssvc.ExpenseSvc
	invoiceService    portssvc.InvoiceSvc
	stockCountService portssvc.StockCountSvc
}

func registerPostingRoutes(rg *gin.RouterGroup, es portssvc.ExpenseSvc, is portssvc.InvoiceSvc, scs portssvc.StockCountSvc) {
	h := &postingHandler{expenseService: es, invoiceService: is, stockCountService: scs}

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("/:id", h.getExpense)
		expenses.POST("/:id/post", h.postExpense)
	}

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("/:id", h.getInvoice)
		invoices.POST("/:id/post", h.postInvoice)
	}

	counts := rg.Group("/stock-counts")
	{
		counts.POST("", h.createStockCount)
		counts.GET("/:id", h.getStockCount)
		counts.POST("/:id/counts", h.recordCount)
		counts.POST("/:id/approve", h.approveStockCount)
		counts.POST("/:id/post", h.postVariance)
	}
}

// createExpense records a PENDING expense. With post=true the ledger entry is created and
// posted in the same request.
func (h *postingHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExpenseRequest
	if !bindJSON(c, &req, "CreateExpense") {
		return
	}
	tenantID, userID, ok := scope(c)
	if !ok {
		return
	}

	resp, err := h.expenseService.CreateExpense(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		respondError(c, err, "Failed to record expense")
		return
	}

	logger.Info("Expense recorded", slog.String("expense_id", resp.Expense.ExpenseID), slog.Bool("posted", resp.Entry != nil))
	c.JSON(http.StatusCreated, resp)
}

func (h *postingHandler) getExpense(c *gin.Context) {
	tenantID, _, ok := scope(c)
	if !ok {
		return
	}
	expense, err := h.expenseService.GetExpense(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve expense")
		return
	}
	c.JSON(http.StatusOK, expense)
}

func (h *postingHandler) postExpense(c *gin.Context) {
	tenantID, userID, ok := scope(c)
	if !ok {
		return
	}
	entry, err := h.expenseService.PostExpense(c.Request.Context(), tenantID, c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to post expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

func (h *postingHandler) createInvoice(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if !bindJSON(c, &req, "CreateInvoice") {
		return
	}
	tenantID, userID, ok := scope(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		respondError(c, err, "Failed to create invoice")
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

func (h *postingHandler) getInvoice(c *gin.Context) {
	tenantID, _, ok := scope(c)
	if !ok {
		return
	}
	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// postInvoice debits receivables with the gross total and credits revenue and GCT payable.
func (h *postingHandler) postInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, userID, ok := scope(c)
	if !ok {
		return
	}
	invoiceID := c.Param("id")

	entry, err := h.invoiceService.PostInvoice(c.Request.Context(), tenantID, invoiceID, userID)
	if err != nil {
		respondError(c, err, "Failed to post invoice")
		return
	}

	logger.Info("Invoice posted", slog.String("invoice_id", invoiceID), slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

func (h *postingHandler) createStockCount(c *gin.Context) {
	var req dto.CreateStockCountRequest
	if !bindJSON(c, &req, "CreateStockCount") {
		return
	}
	tenantID, userID, ok := scope(c)
	if !ok {
		return
	}

	count, err := h.stockCountService.CreateStockCount(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		respondError(c, err, "Failed to create stock count")
		return
	}
	c.JSON(http.StatusCreated, count)
}

func (h *postingHandler) getStockCount(c *gin.Context) {
	tenantID, _, ok := scope(c)
	if !ok {
		return
	}
	count, err := h.stockCountService.GetStockCount(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve stock count")
		return
	}
	c.JSON(http.StatusOK, count)
}

func (h *postingHandler) recordCount(c *gin.Context) {
	var req dto.RecordCountRequest
	if !bindJSON(c, &req, "RecordCount") {
		return
	}
	tenantID, userID, ok := scope(c)
	if !ok {
		return
	}

	count, err := h.stockCountService.RecordCount(c.Request.Context(), tenantID, c.Param("id"), userID, req)
	if err != nil {
		respondError(c, err, "Failed to record count")
		return
	}
	c.JSON(http.StatusOK, count)
}

func (h *postingHandler) approveStockCount(c *gin.Context) {
	tenantID, userID, ok := scope(c)
	if !ok {
		return
	}
	count, err := h.stockCountService.ApproveStockCount(c.Request.Context(), tenantID, c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to approve stock count")
		return
	}
	c.JSON(http.StatusOK, count)
}

// postVariance a zero variance marks the count POSTED without a ledger entry.
func (h *postingHandler) postVariance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, userID, ok := scope(c)
	if !ok {
		return
	}
	stockCountID := c.Param("id")

	resp, err := h.stockCountService.PostVariance(c.Request.Context(), tenantID, stockCountID, userID)
	if err != nil {
		respondError(c, err, "Failed to post stock variance")
		return
	}

	logger.Info("Stock variance posted", slog.String("stock_count_id", stockCountID), slog.String("variance", resp.VarianceValue.StringFixed(2)))
	c.JSON(http.StatusOK, resp)
}
