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

// assetHandler handles fixed assets, their depreciation and capital allowances.
type assetHandler struct {
	assetService portssvc.AssetSvcFacade
}

func registerAssetRoutes(rg *gin.RouterGroup, assetService portssvc.AssetSvcFacade) {
	h := &assetHandler{assetService: assetService}

	assets := rg.Group("/assets")
	{
		assets.POST("", h.createAsset)
		assets.GET("", h.listActiveAssets)
		assets.POST("/depreciation-runs", h.runDepreciation)
		assets.POST("/allowance-claims", h.claimAllowances)
		assets.GET("/:id", h.getAsset)
		assets.GET("/:id/allowance-schedule", h.previewAllowanceSchedule)
		assets.POST("/:id/dispose", h.disposeAsset)
	}
}

func (h *assetHandler) createAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAssetRequest
	if !bindJSON(c, &req, "CreateAsset") {
		return
	}
	tenantID, userID, ok := scope(c)
	if !ok {
		return
	}

	asset, err := h.assetService.CreateAsset(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		respondError(c, err, "Failed to create asset")
		return
	}

	logger.Info("Asset registered", slog.String("asset_id", asset.AssetID), slog.String("allowance_class", string(asset.AllowanceClass)))
	c.JSON(http.StatusCreated, asset)
}

func (h *assetHandler) getAsset(c *gin.Context) {
	tenantID, _, ok := scope(c)
	if !ok {
		return
	}
	asset, err := h.assetService.GetAsset(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve asset")
		return
	}
	c.JSON(http.StatusOK, asset)
}

func (h *assetHandler) listActiveAssets(c *gin.Context) {
	tenantID, _, ok := scope(c)
	if !ok {
		return
	}
	assets, err := h.assetService.ListActiveAssets(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err, "Failed to list assets")
		return
	}
	c.JSON(http.StatusOK, gin.H{"assets": assets})
}

// previewAllowanceSchedule returns year-by-year initial and annual allowances for an asset.
// Nothing is persisted.
func (h *assetHandler) previewAllowanceSchedule(c *gin.Context) {
	var params dto.AllowanceScheduleParams
	if !bindQuery(c, &params, "PreviewAllowanceSchedule") {
		return
	}
	tenantID, _, ok := scope(c)
	if !ok {
		return
	}

	schedule, err := h.assetService.PreviewAllowanceSchedule(c.Request.Context(), tenantID, c.Param("id"), params.Years)
	if err != nil {
		respondError(c, err, "Failed to compute allowance schedule")
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}

// disposeAsset records book gain or loss and the tax balancing charge or allowance.
// Assets can be disposed once.
func (h *assetHandler) disposeAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DisposeAssetRequest
	if !bindJSON(c, &req, "DisposeAsset") {
		return
	}
	tenantID, userID, ok := scope(c)
	if !ok {
		return
	}
	assetID := c.Param("id")

	record, err := h.assetService.DisposeAsset(c.Request.Context(), tenantID, assetID, userID, req)
	if err != nil {
		respondError(c, err, "Failed to dispose asset")
		return
	}

	logger.Info("Asset disposed", slog.String("asset_id", assetID), slog.String("disposal_number", record.DisposalNumber))
	c.JSON(http.StatusCreated, record)
}

func (h *assetHandler) runDepreciation(c *gin.Context) {
	var req dto.DepreciationRunRequest
	if !bindJSON(c, &req, "RunDepreciation") {
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

	batch, err := h.assetService.RunDepreciation(c.Request.Context(), tenantID, userID, period)
	if err != nil {
		respondError(c, err, "Failed to run depreciation")
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (h *assetHandler) claimAllowances(c *gin.Context) {
	var req dto.AllowanceClaimRequest
	if !bindJSON(c, &req, "ClaimAllowances") {
		return
	}
	tenantID, userID, ok := scope(c)
	if !ok {
		return
	}

	batch, err := h.assetService.ClaimAllowances(c.Request.Context(), tenantID, userID, req.Year)
	if err != nil {
		respondError(c, err, "Failed to claim allowances")
		return
	}
	c.JSON(http.StatusOK, batch)
}
