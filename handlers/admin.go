package handlers

import (
	"net/http"

	"barberhub/services/billing"
	"barberhub/services/business"
	"barberhub/services/metrics"
	"barberhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler exposes the platform-operator console endpoints: dashboard
// stats, bulk record actions and plan upgrades.
type AdminHandler struct {
	BusinessSvc business.BusinessService
	MetricsSvc  metrics.MetricsService
	BillingSvc  billing.BillingService
}

// NewAdminHandler creates a new AdminHandler instance.
func NewAdminHandler(businessSvc business.BusinessService, metricsSvc metrics.MetricsService, billingSvc billing.BillingService) *AdminHandler {
	return &AdminHandler{
		BusinessSvc: businessSvc,
		MetricsSvc:  metricsSvc,
		BillingSvc:  billingSvc,
	}
}

// DashboardStatsHandler handles GET /api/admin/stats. Live recompute from
// the current business snapshot.
func (h *AdminHandler) DashboardStatsHandler(c *gin.Context) {
	stats, err := h.MetricsSvc.DashboardStats(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("Failed to compute dashboard stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// CachedStatsHandler handles GET /api/admin/stats/snapshot, serving the
// background-refreshed snapshot.
func (h *AdminHandler) CachedStatsHandler(c *gin.Context) {
	stats, err := h.MetricsSvc.CachedSnapshot(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("Failed to load stats snapshot", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// BulkStatusHandler handles POST /api/admin/businesses/bulk-status.
func (h *AdminHandler) BulkStatusHandler(c *gin.Context) {
	var req struct {
		IDs    []string `json:"ids" binding:"required"`
		Status string   `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.BusinessSvc.BulkUpdateStatus(c.Request.Context(), req.IDs, req.Status); err != nil {
		utils.GetLogger().Error("Bulk status update failed", zap.Strings("ids", req.IDs), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Businesses updated", "count": len(req.IDs)})
}

// BulkDeleteHandler handles POST /api/admin/businesses/bulk-delete.
func (h *AdminHandler) BulkDeleteHandler(c *gin.Context) {
	var req struct {
		IDs []string `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.BusinessSvc.BulkDelete(c.Request.Context(), req.IDs); err != nil {
		utils.GetLogger().Error("Bulk delete failed", zap.Strings("ids", req.IDs), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Businesses deleted", "count": len(req.IDs)})
}

// UpgradePlanIntentHandler handles POST /api/businesses/:id/upgrade.
// Returns the Stripe client secret for the chosen plan.
func (h *AdminHandler) UpgradePlanIntentHandler(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		Plan string `json:"plan" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	clientSecret, err := h.BillingSvc.CreateUpgradeIntent(id, req.Plan)
	if err != nil {
		utils.GetLogger().Error("Failed to create upgrade intent",
			zap.String("id", id), zap.String("plan", req.Plan), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
}
