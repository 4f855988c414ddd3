package handlers

import (
	"io"
	"net/http"

	"barberhub/models"
	"barberhub/services/business"
	"barberhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BusinessHandler exposes the business-record endpoints.
type BusinessHandler struct {
	Service business.BusinessService
}

// NewBusinessHandler creates a new BusinessHandler instance.
func NewBusinessHandler(svc business.BusinessService) *BusinessHandler {
	return &BusinessHandler{Service: svc}
}

// RegisterBusinessHandler handles POST /api/businesses.
func (h *BusinessHandler) RegisterBusinessHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var view models.BusinessView
	if err := c.ShouldBindJSON(&view); err != nil {
		logger.Error("Invalid business payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Service.RegisterBusiness(c.Request.Context(), view)
	if err != nil {
		logger.Error("Failed to register business", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetBusinessHandler handles GET /api/businesses/:id.
func (h *BusinessHandler) GetBusinessHandler(c *gin.Context) {
	id := c.Param("id")
	view, err := h.Service.GetBusiness(c.Request.Context(), id)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch business", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if view == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "business not found"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// ListBusinessesHandler handles GET /api/businesses.
func (h *BusinessHandler) ListBusinessesHandler(c *gin.Context) {
	views, err := h.Service.ListBusinesses(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("Failed to list businesses", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, views)
}

// UpdateBusinessHandler handles PUT /api/businesses/:id.
func (h *BusinessHandler) UpdateBusinessHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var view models.BusinessView
	if err := c.ShouldBindJSON(&view); err != nil {
		logger.Error("Invalid business payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view.ID = c.Param("id")

	updated, err := h.Service.UpdateBusiness(c.Request.Context(), view)
	if err != nil {
		logger.Error("Failed to update business", zap.String("id", view.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UpdateBusinessImageHandler handles PUT /api/businesses/:id/image/:kind.
// The image is stored inline with the record as a self-contained reference.
func (h *BusinessHandler) UpdateBusinessImageHandler(c *gin.Context) {
	id := c.Param("id")
	kind := c.Param("kind")

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, 2<<20))
	if err != nil || len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image payload required"})
		return
	}

	if err := h.Service.UpdateProfileImage(c.Request.Context(), id, kind, string(data)); err != nil {
		utils.GetLogger().Error("Failed to update business image", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image updated"})
}

// DeleteBusinessHandler handles DELETE /api/businesses/:id.
func (h *BusinessHandler) DeleteBusinessHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.Service.DeleteBusiness(c.Request.Context(), id); err != nil {
		utils.GetLogger().Error("Delete error", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Business deleted"})
}

// StreamBusinessesHandler handles GET /api/businesses/live as a server-sent
// event stream. The subscription handle is released when the client
// disconnects.
func (h *BusinessHandler) StreamBusinessesHandler(c *gin.Context) {
	logger := utils.GetLogger()

	snapshots := make(chan []models.BusinessView, 8)
	unsubscribe, err := h.Service.SubscribeBusinesses(c.Request.Context(), func(views []models.BusinessView) {
		select {
		case snapshots <- views:
		default:
			// Drop the snapshot when the client is slow; the next change
			// delivers a fresh one.
		}
	})
	if err != nil {
		logger.Error("Failed to subscribe to businesses", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer unsubscribe()

	c.Stream(func(w io.Writer) bool {
		select {
		case views := <-snapshots:
			c.SSEvent("businesses", views)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
