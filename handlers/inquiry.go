package handlers

import (
	"io"
	"net/http"

	"barberhub/models"
	"barberhub/services/inquiry"
	"barberhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InquiryHandler exposes the lead intake and triage endpoints.
type InquiryHandler struct {
	Service inquiry.InquiryService
}

// NewInquiryHandler creates a new InquiryHandler instance.
func NewInquiryHandler(svc inquiry.InquiryService) *InquiryHandler {
	return &InquiryHandler{Service: svc}
}

// SubmitInquiryHandler handles POST /api/inquiries (public contact form).
func (h *InquiryHandler) SubmitInquiryHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var payload models.Inquiry
	if err := c.ShouldBindJSON(&payload); err != nil {
		logger.Error("Invalid inquiry payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Service.SubmitInquiry(c.Request.Context(), payload)
	if err != nil {
		logger.Error("Failed to submit inquiry", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListInquiriesHandler handles GET /api/admin/inquiries.
func (h *InquiryHandler) ListInquiriesHandler(c *gin.Context) {
	inquiries, err := h.Service.ListInquiries(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("Failed to list inquiries", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, inquiries)
}

// UpdateInquiryStatusHandler handles PATCH /api/admin/inquiries/:id/status.
func (h *InquiryHandler) UpdateInquiryStatusHandler(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		utils.GetLogger().Error("Failed to update inquiry status", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inquiry updated"})
}

// DeleteInquiryHandler handles DELETE /api/admin/inquiries/:id.
func (h *InquiryHandler) DeleteInquiryHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.Service.DeleteInquiry(c.Request.Context(), id); err != nil {
		utils.GetLogger().Error("Failed to delete inquiry", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inquiry deleted"})
}

// StreamInquiriesHandler handles GET /api/admin/inquiries/live as a
// server-sent event stream for the admin console.
func (h *InquiryHandler) StreamInquiriesHandler(c *gin.Context) {
	snapshots := make(chan []models.Inquiry, 8)
	unsubscribe, err := h.Service.SubscribeInquiries(c.Request.Context(), func(inquiries []models.Inquiry) {
		select {
		case snapshots <- inquiries:
		default:
		}
	})
	if err != nil {
		utils.GetLogger().Error("Failed to subscribe to inquiries", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer unsubscribe()

	c.Stream(func(w io.Writer) bool {
		select {
		case inquiries := <-snapshots:
			c.SSEvent("inquiries", inquiries)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
