package handlers

import (
	"net/http"

	"barberhub/middleware"
	"barberhub/models"
	"barberhub/services/session"
	"barberhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exposes the sign-in/sign-out endpoints backed by the session
// provider.
type AuthHandler struct {
	Sessions session.SessionService
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(sessions session.SessionService) *AuthHandler {
	return &AuthHandler{Sessions: sessions}
}

func deviceFromRequest(c *gin.Context) models.DeviceInfo {
	return models.DeviceInfo{
		DeviceID:   c.GetHeader("X-Device-ID"),
		DeviceName: c.GetHeader("X-Device-Name"),
		IP:         c.ClientIP(),
	}
}

// GuestSignInHandler handles POST /api/auth/guest.
func (h *AuthHandler) GuestSignInHandler(c *gin.Context) {
	sess, token, err := h.Sessions.SignInGuest(c.Request.Context(), deviceFromRequest(c))
	if err != nil {
		utils.GetLogger().Error("Guest sign-in failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": sess, "token": token})
}

// OwnerSignInHandler handles POST /api/auth/owner. Expects a Firebase ID
// token issued to the business owner.
func (h *AuthHandler) OwnerSignInHandler(c *gin.Context) {
	var req struct {
		IDToken string `json:"idToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, token, err := h.Sessions.SignInOwner(c.Request.Context(), req.IDToken, deviceFromRequest(c))
	if err != nil {
		utils.GetLogger().Warn("Owner sign-in failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": sess, "token": token})
}

// AdminSignInHandler handles POST /api/auth/admin.
func (h *AuthHandler) AdminSignInHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, token, err := h.Sessions.SignInAdmin(c.Request.Context(), req.Email, req.Password, deviceFromRequest(c))
	if err != nil {
		utils.GetLogger().Warn("Admin sign-in failed", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": sess, "token": token})
}

// SignOutHandler handles POST /api/auth/signout.
func (h *AuthHandler) SignOutHandler(c *gin.Context) {
	sess := middleware.SessionFromContext(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No active session"})
		return
	}
	if err := h.Sessions.SignOut(c.Request.Context(), sess.ID); err != nil {
		utils.GetLogger().Error("Sign-out failed", zap.String("sessionID", sess.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// CurrentSessionHandler handles GET /api/auth/session.
func (h *AuthHandler) CurrentSessionHandler(c *gin.Context) {
	sess := middleware.SessionFromContext(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No active session"})
		return
	}
	c.JSON(http.StatusOK, sess)
}
