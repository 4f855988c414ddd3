package handlers

import (
	"barberhub/services/session"

	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the route handlers wired up in main.
type HandlerBundle struct {
	Sessions session.SessionService

	// Auth endpoints.
	GuestSignInHandler    gin.HandlerFunc
	OwnerSignInHandler    gin.HandlerFunc
	AdminSignInHandler    gin.HandlerFunc
	SignOutHandler        gin.HandlerFunc
	CurrentSessionHandler gin.HandlerFunc

	// Business endpoints.
	RegisterBusinessHandler    gin.HandlerFunc
	GetBusinessHandler         gin.HandlerFunc
	ListBusinessesHandler      gin.HandlerFunc
	UpdateBusinessHandler      gin.HandlerFunc
	UpdateBusinessImageHandler gin.HandlerFunc
	DeleteBusinessHandler      gin.HandlerFunc
	StreamBusinessesHandler    gin.HandlerFunc
	UpgradePlanIntentHandler   gin.HandlerFunc

	// Inquiry endpoints.
	SubmitInquiryHandler       gin.HandlerFunc
	ListInquiriesHandler       gin.HandlerFunc
	UpdateInquiryStatusHandler gin.HandlerFunc
	DeleteInquiryHandler       gin.HandlerFunc
	StreamInquiriesHandler     gin.HandlerFunc

	// Admin endpoints.
	DashboardStatsHandler gin.HandlerFunc
	CachedStatsHandler    gin.HandlerFunc
	BulkStatusHandler     gin.HandlerFunc
	BulkDeleteHandler     gin.HandlerFunc

	// Storage endpoints.
	UploadImageHandler gin.HandlerFunc
	DeleteImageHandler gin.HandlerFunc
}
