package routes

import (
	"net/http"
	"time"

	"barberhub/handlers"
	"barberhub/middleware"
	"barberhub/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers session endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/guest", hb.GuestSignInHandler)
		api.POST("/owner", hb.OwnerSignInHandler)
		api.POST("/admin", hb.AdminSignInHandler)

		// Protected routes (Require Authentication)
		protected := api.Group("")
		protected.Use(middleware.SessionAuthMiddleware(hb.Sessions))
		protected.POST("/signout", hb.SignOutHandler)
		protected.GET("/session", hb.CurrentSessionHandler)
	}
}

// RegisterBusinessRoutes registers business management endpoints.
func RegisterBusinessRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/businesses")
	{
		// Public discovery endpoints.
		api.GET("", hb.ListBusinessesHandler)
		api.GET("/:id", hb.GetBusinessHandler)

		// Endpoints that modify business data require an owner or admin
		// session bound to the record.
		protected := api.Group("")
		protected.Use(middleware.SessionAuthMiddleware(hb.Sessions))
		protected.POST("", hb.RegisterBusinessHandler)
		protected.PUT("/:id", middleware.OwnerAuthMiddleware(), hb.UpdateBusinessHandler)
		protected.PUT("/:id/image/:kind", middleware.OwnerAuthMiddleware(), hb.UpdateBusinessImageHandler)
		protected.POST("/:id/upgrade", middleware.OwnerAuthMiddleware(), hb.UpgradePlanIntentHandler)
	}
}

// RegisterInquiryRoutes registers the public lead-intake endpoint.
func RegisterInquiryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/inquiries", hb.SubmitInquiryHandler)
}

// RegisterAdminRoutes registers the platform-operator console endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	api.Use(middleware.SessionAuthMiddleware(hb.Sessions))
	api.Use(middleware.AdminAuthMiddleware())
	{
		api.GET("/stats", hb.DashboardStatsHandler)
		api.GET("/stats/snapshot", hb.CachedStatsHandler)

		api.GET("/businesses/live", hb.StreamBusinessesHandler)
		api.POST("/businesses/bulk-status", hb.BulkStatusHandler)
		api.POST("/businesses/bulk-delete", hb.BulkDeleteHandler)
		api.DELETE("/businesses/:id", hb.DeleteBusinessHandler)

		api.GET("/inquiries", hb.ListInquiriesHandler)
		api.GET("/inquiries/live", hb.StreamInquiriesHandler)
		api.PATCH("/inquiries/:id/status", hb.UpdateInquiryStatusHandler)
		api.DELETE("/inquiries/:id", hb.DeleteInquiryHandler)

		api.POST("/storage/:folder", hb.UploadImageHandler)
		api.DELETE("/storage/:folder/:id", hb.DeleteImageHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"message":  "Hi, I'm BarberHub",
			"backends": utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes sets up CORS and attaches all route groups.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Device-ID", "X-Device-Name"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterBusinessRoutes(r, hb)
	RegisterInquiryRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
