// File: barberhub/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"barberhub/config"
	"barberhub/cron"
	"barberhub/database"
	businessRepo "barberhub/database/repository/business"
	inquiryRepo "barberhub/database/repository/inquiry"
	"barberhub/handlers"
	"barberhub/middleware"
	"barberhub/routes"
	"barberhub/services/billing"
	"barberhub/services/business"
	"barberhub/services/inquiry"
	"barberhub/services/metrics"
	"barberhub/services/session"
	"barberhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	documentStore := database.NewStore()
	utils.InitCache()
	utils.InitSessionCache()

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Warnf("main: cloudinary storage unavailable, image uploads stay inline: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	bizRepo := businessRepo.NewStoreBusinessRepo(documentStore)
	leadRepo := inquiryRepo.NewStoreInquiryRepo(documentStore)

	// services.
	businessService := &business.DefaultBusinessService{
		Repo: bizRepo,
	}
	inquiryService := &inquiry.DefaultInquiryService{
		Repo:  leadRepo,
		Queue: cron.NewQueueClient(),
	}
	metricsService := &metrics.DefaultMetricsService{
		Repo:  bizRepo,
		Cache: utils.GetCacheClient(),
	}
	sessionService := &session.DefaultSessionService{
		Cache:        utils.GetSessionCacheClient(),
		BusinessRepo: bizRepo,
		FirebaseAuth: utils.FirebaseAuth,
	}
	billingService := &billing.DefaultBillingService{}

	// Start the background worker (lead notifications, metrics snapshots).
	cron.InitWorker(metricsService)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetSessionCacheClient()},
		database.MongoClient,
	)

	businessHandler := handlers.NewBusinessHandler(businessService)
	inquiryHandler := handlers.NewInquiryHandler(inquiryService)
	adminHandler := handlers.NewAdminHandler(businessService, metricsService, billingService)
	authHandler := handlers.NewAuthHandler(sessionService)
	storageHandler := handlers.NewStorageHandler(cloudinaryStorageService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Sessions: sessionService,

		// Auth endpoints.
		GuestSignInHandler:    authHandler.GuestSignInHandler,
		OwnerSignInHandler:    authHandler.OwnerSignInHandler,
		AdminSignInHandler:    authHandler.AdminSignInHandler,
		SignOutHandler:        authHandler.SignOutHandler,
		CurrentSessionHandler: authHandler.CurrentSessionHandler,

		// Business endpoints.
		RegisterBusinessHandler:    businessHandler.RegisterBusinessHandler,
		GetBusinessHandler:         businessHandler.GetBusinessHandler,
		ListBusinessesHandler:      businessHandler.ListBusinessesHandler,
		UpdateBusinessHandler:      businessHandler.UpdateBusinessHandler,
		UpdateBusinessImageHandler: businessHandler.UpdateBusinessImageHandler,
		DeleteBusinessHandler:      businessHandler.DeleteBusinessHandler,
		StreamBusinessesHandler:    businessHandler.StreamBusinessesHandler,
		UpgradePlanIntentHandler:   adminHandler.UpgradePlanIntentHandler,

		// Inquiry endpoints.
		SubmitInquiryHandler:       inquiryHandler.SubmitInquiryHandler,
		ListInquiriesHandler:       inquiryHandler.ListInquiriesHandler,
		UpdateInquiryStatusHandler: inquiryHandler.UpdateInquiryStatusHandler,
		DeleteInquiryHandler:       inquiryHandler.DeleteInquiryHandler,
		StreamInquiriesHandler:     inquiryHandler.StreamInquiriesHandler,

		// Admin endpoints.
		DashboardStatsHandler: adminHandler.DashboardStatsHandler,
		CachedStatsHandler:    adminHandler.CachedStatsHandler,
		BulkStatusHandler:     adminHandler.BulkStatusHandler,
		BulkDeleteHandler:     adminHandler.BulkDeleteHandler,

		// Storage endpoints.
		UploadImageHandler: storageHandler.UploadImageHandler,
		DeleteImageHandler: storageHandler.DeleteImageHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
