package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"innroutes/config"
	"innroutes/cron"
	"innroutes/database"
	tripRepoPkg "innroutes/database/repository/trip"
	userRepoPkg "innroutes/database/repository/user"
	"innroutes/handlers"
	"innroutes/middleware"
	"innroutes/routes"
	"innroutes/services/auth"
	"innroutes/services/intelligence"
	"innroutes/services/notification"
	"innroutes/services/storage"
	"innroutes/services/tasks"
	"innroutes/services/trip"
	"innroutes/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()
	utils.StartHealthMonitor([]*redis.Client{
		utils.GetAuthCacheClient(),
		utils.GetOTPCacheClient(),
	}, database.MongoClient)

	// Avatar storage is optional; without credentials the endpoint
	// reports itself unavailable.
	var storageSvc storage.StorageService
	if cloudinarySvc, err := storage.NewCloudinaryStorageService(); err != nil {
		logger.Sugar().Warnf("main: avatar storage disabled: %v", err)
	} else {
		storageSvc = cloudinarySvc
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	tripRepo := tripRepoPkg.NewMongoTripRepo()

	// task queue: code delivery and trip reminders.
	asynqClient := tasks.NewAsynqClient()
	defer asynqClient.Close()

	notificationService, err := notification.NewDefaultNotificationService(userRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to build notification service: %v", err)
	}
	cron.InitWorker(notificationService)

	// auth: delegate to the configured identity provider, or run the
	// local redis-backed flow when none is configured.
	sessionStore := auth.NewRedisSessionStore(utils.GetOTPCacheClient())
	var authService auth.AuthService
	if cfg := config.AppConfig; cfg.AuthProviderURL != "" && cfg.AuthProviderKey != "" {
		logger.Sugar().Infof("main: using identity provider at %s", cfg.AuthProviderURL)
		providerClient := auth.NewProviderClient(cfg.AuthProviderURL, cfg.AuthProviderKey)
		authService = auth.NewProviderAuthService(providerClient, sessionStore, userRepo)
	} else {
		logger.Sugar().Info("main: no identity provider configured, using local OTP flow")
		authService = auth.NewLocalAuthService(sessionStore, userRepo, tasks.OTPDelivery(asynqClient))
	}

	resolver := intelligence.NewDefaultResolver(config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	tripService := trip.NewDefaultTripService(tripRepo, tasks.TripReminder(asynqClient))

	// Assemble the handler bundle.
	handlerBundle := handlers.NewHandlerBundle(
		&handlers.AuthHandler{Svc: authService},
		&handlers.UserHandler{Auth: authService, Users: userRepo, Storage: storageSvc},
		&handlers.IntelligenceHandler{Resolver: resolver},
		&handlers.TripHandler{Svc: tripService},
	)

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
