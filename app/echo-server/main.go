package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skinMatch/app/echo-server/router"
	"skinMatch/business/catalog"
	"skinMatch/business/measurement"
	"skinMatch/business/preferences"
	"skinMatch/business/profile"
	"skinMatch/business/reco"
	userService "skinMatch/business/user"
	"skinMatch/internal/middleware"
	"skinMatch/internal/repository/notification"
	psqlRepo "skinMatch/internal/repository/postgres"
	redisRepo "skinMatch/internal/repository/redis"
	"skinMatch/internal/rest"
	"skinMatch/pkg/config"
	"skinMatch/pkg/database"
	redisdb "skinMatch/pkg/database/redis"
	"skinMatch/pkg/logger"
	"skinMatch/pkg/metrics"
	"skinMatch/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting SkinMatch", "version", cfg.App.Version)

	utils.SetJWTSecret(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	defer func() {
		if err := redisdb.CloseRedisClient(redisClient); err != nil {
			logger.Error("Failed to close Redis client", "error", err)
		}
	}()

	logger.Info("Redis connected successfully")

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	profileRepo := psqlRepo.NewProfileRepository(db)
	prefsRepo := psqlRepo.NewPreferencesRepository(db)
	measurementRepo := psqlRepo.NewMeasurementRepository(db)
	catalogRepo := psqlRepo.NewCatalogRepository(db)
	recoRepo := psqlRepo.NewRecommendationRepository(db)
	engagementRepo := psqlRepo.NewEngagementRepository(db)
	recoCfgRepo := psqlRepo.NewRecoConfigRepository(db)

	tokenRepo := redisRepo.NewTokenRepository(redisClient)
	catalogCache := redisRepo.NewCatalogCache(redisClient, catalogRepo, 5*time.Minute)

	// Init service
	usrService := userService.NewUserService(userRepo, validate, mailjetEmail, tokenRepo,
		cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl)
	profileService := profile.NewProfileService(profileRepo)
	prefsService := preferences.NewPreferencesService(prefsRepo)
	measurementService := measurement.NewMeasurementService(measurementRepo, profileService)
	catalogService := catalog.NewCatalogService(catalogRepo)
	recoService := reco.NewService(
		profileRepo,
		prefsRepo,
		measurementRepo,
		catalogCache,
		recoRepo,
		engagementRepo,
		recoCfgRepo,
		reco.DefaultConfig(),
	)

	// Init handler
	userHandler := rest.NewUserHandler(usrService)
	profileHandler := rest.NewProfileHandler(profileService)
	prefsHandler := rest.NewPreferencesHandler(prefsService)
	measurementHandler := rest.NewMeasurementHandler(measurementService, recoService)
	catalogHandler := rest.NewCatalogHandler(catalogService, catalogCache)
	recoHandler := rest.NewRecoHandler(recoService)
	recoAdminHandler := rest.NewRecoAdminHandler(recoCfgRepo)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware
	authRequired := middleware.AuthMiddlewareWithRedis(usrService)
	adminOnly := middleware.AdminOnly()
	selfOrAdmin := middleware.SelfOrAdmin()

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired, adminOnly, selfOrAdmin)
	router.SetupProfileRoutes(api, profileHandler, authRequired)
	router.SetupPreferencesRoutes(api, prefsHandler, authRequired)
	router.SetupMeasurementRoutes(api, measurementHandler, authRequired)
	router.SetupCatalogRoutes(api, catalogHandler, authRequired, adminOnly)
	router.SetupRecoRoutes(api, recoHandler, authRequired)
	router.SetupRecoAdminRoutes(api, recoAdminHandler, authRequired, adminOnly)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
