package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rutasloja/rutas-backend/config"
	"github.com/rutasloja/rutas-backend/internal/app/controller"
	"github.com/rutasloja/rutas-backend/internal/app/repository"
	"github.com/rutasloja/rutas-backend/internal/app/service"
	"github.com/rutasloja/rutas-backend/internal/db"
	"github.com/rutasloja/rutas-backend/internal/middleware"
	"github.com/rutasloja/rutas-backend/internal/router"
	"github.com/rutasloja/rutas-backend/internal/storage"
	"github.com/rutasloja/rutas-backend/pkg/logger"
	"github.com/rutasloja/rutas-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := cfg.Logging.Level
	if logLevel == "" {
		logLevel = "info"
		if cfg.Server.Environment == "development" {
			logLevel = "debug"
		}
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      cfg.Logging.Format,
		EnableColor: cfg.Logging.Format == "console",
		FilePath:    cfg.Logging.FilePath,
		MaxSizeMB:   cfg.Logging.MaxSizeMB,
		MaxBackups:  cfg.Logging.MaxBackups,
		MaxAgeDays:  cfg.Logging.MaxAgeDays,
	})

	logger.Info("Starting Rutas Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis backs logout; without it revoked tokens stay valid until expiry
	var blacklist redis.TokenBlacklist
	if cfg.Redis.Enabled() {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, logout will not revoke tokens", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			blacklist = redis.NewTokenBlacklist(redis.GetClient())
			defer func() {
				if err := redis.Close(); err != nil {
					logger.Error("Failed to close Redis connection", err)
				}
			}()
		}
	}

	s3Storage, err := storage.NewS3Storage(context.Background(), cfg.S3)
	if err != nil {
		logger.Fatal("Failed to initialize S3 storage", err)
	}

	// Initialize repositories
	database := db.GetDB()
	userRepo := repository.NewUserRepository(database)
	categoryRepo := repository.NewCategoryRepository(database)
	geoRepo := repository.NewGeoRepository(database)
	placeRepo := repository.NewPlaceRepository(database)
	routeRepo := repository.NewRouteRepository(database)
	stopRepo := repository.NewRouteStopRepository(database)
	savedRepo := repository.NewSavedRouteRepository(database)
	favoriteRepo := repository.NewFavoriteRepository(database)
	reviewRepo := repository.NewReviewRepository(database)
	eventRepo := repository.NewEventRepository(database)

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		blacklist,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	categoryService := service.NewCategoryService(categoryRepo)
	geoService := service.NewGeoService(geoRepo)
	placeService := service.NewPlaceService(placeRepo, categoryRepo, geoRepo, geoService)
	routeService := service.NewRouteService(routeRepo, categoryRepo)
	stopService := service.NewRouteStopService(stopRepo, routeRepo, placeRepo, savedRepo)
	savedRouteService := service.NewSavedRouteService(savedRepo, routeRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo, placeRepo)
	reviewService := service.NewReviewService(reviewRepo, placeRepo)
	eventService := service.NewEventService(eventRepo, placeRepo)

	if cfg.Seed.Hierarchy {
		result, err := geoService.SeedHierarchy(service.DefaultHierarchy())
		if err != nil {
			logger.Warn("Failed to seed geographic hierarchy", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			logger.Info("Geographic hierarchy seeded", map[string]interface{}{
				"provinces": result.Provinces,
				"cantons":   result.Cantons,
				"parishes":  result.Parishes,
			})
		}
	}

	// Initialize controllers
	controllers := router.Controllers{
		Auth:       controller.NewAuthController(authService),
		Category:   controller.NewCategoryController(categoryService),
		Geo:        controller.NewGeoController(geoService),
		Place:      controller.NewPlaceController(placeService),
		Route:      controller.NewRouteController(routeService, stopService),
		RouteStop:  controller.NewRouteStopController(stopService),
		SavedRoute: controller.NewSavedRouteController(savedRouteService),
		Favorite:   controller.NewFavoriteController(favoriteService),
		Review:     controller.NewReviewController(reviewService),
		Event:      controller.NewEventController(eventService),
		Upload:     controller.NewUploadController(s3Storage),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, blacklist)

	// Setup router
	r := router.NewRouter(controllers, authMiddleware, middleware.NewMetrics(), cfg)
	engine, err := r.Setup()
	if err != nil {
		logger.Fatal("Failed to set up router", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}
	logger.Info("Server stopped successfully")
}
