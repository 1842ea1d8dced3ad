package main

import (
	"github.com/heriaond/healthy-lifestyle-tips/internal/handler"
	"github.com/heriaond/healthy-lifestyle-tips/internal/middleware"
	"github.com/heriaond/healthy-lifestyle-tips/internal/model"
	"github.com/heriaond/healthy-lifestyle-tips/internal/seed"
	"github.com/heriaond/healthy-lifestyle-tips/internal/service"
	"github.com/heriaond/healthy-lifestyle-tips/internal/store"
	"github.com/heriaond/healthy-lifestyle-tips/pkg/config"
	"github.com/heriaond/healthy-lifestyle-tips/pkg/database"
	"github.com/heriaond/healthy-lifestyle-tips/pkg/jwtutil"
	"github.com/heriaond/healthy-lifestyle-tips/pkg/logger"
	"github.com/heriaond/healthy-lifestyle-tips/pkg/mailer"
	"github.com/heriaond/healthy-lifestyle-tips/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(cfg); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting tips service...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	db, err := database.InitDB(&cfg.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	if err := database.MigrateModels(
		&model.User{},
		&model.Tip{},
		&model.Favorite{},
		&model.VerificationToken{},
	); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	if cfg.DB.Seed {
		n, err := seed.Run(db)
		if err != nil {
			log.Fatal("Failed to seed tips", zap.Error(err))
		}
		if n > 0 {
			log.Info("Seeded starter tips", zap.Int("count", n))
		}
	}

	// Wire stores, services, and handlers
	jwtUtil := jwtutil.NewJWTUtil(&cfg.JWT)
	smtpMailer := mailer.NewMailer(&cfg.SMTP)

	tipStore := store.NewTipStore(db)
	userStore := store.NewUserStore(db)
	favoriteStore := store.NewFavoriteStore(db)
	tokenStore := store.NewTokenStore(db)

	tipService := service.NewTipService(tipStore, userStore, favoriteStore)
	favoriteService := service.NewFavoriteService(favoriteStore, tipStore)
	authService := service.NewAuthService(tokenStore, userStore, smtpMailer, jwtUtil)
	adminService := service.NewAdminService(userStore, tipStore, favoriteStore)

	tipHandler := handler.NewTipHandler(tipService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(adminService)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// One-time-code sign-in, rate limited per IP
	otpLimiter := middleware.NewRateLimiter(
		rate.Limit(float64(cfg.OTP.RatePerMinute)/60.0), cfg.OTP.RateBurst)
	auth := e.Group("/api/auth")
	auth.POST("/send-otp", authHandler.SendOTP, otpLimiter.Limit)
	auth.POST("/verify-otp", authHandler.VerifyOTP)

	// Tip browsing works anonymously; a session enriches it with
	// favorites and ownership filters
	api := e.Group("/api")
	api.GET("/tips", tipHandler.Search, middleware.OptionalAuth(jwtUtil))

	// Mutations require a session
	api.POST("/tips", tipHandler.Create, middleware.RequireAuth(jwtUtil))
	api.DELETE("/tips/:id", tipHandler.Delete, middleware.RequireAuth(jwtUtil))
	api.POST("/favorites", favoriteHandler.Toggle, middleware.RequireAuth(jwtUtil))

	// Admin dashboard
	admin := api.Group("/admin", middleware.RequireAuth(jwtUtil))
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/users", adminHandler.ListUsers)
	admin.PATCH("/users/:id", adminHandler.ToggleRole)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
