package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moviestream/internal/cache"
	"moviestream/internal/config"
	"moviestream/internal/database"
	"moviestream/internal/handler"
	"moviestream/internal/logging"
	"moviestream/internal/mail"
	"moviestream/internal/ratelimit"
	"moviestream/internal/repository"
	"moviestream/internal/router"
	"moviestream/internal/service"
	"moviestream/internal/validator"
	"moviestream/pkg/auth"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// @title           Movie Streaming API
// @version         1.0
// @description     Users, movies and account recovery for the movie streaming frontend.

// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg := config.Load()

	logger := logging.Setup(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	logger.Info("Configuration loaded")

	// Register custom validators
	validator.RegisterCustomValidators()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Database
	mongoDB := database.NewMongoDB(cfg.MongoURI, cfg.MongoDatabase)
	defer mongoDB.Close()

	// Repository layer
	userRepo := repository.NewUserRepository(mongoDB.Database)
	movieRepo := repository.NewMovieRepository(mongoDB.Database)

	indexCtx, indexCancel := context.WithTimeout(context.Background(), 30*time.Second)
	for name, repo := range map[string]interface{ EnsureIndexes(context.Context) error }{
		repository.UsersCollection:  userRepo,
		repository.MoviesCollection: movieRepo,
	} {
		if err := repo.EnsureIndexes(indexCtx); err != nil {
			log.WithError(err).WithField("collection", name).Fatal("Failed to create indexes")
		}
	}
	indexCancel()

	// Redis rate limiting (optional)
	var limiter *ratelimit.Limiter
	checks := map[string]handler.Pinger{"mongodb": mongoDB}
	if cfg.RedisURI != "" {
		redisCache, err := cache.NewRedis(cfg.RedisURI)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer redisCache.Close()

		limiter = ratelimit.NewLimiter(redisCache, cfg.RateLimitMax, cfg.RateLimitWindow)
		checks["redis"] = redisCache
		log.WithFields(log.Fields{
			"max":    cfg.RateLimitMax,
			"window": cfg.RateLimitWindow,
		}).Info("Rate limiting enabled")
	} else {
		log.Warn("REDIS_URI not set, rate limiting disabled")
	}

	// Mail
	mailer := mail.NewService(mail.NewSender(cfg.SendGridAPIKey, logger), mail.Config{
		From:        cfg.MailFrom,
		FrontendURL: cfg.FrontendURL,
		LinkExpiry:  cfg.ResetTokenExpiry,
	}, logger)

	// JWT Manager
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)

	// Service layer
	authService := service.NewAuthService(userRepo, jwtManager)
	passwordService := service.NewPasswordService(service.PasswordServiceConfig{
		UserRepo:    userRepo,
		Mailer:      mailer,
		TokenExpiry: cfg.ResetTokenExpiry,
		Logger:      logger,
	})
	userService := service.NewUserService(userRepo)
	movieService := service.NewMovieService(movieRepo)

	// Router
	r := router.Setup(&router.Config{
		AuthHandler:     handler.NewAuthHandler(authService),
		PasswordHandler: handler.NewPasswordHandler(passwordService),
		UserHandler:     handler.NewUserHandler(userService),
		MovieHandler:    handler.NewMovieHandler(movieService),
		HealthHandler:   handler.NewHealthHandler(checks),
		TokenManager:    jwtManager,
		Limiter:         limiter,
		Logger:          logger,
		CORSOrigin:      cfg.CORSOrigin,
	})

	// Create HTTP server for graceful shutdown support
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.WithField("addr", addr).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Info("Shutdown signal received")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown error")
	}

	log.Info("Server shutdown complete")
}
