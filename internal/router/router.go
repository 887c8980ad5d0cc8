// Package router sets up HTTP routes for the API.
package router

import (
	_ "moviestream/swagger" // Import generated swagger docs

	"moviestream/internal/handler"
	"moviestream/internal/middleware"
	"moviestream/internal/ratelimit"
	"moviestream/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Config holds all dependencies needed to set up routes.
type Config struct {
	AuthHandler     *handler.AuthHandler
	PasswordHandler *handler.PasswordHandler
	UserHandler     *handler.UserHandler
	MovieHandler    *handler.MovieHandler
	HealthHandler   *handler.HealthHandler
	TokenManager    auth.TokenManager
	// Limiter is optional; nil disables rate limiting.
	Limiter    *ratelimit.Limiter
	Logger     *logrus.Logger
	CORSOrigin string
}

// Setup creates and configures the Gin router.
func Setup(cfg *Config) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORSOrigin))

	// Swagger docs at /docs
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", cfg.HealthHandler.Health)

	requireAuth := middleware.Auth(cfg.TokenManager)

	api := r.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", middleware.RateLimit(cfg.Limiter, "register"), cfg.AuthHandler.Register)
			authRoutes.POST("/login", middleware.RateLimit(cfg.Limiter, "login"), cfg.AuthHandler.Login)
			authRoutes.GET("/me", requireAuth, cfg.AuthHandler.Me)
		}
	}

	// Resource routes are served both at the root and under /api.
	for _, group := range []*gin.RouterGroup{&r.RouterGroup, api} {
		registerPasswordRoutes(group, cfg)
		registerUserRoutes(group, cfg, requireAuth)
		registerMovieRoutes(group, cfg, requireAuth)
	}

	return r
}

func registerPasswordRoutes(g *gin.RouterGroup, cfg *Config) {
	password := g.Group("/password")
	{
		password.POST("/forgot-password", middleware.RateLimit(cfg.Limiter, "forgot-password"), cfg.PasswordHandler.ForgotPassword)
		password.GET("/reset-password/:token", cfg.PasswordHandler.ValidateResetToken)
		password.POST("/reset-password/:token", middleware.RateLimit(cfg.Limiter, "reset-password"), cfg.PasswordHandler.ResetPassword)
		password.POST("/reset-password", middleware.RateLimit(cfg.Limiter, "reset-password"), cfg.PasswordHandler.ResetPassword)
	}
}

func registerUserRoutes(g *gin.RouterGroup, cfg *Config, requireAuth gin.HandlerFunc) {
	users := g.Group("/users")
	{
		// Public alias of /api/auth/register.
		users.POST("/register", middleware.RateLimit(cfg.Limiter, "register"), cfg.AuthHandler.Register)

		users.GET("", requireAuth, cfg.UserHandler.GetAllUsers)
		users.POST("", requireAuth, cfg.UserHandler.CreateUser)
		users.GET("/:id", requireAuth, cfg.UserHandler.GetUser)
		users.PUT("/:id", requireAuth, middleware.SelfOnly("id"), cfg.UserHandler.UpdateUser)
		users.DELETE("/:id", requireAuth, middleware.SelfOnly("id"), cfg.UserHandler.DeleteUser)
	}
}

func registerMovieRoutes(g *gin.RouterGroup, cfg *Config, requireAuth gin.HandlerFunc) {
	movies := g.Group("/movies")
	{
		movies.GET("", cfg.MovieHandler.ListMovies)
		movies.GET("/:id", cfg.MovieHandler.GetMovie)
		movies.POST("", requireAuth, cfg.MovieHandler.CreateMovie)
		movies.PUT("/:id", requireAuth, cfg.MovieHandler.UpdateMovie)
		movies.DELETE("/:id", requireAuth, cfg.MovieHandler.DeleteMovie)
	}
}
