//go:build api

// Package testserver provides a fully wired test server for API integration tests.
package testserver

import (
	"context"
	"time"

	"moviestream/internal/handler"
	"moviestream/internal/mail"
	"moviestream/internal/ratelimit"
	"moviestream/internal/repository"
	"moviestream/internal/router"
	"moviestream/internal/service"
	"moviestream/pkg/auth"
	"moviestream/test/api/testdb"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

const (
	// TestJWTSecret is the JWT secret used in tests.
	TestJWTSecret = "test-secret-key-for-api-tests"
	// TestJWTExpiry is the access token expiry time used in tests.
	TestJWTExpiry = 15 * time.Minute
	// TestResetTokenExpiry is the reset link lifetime used in tests.
	TestResetTokenExpiry = time.Hour
	// TestFrontendURL is the base of emailed reset links.
	TestFrontendURL = "http://frontend.test"
	// TestDBName is the database name used in tests.
	TestDBName = "test_api"
	// DefaultRateLimit is high enough that ordinary tests never trip it.
	DefaultRateLimit = 1000
)

// TestServer holds all dependencies for API integration tests.
type TestServer struct {
	// Router is the Gin engine for making HTTP requests.
	Router *gin.Engine

	// Containers
	MongoDB *testdb.MongoContainer
	Redis   *testdb.RedisContainer

	// Repositories (for direct database access in tests)
	UserRepo  repository.UserRepository
	MovieRepo repository.MovieRepository

	// Services (for direct service access in tests)
	AuthService     service.AuthServicer
	PasswordService service.PasswordServicer
	UserService     service.UserServicer
	MovieService    service.MovieServicer

	// Mailbox records every email the server sends.
	Mailbox *Mailbox

	JWTManager *auth.JWTManager
	Logger     *logrus.Logger
	LogHook    *test.Hook
}

// New creates a new test server with all dependencies wired up.
func New(ctx context.Context) (*TestServer, error) {
	gin.SetMode(gin.TestMode)

	mongoDB, err := testdb.SetupMongoDB(ctx, TestDBName)
	if err != nil {
		return nil, err
	}

	redisContainer, err := testdb.SetupRedis(ctx)
	if err != nil {
		_ = mongoDB.Cleanup(ctx)
		return nil, err
	}

	logger, hook := test.NewNullLogger()

	// Repository layer
	userRepo := repository.NewUserRepository(mongoDB.Database)
	movieRepo := repository.NewMovieRepository(mongoDB.Database)
	for _, r := range []interface{ EnsureIndexes(context.Context) error }{userRepo, movieRepo} {
		if err := r.EnsureIndexes(ctx); err != nil {
			_ = redisContainer.Cleanup(ctx)
			_ = mongoDB.Cleanup(ctx)
			return nil, err
		}
	}

	// Mail goes to an in-memory mailbox through the real mail service.
	mailbox := NewMailbox()
	mailer := mail.NewService(mailbox, mail.Config{
		From:        "no-reply@moviestream.test",
		FrontendURL: TestFrontendURL,
		LinkExpiry:  TestResetTokenExpiry,
	}, logger)

	jwtManager := auth.NewJWTManager(TestJWTSecret, TestJWTExpiry)

	// Service layer
	authService := service.NewAuthService(userRepo, jwtManager)
	passwordService := service.NewPasswordService(service.PasswordServiceConfig{
		UserRepo:    userRepo,
		Mailer:      mailer,
		TokenExpiry: TestResetTokenExpiry,
		Logger:      logger,
	})
	userService := service.NewUserService(userRepo)
	movieService := service.NewMovieService(movieRepo)

	ts := &TestServer{
		MongoDB:         mongoDB,
		Redis:           redisContainer,
		UserRepo:        userRepo,
		MovieRepo:       movieRepo,
		AuthService:     authService,
		PasswordService: passwordService,
		UserService:     userService,
		MovieService:    movieService,
		Mailbox:         mailbox,
		JWTManager:      jwtManager,
		Logger:          logger,
		LogHook:         hook,
	}
	ts.Router = ts.NewRouter(DefaultRateLimit, 15*time.Minute)

	return ts, nil
}

// NewRouter builds a router over the shared dependencies with its own rate
// limit. Counters live in the shared Redis.
func (ts *TestServer) NewRouter(maxRequests int, window time.Duration) *gin.Engine {
	return router.Setup(&router.Config{
		AuthHandler:     handler.NewAuthHandler(ts.AuthService),
		PasswordHandler: handler.NewPasswordHandler(ts.PasswordService),
		UserHandler:     handler.NewUserHandler(ts.UserService),
		MovieHandler:    handler.NewMovieHandler(ts.MovieService),
		HealthHandler: handler.NewHealthHandler(map[string]handler.Pinger{
			"mongodb": ts.MongoDB,
			"redis":   ts.Redis.Cache,
		}),
		TokenManager: ts.JWTManager,
		Limiter:      ratelimit.NewLimiter(ts.Redis.Cache, maxRequests, window),
		Logger:       ts.Logger,
		CORSOrigin:   TestFrontendURL,
	})
}

// Cleanup terminates all containers.
func (ts *TestServer) Cleanup(ctx context.Context) {
	if ts.Redis != nil {
		_ = ts.Redis.Cleanup(ctx)
	}
	if ts.MongoDB != nil {
		_ = ts.MongoDB.Cleanup(ctx)
	}
}
