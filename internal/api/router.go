package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inkwell/blog-service/internal/api/handler"
	"github.com/inkwell/blog-service/internal/api/middleware"
	"github.com/inkwell/blog-service/internal/core/service"
	"github.com/inkwell/blog-service/internal/infrastructure/config"
	mongodb "github.com/inkwell/blog-service/internal/infrastructure/db/mongo"
	redisdb "github.com/inkwell/blog-service/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The recorder receives post audit entries; pass nil to disable the trail.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	cfg *config.Config,
	recorder service.ActivityRecorder,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("blog"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	postRepo := mongodb.NewPostRepository(db)
	tokenStore := redisdb.NewTokenStore(rdb, cfg.TokenTTL)

	authService := service.NewAuthService(userRepo, tokenStore, cfg.BcryptCost, log)
	postService := service.NewPostService(postRepo, recorder, log)

	authHandler := handler.NewAuthHandler(authService)
	postHandler := handler.NewPostHandler(postService)
	authRequired := middleware.Auth(tokenStore)

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout, authRequired)
	e.GET("/me", authHandler.Me, authRequired)

	// --- Post routes (index and show are public, mutations require auth) ---
	e.GET("/posts", postHandler.List)
	e.GET("/posts/:id", postHandler.Get)
	e.POST("/posts", postHandler.Create, authRequired)
	e.PUT("/posts/:id", postHandler.Update, authRequired)
	e.DELETE("/posts/:id", postHandler.Delete, authRequired)

	// --- Observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
