package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/erpdash/user-directory/internal/api/handler"
	"github.com/erpdash/user-directory/internal/api/middleware"
	"github.com/erpdash/user-directory/internal/core/domain"
	"github.com/erpdash/user-directory/internal/core/ports"
)

// Dependencies carries the constructed services the router wires to routes.
// Mongo and Redis may be nil when the memory store is in use; the readiness
// probe then checks nothing beyond process liveness.
type Dependencies struct {
	Auth      ports.AuthService
	Directory ports.DirectoryService
	Audit     ports.AuditRepository
	JWTSecret string
	Mongo     *mongo.Database
	Redis     *redis.Client
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("directory_http"))

	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Directory)
	auditHandler := handler.NewAuditHandler(deps.Audit)
	authMW := middleware.Auth(deps.JWTSecret, deps.Auth)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMW)

	// --- Directory routes ---
	// Every route passes through the directory's policy table; the RBAC guard
	// on admin-only routes just fails fast.
	v1 := e.Group("/v1", authMW)
	v1.GET("/users", userHandler.List)
	v1.GET("/users/:id", userHandler.Get)
	v1.POST("/users", userHandler.Create, middleware.RBAC(string(domain.RoleAdmin)))
	v1.PUT("/users/:id", userHandler.Update)
	v1.DELETE("/users/:id", userHandler.Delete, middleware.RBAC(string(domain.RoleAdmin)))
	v1.GET("/audit", auditHandler.List, middleware.RBAC(string(domain.RoleAdmin)))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
