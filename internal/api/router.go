package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/sparkconnect/directory/docs"
	"github.com/sparkconnect/directory/internal/api/handler"
	"github.com/sparkconnect/directory/internal/api/middleware"
	"github.com/sparkconnect/directory/internal/core/ports"
)

// Dependencies bundles everything the HTTP surface needs.
type Dependencies struct {
	DB        *mongo.Database
	Redis     *redis.Client
	Auth      ports.AuthService
	Directory ports.DirectoryService
	Media     ports.MediaService
	Sessions  ports.SessionStore
	UploadDir string
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowCredentials: true,
		AllowOriginFunc:  func(string) (bool, error) { return true, nil },
	}))
	e.Use(echoprometheus.NewMiddleware("sparkconnect"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Sessions)
	directoryHandler := handler.NewDirectoryHandler(deps.Directory)
	userHandler := handler.NewUserHandler(deps.Directory, deps.Auth)
	adminHandler := handler.NewAdminHandler(deps.Directory)
	uploadHandler := handler.NewUploadHandler(deps.Media)

	// --- API routes (session-aware) ---
	api := e.Group("/api", middleware.Session(deps.Sessions))

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/google", authHandler.GoogleLogin)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/me", authHandler.Me)
	api.POST("/auth/forgot-password", authHandler.ForgotPassword)
	api.POST("/auth/reset-password", authHandler.ResetPassword)

	api.GET("/electricians", directoryHandler.List)
	api.GET("/electricians/:id", directoryHandler.Get)
	api.POST("/electricians/:id/review", directoryHandler.AddReview)

	user := api.Group("/user", middleware.RequireSession)
	user.PUT("/update", userHandler.Update)
	user.POST("/gallery", userHandler.AddGalleryItems)
	user.DELETE("/gallery", userHandler.RemoveGalleryItem)

	admin := api.Group("/admin", middleware.RequireSession, middleware.RequireAdmin(deps.Auth))
	admin.DELETE("/users/:id", adminHandler.DeleteUser)

	api.POST("/upload", uploadHandler.Upload, middleware.RequireSession)

	// --- Uploaded media ---
	if deps.UploadDir != "" {
		e.Static("/assets/uploads", deps.UploadDir)
	}

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
