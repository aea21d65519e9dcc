package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/skillbridge/exchange-system/internal/api/handler"
	"github.com/skillbridge/exchange-system/internal/api/middleware"
	"github.com/skillbridge/exchange-system/internal/core/domain"
	"github.com/skillbridge/exchange-system/internal/core/ports"
	"github.com/skillbridge/exchange-system/internal/core/service"
	mongorepo "github.com/skillbridge/exchange-system/internal/infrastructure/db/mongo"
)

// Dependencies carries the infrastructure the router needs to assemble the
// service graph.
type Dependencies struct {
	Logger      zerolog.Logger
	JWTSecret   string
	MongoClient *mongodriver.Client
	Database    *mongodriver.Database
	Redis       *goredis.Client
	Notify      ports.NotificationSink
}

// NewRouter wires repositories, services and handlers into a configured echo
// instance.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echoprometheus.NewMiddleware("skillex"))

	// Repositories
	userRepo := mongorepo.NewUserRepository(deps.Database)
	skillRepo := mongorepo.NewSkillRepository(deps.Database)
	sessionRepo := mongorepo.NewSessionRepository(deps.Database)

	// Services
	authService := service.NewAuthService(userRepo, deps.JWTSecret, 24*time.Hour)
	directoryService := service.NewDirectoryService(userRepo, skillRepo, deps.Logger)
	matchingService := service.NewMatchingService(userRepo, skillRepo, deps.Logger)
	sessionService := service.NewSessionService(sessionRepo, userRepo, skillRepo, deps.Notify, deps.Logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, deps.Logger)
	directoryHandler := handler.NewDirectoryHandler(directoryService, deps.Logger)
	matchingHandler := handler.NewMatchingHandler(matchingService, deps.Logger)
	sessionHandler := handler.NewSessionHandler(sessionService, deps.Logger)
	healthHandler := handler.NewHealthHandler(deps.MongoClient, deps.Redis)

	// Operational endpoints
	e.GET("/health/live", healthHandler.Live)
	e.GET("/health/ready", healthHandler.Ready)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	v1 := e.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	authed := v1.Group("", middleware.Auth(deps.JWTSecret))

	users := authed.Group("/users")
	users.GET("/:id", directoryHandler.GetUser)
	users.PUT("/me/skills", directoryHandler.UpdateMySkills)
	users.PUT("/me/availability", directoryHandler.UpdateMyAvailability)

	skills := authed.Group("/skills")
	skills.GET("", directoryHandler.ListSkills)
	skills.POST("", directoryHandler.CreateSkill, middleware.RBAC(string(domain.RoleAdmin)))

	matching := authed.Group("/matching")
	matching.GET("/matches", matchingHandler.Matches)
	matching.GET("/skills/:skillId/partners", matchingHandler.Partners)
	matching.GET("/stats", matchingHandler.Stats)

	sessions := authed.Group("/sessions")
	sessions.POST("", sessionHandler.Create)
	sessions.GET("", sessionHandler.List)
	sessions.GET("/stats", sessionHandler.Stats)
	sessions.GET("/:id", sessionHandler.Get)
	sessions.PUT("/:id", sessionHandler.Update)
	sessions.PATCH("/:id/confirm", sessionHandler.Confirm)
	sessions.PATCH("/:id/cancel", sessionHandler.Cancel)
	sessions.PATCH("/:id/complete", sessionHandler.Complete)
	sessions.DELETE("/:id", sessionHandler.Delete)

	return e
}
