package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/frienemy/social-api/internal/api/handler"
	"github.com/frienemy/social-api/internal/api/middleware"
	"github.com/frienemy/social-api/internal/core/ports"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Dependencies are constructed once at process start and injected here; the
// router holds no ambient state of its own.
func NewRouter(db *mongo.Database, rdb *redis.Client, users ports.UserService, tokens ports.TokenService, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("social"))

	// --- Gate stages ---
	authenticate := middleware.Auth(tokens)
	authorize := middleware.Owner()

	// --- User routes ---
	userHandler := handler.NewUserHandler(users)

	e.GET("/users", userHandler.GetAll)
	e.POST("/users/register", userHandler.Register)
	e.POST("/users/login", userHandler.Login)

	e.PATCH("/users/add-friend", userHandler.AddFriend, authenticate)
	e.PATCH("/users/add-enemy", userHandler.AddEnemy, authenticate)
	e.PATCH("/users/remove-friend", userHandler.RemoveFriend, authenticate)
	e.PATCH("/users/remove-enemy", userHandler.RemoveEnemy, authenticate)

	e.PATCH("/users/edit-profile", userHandler.EditProfile, authenticate, authorize)
	e.PATCH("/users/delete-user", userHandler.DeleteUser, authenticate, authorize)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – are dependencies up?

	return e
}
