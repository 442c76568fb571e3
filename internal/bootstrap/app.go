package bootstrap

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/handler"
	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/internal/ratelimit"
	"github.com/taskdeck/taskdeck/internal/service"
	"github.com/taskdeck/taskdeck/internal/store"
)

type App struct {
	Echo  *echo.Echo
	Store *store.Client
	Redis *redis.Client
}

func NewApp() *App {
	return &App{
		Echo: echo.New(),
	}
}

func (a *App) Initialize(ctx context.Context) error {
	// Load environment configuration
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}
	cfg := &config.DefaultEnvConfig

	// Initialize logging
	logger.InitLogging(cfg.LOG_FILE_PATH)
	logger.SetLevel(cfg.LOG_LEVEL)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	// Initialize datastore connection
	st, err := store.NewClient(ctx, cfg.GCP_PROJECT_ID)
	if err != nil {
		return fmt.Errorf("failed to initialize datastore: %w", err)
	}
	a.Store = st

	// Redis backs the rate limiter only.
	a.Redis = redis.NewClient(&redis.Options{Addr: cfg.REDIS_ADDR})
	limiter := ratelimit.NewLimiter(a.Redis, "ratelimit:")

	// Token verification against the identity provider's key set. The key
	// set refreshes in the background for the process lifetime.
	verifier, err := auth.NewVerifier(ctx, cfg.JWKSURL(), cfg.AUTH_ISSUER, cfg.AUTH_AUDIENCE)
	if err != nil {
		return fmt.Errorf("failed to initialize token verifier: %w", err)
	}

	// Initialize dependencies
	taskSvc := service.NewTaskService(st.Tasks())
	profileSvc := service.NewProfileService(st.Profiles())

	taskHandler := handler.NewTaskHandler(taskSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	exportHandler := handler.NewExportHandler(taskSvc)
	healthHandler := handler.NewHealthHandler()

	a.RegisterMiddlewares(limiter)
	a.RegisterRoutes(verifier, healthHandler, taskHandler, profileHandler, exportHandler)

	return nil
}

func (a *App) RegisterMiddlewares(limiter *ratelimit.Limiter) {
	cfg := &config.DefaultEnvConfig

	a.Echo.Use(middleware.RequestID())
	a.Echo.Use(requestIDToContext)
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORS_ORIGINS,
	}))
	a.Echo.Use(ratelimit.Middleware(limiter, cfg.RATE_LIMIT, cfg.RateWindow()))
}

// requestIDToContext copies the request id assigned by the RequestID
// middleware into the request context so log lines can carry it.
func requestIDToContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		rid := c.Response().Header().Get(echo.HeaderXRequestID)
		req := c.Request()
		c.SetRequest(req.WithContext(logger.WithRequestID(req.Context(), rid)))
		return next(c)
	}
}

func (a *App) RegisterRoutes(
	verifier *auth.Verifier,
	healthHandler *handler.HealthHandler,
	taskHandler *handler.TaskHandler,
	profileHandler *handler.ProfileHandler,
	exportHandler *handler.ExportHandler,
) {
	a.Echo.GET("/health", healthHandler.Handle)

	authed := a.Echo.Group("", auth.Middleware(verifier))
	authed.GET("/profile", profileHandler.GetHandler)
	authed.PUT("/profile", profileHandler.UpdateHandler)
	authed.GET("/tasks", taskHandler.ListHandler)
	authed.POST("/tasks", taskHandler.CreateHandler)
	authed.GET("/tasks/export", exportHandler.Handle)
	authed.PUT("/tasks/:id", taskHandler.UpdateHandler)
	authed.DELETE("/tasks/:id", taskHandler.DeleteHandler)
}

func (a *App) Run() error {
	defer a.Store.Close()
	defer a.Redis.Close()
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}
