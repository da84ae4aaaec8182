package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/weddingplan/planner-api/docs"
	"github.com/weddingplan/planner-api/internal/api/handler"
	"github.com/weddingplan/planner-api/internal/api/middleware"
	"github.com/weddingplan/planner-api/internal/core/domain"
	"github.com/weddingplan/planner-api/internal/infrastructure/http/handlers"
)

// Deps carries everything the router mounts.
type Deps struct {
	JWTSecret string
	Logger    zerolog.Logger

	Auth    *handler.AuthHandler
	Planner *handler.PlannerHandler
	Advisor *handler.AdvisorHandler
	Users   *handler.UserHandler
	Ready   *handlers.HealthDependenciesHandler
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddleware("planner"))

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	if d.Ready != nil {
		e.GET("/health/ready", d.Ready.Readiness)
	}

	// --- Auth routes ---
	e.POST("/auth/register", d.Auth.Register)
	e.POST("/auth/login", d.Auth.Login)
	e.POST("/auth/guest", d.Auth.Guest)

	v1 := e.Group("/v1", middleware.Auth(d.JWTSecret))
	v1.POST("/auth/logout", d.Auth.Logout)

	v1.GET("/me", d.Users.Profile)
	v1.PATCH("/me", d.Users.UpdateProfile)

	p := d.Planner
	v1.GET("/state", p.State)
	v1.GET("/stats", p.Stats)
	v1.GET("/export", p.Export)
	v1.POST("/import", p.Import)
	v1.GET("/notifications", p.Notifications)
	v1.DELETE("/notifications/:id", p.DismissNotification)

	v1.GET("/guests", p.ListGuests)
	v1.POST("/guests", p.AddGuest)
	v1.PATCH("/guests/:id", p.UpdateGuest)
	v1.DELETE("/guests/:id", p.DeleteGuest)

	v1.GET("/budget-items", p.ListBudgetItems)
	v1.POST("/budget-items", p.AddBudgetItem)
	v1.POST("/budget-items/import-procedure", p.ImportFromProcedure)
	v1.POST("/budget-items/recalculate-deadlines", p.RecalculateDeadlines)
	v1.PATCH("/budget-items/:id", p.UpdateBudgetItem)
	v1.DELETE("/budget-items/:id", p.DeleteBudgetItem)

	v1.GET("/procedures", p.ListProcedures)
	v1.PUT("/procedures/region", p.SetRegion)
	v1.POST("/procedures/:region", p.AddProcedureStep)
	v1.POST("/procedures/:region/reset", p.ResetProcedures)
	v1.PATCH("/procedures/:region/:id", p.UpdateProcedureStep)
	v1.DELETE("/procedures/:region/:id", p.DeleteProcedureStep)

	v1.GET("/invitation", p.Invitation)
	v1.PATCH("/invitation", p.UpdateInvitation)
	v1.GET("/fengshui", p.FengShuiProfile)
	v1.PUT("/fengshui/profile", p.SetFengShuiProfile)

	v1.POST("/advisor/chat", d.Advisor.Chat)
	v1.POST("/advisor/speech", d.Advisor.Speech)
	v1.POST("/advisor/fengshui", d.Advisor.FengShui)

	admin := v1.Group("/admin", middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users", d.Users.ListUsers)
	admin.PATCH("/users/:id", d.Users.UpdateUser)
	admin.DELETE("/users/:id", d.Users.DeleteUser)
	admin.POST("/users/:id/reset-usage", d.Users.ResetUsage)

	return e
}

// requestLogger writes one structured line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
