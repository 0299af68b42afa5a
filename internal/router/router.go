package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sportplus/backend/internal/handler"
	"github.com/sportplus/backend/internal/middleware"
	"github.com/sportplus/backend/internal/model"
)

// RegisterRoutes registers routes that do not require authentication:
// the health check and the Prometheus metrics endpoint.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth registers the authentication endpoints under /v1/auth.
// None of them require an existing session; login and the reset flow
// are exactly the places a session does not yet exist. The whole group
// sits behind the rate limiter so password guessing stays expensive.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limit echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	g.Use(limit)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/forgot-password", a.ForgotPassword)
	g.POST("/reset-password", a.ResetPassword)
}

// RegisterActivities registers the activity, stats, profile and admin
// endpoints. The ranking view is deliberately public; everything else
// requires a valid session token, and the admin group additionally
// requires the ADMIN role.
func RegisterActivities(e *echo.Echo, act *handler.ActivityHandler, prof *handler.ProfileHandler, adm *handler.AdminHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	// Public leaderboard; anyone may browse it. Building it recomputes
	// every user's statistics, so responses are briefly cached.
	e.GET("/v1/activities/ranking", act.Ranking, cache)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleUser, model.RoleAdmin))

	auth.GET("/activities", act.List)
	auth.POST("/activities", act.Create)
	auth.GET("/activities/stats", act.GetStats)
	auth.GET("/activities/:id", act.Get)
	auth.PUT("/activities/:id", act.Update)
	auth.DELETE("/activities/:id", act.Delete)
	auth.GET("/activities/:id/export/gpx", act.ExportGpx)

	auth.GET("/profile", prof.Get)
	auth.PUT("/profile", prof.Update)

	admin := e.Group("/v1/admin")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.GET("/overview", adm.Overview)
	admin.POST("/recalculate-stats/:userId", adm.RecalculateStats)
}
