package routes

import (
	"career-compass/internal/delivery/http/handler"
	"career-compass/internal/delivery/http/middleware"
	v1 "career-compass/internal/delivery/http/routes/v1"
	"career-compass/internal/pkg/metrics"
	"career-compass/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health  *handler.HealthHandler
	api     v1.Handlers
	ws      *ws.Handler
	auth    *middleware.AuthMiddleware
	metrics *metrics.Metrics
}

func NewRegistry(health *handler.HealthHandler, api v1.Handlers, wsHandler *ws.Handler, authMw *middleware.AuthMiddleware, m *metrics.Metrics) *Registry {
	return &Registry{health: health, api: api, ws: wsHandler, auth: authMw, metrics: m}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerMetrics(app)
	r.registerWS(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health == nil {
		return
	}
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerMetrics(app *fiber.App) {
	if r.metrics == nil {
		return
	}
	app.Get("/metrics", r.metrics.Handler())
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.ws == nil || r.auth == nil {
		return
	}
	app.Get("/ws/gaps", r.auth.QueryTokenMiddleware(), r.ws.HandleGapsWS)
}

func (r *Registry) registerAPI(app *fiber.App) {
	v1.Register(app.Group("/api/v1"), r.api, r.auth)
}
