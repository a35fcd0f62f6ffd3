package routes

import (
	"resume-match/internal/delivery/http/handler"
	"resume-match/internal/delivery/http/middleware"
	v1 "resume-match/internal/delivery/http/routes/v1"
	"resume-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health  *handler.HealthHandler
	metrics fiber.Handler
	ws      *ws.Handler
	auth    *middleware.AuthMiddleware
	v1      v1.Handlers
}

func NewRegistry(health *handler.HealthHandler, metrics fiber.Handler, wsHandler *ws.Handler, auth *middleware.AuthMiddleware, api v1.Handlers) *Registry {
	return &Registry{health: health, metrics: metrics, ws: wsHandler, auth: auth, v1: api}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerRealtime(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
	if r.metrics != nil {
		app.Get("/metrics", r.metrics)
	}
}

func (r *Registry) registerRealtime(app *fiber.App) {
	if r.ws == nil || r.auth == nil {
		return
	}
	app.Get("/ws", r.auth.Middleware(true), r.ws.HandleNotificationsWS)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1.Register(api.Group("/v1", r.auth.Middleware()), r.v1)
}
