package app

import (
	"fmt"
	"strings"

	"resume-match/internal/config"
	"resume-match/internal/delivery/http/handler"
	"resume-match/internal/delivery/http/middleware"
	"resume-match/internal/delivery/http/routes"
	v1 "resume-match/internal/delivery/http/routes/v1"
	"resume-match/internal/logger"
	"resume-match/internal/usecase"
	"resume-match/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// bodyLimit leaves room for multipart framing around a maximum size resume.
const bodyLimit = usecase.MaxResumeBytes + 1024*1024

type App struct {
	Fiber *fiber.App
}

func New(cfg config.Config, c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:   cfg.App.AppName,
		BodyLimit: bodyLimit,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f}
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger.Component(c.Log, "http")).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger.Component(c.Log, "http")).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	auth := middleware.NewAuthMiddleware(c.JWT)
	limiter := middleware.NewRateLimitMiddleware(c.Redis, "upload", int64(c.Config.Limits.UploadPerWindow), c.Config.Limits.UploadWindow, logger.Component(c.Log, "ratelimit"))

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB, c.Redis),
		adaptor.HTTPHandler(promhttp.Handler()),
		ws.NewHandler(c.Hub, middleware.UserID, logger.Component(c.Log, "ws")),
		auth,
		v1.Handlers{
			Match:         handler.NewMatchHandler(c.UC.Matching),
			Resume:        handler.NewResumeHandler(c.UC.Resumes),
			Jobs:          handler.NewJobsHandler(c.UC.Jobs),
			Notification:  handler.NewNotificationHandler(c.UC.Notifications),
			Pipeline:      handler.NewPipelineHandler(c.Scheduler),
			UploadLimiter: limiter.Middleware(),
		},
	)
	registry.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
