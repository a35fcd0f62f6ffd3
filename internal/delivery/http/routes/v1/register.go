package v1

import (
	"resume-match/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Match         *handler.MatchHandler
	Resume        *handler.ResumeHandler
	Jobs          *handler.JobsHandler
	Notification  *handler.NotificationHandler
	Pipeline      *handler.PipelineHandler
	UploadLimiter fiber.Handler
}

// Register mounts the v1 API on r. Every route requires an authenticated
// caller, so r is expected to carry the auth middleware.
func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Match != nil {
		h.Match.RegisterRoutes(r)
	}
	if h.Resume != nil {
		h.Resume.RegisterRoutes(r, h.UploadLimiter)
	}
	if h.Jobs != nil {
		h.Jobs.RegisterRoutes(r)
	}
	if h.Notification != nil {
		h.Notification.RegisterRoutes(r)
	}
	if h.Pipeline != nil {
		h.Pipeline.RegisterRoutes(r)
	}
}
