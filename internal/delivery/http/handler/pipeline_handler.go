package handler

import (
	"resume-match/internal/delivery/http/dto"
	"resume-match/internal/pipeline"
	"resume-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type RescoreStatusProvider interface {
	Status() pipeline.Status
}

type PipelineHandler struct {
	scheduler RescoreStatusProvider
}

func NewPipelineHandler(scheduler RescoreStatusProvider) *PipelineHandler {
	return &PipelineHandler{scheduler: scheduler}
}

func (h *PipelineHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/rescore/status", h.GetStatus)
}

func (h *PipelineHandler) GetStatus(c fiber.Ctx) error {
	if h.scheduler == nil {
		return fiber.ErrServiceUnavailable
	}
	st := h.scheduler.Status()

	out := dto.RescoreStatusResponse{
		Running:        st.Running,
		Interval:       st.Interval.String(),
		LastStartedAt:  st.LastStartedAt,
		LastFinishedAt: st.LastFinishedAt,
		LastError:      st.LastError,
	}
	if s := st.LastSummary; s != nil {
		out.LastSummary = &dto.RescoreSummaryData{
			Resumes:    s.Resumes,
			Jobs:       s.Jobs,
			Pairs:      s.Pairs,
			Qualifying: s.Qualifying,
			Created:    s.Created,
			Failed:     s.Failed,
		}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
