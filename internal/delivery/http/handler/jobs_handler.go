package handler

import (
	"errors"

	"resume-match/internal/delivery/http/dto"
	"resume-match/internal/delivery/http/middleware"
	"resume-match/internal/domain/job"
	"resume-match/internal/pkg/response"
	"resume-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	uc usecase.JobUsecase
}

func NewJobsHandler(uc usecase.JobUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/jobs")
	grp.Get("", h.HandleListJobs)
	grp.Post("", h.HandleCreateJob)
}

func (h *JobsHandler) HandleListJobs(c fiber.Ctx) error {
	limit, offset, err := parsePage(c)
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return mapJobUsecaseError(err)
	}

	out := make([]dto.JobResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toJobResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *JobsHandler) HandleCreateJob(c fiber.Ctx) error {
	var req dto.CreateJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	j, err := h.uc.Create(c.Context(), usecase.CreateJobInput{
		Title:           req.Title,
		Description:     req.Description,
		Skills:          req.Skills,
		ExperienceYears: req.ExperienceYears,
		EducationLevel:  req.EducationLevel,
		Location:        req.Location,
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, toJobResponse(j))
}

func toJobResponse(j job.Job) dto.JobResponse {
	skills := j.Skills
	if skills == nil {
		skills = []string{}
	}
	return dto.JobResponse{
		ID:              j.ID,
		Title:           j.Title,
		Description:     j.Description,
		Skills:          skills,
		ExperienceYears: j.ExperienceYears,
		EducationLevel:  j.EducationLevel,
		Location:        j.Location,
		CreatedAt:       j.CreatedAt,
	}
}

func mapJobUsecaseError(err error) error {
	if errors.Is(err, usecase.ErrInvalidInput) {
		return middleware.NewAppError(fiber.StatusBadRequest, "title and description are required", nil, err)
	}
	return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
}
