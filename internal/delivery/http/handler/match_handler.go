package handler

import (
	"errors"
	"strings"

	"resume-match/internal/delivery/http/dto"
	"resume-match/internal/delivery/http/middleware"
	"resume-match/internal/pkg/response"
	"resume-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/matches")
	grp.Post("", h.ComputeMatches)
	grp.Get("", h.ListMatches)
}

func (h *MatchHandler) ComputeMatches(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.ComputeMatchesRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	resumeID, err := uuid.Parse(strings.TrimSpace(req.ResumeID))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "resume_id must be a valid uuid", nil, err)
	}

	results, err := h.uc.ComputeMatches(c.Context(), userID, resumeID)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}

	out := make([]dto.ComputedMatchResponse, 0, len(results))
	for _, r := range results {
		out = append(out, dto.ComputedMatchResponse{
			ID:         r.Match.ID,
			ResumeID:   r.Match.ResumeID,
			Job:        toJobResponse(r.Job),
			Score:      r.Match.Score,
			Skills:     r.Score.Skills,
			Experience: r.Score.Experience,
			Education:  r.Score.Education,
			New:        r.Created,
			CreatedAt:  r.Match.CreatedAt,
		})
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *MatchHandler) ListMatches(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	limit, offset, err := parsePage(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListMatches(c.Context(), userID, limit, offset)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}

	out := make([]dto.MatchResponse, 0, len(items))
	for _, m := range items {
		out = append(out, dto.MatchResponse{
			ID:        m.ID,
			ResumeID:  m.ResumeID,
			JobID:     m.JobID,
			Score:     m.Score,
			CreatedAt: m.CreatedAt,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapMatchingUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrResumeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Resume not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
