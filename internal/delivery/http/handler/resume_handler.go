package handler

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"resume-match/internal/delivery/http/dto"
	"resume-match/internal/delivery/http/middleware"
	"resume-match/internal/pkg/response"
	"resume-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ResumeHandler struct {
	uc usecase.ResumeUsecase
}

func NewResumeHandler(uc usecase.ResumeUsecase) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

// RegisterRoutes mounts the upload route behind limiter when one is given.
func (h *ResumeHandler) RegisterRoutes(r fiber.Router, limiter fiber.Handler) {
	if r == nil {
		return
	}
	if limiter == nil {
		r.Post("/resumes", h.Upload)
		return
	}
	r.Post("/resumes", limiter, h.Upload)
}

func (h *ResumeHandler) Upload(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "file is required", nil, err)
	}
	if fh.Size > usecase.MaxResumeBytes {
		return mapResumeUsecaseError(usecase.ErrFileTooLarge)
	}

	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, usecase.MaxResumeBytes+1))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in := usecase.UploadResumeInput{
		UserID:      userID,
		Email:       middleware.Email(c),
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Data:        data,
	}
	if raw := strings.TrimSpace(c.FormValue("experience_years")); raw != "" {
		years, err := strconv.Atoi(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "experience_years must be an integer", nil, err)
		}
		in.ExperienceYears = &years
	}
	if raw := strings.TrimSpace(c.FormValue("education_level")); raw != "" {
		in.EducationLevel = &raw
	}

	r, err := h.uc.Upload(c.Context(), in)
	if err != nil {
		return mapResumeUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.ResumeResponse{
		ID:              r.ID,
		Filename:        r.Filename,
		ExperienceYears: r.ExperienceYears,
		EducationLevel:  r.EducationLevel,
		TextLength:      len(r.TextContent),
		CreatedAt:       r.CreatedAt,
	})
}

func mapResumeUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrFileTooLarge):
		return middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "File exceeds 10MB", nil, err)
	case errors.Is(err, usecase.ErrUnsupportedFile):
		return middleware.NewAppError(fiber.StatusUnsupportedMediaType, "Only PDF files are allowed", nil, err)
	case errors.Is(err, usecase.ErrExtraction):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Could not read text from the PDF", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
