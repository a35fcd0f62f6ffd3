package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateJobRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Skills          []string `json:"skills"`
	ExperienceYears *int     `json:"experience_years"`
	EducationLevel  *string  `json:"education_level"`
	Location        *string  `json:"location"`
}

type JobResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Skills          []string  `json:"skills"`
	ExperienceYears *int      `json:"experience_years"`
	EducationLevel  *string   `json:"education_level"`
	Location        *string   `json:"location"`
	CreatedAt       time.Time `json:"created_at"`
}
