package dto

import (
	"time"

	"github.com/google/uuid"
)

type ResumeResponse struct {
	ID              uuid.UUID `json:"id"`
	Filename        string    `json:"filename"`
	ExperienceYears *int      `json:"experience_years"`
	EducationLevel  *string   `json:"education_level"`
	TextLength      int       `json:"text_length"`
	CreatedAt       time.Time `json:"created_at"`
}
