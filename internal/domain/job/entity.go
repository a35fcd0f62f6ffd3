package job

import (
	"time"

	"github.com/google/uuid"
)

type Job struct {
	ID              uuid.UUID
	Title           string
	Description     string
	Skills          []string
	ExperienceYears *int
	EducationLevel  *string
	Location        *string
	CreatedAt       time.Time
}
