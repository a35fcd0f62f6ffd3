package resume

import (
	"time"

	"github.com/google/uuid"
)

// Resume is immutable once stored; a re-upload creates a new record.
// ExperienceYears and EducationLevel are optional uploader input.
type Resume struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Filename        string
	ObjectKey       *string
	ContactEmail    *string
	TextContent     string
	ExperienceYears *int
	EducationLevel  *string
	CreatedAt       time.Time
}
