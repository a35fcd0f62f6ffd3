package match

import (
	"time"

	"github.com/google/uuid"
)

// Match is unique per (UserID, ResumeID, JobID).
type Match struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ResumeID  uuid.UUID
	JobID     uuid.UUID
	Score     float64
	CreatedAt time.Time
}
