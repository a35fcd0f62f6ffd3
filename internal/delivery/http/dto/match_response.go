package dto

import (
	"time"

	"github.com/google/uuid"
)

type ComputeMatchesRequest struct {
	ResumeID string `json:"resume_id"`
}

// ComputedMatchResponse carries the full job record alongside the score.
type ComputedMatchResponse struct {
	ID         uuid.UUID   `json:"id"`
	ResumeID   uuid.UUID   `json:"resume_id"`
	Job        JobResponse `json:"job"`
	Score      float64     `json:"score"`
	Skills     float64     `json:"skills"`
	Experience float64     `json:"experience"`
	Education  float64     `json:"education"`
	New        bool        `json:"new"`
	CreatedAt  time.Time   `json:"created_at"`
}

type MatchResponse struct {
	ID        uuid.UUID `json:"id"`
	ResumeID  uuid.UUID `json:"resume_id"`
	JobID     uuid.UUID `json:"job_id"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}
