package repository

import (
	"context"
	"time"

	"resume-match/internal/database"
	"resume-match/internal/domain/match"

	"github.com/google/uuid"
)

type MatchRepository interface {
	FindFor(ctx context.Context, userID, resumeID, jobID uuid.UUID) (*match.Match, error)
	// Create inserts m unless a match for the same (user, resume, job) exists.
	// It returns the stored row and whether this call created it.
	Create(ctx context.Context, m match.Match) (match.Match, bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]match.Match, error)
}

type PostgresMatchRepository struct {
	db database.Querier
}

// NewPostgresMatchRepository binds the repository to a pool or an open transaction.
func NewPostgresMatchRepository(db database.Querier) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

const matchColumns = `id, user_id, resume_id, job_id, score::float8, created_at`

func (r *PostgresMatchRepository) FindFor(ctx context.Context, userID, resumeID, jobID uuid.UUID) (*match.Match, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE user_id = $1 AND resume_id = $2 AND job_id = $3`,
		userID, resumeID, jobID,
	)
	m, err := scanMatch(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *PostgresMatchRepository) Create(ctx context.Context, m match.Match) (match.Match, bool, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO matches (id, user_id, resume_id, job_id, score, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (user_id, resume_id, job_id) DO NOTHING
		 RETURNING `+matchColumns,
		m.ID,
		m.UserID,
		m.ResumeID,
		m.JobID,
		m.Score,
		m.CreatedAt,
	)
	created, err := scanMatch(row)
	if err == nil {
		return created, true, nil
	}
	if !isNoRows(err) {
		return match.Match{}, false, err
	}

	existing, err := r.FindFor(ctx, m.UserID, m.ResumeID, m.JobID)
	if err != nil {
		return match.Match{}, false, err
	}
	if existing == nil {
		return match.Match{}, false, ErrMatchConflict
	}
	return *existing, false, nil
}

func (r *PostgresMatchRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]match.Match, error) {
	limit, offset = clampPage(limit, offset)
	rows, err := r.db.Query(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]match.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanMatch(row database.Row) (match.Match, error) {
	var m match.Match
	err := row.Scan(&m.ID, &m.UserID, &m.ResumeID, &m.JobID, &m.Score, &m.CreatedAt)
	return m, err
}
