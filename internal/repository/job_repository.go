package repository

import (
	"context"
	"time"

	"resume-match/internal/database"
	"resume-match/internal/domain/job"

	"github.com/google/uuid"
)

type JobRepository interface {
	Create(ctx context.Context, j job.Job) (job.Job, error)
	List(ctx context.Context, limit, offset int) ([]job.Job, error)
	ListAll(ctx context.Context) ([]job.Job, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, title, description, skills, experience_years, education_level, location, created_at`

func (r *PostgresJobRepository) Create(ctx context.Context, in job.Job) (job.Job, error) {
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}
	if in.Skills == nil {
		in.Skills = []string{}
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO jobs (`+jobColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 RETURNING `+jobColumns,
		in.ID,
		in.Title,
		in.Description,
		in.Skills,
		in.ExperienceYears,
		in.EducationLevel,
		in.Location,
		in.CreatedAt,
	)
	return scanJob(row)
}

func (r *PostgresJobRepository) List(ctx context.Context, limit, offset int) ([]job.Job, error) {
	limit, offset = clampPage(limit, offset)
	return r.query(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
}

// ListAll returns the full job corpus used to fit a scoring pass.
func (r *PostgresJobRepository) ListAll(ctx context.Context) ([]job.Job, error) {
	return r.query(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at ASC`)
}

func (r *PostgresJobRepository) query(ctx context.Context, q string, args ...any) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanJob(row database.Row) (job.Job, error) {
	var j job.Job
	err := row.Scan(
		&j.ID,
		&j.Title,
		&j.Description,
		&j.Skills,
		&j.ExperienceYears,
		&j.EducationLevel,
		&j.Location,
		&j.CreatedAt,
	)
	return j, err
}
