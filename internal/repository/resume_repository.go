package repository

import (
	"context"
	"time"

	"resume-match/internal/database"
	"resume-match/internal/domain/resume"

	"github.com/google/uuid"
)

type ResumeRepository interface {
	Create(ctx context.Context, r resume.Resume) (resume.Resume, error)
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (resume.Resume, error)
	ListAll(ctx context.Context) ([]resume.Resume, error)
}

type PostgresResumeRepository struct {
	db database.DB
}

func NewPostgresResumeRepository(db database.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db}
}

const resumeColumns = `id, user_id, filename, object_key, contact_email, text_content, experience_years, education_level, created_at`

func (r *PostgresResumeRepository) Create(ctx context.Context, in resume.Resume) (resume.Resume, error) {
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO resumes (`+resumeColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 RETURNING `+resumeColumns,
		in.ID,
		in.UserID,
		in.Filename,
		in.ObjectKey,
		in.ContactEmail,
		in.TextContent,
		in.ExperienceYears,
		in.EducationLevel,
		in.CreatedAt,
	)
	return scanResume(row)
}

func (r *PostgresResumeRepository) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (resume.Resume, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	out, err := scanResume(row)
	if err != nil {
		if isNoRows(err) {
			return resume.Resume{}, ErrResumeNotFound
		}
		return resume.Resume{}, err
	}
	return out, nil
}

func (r *PostgresResumeRepository) ListAll(ctx context.Context) ([]resume.Resume, error) {
	rows, err := r.db.Query(ctx, `SELECT `+resumeColumns+` FROM resumes ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]resume.Resume, 0)
	for rows.Next() {
		it, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanResume(row database.Row) (resume.Resume, error) {
	var it resume.Resume
	err := row.Scan(
		&it.ID,
		&it.UserID,
		&it.Filename,
		&it.ObjectKey,
		&it.ContactEmail,
		&it.TextContent,
		&it.ExperienceYears,
		&it.EducationLevel,
		&it.CreatedAt,
	)
	return it, err
}
