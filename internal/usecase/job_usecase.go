package usecase

import (
	"context"
	"strings"

	"resume-match/internal/domain/job"
	"resume-match/internal/repository"
)

type CreateJobInput struct {
	Title           string
	Description     string
	Skills          []string
	ExperienceYears *int
	EducationLevel  *string
	Location        *string
}

type JobUsecase interface {
	Create(ctx context.Context, in CreateJobInput) (job.Job, error)
	List(ctx context.Context, limit, offset int) ([]job.Job, error)
}

type Jobs struct {
	repo repository.JobRepository
}

func NewJobUsecase(repo repository.JobRepository) *Jobs {
	return &Jobs{repo: repo}
}

func (u *Jobs) Create(ctx context.Context, in CreateJobInput) (job.Job, error) {
	title := strings.TrimSpace(in.Title)
	desc := strings.TrimSpace(in.Description)
	if title == "" || desc == "" {
		return job.Job{}, ErrInvalidInput
	}
	if in.ExperienceYears != nil && *in.ExperienceYears < 0 {
		return job.Job{}, ErrInvalidInput
	}

	skills := make([]string, 0, len(in.Skills))
	for _, s := range in.Skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		skills = append(skills, s)
	}

	created, err := u.repo.Create(ctx, job.Job{
		Title:           title,
		Description:     desc,
		Skills:          skills,
		ExperienceYears: in.ExperienceYears,
		EducationLevel:  trimmedOrNil(in.EducationLevel),
		Location:        trimmedOrNil(in.Location),
	})
	if err != nil {
		return job.Job{}, ErrInternal
	}
	return created, nil
}

func (u *Jobs) List(ctx context.Context, limit, offset int) ([]job.Job, error) {
	if limit < 0 || offset < 0 {
		return nil, ErrInvalidInput
	}
	items, err := u.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}
