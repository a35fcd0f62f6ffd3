package usecase

import (
	"context"
	"errors"
	"time"

	"resume-match/internal/domain/job"
	"resume-match/internal/domain/match"
	"resume-match/internal/domain/matching"
	"resume-match/internal/domain/resume"
	"resume-match/internal/metrics"
	"resume-match/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type MatchResult struct {
	Match   match.Match
	Job     job.Job
	Score   matching.MatchScore
	Created bool
}

type MatchingUsecase interface {
	ComputeMatches(ctx context.Context, userID, resumeID uuid.UUID) ([]MatchResult, error)
	ListMatches(ctx context.Context, userID uuid.UUID, limit, offset int) ([]match.Match, error)
}

type Matching struct {
	resumes     repository.ResumeRepository
	jobs        repository.JobRepository
	matches     repository.MatchRepository
	recorder    Recorder
	callTimeout time.Duration
	log         zerolog.Logger
}

// NewMatchingUsecase bounds each repository load by callTimeout. Recording
// is bounded by the recorder's own timeout.
func NewMatchingUsecase(resumes repository.ResumeRepository, jobs repository.JobRepository, matches repository.MatchRepository, recorder Recorder, callTimeout time.Duration, logger zerolog.Logger) *Matching {
	return &Matching{
		resumes:     resumes,
		jobs:        jobs,
		matches:     matches,
		recorder:    recorder,
		callTimeout: callTimeout,
		log:         logger,
	}
}

// ComputeMatches scores one of the caller's resumes against every job and
// returns the qualifying matches, including ones recorded by earlier runs.
func (u *Matching) ComputeMatches(ctx context.Context, userID, resumeID uuid.UUID) ([]MatchResult, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if resumeID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	r, err := u.loadResume(ctx, resumeID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return nil, ErrResumeNotFound
		}
		u.log.Error().Err(err).Str("resume_id", resumeID.String()).Msg("load resume failed")
		return nil, ErrInternal
	}

	jobs, err := u.loadJobs(ctx)
	if err != nil {
		u.log.Error().Err(err).Msg("load jobs failed")
		return nil, ErrInternal
	}

	out := make([]MatchResult, 0)
	pass, err := NewScoringPass(jobs)
	if err != nil {
		if errors.Is(err, matching.ErrEmptyCorpus) {
			return out, nil
		}
		return nil, ErrInternal
	}

	for _, j := range jobs {
		score, err := pass.Score(r, j)
		if err != nil {
			u.log.Error().Err(err).Str("job_id", j.ID.String()).Msg("score failed")
			return nil, ErrInternal
		}

		u.log.Debug().
			Str("user_id", userID.String()).
			Str("job_id", j.ID.String()).
			Float64("overall", score.Overall).
			Msg("match score")

		res, err := u.recorder.RecordIfQualifying(ctx, userID, r, j, score)
		if err != nil {
			u.log.Error().Err(err).Str("job_id", j.ID.String()).Msg("record match failed")
			return nil, ErrInternal
		}
		if res.Match == nil {
			continue
		}
		if res.Created {
			metrics.MatchesRecorded.WithLabelValues("request").Inc()
		}
		out = append(out, MatchResult{Match: *res.Match, Job: j, Score: score, Created: res.Created})
	}

	return out, nil
}

func (u *Matching) ListMatches(ctx context.Context, userID uuid.UUID, limit, offset int) ([]match.Match, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	callCtx, cancel := withTimeout(ctx, u.callTimeout)
	defer cancel()
	items, err := u.matches.ListByUser(callCtx, userID, limit, offset)
	if err != nil {
		u.log.Error().Err(err).Str("user_id", userID.String()).Msg("list matches failed")
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Matching) loadResume(ctx context.Context, resumeID, userID uuid.UUID) (resume.Resume, error) {
	callCtx, cancel := withTimeout(ctx, u.callTimeout)
	defer cancel()
	return u.resumes.GetByIDForUser(callCtx, resumeID, userID)
}

func (u *Matching) loadJobs(ctx context.Context) ([]job.Job, error) {
	callCtx, cancel := withTimeout(ctx, u.callTimeout)
	defer cancel()
	return u.jobs.ListAll(callCtx)
}
