package usecase

import (
	"context"
	"fmt"
	"time"

	"resume-match/internal/domain/job"
	"resume-match/internal/domain/match"
	"resume-match/internal/domain/matching"
	"resume-match/internal/domain/notification"
	"resume-match/internal/domain/resume"
	"resume-match/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type RecordResult struct {
	Match   *match.Match
	Created bool
}

// Recorder is the single entry point that turns a qualifying score into a
// stored match and a pending notification.
type Recorder interface {
	RecordIfQualifying(ctx context.Context, userID uuid.UUID, r resume.Resume, j job.Job, score matching.MatchScore) (RecordResult, error)
}

type MatchRecorder struct {
	matches     repository.MatchRepository
	tx          repository.Transactor
	callTimeout time.Duration
	log         zerolog.Logger
}

func NewMatchRecorder(matches repository.MatchRepository, tx repository.Transactor, callTimeout time.Duration, logger zerolog.Logger) *MatchRecorder {
	return &MatchRecorder{
		matches:     matches,
		tx:          tx,
		callTimeout: callTimeout,
		log:         logger,
	}
}

// RecordIfQualifying stores a match when score qualifies and none exists yet
// for (userID, resume, job). An existing match is returned with Created=false
// and no notification is emitted for it. The match and its notification are
// written in one transaction: if either insert fails neither is kept, so a
// later pass records both.
func (rec *MatchRecorder) RecordIfQualifying(ctx context.Context, userID uuid.UUID, r resume.Resume, j job.Job, score matching.MatchScore) (RecordResult, error) {
	if !score.Qualifies() {
		return RecordResult{}, nil
	}

	existing, err := rec.findExisting(ctx, userID, r.ID, j.ID)
	if err != nil {
		return RecordResult{}, fmt.Errorf("check existing match: %w", err)
	}
	if existing != nil {
		return RecordResult{Match: existing}, nil
	}

	var (
		m       match.Match
		created bool
		n       notification.Notification
	)
	err = rec.withinTx(ctx, func(txCtx context.Context, repos repository.TxRepositories) error {
		var err error
		m, created, err = repos.Matches.Create(txCtx, match.Match{
			UserID:   userID,
			ResumeID: r.ID,
			JobID:    j.ID,
			Score:    score.Overall,
		})
		if err != nil {
			return fmt.Errorf("insert match: %w", err)
		}
		if !created {
			return nil
		}

		n = notification.Decide(notification.MatchEvent{
			UserID:       userID,
			MatchID:      m.ID,
			JobTitle:     j.Title,
			Score:        score.Overall,
			ContactEmail: r.ContactEmail,
		})
		if _, err := repos.Notifications.Create(txCtx, n); err != nil {
			return fmt.Errorf("insert notification: %w", err)
		}
		return nil
	})
	if err != nil {
		return RecordResult{}, err
	}
	if !created {
		return RecordResult{Match: &m}, nil
	}

	rec.log.Info().
		Str("user_id", userID.String()).
		Str("resume_id", r.ID.String()).
		Str("job_id", j.ID.String()).
		Str("match_id", m.ID.String()).
		Float64("score", score.Overall).
		Str("channel", string(n.Channel)).
		Msg("match recorded")

	return RecordResult{Match: &m, Created: true}, nil
}

func (rec *MatchRecorder) findExisting(ctx context.Context, userID, resumeID, jobID uuid.UUID) (*match.Match, error) {
	callCtx, cancel := withTimeout(ctx, rec.callTimeout)
	defer cancel()
	return rec.matches.FindFor(callCtx, userID, resumeID, jobID)
}

// withinTx bounds the whole transaction by one call timeout.
func (rec *MatchRecorder) withinTx(ctx context.Context, fn func(txCtx context.Context, repos repository.TxRepositories) error) error {
	callCtx, cancel := withTimeout(ctx, rec.callTimeout)
	defer cancel()
	return rec.tx.WithinTx(callCtx, func(repos repository.TxRepositories) error {
		return fn(callCtx, repos)
	})
}
