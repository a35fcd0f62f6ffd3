package pipeline

import (
	"context"
	"errors"
	"time"

	"resume-match/internal/domain/job"
	"resume-match/internal/domain/matching"
	"resume-match/internal/domain/resume"
	"resume-match/internal/metrics"
	"resume-match/internal/repository"
	"resume-match/internal/usecase"

	"github.com/rs/zerolog"
)

type RescoreSummary struct {
	Resumes    int
	Jobs       int
	Pairs      int
	Qualifying int
	Created    int
	Failed     int
}

type RescoreParams struct {
	Workers     int
	PairTimeout time.Duration
	// LoadTimeout bounds each bulk load of resumes or jobs.
	LoadTimeout time.Duration
}

type pairOutcome struct {
	qualifying bool
	created    bool
}

// RescorePipeline scores every stored resume against every stored job and
// records qualifying matches through the same recorder as the request path.
type RescorePipeline struct {
	resumes  repository.ResumeRepository
	jobs     repository.JobRepository
	recorder usecase.Recorder
	params   RescoreParams
	log      zerolog.Logger
}

func NewRescorePipeline(
	resumes repository.ResumeRepository,
	jobs repository.JobRepository,
	recorder usecase.Recorder,
	params RescoreParams,
	logger zerolog.Logger,
) *RescorePipeline {
	if params.Workers <= 0 {
		params.Workers = 4
	}
	if params.LoadTimeout <= 0 {
		params.LoadTimeout = time.Minute
	}
	return &RescorePipeline{
		resumes:  resumes,
		jobs:     jobs,
		recorder: recorder,
		params:   params,
		log:      logger.With().Str("pipeline", "rescore").Logger(),
	}
}

// Run performs one full sweep. Per-pair failures are counted in the summary;
// only failing to load the inputs returns an error.
func (p *RescorePipeline) Run(ctx context.Context) (RescoreSummary, error) {
	start := time.Now()
	p.log.Info().Str("status", "started").Msg("rescore")

	summary, err := p.run(ctx)

	metrics.RescoreDuration.Observe(time.Since(start).Seconds())
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.RescoreRuns.WithLabelValues(status).Inc()

	p.log.Info().
		Str("status", "finished").
		Int("resumes", summary.Resumes).
		Int("jobs", summary.Jobs).
		Int("pairs", summary.Pairs).
		Int("qualifying", summary.Qualifying).
		Int("created", summary.Created).
		Int("failed", summary.Failed).
		Dur("duration", time.Since(start)).
		Msg("rescore")

	return summary, err
}

func (p *RescorePipeline) run(ctx context.Context) (RescoreSummary, error) {
	var summary RescoreSummary

	resumes, err := p.loadResumes(ctx)
	if err != nil {
		p.log.Error().Err(err).Str("step", "load_resumes").Str("status", "error").Msg("rescore")
		return summary, err
	}
	jobs, err := p.loadJobs(ctx)
	if err != nil {
		p.log.Error().Err(err).Str("step", "load_jobs").Str("status", "error").Msg("rescore")
		return summary, err
	}
	summary.Resumes = len(resumes)
	summary.Jobs = len(jobs)

	if len(jobs) == 0 || len(resumes) == 0 {
		p.log.Info().Str("step", "score").Str("status", "skipped").Msg("rescore: nothing to score")
		return summary, nil
	}

	pass, err := usecase.NewScoringPass(jobs)
	if err != nil {
		if errors.Is(err, matching.ErrEmptyCorpus) {
			p.log.Info().Str("step", "fit").Str("status", "skipped").Msg("rescore: empty corpus")
			return summary, nil
		}
		return summary, err
	}

	p.log.Info().
		Str("step", "score").
		Str("status", "info").
		Int("total_pairs", len(resumes)*len(jobs)).
		Int("workers", p.params.Workers).
		Msg("rescore")

	pool := NewWorkerPool[pairOutcome](p.params.Workers, p.params.Workers*2)
	results := pool.Run(ctx)

	go func() {
		defer pool.Close()
		for _, r := range resumes {
			for _, j := range jobs {
				r, j := r, j
				if !pool.Submit(ctx, func(ctx context.Context) (pairOutcome, error) {
					return p.scorePair(ctx, pass, r, j)
				}) {
					return
				}
			}
		}
	}()

	for res := range results {
		summary.Pairs++
		if res.Err != nil {
			summary.Failed++
			metrics.RescorePairs.WithLabelValues("failed").Inc()
			continue
		}
		metrics.RescorePairs.WithLabelValues("ok").Inc()
		if res.Value.qualifying {
			summary.Qualifying++
		}
		if res.Value.created {
			summary.Created++
		}
	}

	return summary, ctx.Err()
}

func (p *RescorePipeline) scorePair(ctx context.Context, pass *usecase.ScoringPass, r resume.Resume, j job.Job) (pairOutcome, error) {
	if p.params.PairTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.params.PairTimeout)
		defer cancel()
	}

	score, err := pass.Score(r, j)
	if err != nil {
		p.log.Error().Err(err).Str("step", "score").Str("status", "error").
			Str("resume_id", r.ID.String()).Str("job_id", j.ID.String()).Msg("rescore")
		return pairOutcome{}, err
	}
	if !score.Qualifies() {
		return pairOutcome{}, nil
	}

	res, err := p.recorder.RecordIfQualifying(ctx, r.UserID, r, j, score)
	if err != nil {
		p.log.Error().Err(err).Str("step", "record").Str("status", "error").
			Str("resume_id", r.ID.String()).Str("job_id", j.ID.String()).
			Float64("score", score.Overall).Msg("rescore")
		return pairOutcome{qualifying: true}, err
	}
	if res.Created {
		metrics.MatchesRecorded.WithLabelValues("rescore").Inc()
	}

	p.log.Debug().Str("step", "record").Str("status", "ok").
		Str("resume_id", r.ID.String()).Str("job_id", j.ID.String()).
		Float64("score", score.Overall).Bool("created", res.Created).Msg("rescore")
	return pairOutcome{qualifying: true, created: res.Created}, nil
}

func (p *RescorePipeline) loadResumes(ctx context.Context) ([]resume.Resume, error) {
	loadCtx, cancel := context.WithTimeout(ctx, p.params.LoadTimeout)
	defer cancel()
	return p.resumes.ListAll(loadCtx)
}

func (p *RescorePipeline) loadJobs(ctx context.Context) ([]job.Job, error) {
	loadCtx, cancel := context.WithTimeout(ctx, p.params.LoadTimeout)
	defer cancel()
	return p.jobs.ListAll(loadCtx)
}
