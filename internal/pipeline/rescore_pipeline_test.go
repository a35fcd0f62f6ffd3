package pipeline

import (
	"context"
	"testing"
	"time"

	"resume-match/internal/domain/job"
	"resume-match/internal/domain/resume"
	"resume-match/internal/usecase"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sweepFixture struct {
	resumes *memResumes
	jobs    *memJobs
	matches *memMatches
	notes   *memNotifications
	p       *RescorePipeline
}

func newSweepFixture(workers int) *sweepFixture {
	f := &sweepFixture{
		resumes: &memResumes{},
		jobs:    &memJobs{},
		matches: newMemMatches(),
		notes:   &memNotifications{},
	}
	rec := usecase.NewMatchRecorder(f.matches, memTx{matches: f.matches, notifications: f.notes}, 0, zerolog.Nop())
	f.p = NewRescorePipeline(f.resumes, f.jobs, rec, RescoreParams{Workers: workers}, zerolog.Nop())
	return f
}

func pythonJob() job.Job {
	return job.Job{
		ID:              uuid.New(),
		Title:           "Backend Engineer",
		Description:     "python backend engineer",
		Skills:          []string{"python"},
		ExperienceYears: intp(5),
		EducationLevel:  strp("bachelor"),
	}
}

func pythonResume() resume.Resume {
	return resume.Resume{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		TextContent:     "experienced python developer",
		ExperienceYears: intp(5),
		EducationLevel:  strp("bachelor"),
	}
}

func TestRescore_NoJobsIsNoop(t *testing.T) {
	f := newSweepFixture(2)
	f.resumes.items = []resume.Resume{pythonResume()}

	s, err := f.p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, RescoreSummary{Resumes: 1}, s)
	assert.Zero(t, f.matches.count())
}

func TestRescore_TwiceCreatesNoDuplicates(t *testing.T) {
	f := newSweepFixture(4)
	for i := 0; i < 5; i++ {
		f.resumes.items = append(f.resumes.items, pythonResume())
	}
	f.jobs.items = []job.Job{
		pythonJob(),
		pythonJob(),
		{ID: uuid.New(), Title: "Chef", Description: "pastry kitchen lead"},
	}

	first, err := f.p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 15, first.Pairs)
	assert.Equal(t, 10, first.Qualifying)
	assert.Equal(t, 10, first.Created)
	assert.Zero(t, first.Failed)

	second, err := f.p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, second.Qualifying)
	assert.Zero(t, second.Created)

	assert.Equal(t, 10, f.matches.count())
	assert.Equal(t, 10, f.notes.count())
}

func TestRescore_PairFailureDoesNotAbort(t *testing.T) {
	f := newSweepFixture(3)
	bad := pythonJob()
	f.matches.failJob = bad.ID
	f.resumes.items = []resume.Resume{pythonResume(), pythonResume()}
	f.jobs.items = []job.Job{pythonJob(), bad, pythonJob()}

	s, err := f.p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, s.Pairs)
	assert.Equal(t, 2, s.Failed)
	assert.Equal(t, 4, s.Created)
	assert.Equal(t, 4, f.matches.count())
}

func TestRescore_CancelledContext(t *testing.T) {
	f := newSweepFixture(1)
	f.resumes.items = []resume.Resume{pythonResume()}
	f.jobs.items = []job.Job{pythonJob()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.p.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRescore_StuckLoadIsBounded(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *sweepFixture)
	}{
		{name: "resumes", setup: func(f *sweepFixture) { f.resumes.hang = true }},
		{name: "jobs", setup: func(f *sweepFixture) { f.jobs.hang = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSweepFixture(1)
			f.p.params.LoadTimeout = 20 * time.Millisecond
			f.resumes.items = []resume.Resume{pythonResume()}
			f.jobs.items = []job.Job{pythonJob()}
			tt.setup(f)

			done := make(chan error, 1)
			go func() {
				_, err := f.p.Run(context.Background())
				done <- err
			}()

			select {
			case err := <-done:
				assert.ErrorIs(t, err, context.DeadlineExceeded)
			case <-time.After(2 * time.Second):
				t.Fatal("sweep did not return after the load timeout")
			}
			assert.Zero(t, f.matches.count())
		})
	}
}

func TestNewRescorePipeline_Defaults(t *testing.T) {
	p := NewRescorePipeline(&memResumes{}, &memJobs{}, nil, RescoreParams{}, zerolog.Nop())
	assert.Equal(t, 4, p.params.Workers)
	assert.Equal(t, time.Minute, p.params.LoadTimeout)
}
