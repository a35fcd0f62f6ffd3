package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"resume-match/internal/domain/job"
	"resume-match/internal/domain/match"
	"resume-match/internal/domain/notification"
	"resume-match/internal/domain/resume"
	"resume-match/internal/repository"

	"github.com/google/uuid"
)

type memResumes struct {
	items []resume.Resume
	// hang makes ListAll wait for ctx to end.
	hang bool
}

func (m *memResumes) Create(_ context.Context, r resume.Resume) (resume.Resume, error) {
	m.items = append(m.items, r)
	return r, nil
}

func (m *memResumes) GetByIDForUser(context.Context, uuid.UUID, uuid.UUID) (resume.Resume, error) {
	return resume.Resume{}, errors.New("not used")
}

func (m *memResumes) ListAll(ctx context.Context) ([]resume.Resume, error) {
	if m.hang {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return m.items, nil
}

type memJobs struct {
	items []job.Job
	hang  bool
}

func (m *memJobs) Create(_ context.Context, j job.Job) (job.Job, error) {
	m.items = append(m.items, j)
	return j, nil
}

func (m *memJobs) List(context.Context, int, int) ([]job.Job, error) { return m.items, nil }

func (m *memJobs) ListAll(ctx context.Context) ([]job.Job, error) {
	if m.hang {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return m.items, nil
}

type memMatches struct {
	mu   sync.Mutex
	rows map[[3]uuid.UUID]match.Match
	// failJob makes Create fail for one job id.
	failJob uuid.UUID
}

func newMemMatches() *memMatches {
	return &memMatches{rows: map[[3]uuid.UUID]match.Match{}}
}

func (m *memMatches) FindFor(_ context.Context, userID, resumeID, jobID uuid.UUID) (*match.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row, ok := m.rows[[3]uuid.UUID{userID, resumeID, jobID}]; ok {
		return &row, nil
	}
	return nil, nil
}

func (m *memMatches) Create(_ context.Context, row match.Match) (match.Match, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row.JobID == m.failJob {
		return match.Match{}, false, errors.New("insert failed")
	}
	k := [3]uuid.UUID{row.UserID, row.ResumeID, row.JobID}
	if existing, ok := m.rows[k]; ok {
		return existing, false, nil
	}
	row.ID = uuid.New()
	row.CreatedAt = time.Now()
	m.rows[k] = row
	return row, true, nil
}

func (m *memMatches) ListByUser(context.Context, uuid.UUID, int, int) ([]match.Match, error) {
	return nil, nil
}

func (m *memMatches) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type memNotifications struct {
	mu    sync.Mutex
	items []notification.Notification
}

func (m *memNotifications) Create(_ context.Context, n notification.Notification) (notification.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n.ID = uuid.New()
	m.items = append(m.items, n)
	return n, nil
}

func (m *memNotifications) ListByUser(context.Context, uuid.UUID, int, int) ([]notification.Notification, error) {
	return nil, nil
}

func (m *memNotifications) GetByID(context.Context, uuid.UUID) (notification.Notification, error) {
	return notification.Notification{}, errors.New("not used")
}

func (m *memNotifications) ClaimPending(context.Context, int, time.Time) ([]notification.Notification, error) {
	return nil, nil
}

func (m *memNotifications) ReleaseClaim(context.Context, uuid.UUID) error { return nil }

func (m *memNotifications) MarkSent(context.Context, uuid.UUID, time.Time) error { return nil }

func (m *memNotifications) MarkAttemptFailed(context.Context, uuid.UUID, string, int) (notification.Status, error) {
	return notification.StatusPending, nil
}

func (m *memNotifications) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

type memTx struct {
	matches       *memMatches
	notifications *memNotifications
}

func (m memTx) WithinTx(_ context.Context, fn func(repos repository.TxRepositories) error) error {
	return fn(repository.TxRepositories{Matches: m.matches, Notifications: m.notifications})
}

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }
