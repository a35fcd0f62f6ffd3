package usecase

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

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }

type fakeResumeRepo struct {
	mu      sync.Mutex
	items   []resume.Resume
	err     error
	created []resume.Resume
	// hang makes reads wait for ctx to end, like a stuck connection.
	hang bool
}

func (f *fakeResumeRepo) Create(_ context.Context, r resume.Resume) (resume.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return resume.Resume{}, f.err
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.CreatedAt = time.Now()
	f.items = append(f.items, r)
	f.created = append(f.created, r)
	return r, nil
}

func (f *fakeResumeRepo) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (resume.Resume, error) {
	if f.hang {
		<-ctx.Done()
		return resume.Resume{}, ctx.Err()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return resume.Resume{}, f.err
	}
	for _, r := range f.items {
		if r.ID == id && r.UserID == userID {
			return r, nil
		}
	}
	return resume.Resume{}, repository.ErrResumeNotFound
}

func (f *fakeResumeRepo) ListAll(_ context.Context) ([]resume.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]resume.Resume(nil), f.items...), f.err
}

type fakeJobRepo struct {
	items []job.Job
	err   error
	hang  bool
}

func (f *fakeJobRepo) Create(_ context.Context, j job.Job) (job.Job, error) {
	if f.err != nil {
		return job.Job{}, f.err
	}
	j.ID = uuid.New()
	j.CreatedAt = time.Now()
	f.items = append(f.items, j)
	return j, nil
}

func (f *fakeJobRepo) List(_ context.Context, limit, offset int) ([]job.Job, error) {
	if f.err != nil {
		return nil, f.err
	}
	if offset >= len(f.items) {
		return []job.Job{}, nil
	}
	end := len(f.items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return f.items[offset:end], nil
}

func (f *fakeJobRepo) ListAll(ctx context.Context) ([]job.Job, error) {
	if f.hang {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.items, f.err
}

type matchKey struct{ user, resume, job uuid.UUID }

type fakeMatchRepo struct {
	mu        sync.Mutex
	rows      map[matchKey]match.Match
	createErr error
	// hideOnFind makes FindFor miss so Create's conflict path is exercised.
	hideOnFind bool
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{rows: map[matchKey]match.Match{}}
}

func (f *fakeMatchRepo) FindFor(_ context.Context, userID, resumeID, jobID uuid.UUID) (*match.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hideOnFind {
		return nil, nil
	}
	if m, ok := f.rows[matchKey{userID, resumeID, jobID}]; ok {
		return &m, nil
	}
	return nil, nil
}

func (f *fakeMatchRepo) Create(_ context.Context, m match.Match) (match.Match, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return match.Match{}, false, f.createErr
	}
	k := matchKey{m.UserID, m.ResumeID, m.JobID}
	if existing, ok := f.rows[k]; ok {
		return existing, false, nil
	}
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	f.rows[k] = m
	return m, true, nil
}

func (f *fakeMatchRepo) ListByUser(_ context.Context, userID uuid.UUID, _, _ int) ([]match.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []match.Match{}
	for _, m := range f.rows {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

type fakeNotificationRepo struct {
	mu    sync.Mutex
	items []notification.Notification
	err   error
}

func (f *fakeNotificationRepo) Create(_ context.Context, n notification.Notification) (notification.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return notification.Notification{}, f.err
	}
	n.ID = uuid.New()
	n.CreatedAt = time.Now()
	f.items = append(f.items, n)
	return n, nil
}

func (f *fakeNotificationRepo) ListByUser(_ context.Context, userID uuid.UUID, _, _ int) ([]notification.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []notification.Notification{}
	for _, n := range f.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, f.err
}

func (f *fakeNotificationRepo) GetByID(_ context.Context, id uuid.UUID) (notification.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.items {
		if n.ID == id {
			return n, nil
		}
	}
	return notification.Notification{}, repository.ErrNotificationNotFound
}

func (f *fakeNotificationRepo) ClaimPending(context.Context, int, time.Time) ([]notification.Notification, error) {
	return nil, errors.New("not used")
}

func (f *fakeNotificationRepo) ReleaseClaim(context.Context, uuid.UUID) error { return nil }

func (f *fakeNotificationRepo) MarkSent(context.Context, uuid.UUID, time.Time) error { return nil }

func (f *fakeNotificationRepo) MarkAttemptFailed(context.Context, uuid.UUID, string, int) (notification.Status, error) {
	return notification.StatusPending, nil
}

func (f *fakeNotificationRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

// fakeTx shares the fake repositories and restores their contents when fn
// fails, like a rolled back transaction.
type fakeTx struct {
	matches       *fakeMatchRepo
	notifications *fakeNotificationRepo
	rollbacks     int
}

func (f *fakeTx) WithinTx(_ context.Context, fn func(repos repository.TxRepositories) error) error {
	f.matches.mu.Lock()
	rows := make(map[matchKey]match.Match, len(f.matches.rows))
	for k, v := range f.matches.rows {
		rows[k] = v
	}
	f.matches.mu.Unlock()
	f.notifications.mu.Lock()
	items := append([]notification.Notification(nil), f.notifications.items...)
	f.notifications.mu.Unlock()

	if err := fn(repository.TxRepositories{Matches: f.matches, Notifications: f.notifications}); err != nil {
		f.matches.mu.Lock()
		f.matches.rows = rows
		f.matches.mu.Unlock()
		f.notifications.mu.Lock()
		f.notifications.items = items
		f.notifications.mu.Unlock()
		f.rollbacks++
		return err
	}
	return nil
}

type fakeExtractor struct {
	text string
	err  error
}

func (f fakeExtractor) Extract(context.Context, []byte) (string, error) {
	return f.text, f.err
}

type fakeObjectStore struct {
	keys []string
	err  error
}

func (f *fakeObjectStore) Put(_ context.Context, key string, _ []byte, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	return nil
}
