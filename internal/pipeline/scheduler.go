package pipeline

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	rescoreLockKey = "rescore:lock"
	// rescoreLockTTL is kept short and refreshed while a sweep runs, so a
	// crashed holder blocks other instances for at most this long.
	rescoreLockTTL = 2 * time.Minute
)

// Locker is a best-effort distributed lock backed by a shared store.
type Locker interface {
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	DeleteIfValue(ctx context.Context, key string, value string) error
	ExtendIfValue(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	Available() bool
}

type Runner interface {
	Run(ctx context.Context) (RescoreSummary, error)
}

type Status struct {
	Running        bool
	Interval       time.Duration
	LastStartedAt  *time.Time
	LastFinishedAt *time.Time
	LastSummary    *RescoreSummary
	LastError      string
}

type Scheduler struct {
	runner   Runner
	locker   Locker
	interval time.Duration
	lockTTL  time.Duration
	onStart  bool
	running  atomic.Bool
	log      zerolog.Logger

	mu   sync.Mutex
	last Status
}

func NewScheduler(runner Runner, locker Locker, interval time.Duration, onStart bool, logger zerolog.Logger) *Scheduler {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &Scheduler{
		runner:   runner,
		locker:   locker,
		interval: interval,
		lockTTL:  rescoreLockTTL,
		onStart:  onStart,
		log:      logger.With().Str("pipeline", "rescore").Str("component", "scheduler").Logger(),
	}
}

// Start blocks until ctx is cancelled, running a sweep every interval.
func (s *Scheduler) Start(ctx context.Context) {
	s.log.Info().Dur("interval", s.interval).Bool("on_start", s.onStart).Msg("scheduler started")

	if s.onStart {
		s.Trigger(ctx)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("scheduler stopped")
			return
		case <-ticker.C:
			s.Trigger(ctx)
		}
	}
}

// Trigger runs one sweep unless another is in progress locally or, when a
// lock store is reachable, on another instance. It reports whether a sweep ran.
func (s *Scheduler) Trigger(ctx context.Context) bool {
	if !s.running.CompareAndSwap(false, true) {
		s.log.Warn().Str("status", "skipped").Str("reason", "already_running").Msg("rescore")
		return false
	}
	defer s.running.Store(false)

	release, ok := s.acquire(ctx)
	if !ok {
		return false
	}
	defer release()

	started := time.Now().UTC()
	s.mu.Lock()
	s.last.LastStartedAt = &started
	s.mu.Unlock()

	summary, err := s.runner.Run(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("status", "error").Msg("rescore")
	}

	finished := time.Now().UTC()
	s.mu.Lock()
	s.last.LastFinishedAt = &finished
	s.last.LastSummary = &summary
	s.last.LastError = ""
	if err != nil {
		s.last.LastError = err.Error()
	}
	s.mu.Unlock()
	return true
}

func (s *Scheduler) Status() Status {
	s.mu.Lock()
	st := s.last
	s.mu.Unlock()
	st.Running = s.running.Load()
	st.Interval = s.interval
	return st
}

func (s *Scheduler) acquire(ctx context.Context) (func(), bool) {
	noop := func() {}
	if s.locker == nil || !s.locker.Available() {
		return noop, true
	}

	token := uuid.NewString()
	ok, err := s.locker.SetIfNotExists(ctx, rescoreLockKey, token, s.lockTTL)
	if err != nil {
		s.log.Warn().Err(err).Msg("rescore lock unavailable, using local guard only")
		return noop, true
	}
	if !ok {
		s.log.Info().Str("status", "skipped").Str("reason", "locked_elsewhere").Msg("rescore")
		return noop, false
	}

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.keepLock(ctx, token, stop)
	}()

	return func() {
		close(stop)
		wg.Wait()

		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		if err := s.locker.DeleteIfValue(releaseCtx, rescoreLockKey, token); err != nil {
			s.log.Warn().Err(err).Msg("rescore lock release failed")
		}
	}, true
}

// keepLock extends the lock every third of its TTL until stop is closed.
func (s *Scheduler) keepLock(ctx context.Context, token string, stop <-chan struct{}) {
	ticker := time.NewTicker(s.lockTTL / 3)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			extendCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			ok, err := s.locker.ExtendIfValue(extendCtx, rescoreLockKey, token, s.lockTTL)
			cancel()
			if err != nil {
				s.log.Warn().Err(err).Msg("rescore lock refresh failed")
				continue
			}
			if !ok {
				s.log.Warn().Msg("rescore lock lost before the sweep finished")
				return
			}
		}
	}
}
