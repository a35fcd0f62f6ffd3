package outbox

import (
	"context"
	"time"

	"resume-match/internal/domain/notification"
	"resume-match/internal/metrics"
	"resume-match/internal/repository"

	"github.com/rs/zerolog"
)

const (
	defaultPollingInterval = 5 * time.Second
	defaultBatchSize       = 20
	defaultStaleAfter      = 5 * time.Minute
)

type Publisher interface {
	Publish(ctx context.Context, n notification.Notification) error
}

// Relay polls pending notifications and hands them to a Publisher. Claimed
// rows not settled within staleAfter are picked up again.
type Relay struct {
	repo       repository.NotificationRepository
	publisher  Publisher
	interval   time.Duration
	batchSize  int
	staleAfter time.Duration
	now        func() time.Time
	log        zerolog.Logger
}

func NewRelay(repo repository.NotificationRepository, publisher Publisher, interval time.Duration, batchSize int, logger zerolog.Logger) *Relay {
	if interval <= 0 {
		interval = defaultPollingInterval
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Relay{
		repo:       repo,
		publisher:  publisher,
		interval:   interval,
		batchSize:  batchSize,
		staleAfter: defaultStaleAfter,
		now:        time.Now,
		log:        logger,
	}
}

// Start polls until ctx is cancelled.
func (r *Relay) Start(ctx context.Context) {
	r.log.Info().Dur("interval", r.interval).Int("batch_size", r.batchSize).Msg("outbox relay started")
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info().Msg("outbox relay stopped")
			return
		case <-ticker.C:
			if _, err := r.RunOnce(ctx); err != nil && ctx.Err() == nil {
				r.log.Error().Err(err).Msg("outbox poll failed")
			}
		}
	}
}

// RunOnce claims one batch and publishes it, returning how many rows were
// handed to the publisher.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	batch, err := r.repo.ClaimPending(ctx, r.batchSize, r.now().Add(-r.staleAfter))
	if err != nil {
		return 0, err
	}
	metrics.OutboxBatchSize.Observe(float64(len(batch)))
	if len(batch) == 0 {
		return 0, nil
	}

	r.log.Debug().Int("claimed", len(batch)).Msg("outbox batch claimed")

	published := 0
	for _, n := range batch {
		if err := r.publisher.Publish(ctx, n); err != nil {
			r.log.Warn().Err(err).Str("notification_id", n.ID.String()).Msg("outbox publish failed")
			if relErr := r.repo.ReleaseClaim(context.WithoutCancel(ctx), n.ID); relErr != nil {
				r.log.Error().Err(relErr).Str("notification_id", n.ID.String()).Msg("outbox release failed")
			}
			continue
		}
		published++
	}
	return published, nil
}
