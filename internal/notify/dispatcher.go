package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resume-match/internal/domain/notification"
	"resume-match/internal/metrics"
	"resume-match/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrNoRecipient = errors.New("email notification has no recipient")

type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type Pusher interface {
	SendToUser(userID uuid.UUID, message []byte) int
}

type Event struct {
	Type      string     `json:"type"`
	ID        uuid.UUID  `json:"id"`
	MatchID   *uuid.UUID `json:"match_id,omitempty"`
	Subject   string     `json:"subject"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"created_at"`
}

// Dispatcher delivers notifications over their channel and records the
// outcome on the notification row.
type Dispatcher struct {
	repo        repository.NotificationRepository
	sender      Sender
	pusher      Pusher
	maxAttempts int
	sendTimeout time.Duration
	now         func() time.Time
	log         zerolog.Logger
}

func NewDispatcher(repo repository.NotificationRepository, sender Sender, pusher Pusher, maxAttempts int, sendTimeout time.Duration, logger zerolog.Logger) *Dispatcher {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &Dispatcher{
		repo:        repo,
		sender:      sender,
		pusher:      pusher,
		maxAttempts: maxAttempts,
		sendTimeout: sendTimeout,
		now:         time.Now,
		log:         logger,
	}
}

// Deliver performs channel delivery only. In-app notifications are stored
// already, so a missing live connection is not a failure.
func (d *Dispatcher) Deliver(ctx context.Context, n notification.Notification) error {
	switch n.Channel {
	case notification.ChannelEmail:
		if n.Recipient == nil || *n.Recipient == "" {
			return ErrNoRecipient
		}
		sendCtx := ctx
		if d.sendTimeout > 0 {
			var cancel context.CancelFunc
			sendCtx, cancel = context.WithTimeout(ctx, d.sendTimeout)
			defer cancel()
		}
		return d.sender.Send(sendCtx, *n.Recipient, n.Subject, n.Body)

	case notification.ChannelInApp:
		if d.pusher == nil {
			return nil
		}
		b, err := json.Marshal(Event{
			Type:      "notification",
			ID:        n.ID,
			MatchID:   n.MatchID,
			Subject:   n.Subject,
			Body:      n.Body,
			CreatedAt: n.CreatedAt,
		})
		if err != nil {
			return err
		}
		d.pusher.SendToUser(n.UserID, b)
		return nil

	default:
		return fmt.Errorf("unknown notification channel %q", n.Channel)
	}
}

// Handle delivers n and records the outcome. A delivery failure is recorded
// as a failed attempt; only a failure to record is returned.
func (d *Dispatcher) Handle(ctx context.Context, n notification.Notification) error {
	logger := d.log.With().
		Str("notification_id", n.ID.String()).
		Str("channel", string(n.Channel)).
		Logger()

	if err := d.Deliver(ctx, n); err != nil {
		status, markErr := d.repo.MarkAttemptFailed(ctx, n.ID, err.Error(), d.maxAttempts)
		if markErr != nil {
			return fmt.Errorf("record failed attempt: %w", markErr)
		}
		metrics.NotificationsDelivered.WithLabelValues(string(n.Channel), "failed").Inc()
		logger.Warn().Err(err).Int("attempt", n.Attempts+1).Str("status", string(status)).Msg("notification delivery failed")
		return nil
	}

	if err := d.repo.MarkSent(ctx, n.ID, d.now().UTC()); err != nil {
		return fmt.Errorf("record sent: %w", err)
	}
	metrics.NotificationsDelivered.WithLabelValues(string(n.Channel), "sent").Inc()
	logger.Info().Msg("notification sent")
	return nil
}

// Publish lets the dispatcher act as the outbox publisher when no broker is
// configured.
func (d *Dispatcher) Publish(ctx context.Context, n notification.Notification) error {
	return d.Handle(ctx, n)
}
