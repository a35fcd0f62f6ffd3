package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"resume-match/internal/domain/notification"
	"resume-match/internal/infrastructure/messaging"
	"resume-match/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type deliveryMessage struct {
	NotificationID uuid.UUID `json:"notification_id"`
}

type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

type MessageConsumer interface {
	Consume(ctx context.Context, queue string, handler messaging.Handler) error
}

// QueuePublisher hands notifications to the broker for delivery by a
// Consumer, possibly on another instance.
type QueuePublisher struct {
	mq MessagePublisher
}

func NewQueuePublisher(mq MessagePublisher) *QueuePublisher {
	return &QueuePublisher{mq: mq}
}

func (p *QueuePublisher) Publish(ctx context.Context, n notification.Notification) error {
	body, err := json.Marshal(deliveryMessage{NotificationID: n.ID})
	if err != nil {
		return err
	}
	return p.mq.Publish(ctx, messaging.DeliverRoutingKey, body)
}

type Consumer struct {
	mq         MessageConsumer
	repo       repository.NotificationRepository
	dispatcher *Dispatcher
	log        zerolog.Logger
}

func NewConsumer(mq MessageConsumer, repo repository.NotificationRepository, dispatcher *Dispatcher, logger zerolog.Logger) *Consumer {
	return &Consumer{mq: mq, repo: repo, dispatcher: dispatcher, log: logger}
}

func (c *Consumer) Run(ctx context.Context) error {
	c.log.Info().Str("queue", messaging.DeliverQueue).Msg("notification consumer started")
	return c.mq.Consume(ctx, messaging.DeliverQueue, c.handle)
}

// handle re-reads the row so a redelivered message for an already settled
// notification is acknowledged without sending twice.
func (c *Consumer) handle(ctx context.Context, body []byte) error {
	var msg deliveryMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("decode delivery message: %w", err)
	}

	n, err := c.repo.GetByID(ctx, msg.NotificationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			c.log.Warn().Str("notification_id", msg.NotificationID.String()).Msg("notification gone, dropping message")
			return nil
		}
		return err
	}
	if n.Status != notification.StatusPending {
		return nil
	}
	return c.dispatcher.Handle(ctx, n)
}
