package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"resume-match/internal/domain/notification"
	"resume-match/internal/infrastructure/messaging"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memBroker routes published bodies straight to the registered handler.
type memBroker struct {
	published [][]byte
	keys      []string
}

func (b *memBroker) Publish(_ context.Context, routingKey string, body []byte) error {
	b.keys = append(b.keys, routingKey)
	b.published = append(b.published, body)
	return nil
}

func (b *memBroker) Consume(ctx context.Context, _ string, handler messaging.Handler) error {
	for _, body := range b.published {
		if err := handler(ctx, body); err != nil {
			return err
		}
	}
	return nil
}

func TestQueue_PublishThenConsumeDelivers(t *testing.T) {
	n := pendingEmail()
	repo := newMemRepo(n)
	sender := &fakeSender{}
	broker := &memBroker{}

	require.NoError(t, NewQueuePublisher(broker).Publish(context.Background(), n))
	assert.Equal(t, []string{messaging.DeliverRoutingKey}, broker.keys)

	var msg deliveryMessage
	require.NoError(t, json.Unmarshal(broker.published[0], &msg))
	assert.Equal(t, n.ID, msg.NotificationID)

	d := NewDispatcher(repo, sender, nil, 5, time.Second, zerolog.Nop())
	require.NoError(t, NewConsumer(broker, repo, d, zerolog.Nop()).Run(context.Background()))
	assert.Len(t, sender.sent, 1)
	assert.Equal(t, notification.StatusSent, repo.get(n.ID).Status)
}

func TestConsumer_SkipsSettledAndMissing(t *testing.T) {
	sent := pendingEmail()
	sent.Status = notification.StatusSent
	repo := newMemRepo(sent)
	sender := &fakeSender{}
	c := NewConsumer(&memBroker{}, repo, NewDispatcher(repo, sender, nil, 5, 0, zerolog.Nop()), zerolog.Nop())

	for _, id := range []uuid.UUID{sent.ID, uuid.New()} {
		body, err := json.Marshal(deliveryMessage{NotificationID: id})
		require.NoError(t, err)
		assert.NoError(t, c.handle(context.Background(), body))
	}
	assert.Empty(t, sender.sent)
}

func TestConsumer_RejectsGarbage(t *testing.T) {
	repo := newMemRepo()
	c := NewConsumer(&memBroker{}, repo, NewDispatcher(repo, &fakeSender{}, nil, 5, 0, zerolog.Nop()), zerolog.Nop())
	assert.Error(t, c.handle(context.Background(), []byte("{")))
}
