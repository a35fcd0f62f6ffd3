package mailer

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"resume-match/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

type fakeClient struct {
	msgs      []*mail.Msg
	err       error
	delay     time.Duration
	delivered atomic.Int32
	// honorCtx aborts the exchange when ctx ends, like a real dial/write does.
	honorCtx bool
}

func (f *fakeClient) DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error {
	if f.delay > 0 {
		if f.honorCtx {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(f.delay):
			}
		} else {
			time.Sleep(f.delay)
		}
	}
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, messages...)
	f.delivered.Add(int32(len(messages)))
	return nil
}

func render(t *testing.T, m *mail.Msg) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestSMTP_Send(t *testing.T) {
	client := &fakeClient{}
	s := newSMTP(client, "bot@example.com", zerolog.Nop())

	require.NoError(t, s.Send(context.Background(), "dev@example.com", "New Job Match!", "You have a 80.00% match for Go Dev"))
	require.Len(t, client.msgs, 1)

	raw := render(t, client.msgs[0])
	assert.Contains(t, raw, "Subject: New Job Match!")
	assert.Contains(t, raw, "dev@example.com")
	assert.Contains(t, raw, "bot@example.com")
	assert.Contains(t, raw, "You have a 80.00% match for Go Dev")
}

func TestSMTP_SendFailure(t *testing.T) {
	s := newSMTP(&fakeClient{err: errors.New("550 mailbox unavailable")}, "bot@example.com", zerolog.Nop())

	err := s.Send(context.Background(), "dev@example.com", "s", "b")
	assert.ErrorContains(t, err, "550")
}

func TestSMTP_RejectsHeaderInjection(t *testing.T) {
	client := &fakeClient{}
	s := newSMTP(client, "bot@example.com", zerolog.Nop())

	assert.Error(t, s.Send(context.Background(), "a@example.com\r\nBcc: x@example.com", "s", "b"))
	assert.Error(t, s.Send(context.Background(), "a@example.com", "s\r\nBcc: x@example.com", "b"))
	assert.Empty(t, client.msgs)
}

func TestSMTP_RejectsInvalidRecipient(t *testing.T) {
	client := &fakeClient{}
	s := newSMTP(client, "bot@example.com", zerolog.Nop())

	assert.Error(t, s.Send(context.Background(), "not an address", "s", "b"))
	assert.Empty(t, client.msgs)
}

func TestSMTP_DeadlineAbortsWithoutDelivery(t *testing.T) {
	client := &fakeClient{delay: 200 * time.Millisecond, honorCtx: true}
	s := newSMTP(client, "bot@example.com", zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, s.Send(ctx, "a@example.com", "s", "b"), context.DeadlineExceeded)
	assert.Zero(t, client.delivered.Load())
}

func TestSMTP_ReportsOutcomeOfSlowDelivery(t *testing.T) {
	client := &fakeClient{delay: 50 * time.Millisecond}
	s := newSMTP(client, "bot@example.com", zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	// The message went out, so Send must not report a failure that would be retried.
	err := s.Send(ctx, "a@example.com", "s", "b")
	assert.NoError(t, err)
	assert.Equal(t, int32(1), client.delivered.Load())
}

func TestNewSMTP_InvalidPort(t *testing.T) {
	_, err := NewSMTP(config.SMTPConfig{Host: "mail.local", Port: "smtp"}, zerolog.Nop())
	assert.Error(t, err)
}

func TestNewSMTP_Configured(t *testing.T) {
	s, err := NewSMTP(config.SMTPConfig{Host: "mail.local", Port: "2525", Username: "u", Password: "p", From: "bot@example.com"}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "bot@example.com", s.from)
	assert.NotNil(t, s.client)
}
