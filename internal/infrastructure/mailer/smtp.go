package mailer

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"resume-match/internal/config"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

// smtpClient is the part of *mail.Client the sender uses.
type smtpClient interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

type SMTP struct {
	client smtpClient
	from   string
	log    zerolog.Logger
}

func NewSMTP(cfg config.SMTPConfig, logger zerolog.Logger) (*SMTP, error) {
	port, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil {
		return nil, fmt.Errorf("smtp: invalid port %q: %w", cfg.Port, err)
	}

	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp: %w", err)
	}
	return newSMTP(client, cfg.From, logger), nil
}

func newSMTP(client smtpClient, from string, logger zerolog.Logger) *SMTP {
	return &SMTP{client: client, from: from, log: logger}
}

// Send delivers one plain text message. It returns only after the SMTP
// exchange has finished or been aborted, so a nil error means the server
// accepted the message and any error means it was not handed off.
func (s *SMTP) Send(ctx context.Context, to, subject, body string) error {
	if strings.ContainsAny(to, "\r\n") || strings.ContainsAny(subject, "\r\n") {
		return fmt.Errorf("smtp: header injection rejected")
	}

	msg, err := s.message(to, subject, body)
	if err != nil {
		return err
	}

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	s.log.Info().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}

func (s *SMTP) message(to, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return nil, fmt.Errorf("smtp: sender %q: %w", s.from, err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("smtp: recipient %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetDate()
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}
