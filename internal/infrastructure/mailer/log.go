package mailer

import (
	"context"

	"github.com/rs/zerolog"
)

// Log writes outgoing email to the logger instead of a mail server.
type Log struct {
	log zerolog.Logger
}

func NewLog(logger zerolog.Logger) *Log {
	return &Log{log: logger}
}

func (l *Log) Send(_ context.Context, to, subject, body string) error {
	l.log.Info().Str("to", to).Str("subject", subject).Str("body", body).Msg("email (log only)")
	return nil
}
