package notification

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelInApp Channel = "in_app"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

const MatchSubject = "New Job Match!"

type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	MatchID   *uuid.UUID
	Channel   Channel
	Status    Status
	Recipient *string
	Subject   string
	Body      string
	Attempts  int
	LastError *string
	SentAt    *time.Time
	CreatedAt time.Time
}

// MatchEvent is what Decide needs to know about a freshly recorded match.
type MatchEvent struct {
	UserID       uuid.UUID
	MatchID      uuid.UUID
	JobTitle     string
	Score        float64
	ContactEmail *string
}

// Decide builds the pending notification for a new match. It performs no IO;
// delivery is attempted later from the notifications outbox.
func Decide(evt MatchEvent) Notification {
	matchID := evt.MatchID
	n := Notification{
		UserID:  evt.UserID,
		MatchID: &matchID,
		Channel: ChannelInApp,
		Status:  StatusPending,
		Subject: MatchSubject,
		Body:    MatchBody(evt.JobTitle, evt.Score),
	}
	if evt.ContactEmail != nil {
		if to := strings.TrimSpace(*evt.ContactEmail); to != "" {
			n.Channel = ChannelEmail
			n.Recipient = &to
		}
	}
	return n
}

func MatchBody(jobTitle string, score float64) string {
	return fmt.Sprintf("You have a %.2f%% match for %s", score, jobTitle)
}
