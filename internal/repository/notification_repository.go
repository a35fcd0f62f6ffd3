package repository

import (
	"context"
	"time"

	"resume-match/internal/database"
	"resume-match/internal/domain/notification"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, n notification.Notification) (notification.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]notification.Notification, error)
	GetByID(ctx context.Context, id uuid.UUID) (notification.Notification, error)

	// ClaimPending marks up to limit pending notifications as queued and returns
	// them. Rows queued before staleBefore are claimable again.
	ClaimPending(ctx context.Context, limit int, staleBefore time.Time) ([]notification.Notification, error)
	ReleaseClaim(ctx context.Context, id uuid.UUID) error
	MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error
	// MarkAttemptFailed records a failed delivery; the row becomes failed once
	// attempts reach maxAttempts and is otherwise left pending for retry.
	MarkAttemptFailed(ctx context.Context, id uuid.UUID, cause string, maxAttempts int) (notification.Status, error)
}

type PostgresNotificationRepository struct {
	db database.Querier
}

// NewPostgresNotificationRepository binds the repository to a pool or an open transaction.
func NewPostgresNotificationRepository(db database.Querier) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

const notificationColumns = `id, user_id, match_id, channel, status, recipient, subject, body, attempts, last_error, sent_at, created_at`

func (r *PostgresNotificationRepository) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if n.Status == "" {
		n.Status = notification.StatusPending
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO notifications (id, user_id, match_id, channel, status, recipient, subject, body, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 RETURNING `+notificationColumns,
		n.ID,
		n.UserID,
		n.MatchID,
		string(n.Channel),
		string(n.Status),
		n.Recipient,
		n.Subject,
		n.Body,
		n.CreatedAt,
	)
	return scanNotification(row)
}

func (r *PostgresNotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]notification.Notification, error) {
	limit, offset = clampPage(limit, offset)
	return r.query(ctx,
		`SELECT `+notificationColumns+` FROM notifications
		 WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
}

func (r *PostgresNotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (notification.Notification, error) {
	row := r.db.QueryRow(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id)
	n, err := scanNotification(row)
	if err != nil {
		if isNoRows(err) {
			return notification.Notification{}, ErrNotificationNotFound
		}
		return notification.Notification{}, err
	}
	return n, nil
}

func (r *PostgresNotificationRepository) ClaimPending(ctx context.Context, limit int, staleBefore time.Time) ([]notification.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	return r.query(ctx,
		`UPDATE notifications SET queued_at = now()
		 WHERE id IN (
			SELECT id FROM notifications
			WHERE status = 'pending' AND (queued_at IS NULL OR queued_at < $1)
			ORDER BY created_at ASC
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		 )
		 RETURNING `+notificationColumns,
		staleBefore, limit,
	)
}

func (r *PostgresNotificationRepository) ReleaseClaim(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE notifications SET queued_at = NULL WHERE id = $1 AND status = 'pending'`, id)
	return err
}

func (r *PostgresNotificationRepository) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	n, err := r.db.Exec(ctx,
		`UPDATE notifications
		 SET status = 'sent', sent_at = $2, attempts = attempts + 1, last_error = NULL, queued_at = NULL
		 WHERE id = $1`,
		id, sentAt,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *PostgresNotificationRepository) MarkAttemptFailed(ctx context.Context, id uuid.UUID, cause string, maxAttempts int) (notification.Status, error) {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	var status string
	row := r.db.QueryRow(ctx,
		`UPDATE notifications
		 SET attempts = attempts + 1,
			last_error = $2,
			queued_at = NULL,
			status = CASE WHEN attempts + 1 >= $3 THEN 'failed' ELSE 'pending' END
		 WHERE id = $1
		 RETURNING status`,
		id, cause, maxAttempts,
	)
	if err := row.Scan(&status); err != nil {
		if isNoRows(err) {
			return "", ErrNotificationNotFound
		}
		return "", err
	}
	return notification.Status(status), nil
}

func (r *PostgresNotificationRepository) query(ctx context.Context, q string, args ...any) ([]notification.Notification, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]notification.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanNotification(row database.Row) (notification.Notification, error) {
	var n notification.Notification
	var channel, status string
	err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.MatchID,
		&channel,
		&status,
		&n.Recipient,
		&n.Subject,
		&n.Body,
		&n.Attempts,
		&n.LastError,
		&n.SentAt,
		&n.CreatedAt,
	)
	n.Channel = notification.Channel(channel)
	n.Status = notification.Status(status)
	return n, err
}
