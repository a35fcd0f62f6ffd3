package repository

import (
	"context"

	"resume-match/internal/database"
)

// TxRepositories are repositories bound to one open transaction.
type TxRepositories struct {
	Matches       MatchRepository
	Notifications NotificationRepository
}

// Transactor runs fn with repositories that share a transaction. Writes made
// through them are committed together when fn returns nil and discarded
// otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(repos TxRepositories) error) error
}

type PostgresTransactor struct {
	db database.DB
}

func NewPostgresTransactor(db database.DB) *PostgresTransactor {
	return &PostgresTransactor{db: db}
}

func (t *PostgresTransactor) WithinTx(ctx context.Context, fn func(repos TxRepositories) error) error {
	return database.WithTx(ctx, t.db, func(tx database.Tx) error {
		return fn(TxRepositories{
			Matches:       NewPostgresMatchRepository(tx),
			Notifications: NewPostgresNotificationRepository(tx),
		})
	})
}
