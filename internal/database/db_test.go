package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Exec(context.Context, string, ...any) (int64, error) { return 0, nil }
func (t *fakeTx) Query(context.Context, string, ...any) (Rows, error) { return nil, nil }
func (t *fakeTx) QueryRow(context.Context, string, ...any) Row { return nil }
func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback(context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type fakeDB struct {
	tx       *fakeTx
	beginErr error
}

func (d *fakeDB) Exec(context.Context, string, ...any) (int64, error) { return 0, nil }
func (d *fakeDB) Query(context.Context, string, ...any) (Rows, error) { return nil, nil }
func (d *fakeDB) QueryRow(context.Context, string, ...any) Row { return nil }
func (d *fakeDB) Ping(context.Context) error { return nil }
func (d *fakeDB) Close() error { return nil }
func (d *fakeDB) SQLDB() *sql.DB { return nil }
func (d *fakeDB) Begin(context.Context) (Tx, error) {
	if d.beginErr != nil {
		return nil, d.beginErr
	}
	return d.tx, nil
}

func TestWithTx_Commits(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}

	var got Tx
	require.NoError(t, WithTx(context.Background(), db, func(tx Tx) error {
		got = tx
		return nil
	}))
	assert.Same(t, db.tx, got)
	assert.True(t, db.tx.committed)
	assert.False(t, db.tx.rolledBack)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}
	boom := errors.New("boom")

	err := WithTx(context.Background(), db, func(Tx) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, db.tx.committed)
	assert.True(t, db.tx.rolledBack)
}

func TestWithTx_CommitFailure(t *testing.T) {
	commitErr := errors.New("serialization failure")
	db := &fakeDB{tx: &fakeTx{commitErr: commitErr}}

	err := WithTx(context.Background(), db, func(Tx) error { return nil })
	assert.ErrorIs(t, err, commitErr)
}

func TestWithTx_BeginFailure(t *testing.T) {
	beginErr := errors.New("pool closed")
	called := false

	err := WithTx(context.Background(), &fakeDB{beginErr: beginErr}, func(Tx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, beginErr)
	assert.False(t, called)
}
