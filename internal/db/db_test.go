package db

import (
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestEnsureAccountSeedsOnce(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.EnsureAccount("alice", 1000))
	balance, err := db.GetBalance("alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance)

	// A second ensure does not reseed.
	require.NoError(t, db.Debit("alice", 400, "buy-in"))
	require.NoError(t, db.EnsureAccount("alice", 1000))
	balance, err = db.GetBalance("alice")
	require.NoError(t, err)
	assert.Equal(t, int64(600), balance)
}

func TestDebitCreditRoundTrip(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.EnsureAccount("alice", 1000))

	require.NoError(t, db.Debit("alice", 400, "buy-in at mesa-1"))
	require.NoError(t, db.Credit("alice", 650, "cash-out from mesa-1"))

	balance, err := db.GetBalance("alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1250), balance)
}

func TestDebitInsufficientBalance(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.EnsureAccount("alice", 100))

	err := db.Debit("alice", 500, "buy-in")
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// The failed debit left the balance untouched.
	balance, err := db.GetBalance("alice")
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)
}

func TestGetBalanceUnknownAccount(t *testing.T) {
	db := newTestDB(t)
	_, err := db.GetBalance("nobody")
	assert.Error(t, err)
}

func TestRecordHand(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.RecordHand("mesa-1", "alice", 150, true))
	require.NoError(t, db.RecordHand("mesa-1", "bob", 40, false))
	require.NoError(t, db.RecordHand("mesa-2", "carol", 10, true))

	n, err := db.HandCount("mesa-1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = db.HandCount("mesa-3")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
