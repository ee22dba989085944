package db

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrInsufficientBalance is returned when a debit would take an account
// below zero.
var ErrInsufficientBalance = errors.New("db: insufficient balance")

// DB wraps the sqlite connection holding player bankrolls and the hand
// history ledger. Accounts are keyed by display name, which outlives the
// per-seat player ids minted at join time.
type DB struct {
	*sql.DB
}

// NewDB opens (creating if needed) the database at dbPath
func NewDB(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS accounts (
			name TEXT PRIMARY KEY,
			balance INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS transactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			account TEXT NOT NULL,
			amount INTEGER NOT NULL,
			type TEXT NOT NULL,
			description TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (account) REFERENCES accounts(name)
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS hands (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			table_id TEXT NOT NULL,
			winner TEXT NOT NULL,
			pot INTEGER NOT NULL,
			showdown INTEGER NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

// EnsureAccount creates the account with the given starting balance if it
// does not exist yet, recording the seed as a transaction. Existing
// accounts are untouched.
func (db *DB) EnsureAccount(name string, startingBalance int64) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO accounts (name, balance) VALUES (?, ?)
		ON CONFLICT(name) DO NOTHING
	`, name, startingBalance)
	if err != nil {
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n > 0 {
		_, err = tx.Exec(`
			INSERT INTO transactions (account, amount, type, description)
			VALUES (?, ?, 'seed', 'initial balance')
		`, name, startingBalance)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetBalance returns the account's current balance
func (db *DB) GetBalance(name string) (int64, error) {
	var balance int64
	err := db.QueryRow("SELECT balance FROM accounts WHERE name = ?", name).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("account %q not found", name)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

// Debit removes amount from the account, failing with
// ErrInsufficientBalance when the account cannot cover it.
func (db *DB) Debit(name string, amount int64, description string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE accounts SET balance = balance - ?
		WHERE name = ? AND balance >= ?
	`, amount, name, amount)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return ErrInsufficientBalance
	}

	_, err = tx.Exec(`
		INSERT INTO transactions (account, amount, type, description)
		VALUES (?, ?, 'debit', ?)
	`, name, -amount, description)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Credit adds amount to the account, creating it if needed
func (db *DB) Credit(name string, amount int64, description string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO accounts (name, balance) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET balance = balance + ?
	`, name, amount, amount)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO transactions (account, amount, type, description)
		VALUES (?, ?, 'credit', ?)
	`, name, amount, description)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// RecordHand appends one resolved hand to the history ledger
func (db *DB) RecordHand(tableID, winner string, pot int64, showdown bool) error {
	_, err := db.Exec(`
		INSERT INTO hands (table_id, winner, pot, showdown)
		VALUES (?, ?, ?, ?)
	`, tableID, winner, pot, showdown)
	return err
}

// HandCount returns the number of recorded hands for a table
func (db *DB) HandCount(tableID string) (int, error) {
	var n int
	err := db.QueryRow("SELECT COUNT(*) FROM hands WHERE table_id = ?", tableID).Scan(&n)
	return n, err
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
