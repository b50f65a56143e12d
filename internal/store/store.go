// Package store implements SQLite persistence for the API. All monetary
// amounts are stored in canonical decimal string form and all dates as ISO
// YYYY-MM-DD text, matching the wire representations exactly.
package store

import (
	"database/sql"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	_ "modernc.org/sqlite"
)

func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrations returns the schema statements. Each string is a single SQL
// statement (SQLite executes one at a time).
func Migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id    TEXT PRIMARY KEY,
			auth_sub   TEXT NOT NULL UNIQUE,
			email      TEXT NOT NULL UNIQUE,
			is_active  INTEGER NOT NULL DEFAULT 1,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,

		// transaction_id is the deterministic content-derived UUID; the
		// primary key doubles as the storage-level backstop against two
		// concurrent imports racing on the same identity.
		`CREATE TABLE IF NOT EXISTS transactions (
			transaction_id   TEXT PRIMARY KEY,
			user_id          TEXT NOT NULL REFERENCES users(user_id),
			transaction_date TEXT NOT NULL,
			post_date        TEXT NOT NULL,
			description      TEXT NOT NULL,
			category         TEXT,
			type             TEXT,
			amount           TEXT NOT NULL,
			memo             TEXT,
			account_id       TEXT NOT NULL,
			source           TEXT NOT NULL,
			created_at       TEXT NOT NULL,
			updated_at       TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_user_date
			ON transactions(user_id, transaction_date)`,

		`CREATE TABLE IF NOT EXISTS recurring_payments (
			payment_id    TEXT PRIMARY KEY,
			user_id       TEXT NOT NULL REFERENCES users(user_id),
			name          TEXT NOT NULL,
			description   TEXT,
			amount        TEXT NOT NULL,
			frequency     TEXT NOT NULL,
			due_day       INTEGER,
			category      TEXT,
			payee         TEXT,
			account_id    TEXT,
			start_date    TEXT NOT NULL,
			end_date      TEXT,
			is_active     INTEGER NOT NULL DEFAULT 1,
			reminder_days INTEGER NOT NULL DEFAULT 3,
			auto_pay      INTEGER NOT NULL DEFAULT 0,
			notes         TEXT,
			created_at    TEXT NOT NULL,
			updated_at    TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_recurring_user ON recurring_payments(user_id)`,

		// UNIQUE(payment_id, due_date) is defense-in-depth; the reconciler
		// still pre-checks covered due dates before creating.
		`CREATE TABLE IF NOT EXISTS payment_records (
			record_id      TEXT PRIMARY KEY,
			payment_id     TEXT NOT NULL REFERENCES recurring_payments(payment_id),
			user_id        TEXT NOT NULL REFERENCES users(user_id),
			due_date       TEXT NOT NULL,
			status         TEXT NOT NULL DEFAULT 'pending',
			amount_due     TEXT NOT NULL,
			paid_date      TEXT,
			amount_paid    TEXT,
			transaction_id TEXT,
			notes          TEXT,
			created_at     TEXT NOT NULL,
			updated_at     TEXT NOT NULL,
			UNIQUE(payment_id, due_date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_user_due ON payment_records(user_id, due_date)`,

		`CREATE TABLE IF NOT EXISTS import_history (
			import_id     TEXT PRIMARY KEY,
			user_id       TEXT NOT NULL REFERENCES users(user_id),
			import_type   TEXT NOT NULL,
			account_id    TEXT NOT NULL,
			filename      TEXT,
			rows_total    INTEGER NOT NULL,
			rows_inserted INTEGER NOT NULL,
			rows_skipped  INTEGER NOT NULL,
			status        TEXT NOT NULL,
			error_message TEXT,
			created_at    TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_import_history_user ON import_history(user_id, created_at)`,
	}
}

func Migrate(db *sql.DB) error {
	for _, stmt := range Migrations() {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ---- column codecs ----

func nowText() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

func parseDate(s string) civil.Date {
	d, _ := civil.ParseDate(s)
	return d
}

func parseAmount(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullDate(p *civil.Date) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: p.String(), Valid: true}
}

func datePtr(ns sql.NullString) *civil.Date {
	if !ns.Valid {
		return nil
	}
	d := parseDate(ns.String)
	return &d
}

func nullAmount(p *decimal.Decimal) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: p.String(), Valid: true}
}

func amountPtr(ns sql.NullString) *decimal.Decimal {
	if !ns.Valid {
		return nil
	}
	d := parseAmount(ns.String)
	return &d
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func intPtr(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}
