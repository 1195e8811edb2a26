package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

var ErrNotFound = errors.New("storage: not found")

// Firing is one journaled delivery: which reminder fired, when, and
// whether a callback actually received it.
type Firing struct {
	ID         int64
	ReminderID string
	Title      string
	FiredAt    time.Time
	Delivered  bool
}

// FiringLog is the append-only SQLite journal of reminder deliveries.
// It is an observability aid: losing it never affects firing behavior.
type FiringLog struct {
	db *sql.DB
}

func NewFiringLog(db *sql.DB) (*FiringLog, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("enable wal: %w", err)
	}
	return &FiringLog{db: db}, nil
}

func OpenFiringLog(path string) (*FiringLog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	log, err := NewFiringLog(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return log, nil
}

func (l *FiringLog) Close() error {
	return l.db.Close()
}

func (l *FiringLog) Record(ctx context.Context, in Firing) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO firings (reminder_id, title, fired_at, delivered)
		VALUES (?, ?, ?, ?)`,
		in.ReminderID, in.Title, mustTime(in.FiredAt), boolInt(in.Delivered),
	)
	return err
}

// Recent returns the newest firings first, at most limit rows.
func (l *FiringLog) Recent(ctx context.Context, limit int) ([]Firing, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, reminder_id, title, fired_at, delivered
		FROM firings ORDER BY fired_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Firing, 0)
	for rows.Next() {
		item, scanErr := scanFiring(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// Prune deletes journal rows older than cutoff and reports how many went.
func (l *FiringLog) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := l.db.ExecContext(ctx, `DELETE FROM firings WHERE fired_at < ?`, mustTime(cutoff))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFiring(s scanner) (Firing, error) {
	var out Firing
	var fired string
	var delivered int
	if err := s.Scan(&out.ID, &out.ReminderID, &out.Title, &fired, &delivered); err != nil {
		return Firing{}, err
	}
	firedAt, err := time.Parse(sqliteTimeLayout, fired)
	if err != nil {
		return Firing{}, err
	}
	out.FiredAt = firedAt
	out.Delivered = delivered == 1
	return out, nil
}
