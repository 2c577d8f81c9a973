package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/arnv-dev/go-aqi-alerts/internal/alerting"
	"github.com/arnv-dev/go-aqi-alerts/internal/models"
	"github.com/arnv-dev/go-aqi-alerts/internal/notify"
)

// SQLiteDB persists records as JSON documents: one row per notification,
// a single row for settings, one row per location for the last observation.
// Category and priority serialize as lowercase tags and timestamps as
// RFC 3339, via the models' JSON encoding.
type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating to database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS settings (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			payload TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS notifications (
			id TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS last_observed (
			location TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_notifications_created_at ON notifications(created_at);
  	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) SaveSettings(ctx context.Context, settings alerting.Settings) error {
	payload, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("error encoding settings: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO settings (id, payload, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("error saving settings: %w", err)
	}
	return nil
}

func (s *SQLiteDB) LoadSettings(ctx context.Context) (alerting.Settings, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM settings WHERE id = 1`).Scan(&payload)
	if err == sql.ErrNoRows {
		return alerting.Settings{}, ErrNotFound
	}
	if err != nil {
		return alerting.Settings{}, fmt.Errorf("error loading settings: %w", err)
	}

	var settings alerting.Settings
	if err := json.Unmarshal([]byte(payload), &settings); err != nil {
		return alerting.Settings{}, fmt.Errorf("error decoding settings: %w", err)
	}
	return settings, nil
}

// SaveNotifications replaces the stored history wholesale, mirroring the
// in-memory store it snapshots.
func (s *SQLiteDB) SaveNotifications(ctx context.Context, items []notify.Notification) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM notifications`); err != nil {
		return fmt.Errorf("error clearing notifications: %w", err)
	}

	for _, n := range items {
		payload, err := json.Marshal(n)
		if err != nil {
			return fmt.Errorf("error encoding notification %s: %w", n.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO notifications (id, payload, created_at) VALUES (?, ?, ?)`,
			n.ID, string(payload), n.CreatedAt); err != nil {
			return fmt.Errorf("error saving notification %s: %w", n.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing notifications: %w", err)
	}
	return nil
}

// LoadNotifications returns the stored history newest first.
func (s *SQLiteDB) LoadNotifications(ctx context.Context) ([]*notify.Notification, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM notifications ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("error loading notifications: %w", err)
	}
	defer rows.Close()

	var items []*notify.Notification
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("error scanning notification: %w", err)
		}
		var n notify.Notification
		if err := json.Unmarshal([]byte(payload), &n); err != nil {
			return nil, fmt.Errorf("error decoding notification: %w", err)
		}
		items = append(items, &n)
	}
	return items, rows.Err()
}

func (s *SQLiteDB) SaveLastObserved(ctx context.Context, obs *models.AqiObservation) error {
	payload, err := json.Marshal(obs)
	if err != nil {
		return fmt.Errorf("error encoding observation: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO last_observed (location, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(location) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		obs.LocationLabel, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("error saving last observation: %w", err)
	}
	return nil
}

func (s *SQLiteDB) LoadLastObserved(ctx context.Context) ([]*models.AqiObservation, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM last_observed`)
	if err != nil {
		return nil, fmt.Errorf("error loading last observations: %w", err)
	}
	defer rows.Close()

	var out []*models.AqiObservation
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("error scanning observation: %w", err)
		}
		var obs models.AqiObservation
		if err := json.Unmarshal([]byte(payload), &obs); err != nil {
			return nil, fmt.Errorf("error decoding observation: %w", err)
		}
		out = append(out, &obs)
	}
	return out, rows.Err()
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}
