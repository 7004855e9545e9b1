package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"firemonitor/internal/models"
)

// AlertRepository implements repository.AlertRepository for SQLite.
type AlertRepository struct {
	db *DB
}

// NewAlertRepository creates a new SQLite alert repository.
func NewAlertRepository(db *DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// Create adds a new alert record to the database.
func (r *AlertRepository) Create(alert *models.Alert) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`
		INSERT INTO alerts (alert_type, severity, status, detections_count, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, alert.Type, alert.Severity, alert.Status, alert.DetectionsCount, alert.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert alert: %w", err)
	}

	return result.LastInsertId()
}

// FindMostRecentActive returns the newest alert still marked ACTIVE, or
// nil when no alert is active.
func (r *AlertRepository) FindMostRecentActive() (*models.Alert, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	row := r.db.Conn().QueryRow(`
		SELECT id, alert_type, severity, status, detections_count, created_at, resolved_at, duration_seconds
		FROM alerts
		WHERE status = ?
		ORDER BY created_at DESC
		LIMIT 1
	`, models.AlertStatusActive)

	alert, err := scanAlert(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query active alert: %w", err)
	}
	return alert, nil
}

// GetByID retrieves a single alert by its id.
func (r *AlertRepository) GetByID(id int64) (*models.Alert, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	row := r.db.Conn().QueryRow(`
		SELECT id, alert_type, severity, status, detections_count, created_at, resolved_at, duration_seconds
		FROM alerts WHERE id = ?
	`, id)

	alert, err := scanAlert(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query alert %d: %w", id, err)
	}
	return alert, nil
}

// GetRecent retrieves the newest alerts, most recent first.
func (r *AlertRepository) GetRecent(limit int) ([]models.Alert, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT id, alert_type, severity, status, detections_count, created_at, resolved_at, duration_seconds
		FROM alerts
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []models.Alert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, *alert)
	}

	return alerts, rows.Err()
}

// UpdateDetections refreshes the detection count of an existing alert.
func (r *AlertRepository) UpdateDetections(id int64, detections int) error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`
		UPDATE alerts SET detections_count = ? WHERE id = ?
	`, detections, id); err != nil {
		return fmt.Errorf("failed to update detections for alert %d: %w", id, err)
	}
	return nil
}

// Resolve marks an active alert RESOLVED and records its duration. It is
// an error to resolve an alert that is not active.
func (r *AlertRepository) Resolve(id int64, resolvedAt time.Time) error {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`
		UPDATE alerts
		SET status = ?,
		    resolved_at = ?,
		    duration_seconds = CAST((julianday(?) - julianday(created_at)) * 86400 AS INTEGER)
		WHERE id = ? AND status = ?
	`, models.AlertStatusResolved, resolvedAt, resolvedAt, id, models.AlertStatusActive)
	if err != nil {
		return fmt.Errorf("failed to resolve alert %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to resolve alert %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("alert %d is not active", id)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAlert(s scanner) (*models.Alert, error) {
	var alert models.Alert
	var resolvedAt sql.NullTime

	err := s.Scan(&alert.ID, &alert.Type, &alert.Severity, &alert.Status,
		&alert.DetectionsCount, &alert.CreatedAt, &resolvedAt, &alert.DurationSeconds)
	if err != nil {
		return nil, err
	}

	if resolvedAt.Valid {
		alert.ResolvedAt = &resolvedAt.Time
	}
	return &alert, nil
}
