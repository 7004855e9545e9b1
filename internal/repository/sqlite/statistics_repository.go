package sqlite

import (
	"fmt"
	"time"

	"firemonitor/internal/models"
)

// StatisticsRepository implements repository.StatisticsRepository for SQLite.
type StatisticsRepository struct {
	db *DB
}

// NewStatisticsRepository creates a new SQLite statistics repository.
func NewStatisticsRepository(db *DB) *StatisticsRepository {
	return &StatisticsRepository{db: db}
}

// RecordAlert increments the alert counter for a day.
func (r *StatisticsRepository) RecordAlert(date string) error {
	return r.upsert(date, `
		INSERT INTO daily_statistics (date, total_alerts) VALUES (?, 1)
		ON CONFLICT(date) DO UPDATE SET total_alerts = total_alerts + 1
	`, nil)
}

// RecordDetections adds to the detection counter for a day.
func (r *StatisticsRepository) RecordDetections(date string, count int) error {
	return r.upsert(date, `
		INSERT INTO daily_statistics (date, total_detections) VALUES (?, ?)
		ON CONFLICT(date) DO UPDATE SET total_detections = total_detections + excluded.total_detections
	`, &count)
}

// RecordImage increments the captured image counter for a day.
func (r *StatisticsRepository) RecordImage(date string) error {
	return r.upsert(date, `
		INSERT INTO daily_statistics (date, images_captured) VALUES (?, 1)
		ON CONFLICT(date) DO UPDATE SET images_captured = images_captured + 1
	`, nil)
}

func (r *StatisticsRepository) upsert(date, query string, count *int) error {
	r.db.Lock()
	defer r.db.Unlock()

	args := []interface{}{date}
	if count != nil {
		args = append(args, *count)
	}

	if _, err := r.db.Conn().Exec(query, args...); err != nil {
		return fmt.Errorf("failed to update daily statistics for %s: %w", date, err)
	}
	return nil
}

// GetLastDays returns daily statistics for the last n days, oldest first.
func (r *StatisticsRepository) GetLastDays(days int) ([]models.DailyStatistic, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	cutoff := time.Now().AddDate(0, 0, -days).Format("2006-01-02")

	rows, err := r.db.Conn().Query(`
		SELECT date, total_detections, total_alerts, images_captured
		FROM daily_statistics
		WHERE date >= ?
		ORDER BY date ASC
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query statistics: %w", err)
	}
	defer rows.Close()

	var stats []models.DailyStatistic
	for rows.Next() {
		var stat models.DailyStatistic
		if err := rows.Scan(&stat.Date, &stat.TotalDetections, &stat.TotalAlerts, &stat.ImagesCaptured); err != nil {
			return nil, fmt.Errorf("failed to scan statistics row: %w", err)
		}
		stats = append(stats, stat)
	}

	return stats, rows.Err()
}
