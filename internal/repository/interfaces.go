package repository

import (
	"time"

	"firemonitor/internal/models"
)

// AlertRepository defines the interface for alert data operations.
type AlertRepository interface {
	// Create operations
	Create(alert *models.Alert) (int64, error)

	// Read operations
	FindMostRecentActive() (*models.Alert, error)
	GetByID(id int64) (*models.Alert, error)
	GetRecent(limit int) ([]models.Alert, error)

	// Update operations
	UpdateDetections(id int64, detections int) error
	Resolve(id int64, resolvedAt time.Time) error
}

// StatisticsRepository defines the interface for daily statistics.
type StatisticsRepository interface {
	RecordAlert(date string) error
	RecordDetections(date string, count int) error
	RecordImage(date string) error
	GetLastDays(days int) ([]models.DailyStatistic, error)
}
