package models

import "time"

// Alert lifecycle states as stored in the database.
const (
	AlertStatusActive   = "ACTIVE"
	AlertStatusResolved = "RESOLVED"
)

// Severity buckets derived from the detection count.
const (
	SeverityLow    = "LOW"
	SeverityMedium = "MEDIUM"
	SeverityHigh   = "HIGH"
)

// Alert represents a fire alert record.
type Alert struct {
	ID              int64      `json:"id"`
	Type            string     `json:"alert_type"`
	Severity        string     `json:"severity"`
	Status          string     `json:"status"`
	DetectionsCount int        `json:"detections_count"`
	CreatedAt       time.Time  `json:"created_at"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
	DurationSeconds int64      `json:"duration_seconds"`
}

// SeverityFor buckets a detection count into a severity level.
func SeverityFor(detections int) string {
	switch {
	case detections > 5:
		return SeverityHigh
	case detections > 2:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
