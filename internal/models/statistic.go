package models

// DailyStatistic aggregates activity counters for a single day.
type DailyStatistic struct {
	Date            string `json:"date"`
	TotalDetections int    `json:"total_detections"`
	TotalAlerts     int    `json:"total_alerts"`
	ImagesCaptured  int    `json:"images_captured"`
}
