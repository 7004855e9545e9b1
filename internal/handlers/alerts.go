package handlers

import (
	"net/http"

	"firemonitor/internal/logger"
	"firemonitor/internal/repository"
)

const recentAlertsLimit = 50
const statisticsDays = 7

// AlertsHandler lists recent alerts from the persistence service.
func AlertsHandler(alerts repository.AlertRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := alerts.GetRecent(recentAlertsLimit)
		if err != nil {
			logger.Error("Error querying alerts: %v", err)
			writeJSON(w, http.StatusInternalServerError, apiResponse{Success: false, Error: "failed to query alerts"}, logger)
			return
		}
		writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: records}, logger)
	}
}

// StatisticsHandler returns per-day detection statistics for the last week.
func StatisticsHandler(stats repository.StatisticsRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := stats.GetLastDays(statisticsDays)
		if err != nil {
			logger.Error("Error querying statistics: %v", err)
			writeJSON(w, http.StatusInternalServerError, apiResponse{Success: false, Error: "failed to query statistics"}, logger)
			return
		}
		writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: records}, logger)
	}
}
