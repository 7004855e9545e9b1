package handlers

import (
	"net/http"

	"firemonitor/internal/logger"
	"firemonitor/internal/monitor"
)

// CaptureHandler triggers a manual camera capture over MQTT.
func CaptureHandler(m *monitor.Monitor, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		result := m.RequestCapture("api")
		if !result.Success {
			code := http.StatusInternalServerError
			if result.Error == "transport unavailable" {
				code = http.StatusServiceUnavailable
			}
			writeJSON(w, code, apiResponse{Success: false, Error: result.Error}, logger)
			return
		}

		writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: result.Message}, logger)
	}
}
