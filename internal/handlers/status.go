package handlers

import (
	"net/http"
	"runtime"

	"firemonitor/internal/logger"
	"firemonitor/internal/monitor"
	"firemonitor/internal/status"
)

type serverInfo struct {
	Uptime   float64 `json:"uptime"`
	Platform string  `json:"platform"`
	Viewers  int     `json:"viewers"`
}

type statusData struct {
	status.SystemStatus
	Server serverInfo `json:"server"`
}

// StatusHandler returns the canonical system status plus server info.
func StatusHandler(m *monitor.Monitor, viewerCount func() int, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := statusData{
			SystemStatus: m.Snapshot(),
			Server: serverInfo{
				Uptime:   uptimeSeconds(),
				Platform: runtime.GOOS,
				Viewers:  viewerCount(),
			},
		}
		writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: data}, logger)
	}
}

type healthData struct {
	Status string  `json:"status"`
	MQTT   bool    `json:"mqtt"`
	Uptime float64 `json:"uptime"`
}

// HealthHandler is a minimal liveness probe.
func HealthHandler(m *monitor.Monitor, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthData{
			Status: "ok",
			MQTT:   m.TransportConnected(),
			Uptime: uptimeSeconds(),
		}, logger)
	}
}
