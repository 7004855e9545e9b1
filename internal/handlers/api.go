package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"firemonitor/internal/logger"
)

var startTime = time.Now()

// apiResponse is the envelope for every JSON API reply.
type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}, logger *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Error encoding JSON response: %v", err)
	}
}

func uptimeSeconds() float64 {
	return time.Since(startTime).Seconds()
}
