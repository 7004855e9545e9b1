package routes

import (
	"net/http"

	"firemonitor/internal/config"
	"firemonitor/internal/handlers"
	"firemonitor/internal/hub"
	"firemonitor/internal/logger"
	"firemonitor/internal/monitor"
	"firemonitor/internal/repository"
)

// SetupRoutes registers the viewer websocket, the JSON API and static
// file serving for the dashboard and stored captures.
func SetupRoutes(m *monitor.Monitor, h *hub.Hub, alerts repository.AlertRepository, stats repository.StatisticsRepository, cfg *config.Config, logger *logger.Logger) http.Handler {
	mux := http.NewServeMux()

	// Viewer websocket
	mux.HandleFunc("/ws", handlers.ViewerWebsocketHandler(m, logger))

	// API endpoints
	mux.HandleFunc("/api/status", handlers.StatusHandler(m, h.ClientCount, logger))
	mux.HandleFunc("/api/health", handlers.HealthHandler(m, logger))
	mux.HandleFunc("/api/images", handlers.ImagesHandler(cfg, logger))
	mux.HandleFunc("/api/capture", handlers.CaptureHandler(m, logger))
	mux.HandleFunc("/api/statistics", handlers.StatisticsHandler(stats, logger))
	mux.HandleFunc("/api/alerts", handlers.AlertsHandler(alerts, logger))

	// Stored captures
	mux.HandleFunc("/images/", handlers.ImageFileHandler(cfg))

	// Dashboard static files (index.html, latest.jpg, assets)
	mux.Handle("/", http.FileServer(http.Dir(cfg.PublicDirectory)))

	return mux
}
