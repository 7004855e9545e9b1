package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"firemonitor/internal/hub"
	"firemonitor/internal/logger"
	"firemonitor/internal/monitor"
)

var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// viewerCommand is the inbound frame from a dashboard.
type viewerCommand struct {
	Event string `json:"event"`
}

// ViewerWebsocketHandler upgrades a dashboard connection, replays the
// current snapshot, then relays viewer commands to the monitor.
func ViewerWebsocketHandler(m *monitor.Monitor, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connection, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade error: %v", err)
			return
		}
		connection.SetReadLimit(512)
		connection.SetReadDeadline(time.Now().Add(60 * time.Second))
		connection.SetPongHandler(func(appData string) error {
			connection.SetReadDeadline(time.Now().Add(60 * time.Second))
			return nil
		})
		defer connection.Close()

		client := hub.NewClient(connection)
		go client.WritePump()

		m.RegisterViewer(client)
		defer m.UnregisterViewer(client)

		for {
			_, message, err := connection.ReadMessage()
			if err != nil {
				logger.Info("Viewer disconnected: %v", err)
				break
			}

			var cmd viewerCommand
			if err := json.Unmarshal(message, &cmd); err != nil {
				logger.Warning("Ignoring malformed viewer message: %v", err)
				continue
			}

			switch cmd.Event {
			case "requestCapture":
				client.Send("captureRequested", m.RequestCapture("web"))
			case "resolveAlert":
				client.Send("alertResolved", m.ResolveAlert())
			default:
				logger.Warning("Unknown viewer command: %q", cmd.Event)
			}
		}
	}
}
