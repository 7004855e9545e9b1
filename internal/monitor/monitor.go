package monitor

import (
	"time"

	"firemonitor/internal/hub"
	"firemonitor/internal/logger"
	"firemonitor/internal/status"
	"firemonitor/internal/telemetry"
)

// Transport is the outbound side of the messaging link to the camera.
type Transport interface {
	IsConnected() bool
	PublishCapture() error
}

// CommandResult is the structured response for viewer- and API-originated
// commands.
type CommandResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Monitor connects the telemetry decoder, the status store, the viewer
// hub and the camera transport. It is the single ingestion point for
// inbound MQTT messages and the command endpoint for viewers.
type Monitor struct {
	store     *status.Store
	hub       *hub.Hub
	transport Transport
	logger    *logger.Logger
}

func New(store *status.Store, h *hub.Hub, transport Transport, logger *logger.Logger) *Monitor {
	return &Monitor{
		store:     store,
		hub:       h,
		transport: transport,
		logger:    logger,
	}
}

// HandleMessage ingests one raw MQTT message. Malformed payloads are
// logged and discarded; unknown topics are ignored. Nothing here may
// take down message dispatch.
func (m *Monitor) HandleMessage(topic string, payload []byte) {
	event, err := telemetry.Decode(topic, payload, time.Now())
	if err != nil {
		m.logger.Error("Error processing MQTT message: %v", err)
		return
	}

	switch e := event.(type) {
	case telemetry.AlertEvent:
		m.store.ApplyAlert(e)
	case telemetry.StatusEvent:
		m.store.ApplyStatus(e)
	case telemetry.ImageMetaEvent:
		m.store.ApplyImageMeta(e)
	}
}

// RequestCapture forwards a manual capture request to the camera. The
// source tag only feeds logging ("web", "api").
func (m *Monitor) RequestCapture(source string) CommandResult {
	if !m.transport.IsConnected() {
		return CommandResult{Success: false, Error: "transport unavailable"}
	}

	if err := m.transport.PublishCapture(); err != nil {
		m.logger.Error("Error publishing capture command: %v", err)
		return CommandResult{Success: false, Error: "failed to send capture command"}
	}

	m.logger.Info("📸 Manual capture requested from %s", source)
	return CommandResult{Success: true, Message: "capture requested"}
}

// ResolveAlert handles a manual resolution request. Resolving while no
// alert is active is reported as a successful no-op, not an error.
func (m *Monitor) ResolveAlert() CommandResult {
	resolved, err := m.store.ResolveActiveAlert()
	if err != nil {
		m.logger.Error("Error resolving alert: %v", err)
		return CommandResult{Success: false, Error: "failed to resolve alert"}
	}
	if !resolved {
		return CommandResult{Success: true, Message: "no active alert to resolve"}
	}
	return CommandResult{Success: true, Message: "alert resolved"}
}

// RegisterViewer admits a dashboard connection. The initial snapshot is
// taken and the viewer registered inside the store's critical section,
// so the snapshot plus later broadcasts form a consistent stream.
func (m *Monitor) RegisterViewer(client *hub.Client) {
	m.store.Attach(func(snapshot status.SystemStatus) {
		m.hub.Register(client, hub.Envelope{Event: "initialState", Data: snapshot})
	})
}

// UnregisterViewer removes a dashboard connection.
func (m *Monitor) UnregisterViewer(client *hub.Client) {
	m.hub.Unregister(client)
}

// Snapshot exposes the canonical status for the HTTP surface.
func (m *Monitor) Snapshot() status.SystemStatus {
	return m.store.Snapshot()
}

// TransportConnected reports broker liveness for health checks.
func (m *Monitor) TransportConnected() bool {
	return m.transport.IsConnected()
}
