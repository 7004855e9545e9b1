package hub

import (
	"encoding/json"
	"sync"

	"firemonitor/internal/logger"
)

// Envelope is the wire format for every event sent to viewers.
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub maintains the set of connected viewers and fans events out to all
// of them. Delivery is best-effort: a viewer that cannot keep up is
// dropped rather than allowed to delay the others.
type Hub struct {
	clients map[*Client]bool
	mutex   sync.Mutex
	logger  *logger.Logger
}

func New(logger *logger.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]bool),
		logger:  logger,
	}
}

// Register admits a viewer and queues its initial snapshot ahead of any
// broadcast. Callers invoke this inside the status store's critical
// section so the snapshot and subsequent deltas form a consistent stream.
func (h *Hub) Register(client *Client, initial Envelope) {
	message, err := json.Marshal(initial)
	if err != nil {
		h.logger.Error("Error encoding initial state: %v", err)
		return
	}

	h.mutex.Lock()
	client.enqueue(message)
	h.clients[client] = true
	total := len(h.clients)
	h.mutex.Unlock()

	h.logger.Info("🔌 Viewer connected. Total: %d", total)
}

// Unregister removes a viewer and closes its queue.
func (h *Hub) Unregister(client *Client) {
	h.mutex.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.shutdown()
	}
	total := len(h.clients)
	h.mutex.Unlock()

	h.logger.Info("🔌 Viewer disconnected. Total: %d", total)
}

// Emit sends an event to every connected viewer. Viewers whose queue is
// full are dropped. Satisfies status.Emitter.
func (h *Hub) Emit(event string, payload interface{}) {
	message, err := json.Marshal(Envelope{Event: event, Data: payload})
	if err != nil {
		h.logger.Error("Error encoding %s event: %v", event, err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		if !client.enqueue(message) {
			h.logger.Warning("Dropping slow viewer during %s broadcast", event)
			delete(h.clients, client)
			client.shutdown()
		}
	}
}

// ClientCount returns the number of connected viewers.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}
