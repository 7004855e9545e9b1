package status

import "time"

// State of the alert lifecycle.
type State int

const (
	StateSafe State = iota
	StateActive
)

func (s State) String() string {
	if s == StateActive {
		return "ACTIVE"
	}
	return "SAFE"
}

// SystemStatus is the canonical view of the camera system. Only the
// Store mutates it; everyone else receives copies or broadcast events.
type SystemStatus struct {
	DeviceConnected bool       `json:"deviceConnected"`
	DeviceAddress   string     `json:"deviceAddress"`
	FireActive      bool       `json:"fireActive"`
	TotalDetections int        `json:"totalDetections"`
	LastAlert       *LastAlert `json:"lastAlert"`
	LastImage       *LastImage `json:"lastImage"`
}

// LastAlert records the most recent alert of any kind, for audit.
type LastAlert struct {
	Kind       string    `json:"type"`
	OccurredAt time.Time `json:"timestamp"`
	Detections int       `json:"detections"`
}

// LastImage records metadata of the most recent captured frame.
type LastImage struct {
	OccurredAt time.Time `json:"timestamp"`
	SizeBytes  int64     `json:"size"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
}

// Event names broadcast to viewers.
const (
	EventFireAlert    = "fireAlert"
	EventDeviceStatus = "deviceStatus"
	EventNewImage     = "newImage"
)

// FireAlertPayload is broadcast on every alert transition. Detections is
// zero whenever Detected is false, regardless of the triggering record.
type FireAlertPayload struct {
	Detected   bool   `json:"detected"`
	Timestamp  string `json:"timestamp"`
	LocalTime  string `json:"localTime"`
	Detections int    `json:"detections"`
}

// DeviceStatusPayload is broadcast on every device heartbeat.
type DeviceStatusPayload struct {
	Connected bool   `json:"connected"`
	Address   string `json:"address"`
}

// NewImagePayload announces a fresh frame; Path carries a cache-buster
// so dashboards reload the image.
type NewImagePayload struct {
	Timestamp string `json:"timestamp"`
	LocalTime string `json:"localTime"`
	Path      string `json:"path"`
}
