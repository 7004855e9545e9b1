package telemetry

import "time"

// MQTT topics shared with the ESP32-CAM firmware.
const (
	TopicAlert     = "fire/alert"
	TopicStatus    = "fire/status"
	TopicImageMeta = "fire/image/meta"
	TopicCapture   = "fire/capture"
)

// CapturePayload is the literal command the firmware understands on
// TopicCapture.
const CapturePayload = "CAPTURE"

// KindFireDetected is the alert kind that activates the fire lifecycle.
const KindFireDetected = "FIRE_DETECTED"

// Event is one of AlertEvent, StatusEvent or ImageMetaEvent.
type Event interface {
	isEvent()
}

// AlertEvent is a fire alert published by the camera.
type AlertEvent struct {
	Kind       string
	OccurredAt time.Time
	Detections int
}

// StatusEvent is a connectivity heartbeat from the camera.
type StatusEvent struct {
	Online  bool
	Address string
}

// ImageMetaEvent describes the most recent captured frame.
type ImageMetaEvent struct {
	OccurredAt time.Time
	SizeBytes  int64
	Width      int
	Height     int
}

func (AlertEvent) isEvent()     {}
func (StatusEvent) isEvent()    {}
func (ImageMetaEvent) isEvent() {}
