package telemetry

import (
	"encoding/json"
	"fmt"
	"time"
)

// DecodeError reports a malformed telemetry payload. The caller logs it
// and discards the message.
type DecodeError struct {
	Topic string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("bad payload on %s: %v", e.Topic, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type alertPayload struct {
	Alert      *string `json:"alert"`
	Timestamp  *int64  `json:"timestamp"`
	Detections *int    `json:"detections"`
}

type statusPayload struct {
	Status *string `json:"status"`
	IP     string  `json:"ip"`
}

type imageMetaPayload struct {
	Timestamp *int64 `json:"timestamp"`
	Size      *int64 `json:"size"`
	Width     *int   `json:"width"`
	Height    *int   `json:"height"`
}

// Decode parses an inbound telemetry payload according to its topic.
// Unknown topics return (nil, nil). Missing timestamps default to
// receivedAt; a present timestamp is epoch milliseconds.
func Decode(topic string, payload []byte, receivedAt time.Time) (Event, error) {
	switch topic {
	case TopicAlert:
		return decodeAlert(payload, receivedAt)
	case TopicStatus:
		return decodeStatus(payload)
	case TopicImageMeta:
		return decodeImageMeta(payload, receivedAt)
	default:
		return nil, nil
	}
}

func decodeAlert(payload []byte, receivedAt time.Time) (Event, error) {
	var p alertPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, &DecodeError{Topic: TopicAlert, Err: err}
	}
	if p.Alert == nil {
		return nil, &DecodeError{Topic: TopicAlert, Err: fmt.Errorf("missing alert field")}
	}

	event := AlertEvent{
		Kind:       *p.Alert,
		OccurredAt: timestampOr(p.Timestamp, receivedAt),
	}
	if p.Detections != nil {
		event.Detections = *p.Detections
	}
	return event, nil
}

func decodeStatus(payload []byte) (Event, error) {
	var p statusPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, &DecodeError{Topic: TopicStatus, Err: err}
	}
	if p.Status == nil {
		return nil, &DecodeError{Topic: TopicStatus, Err: fmt.Errorf("missing status field")}
	}

	return StatusEvent{
		Online:  *p.Status == "online",
		Address: p.IP,
	}, nil
}

func decodeImageMeta(payload []byte, receivedAt time.Time) (Event, error) {
	var p imageMetaPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, &DecodeError{Topic: TopicImageMeta, Err: err}
	}

	event := ImageMetaEvent{
		OccurredAt: timestampOr(p.Timestamp, receivedAt),
	}
	if p.Size != nil {
		event.SizeBytes = *p.Size
	}
	if p.Width != nil {
		event.Width = *p.Width
	}
	if p.Height != nil {
		event.Height = *p.Height
	}
	return event, nil
}

func timestampOr(millis *int64, fallback time.Time) time.Time {
	if millis == nil {
		return fallback
	}
	return time.UnixMilli(*millis)
}
