package telemetry

import (
	"errors"
	"testing"
	"time"
)

var receivedAt = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

func TestDecode_AlertEvent(t *testing.T) {
	payload := []byte(`{"alert":"FIRE_DETECTED","timestamp":1750000000000,"detections":7}`)

	event, err := Decode(TopicAlert, payload, receivedAt)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	alert, ok := event.(AlertEvent)
	if !ok {
		t.Fatalf("Expected AlertEvent, got %T", event)
	}

	if alert.Kind != KindFireDetected {
		t.Errorf("Kind = %q, expected %q", alert.Kind, KindFireDetected)
	}
	if alert.Detections != 7 {
		t.Errorf("Detections = %d, expected 7", alert.Detections)
	}
	if !alert.OccurredAt.Equal(time.UnixMilli(1750000000000)) {
		t.Errorf("OccurredAt = %v, expected epoch millis 1750000000000", alert.OccurredAt)
	}
}

func TestDecode_AlertDefaults(t *testing.T) {
	payload := []byte(`{"alert":"CLEAR"}`)

	event, err := Decode(TopicAlert, payload, receivedAt)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	alert := event.(AlertEvent)
	if alert.Detections != 0 {
		t.Errorf("Missing detections should default to 0, got %d", alert.Detections)
	}
	if !alert.OccurredAt.Equal(receivedAt) {
		t.Errorf("Missing timestamp should default to receipt time, got %v", alert.OccurredAt)
	}
}

func TestDecode_AlertMissingKind(t *testing.T) {
	_, err := Decode(TopicAlert, []byte(`{"detections":3}`), receivedAt)

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("Expected DecodeError, got %v", err)
	}
	if decodeErr.Topic != TopicAlert {
		t.Errorf("Topic = %q, expected %q", decodeErr.Topic, TopicAlert)
	}
}

func TestDecode_StatusEvent(t *testing.T) {
	tests := []struct {
		payload string
		online  bool
		address string
	}{
		{`{"status":"online","ip":"192.168.1.50"}`, true, "192.168.1.50"},
		{`{"status":"offline"}`, false, ""},
		{`{"status":"ONLINE"}`, false, ""},
		{`{"status":"rebooting","ip":"10.0.0.2"}`, false, "10.0.0.2"},
	}

	for _, tt := range tests {
		event, err := Decode(TopicStatus, []byte(tt.payload), receivedAt)
		if err != nil {
			t.Fatalf("Decode(%s) failed: %v", tt.payload, err)
		}

		st := event.(StatusEvent)
		if st.Online != tt.online {
			t.Errorf("Decode(%s).Online = %v, expected %v", tt.payload, st.Online, tt.online)
		}
		if st.Address != tt.address {
			t.Errorf("Decode(%s).Address = %q, expected %q", tt.payload, st.Address, tt.address)
		}
	}
}

func TestDecode_StatusMissingField(t *testing.T) {
	_, err := Decode(TopicStatus, []byte(`{"ip":"10.0.0.1"}`), receivedAt)

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("Expected DecodeError, got %v", err)
	}
}

func TestDecode_ImageMetaEvent(t *testing.T) {
	payload := []byte(`{"timestamp":1750000000000,"size":24576,"width":800,"height":600}`)

	event, err := Decode(TopicImageMeta, payload, receivedAt)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	meta := event.(ImageMetaEvent)
	if meta.SizeBytes != 24576 || meta.Width != 800 || meta.Height != 600 {
		t.Errorf("Unexpected meta %+v", meta)
	}
}

func TestDecode_ImageMetaDefaults(t *testing.T) {
	event, err := Decode(TopicImageMeta, []byte(`{}`), receivedAt)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	meta := event.(ImageMetaEvent)
	if meta.SizeBytes != 0 || meta.Width != 0 || meta.Height != 0 {
		t.Errorf("Missing numeric fields should default to 0, got %+v", meta)
	}
	if !meta.OccurredAt.Equal(receivedAt) {
		t.Errorf("Missing timestamp should default to receipt time, got %v", meta.OccurredAt)
	}
}

func TestDecode_MalformedJSON(t *testing.T) {
	topics := []string{TopicAlert, TopicStatus, TopicImageMeta}

	for _, topic := range topics {
		event, err := Decode(topic, []byte(`{not json`), receivedAt)

		var decodeErr *DecodeError
		if !errors.As(err, &decodeErr) {
			t.Errorf("Decode(%s) with malformed payload should return DecodeError, got %v", topic, err)
		}
		if event != nil {
			t.Errorf("Decode(%s) with malformed payload should return nil event", topic)
		}
	}
}

func TestDecode_UnknownTopicIgnored(t *testing.T) {
	event, err := Decode("fire/unknown", []byte(`{"alert":"FIRE_DETECTED"}`), receivedAt)

	if err != nil {
		t.Errorf("Unknown topic should not be an error, got %v", err)
	}
	if event != nil {
		t.Errorf("Unknown topic should yield no event, got %T", event)
	}
}
