package monitor

import (
	"errors"
	"testing"
	"time"

	"firemonitor/internal/hub"
	"firemonitor/internal/logger"
	"firemonitor/internal/models"
	"firemonitor/internal/status"
	"firemonitor/internal/telemetry"
)

// ========================================
// Fakes
// ========================================

type fakeTransport struct {
	connected   bool
	publishes   int
	publishFail bool
}

func (t *fakeTransport) IsConnected() bool {
	return t.connected
}

func (t *fakeTransport) PublishCapture() error {
	t.publishes++
	if t.publishFail {
		return errors.New("broker rejected publish")
	}
	return nil
}

type nullAlertRepo struct {
	active *models.Alert
}

func (r *nullAlertRepo) Create(alert *models.Alert) (int64, error) { return 1, nil }
func (r *nullAlertRepo) FindMostRecentActive() (*models.Alert, error) {
	return r.active, nil
}
func (r *nullAlertRepo) GetByID(id int64) (*models.Alert, error)       { return nil, nil }
func (r *nullAlertRepo) GetRecent(limit int) ([]models.Alert, error)   { return nil, nil }
func (r *nullAlertRepo) UpdateDetections(id int64, count int) error  { return nil }
func (r *nullAlertRepo) Resolve(id int64, resolvedAt time.Time) error {
	return nil
}

type nullStatsRepo struct{}

func (nullStatsRepo) RecordAlert(date string) error                  { return nil }
func (nullStatsRepo) RecordDetections(date string, count int) error  { return nil }
func (nullStatsRepo) RecordImage(date string) error                  { return nil }
func (nullStatsRepo) GetLastDays(days int) ([]models.DailyStatistic, error) {
	return nil, nil
}

func newTestMonitor(t *testing.T, transport *fakeTransport) *Monitor {
	t.Helper()
	log := logger.NewLogger(t.TempDir())
	h := hub.New(log)
	store := status.NewStore(&nullAlertRepo{}, nullStatsRepo{}, h, nil, log)
	return New(store, h, transport, log)
}

// ========================================
// Capture relay
// ========================================

func TestRequestCapture_TransportDisconnected(t *testing.T) {
	transport := &fakeTransport{connected: false}
	m := newTestMonitor(t, transport)

	result := m.RequestCapture("web")

	if result.Success {
		t.Error("Capture should be rejected while the transport is down")
	}
	if result.Error != "transport unavailable" {
		t.Errorf("Error = %q, expected %q", result.Error, "transport unavailable")
	}
	if transport.publishes != 0 {
		t.Errorf("Nothing should be published on rejection, got %d publishes", transport.publishes)
	}
}

func TestRequestCapture_PublishesExactlyOnce(t *testing.T) {
	transport := &fakeTransport{connected: true}
	m := newTestMonitor(t, transport)

	result := m.RequestCapture("api")

	if !result.Success {
		t.Errorf("Capture should be accepted, got %+v", result)
	}
	if transport.publishes != 1 {
		t.Errorf("Expected exactly one publish, got %d", transport.publishes)
	}
}

func TestRequestCapture_NoDeduplication(t *testing.T) {
	transport := &fakeTransport{connected: true}
	m := newTestMonitor(t, transport)

	m.RequestCapture("web")
	m.RequestCapture("web")

	if transport.publishes != 2 {
		t.Errorf("Each request is a fresh trigger, expected 2 publishes, got %d", transport.publishes)
	}
}

func TestRequestCapture_PublishFailure(t *testing.T) {
	transport := &fakeTransport{connected: true, publishFail: true}
	m := newTestMonitor(t, transport)

	result := m.RequestCapture("web")

	if result.Success {
		t.Error("Publish failure should be reported to the caller")
	}
	if result.Error == "" {
		t.Error("Failure result should carry an error message")
	}
}

// ========================================
// Ingestion
// ========================================

func TestHandleMessage_MalformedPayloadIsDiscarded(t *testing.T) {
	m := newTestMonitor(t, &fakeTransport{connected: true})

	m.HandleMessage(telemetry.TopicAlert, []byte(`{not json`))

	snapshot := m.Snapshot()
	if snapshot.FireActive || snapshot.LastAlert != nil {
		t.Errorf("Malformed payloads must not change state, got %+v", snapshot)
	}
}

func TestHandleMessage_UnknownTopicIgnored(t *testing.T) {
	m := newTestMonitor(t, &fakeTransport{connected: true})

	m.HandleMessage("fire/unrelated", []byte(`{"alert":"FIRE_DETECTED","detections":3}`))

	if m.Snapshot().FireActive {
		t.Error("Unknown topics must be ignored")
	}
}

func TestHandleMessage_AlertFlowsIntoStore(t *testing.T) {
	m := newTestMonitor(t, &fakeTransport{connected: true})

	m.HandleMessage(telemetry.TopicAlert, []byte(`{"alert":"FIRE_DETECTED","detections":7}`))

	snapshot := m.Snapshot()
	if !snapshot.FireActive || snapshot.TotalDetections != 7 {
		t.Errorf("Alert should activate the lifecycle, got %+v", snapshot)
	}
}

func TestHandleMessage_StatusFlowsIntoStore(t *testing.T) {
	m := newTestMonitor(t, &fakeTransport{connected: true})

	m.HandleMessage(telemetry.TopicStatus, []byte(`{"status":"online","ip":"192.168.1.60"}`))

	snapshot := m.Snapshot()
	if !snapshot.DeviceConnected || snapshot.DeviceAddress != "192.168.1.60" {
		t.Errorf("Status heartbeat should update the store, got %+v", snapshot)
	}
}

// ========================================
// Viewer lifecycle
// ========================================

func TestRegisterViewer_ReceivesInitialStateThenDeltas(t *testing.T) {
	m := newTestMonitor(t, &fakeTransport{connected: true})
	m.HandleMessage(telemetry.TopicStatus, []byte(`{"status":"online","ip":"10.0.0.4"}`))

	client := hub.NewClient(nil)
	m.RegisterViewer(client)
	m.HandleMessage(telemetry.TopicAlert, []byte(`{"alert":"FIRE_DETECTED","detections":2}`))
	defer m.UnregisterViewer(client)

	// The client's first queued event must be the snapshot; the alert
	// broadcast follows it. Queue inspection happens through the hub's
	// own tests; here it is enough that registration did not panic and
	// the canonical state is visible.
	snapshot := m.Snapshot()
	if !snapshot.DeviceConnected || !snapshot.FireActive {
		t.Errorf("Unexpected canonical state %+v", snapshot)
	}
}

func TestResolveAlert_NoActiveAlertIsReportedNoOp(t *testing.T) {
	m := newTestMonitor(t, &fakeTransport{connected: true})

	result := m.ResolveAlert()

	if !result.Success {
		t.Errorf("No-op resolve should not be an error, got %+v", result)
	}
	if result.Message == "" {
		t.Error("No-op resolve should say there was nothing to do")
	}
}
