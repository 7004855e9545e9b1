package status

import (
	"fmt"
	"sync"
	"time"

	"firemonitor/internal/localtime"
	"firemonitor/internal/logger"
	"firemonitor/internal/models"
	"firemonitor/internal/repository"
	"firemonitor/internal/telemetry"
)

// Emitter receives one outward event per observable state change.
type Emitter interface {
	Emit(event string, payload interface{})
}

// Notifier delivers out-of-band alert notifications. A nil Notifier
// disables them. Implementations run on the caller's goroutine and must
// be quick; the Store invokes them asynchronously.
type Notifier interface {
	FireAlert(alertID int64, detections int, severity string, at localtime.LocalTime) error
	AlertCleared(durationSeconds int64) error
}

// Store owns the canonical SystemStatus and the alert lifecycle. Every
// mutation and its broadcast run inside one critical section, so viewers
// never observe a partially-updated record and each mutation produces
// exactly one consistent emission.
type Store struct {
	mu     sync.Mutex
	status SystemStatus
	state  State

	// id of the persisted ACTIVE alert row backing the current fire,
	// zero while SAFE.
	activeAlertID int64

	alerts   repository.AlertRepository
	stats    repository.StatisticsRepository
	emitter  Emitter
	notifier Notifier
	logger   *logger.Logger

	now func() time.Time
}

func NewStore(alerts repository.AlertRepository, stats repository.StatisticsRepository, emitter Emitter, notifier Notifier, logger *logger.Logger) *Store {
	return &Store{
		status:   SystemStatus{DeviceAddress: "N/A"},
		state:    StateSafe,
		alerts:   alerts,
		stats:    stats,
		emitter:  emitter,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Snapshot returns a copy of the canonical status.
func (s *Store) Snapshot() SystemStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Attach runs register with the current status while holding the store
// lock. Registering a viewer here guarantees its snapshot and every
// later broadcast form one consistent stream with no missed deltas.
func (s *Store) Attach(register func(snapshot SystemStatus)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	register(s.status)
}

// ApplyStatus folds a device heartbeat into the canonical record. The
// heartbeat is always re-broadcast, even when nothing changed.
func (s *Store) ApplyStatus(event telemetry.StatusEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	address := event.Address
	if address == "" {
		address = "N/A"
	}
	s.status.DeviceConnected = event.Online
	s.status.DeviceAddress = address

	s.emitter.Emit(EventDeviceStatus, DeviceStatusPayload{
		Connected: event.Online,
		Address:   address,
	})

	if event.Online {
		s.logger.Info("✓ Camera online %s - %s", event.Address, localtime.Now().Display)
	} else {
		s.logger.Warning("Camera offline - %s", localtime.Now().Display)
	}
}

// ApplyImageMeta records the newest frame and tells every viewer to
// refresh it.
func (s *Store) ApplyImageMeta(event telemetry.ImageMetaEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lt := localtime.Normalize(event.OccurredAt)

	s.status.LastImage = &LastImage{
		OccurredAt: lt.Instant,
		SizeBytes:  event.SizeBytes,
		Width:      event.Width,
		Height:     event.Height,
	}

	s.emitter.Emit(EventNewImage, NewImagePayload{
		Timestamp: lt.ISO(),
		LocalTime: lt.Display,
		Path:      fmt.Sprintf("/latest.jpg?t=%d", s.now().UnixMilli()),
	})

	if err := s.stats.RecordImage(lt.Instant.Format("2006-01-02")); err != nil {
		s.logger.Error("Error recording image statistics: %v", err)
	}

	s.logger.Info("📸 New image available (%dx%d, %d bytes) - %s",
		event.Width, event.Height, event.SizeBytes, lt.Display)
}

// ApplyAlert drives the alert lifecycle. FIRE_DETECTED activates or
// refreshes the fire condition; any other kind is recorded for audit
// only and never clears an active alert. That is the job of
// ResolveActiveAlert. The broadcast always reflects the resulting
// fireActive value, not the raw event.
func (s *Store) ApplyAlert(event telemetry.AlertEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lt := localtime.Normalize(event.OccurredAt)

	s.status.LastAlert = &LastAlert{
		Kind:       event.Kind,
		OccurredAt: lt.Instant,
		Detections: event.Detections,
	}

	if event.Kind == telemetry.KindFireDetected {
		if s.state == StateSafe {
			s.activate(event, lt)
		} else {
			s.refresh(event)
		}
	} else {
		s.logger.Info("Alert kind %q received while %s - recorded, state unchanged", event.Kind, s.state)
	}

	detections := 0
	if s.status.FireActive {
		detections = s.status.TotalDetections
	}
	s.emitter.Emit(EventFireAlert, FireAlertPayload{
		Detected:   s.status.FireActive,
		Timestamp:  lt.ISO(),
		LocalTime:  lt.Display,
		Detections: detections,
	})
}

// activate performs the SAFE -> ACTIVE transition. An ACTIVE row left
// over from a previous run is adopted instead of duplicated.
func (s *Store) activate(event telemetry.AlertEvent, lt localtime.LocalTime) {
	s.state = StateActive
	s.status.FireActive = true
	s.status.TotalDetections = event.Detections

	s.logger.Warning("🔥 Fire alert received (detections: %d) - %s", event.Detections, lt.Display)

	existing, err := s.alerts.FindMostRecentActive()
	if err != nil {
		s.logger.Error("Error looking up active alert: %v", err)
	}
	if existing != nil {
		s.activeAlertID = existing.ID
		if err := s.alerts.UpdateDetections(existing.ID, event.Detections); err != nil {
			s.logger.Error("Error updating alert %d: %v", existing.ID, err)
		}
		return
	}

	severity := models.SeverityFor(event.Detections)
	id, err := s.alerts.Create(&models.Alert{
		Type:            event.Kind,
		Severity:        severity,
		Status:          models.AlertStatusActive,
		DetectionsCount: event.Detections,
		CreatedAt:       lt.Instant,
	})
	if err != nil {
		// Viewers are still alerted; only the audit trail is degraded.
		s.logger.Error("Error persisting alert: %v", err)
		return
	}
	s.activeAlertID = id
	s.logger.Info("🆕 Alert created (ID: %d, severity: %s)", id, severity)

	date := lt.Instant.Format("2006-01-02")
	if err := s.stats.RecordAlert(date); err != nil {
		s.logger.Error("Error recording alert statistics: %v", err)
	}
	if err := s.stats.RecordDetections(date, event.Detections); err != nil {
		s.logger.Error("Error recording detection statistics: %v", err)
	}

	if s.notifier != nil {
		go func() {
			if err := s.notifier.FireAlert(id, event.Detections, severity, lt); err != nil {
				s.logger.Error("Error sending fire notification: %v", err)
			}
		}()
	}
}

// refresh handles a repeat FIRE_DETECTED while ACTIVE: counts are
// updated, no new persisted record is created.
func (s *Store) refresh(event telemetry.AlertEvent) {
	s.status.TotalDetections = event.Detections

	if s.activeAlertID != 0 {
		if err := s.alerts.UpdateDetections(s.activeAlertID, event.Detections); err != nil {
			s.logger.Error("Error updating alert %d: %v", s.activeAlertID, err)
		}
	}
}

// ResolveActiveAlert performs the manual ACTIVE -> SAFE transition. The
// in-memory state changes only after the persisted record is marked
// RESOLVED, keeping displayed state consistent with stored history.
// Returns false with a nil error when there is nothing to resolve.
func (s *Store) ResolveActiveAlert() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, err := s.alerts.FindMostRecentActive()
	if err != nil {
		return false, fmt.Errorf("failed to look up active alert: %w", err)
	}
	if active == nil {
		s.logger.Info("Resolve requested with no active alert - nothing to do")
		return false, nil
	}

	now := s.now()
	if err := s.alerts.Resolve(active.ID, now); err != nil {
		return false, fmt.Errorf("failed to resolve alert %d: %w", active.ID, err)
	}

	s.state = StateSafe
	s.status.FireActive = false
	s.status.TotalDetections = 0
	s.activeAlertID = 0

	lt := localtime.Normalize(now)
	s.emitter.Emit(EventFireAlert, FireAlertPayload{
		Detected:   false,
		Timestamp:  lt.ISO(),
		LocalTime:  lt.Display,
		Detections: 0,
	})

	s.logger.Info("✓ Alert resolved manually (ID: %d)", active.ID)

	if s.notifier != nil {
		duration := int64(now.Sub(active.CreatedAt).Seconds())
		go func() {
			if err := s.notifier.AlertCleared(duration); err != nil {
				s.logger.Error("Error sending clear notification: %v", err)
			}
		}()
	}

	return true, nil
}
