package localtime

import "time"

// Zone is the facility's civil time: UTC-05:00 year round. Colombia does
// not observe daylight saving, so a fixed offset is correct and keeps
// conversions deterministic without tzdata.
var Zone = time.FixedZone("UTC-05:00", -5*60*60)

const displayLayout = "2006-01-02 15:04:05"

// LocalTime pairs an absolute instant with its facility-local display form.
type LocalTime struct {
	Instant time.Time
	Display string
}

// Normalize converts an arbitrary instant into facility-local time.
func Normalize(t time.Time) LocalTime {
	local := t.In(Zone)
	return LocalTime{
		Instant: local,
		Display: local.Format(displayLayout),
	}
}

// Now normalizes the current time.
func Now() LocalTime {
	return Normalize(time.Now())
}

// ISO returns the instant in RFC 3339 UTC form for wire payloads.
func (lt LocalTime) ISO() string {
	return lt.Instant.UTC().Format(time.RFC3339)
}
