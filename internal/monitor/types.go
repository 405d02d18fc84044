// internal/monitor/types.go
package monitor

import "time"

// Result is a snapshot produced by one poll cycle.
type Result struct {
	SensorID string
	At       time.Time

	// Values holds every field of every composite read this cycle.
	// Empty when Err is set: cycles are all-or-nothing.
	Values map[string]float64

	Err error // non-nil means the poll cycle failed
}
