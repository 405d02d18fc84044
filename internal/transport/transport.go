// internal/transport/transport.go
package transport

import "errors"

// Transport is the wire contract the sensor layer consumes.
// One logical operation at a time per instance: implementations are not
// required to support overlapping calls.
type Transport interface {
	Connect() error
	Close() error

	// ReadRegisters reads quantity holding registers starting at address
	// from the given unit. All-or-nothing: a failed exchange returns no words.
	ReadRegisters(address, quantity uint16, unit uint8) ([]uint16, error)

	// WriteRegister writes one holding register on the given unit.
	WriteRegister(address, value uint16, unit uint8) error
}

// ErrTimeout is returned when no correlated response arrives within the
// exchange budget. Callers re-issue; there are no built-in retries.
var ErrTimeout = errors.New("transport: timeout waiting for response")

// ErrNotConnected is returned for operations on an unconnected transport.
var ErrNotConnected = errors.New("transport: not connected")
