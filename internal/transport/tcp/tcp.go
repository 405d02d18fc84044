// internal/transport/tcp/tcp.go
package tcp

import (
	"errors"
	"fmt"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/agrisense/internal/rtu"
	"github.com/tamzrod/agrisense/internal/transport"
)

// Config is the Modbus TCP endpoint configuration.
type Config struct {
	Endpoint string // host:port
	Timeout  time.Duration
}

// Transport speaks Modbus TCP through goburrow. The TCP MBAP framing replaces
// the RTU CRC; register payloads come back as big-endian byte pairs and are
// decoded with the same codec as the RTU transports.
type Transport struct {
	cfg     Config
	handler *modbus.TCPClientHandler
	client  modbus.Client
}

// New creates an unconnected TCP transport.
func New(cfg Config) (*Transport, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("tcp: endpoint required")
	}
	return &Transport{cfg: cfg}, nil
}

// Connect dials the endpoint.
func (t *Transport) Connect() error {
	handler := modbus.NewTCPClientHandler(t.cfg.Endpoint)
	handler.Timeout = t.cfg.Timeout

	if err := handler.Connect(); err != nil {
		return fmt.Errorf("tcp: connect %s: %w", t.cfg.Endpoint, err)
	}

	t.handler = handler
	t.client = modbus.NewClient(handler)
	return nil
}

// Close closes the TCP connection.
func (t *Transport) Close() error {
	if t.handler == nil {
		return nil
	}
	err := t.handler.Close()
	t.handler = nil
	t.client = nil
	return err
}

// ReadRegisters reads quantity holding registers from unit.
func (t *Transport) ReadRegisters(address, quantity uint16, unit uint8) ([]uint16, error) {
	if t.client == nil {
		return nil, transport.ErrNotConnected
	}

	t.handler.SlaveId = unit

	payload, err := t.client.ReadHoldingRegisters(address, quantity)
	if err != nil {
		return nil, mapError(err)
	}

	words, err := rtu.ExtractRegisters(payload)
	if err != nil {
		return nil, err
	}
	if len(words) != int(quantity) {
		return nil, fmt.Errorf("%w: got %d registers, want %d", rtu.ErrMalformedPayload, len(words), quantity)
	}
	return words, nil
}

// WriteRegister writes one holding register on unit.
func (t *Transport) WriteRegister(address, value uint16, unit uint8) error {
	if t.client == nil {
		return transport.ErrNotConnected
	}

	t.handler.SlaveId = unit

	if _, err := t.client.WriteSingleRegister(address, value); err != nil {
		return mapError(err)
	}
	return nil
}

// mapError folds goburrow exception errors into the rtu taxonomy so callers
// see one exception type regardless of transport.
func mapError(err error) error {
	var mberr *modbus.ModbusError
	if errors.As(err, &mberr) {
		return rtu.Exception(mberr.ExceptionCode)
	}
	return err
}
