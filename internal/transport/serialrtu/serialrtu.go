// internal/transport/serialrtu/serialrtu.go
package serialrtu

import (
	"errors"
	"fmt"
	"time"

	goserial "github.com/goburrow/serial"

	"github.com/tamzrod/agrisense/internal/rtu"
	"github.com/tamzrod/agrisense/internal/transport"
)

// Config is the serial line configuration.
type Config struct {
	Port     string
	BaudRate int
	DataBits int
	Parity   string // "N", "E", "O"
	StopBits int
	Timeout  time.Duration
}

// Transport speaks Modbus RTU over a serial line.
// Calls block until the device answers or the line times out.
type Transport struct {
	cfg  Config
	port goserial.Port
}

// New creates an unconnected serial transport.
func New(cfg Config) (*Transport, error) {
	if cfg.Port == "" {
		return nil, errors.New("serialrtu: port required")
	}
	return &Transport{cfg: cfg}, nil
}

// Connect opens the serial port.
func (t *Transport) Connect() error {
	port, err := goserial.Open(&goserial.Config{
		Address:  t.cfg.Port,
		BaudRate: t.cfg.BaudRate,
		DataBits: t.cfg.DataBits,
		Parity:   t.cfg.Parity,
		StopBits: t.cfg.StopBits,
		Timeout:  t.cfg.Timeout,
	})
	if err != nil {
		return fmt.Errorf("serialrtu: open %s: %w", t.cfg.Port, err)
	}
	t.port = port
	return nil
}

// Close closes the serial port.
func (t *Transport) Close() error {
	if t.port == nil {
		return nil
	}
	err := t.port.Close()
	t.port = nil
	return err
}

// ReadRegisters issues one read-holding-registers exchange.
func (t *Transport) ReadRegisters(address, quantity uint16, unit uint8) ([]uint16, error) {
	req := rtu.BuildReadRequest(address, quantity, unit)

	// unit + fc + byte count + data + crc
	raw, err := t.exchange(req, 5+2*int(quantity))
	if err != nil {
		return nil, err
	}

	resp, err := parseVerified(raw)
	if err != nil {
		return nil, err
	}
	if resp.Function != rtu.FuncReadHoldingRegisters {
		return nil, fmt.Errorf("serialrtu: function mismatch: got=0x%02X want=0x03", resp.Function)
	}

	words, err := rtu.ExtractRegisters(resp.Payload)
	if err != nil {
		return nil, err
	}
	if len(words) != int(quantity) {
		return nil, fmt.Errorf("%w: got %d registers, want %d", rtu.ErrMalformedPayload, len(words), quantity)
	}
	return words, nil
}

// WriteRegister issues one write-single-register exchange and checks the echo.
func (t *Transport) WriteRegister(address, value uint16, unit uint8) error {
	req := rtu.BuildWriteRequest(address, value, unit)

	raw, err := t.exchange(req, 8)
	if err != nil {
		return err
	}

	resp, err := parseVerified(raw)
	if err != nil {
		return err
	}

	echoAddr, echoValue, err := resp.WriteEcho()
	if err != nil {
		return err
	}
	if echoAddr != address || echoValue != value {
		return fmt.Errorf("serialrtu: write echo mismatch: got=(0x%04X, %d) want=(0x%04X, %d)",
			echoAddr, echoValue, address, value)
	}
	return nil
}

// exchange writes one request and reads one response of the expected length.
// An exception reply is always 5 bytes; the expectation shrinks once the
// echoed function code shows the exception flag.
func (t *Transport) exchange(req []byte, expected int) ([]byte, error) {
	if t.port == nil {
		return nil, transport.ErrNotConnected
	}

	if _, err := t.port.Write(req); err != nil {
		return nil, fmt.Errorf("serialrtu: write: %w", err)
	}

	buf := make([]byte, expected)
	n := 0
	for n < expected {
		m, err := t.port.Read(buf[n:expected])
		if err != nil {
			if errors.Is(err, goserial.ErrTimeout) {
				return nil, transport.ErrTimeout
			}
			return nil, fmt.Errorf("serialrtu: read: %w", err)
		}
		n += m

		if n >= 2 && buf[1]&0x80 != 0 {
			expected = 5
		}
	}

	return buf[:expected], nil
}

// parseVerified checks the CRC, parses the frame, and surfaces exceptions.
func parseVerified(raw []byte) (rtu.Response, error) {
	if !rtu.Verify(raw) {
		return rtu.Response{}, rtu.ErrInvalidCRC
	}

	resp, err := rtu.ParseResponse(raw)
	if err != nil {
		return rtu.Response{}, err
	}
	if resp.Exception != nil {
		return rtu.Response{}, *resp.Exception
	}
	return resp, nil
}
