// internal/sensor/sensor.go
package sensor

import (
	"errors"
	"fmt"

	"github.com/tamzrod/agrisense/internal/registers"
	"github.com/tamzrod/agrisense/internal/transport"
)

// Sensor binds one register map to one transport and unit ID.
// Callers must serialize access: one logical operation at a time.
type Sensor struct {
	kind registers.Kind
	unit uint8
	tr   transport.Transport
}

// New creates a sensor for kind addressed at unit over tr.
func New(kind registers.Kind, tr transport.Transport, unit uint8) (*Sensor, error) {
	if _, err := registers.Map(kind); err != nil {
		return nil, err
	}
	if unit < 1 || unit > 254 {
		return nil, fmt.Errorf("sensor: unit id %d out of range 1-254", unit)
	}
	if tr == nil {
		return nil, errors.New("sensor: transport required")
	}
	return &Sensor{kind: kind, unit: unit, tr: tr}, nil
}

// Kind reports the sensor's register map kind.
func (s *Sensor) Kind() registers.Kind { return s.kind }

// Unit reports the Modbus unit ID.
func (s *Sensor) Unit() uint8 { return s.unit }

// Connect connects the underlying transport.
func (s *Sensor) Connect() error { return s.tr.Connect() }

// Close disconnects the underlying transport.
func (s *Sensor) Close() error { return s.tr.Close() }

// ReadField reads one named register and returns its physical value.
// U32 fields read two consecutive registers, high word first.
func (s *Sensor) ReadField(name string) (float64, error) {
	spec, err := registers.Lookup(s.kind, name)
	if err != nil {
		return 0, err
	}

	if spec.Type == registers.U32 {
		words, err := s.tr.ReadRegisters(spec.Address, 2, s.unit)
		if err != nil {
			return 0, err
		}
		return float64(registers.U32From(words[0], words[1])) * spec.Scale, nil
	}

	words, err := s.tr.ReadRegisters(spec.Address, 1, s.unit)
	if err != nil {
		return 0, err
	}
	return spec.Physical(words[0]), nil
}

// ReadFields reads several named registers, one exchange each.
func (s *Sensor) ReadFields(names ...string) (map[string]float64, error) {
	out := make(map[string]float64, len(names))
	for _, name := range names {
		v, err := s.ReadField(name)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}

// ReadComposite reads one named composite group in a single register-range
// exchange and decodes it into physical values. All-or-nothing: a failed
// exchange returns no partial mapping.
func (s *Sensor) ReadComposite(name string) (map[string]float64, error) {
	comp, err := registers.LookupComposite(s.kind, name)
	if err != nil {
		return nil, err
	}

	words, err := s.tr.ReadRegisters(comp.Start, comp.Words, s.unit)
	if err != nil {
		return nil, err
	}

	return comp.Parse(words)
}

// WriteRegister writes one holding register. Calibration, addressing, and
// baud-rate changes go through here; it is off the hot read path.
func (s *Sensor) WriteRegister(address, value uint16) error {
	return s.tr.WriteRegister(address, value, s.unit)
}

// baudCodes maps serial baud rates to the device's baud-rate register codes.
var baudCodes = map[int]uint16{
	2400:   0,
	4800:   1,
	9600:   2,
	19200:  3,
	38400:  4,
	57600:  5,
	115200: 6,
	1200:   7,
}

func baudCode(baud int) (uint16, error) {
	code, ok := baudCodes[baud]
	if !ok {
		return 0, fmt.Errorf("sensor: unsupported baud rate %d", baud)
	}
	return code, nil
}
