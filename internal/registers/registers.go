// internal/registers/registers.go
package registers

import "errors"

// Kind selects a sensor register map.
type Kind string

const (
	KindSoil Kind = "soil"
	KindAir  Kind = "air"
)

// Type is the logical data type held by a register (or register pair).
type Type uint8

const (
	U16 Type = iota // one register, unsigned
	I16             // one register, two's-complement signed
	U32             // two consecutive registers, high word first
)

var (
	ErrUnknownKind      = errors.New("registers: unknown sensor kind")
	ErrUnknownRegister  = errors.New("registers: unknown register name")
	ErrUnknownComposite = errors.New("registers: unknown composite name")
	ErrWordCount        = errors.New("registers: word count mismatch")
)

// Spec describes one named register: address, geometry, and scaling.
type Spec struct {
	Address uint16
	Words   uint8 // 1, or 2 for U32 values split across two registers
	Type    Type
	Scale   float64
	Signed  bool
	Unit    string
}

// Physical converts one raw register word into a physical value.
// Signed values above 32767 wrap to their two's-complement reading
// before the scale factor is applied.
func (s Spec) Physical(raw uint16) float64 {
	v := int32(raw)
	if s.Signed && raw > 0x7FFF {
		v -= 0x10000
	}
	return float64(v) * s.Scale
}

// U32From assembles a 32-bit value from a high/low register pair.
// No sign handling: 32-bit fields in these maps are always non-negative.
func U32From(high, low uint16) uint32 {
	return uint32(high)<<16 | uint32(low)
}

// Lookup resolves a named register in the map for kind.
func Lookup(kind Kind, name string) (Spec, error) {
	m, err := Map(kind)
	if err != nil {
		return Spec{}, err
	}
	spec, ok := m[name]
	if !ok {
		return Spec{}, ErrUnknownRegister
	}
	return spec, nil
}

// Map returns the full register map for kind.
func Map(kind Kind) (map[string]Spec, error) {
	switch kind {
	case KindSoil:
		return soilRegisters, nil
	case KindAir:
		return airRegisters, nil
	}
	return nil, ErrUnknownKind
}
