// internal/registers/composite.go
package registers

import "fmt"

// Composite is a named, contiguous run of registers read in one exchange and
// decoded into multiple physical fields. The parse function is fixed at
// definition: there is no runtime dispatch by name beyond the map lookup.
type Composite struct {
	Start  uint16
	Words  uint16
	Fields []string

	parse func(words []uint16) map[string]float64
}

// Parse decodes one raw word sequence into named physical values.
// The word count must match the composite geometry exactly.
func (c Composite) Parse(words []uint16) (map[string]float64, error) {
	if len(words) != int(c.Words) {
		return nil, fmt.Errorf("%w: got %d words, want %d", ErrWordCount, len(words), c.Words)
	}
	return c.parse(words), nil
}

// LookupComposite resolves a named composite group for kind.
func LookupComposite(kind Kind, name string) (Composite, error) {
	m, err := Composites(kind)
	if err != nil {
		return Composite{}, err
	}
	c, ok := m[name]
	if !ok {
		return Composite{}, fmt.Errorf("%w: %q", ErrUnknownComposite, name)
	}
	return c, nil
}

// Composites returns all composite groups defined for kind.
func Composites(kind Kind) (map[string]Composite, error) {
	switch kind {
	case KindSoil:
		return soilComposites, nil
	case KindAir:
		return airComposites, nil
	}
	return nil, ErrUnknownKind
}
