// internal/registers/registers_test.go
package registers

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}

func TestPhysical_SignConversion(t *testing.T) {
	spec := Spec{Scale: 0.1, Signed: true}

	// 0xFF9B = 65435 raw = -101 signed → -10.1 after scale.
	if got := spec.Physical(0xFF9B); !almostEqual(got, -10.1) {
		t.Fatalf("signed physical: got=%v want=-10.1", got)
	}
}

func TestPhysical_UnsignedStaysRaw(t *testing.T) {
	// No heuristic sign coercion: unsigned fields above 32767 stay positive.
	spec := Spec{Scale: 1.0}

	if got := spec.Physical(65000); got != 65000 {
		t.Fatalf("unsigned physical: got=%v want=65000", got)
	}
}

func TestPhysical_Scaled(t *testing.T) {
	spec := Spec{Scale: 0.1}

	if got := spec.Physical(658); !almostEqual(got, 65.8) {
		t.Fatalf("scaled physical: got=%v want=65.8", got)
	}
}

func TestU32From(t *testing.T) {
	// high=0x0001, low=0x86A0 (100000) → 165536.
	if got := U32From(0x0001, 0x86A0); got != 165536 {
		t.Fatalf("u32 assembly: got=%d want=165536", got)
	}
}

func TestLookup(t *testing.T) {
	spec, err := Lookup(KindSoil, FieldMoisture)
	if err != nil {
		t.Fatalf("Lookup err=%v", err)
	}
	if spec.Address != SoilMoisture || !spec.Signed || spec.Scale != 0.1 {
		t.Fatalf("unexpected moisture spec: %+v", spec)
	}

	if _, err := Lookup(KindSoil, "pressure"); !errors.Is(err, ErrUnknownRegister) {
		t.Fatalf("expected ErrUnknownRegister, got %v", err)
	}
	if _, err := Lookup(Kind("water"), FieldMoisture); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestComposite_SoilAll(t *testing.T) {
	c, err := LookupComposite(KindSoil, "all")
	if err != nil {
		t.Fatalf("LookupComposite err=%v", err)
	}
	if c.Start != SoilMoisture || c.Words != 4 {
		t.Fatalf("soil all geometry: start=%d words=%d", c.Start, c.Words)
	}

	// moisture=65.8%, temperature=-10.1°C, ec=1000, ph=5.6
	values, err := c.Parse([]uint16{658, 0xFF9B, 1000, 56})
	if err != nil {
		t.Fatalf("Parse err=%v", err)
	}

	want := map[string]float64{
		FieldMoisture:    65.8,
		FieldTemperature: -10.1,
		FieldEC:          1000,
		FieldPH:          5.6,
	}
	for name, v := range want {
		if !almostEqual(values[name], v) {
			t.Fatalf("%s: got=%v want=%v", name, values[name], v)
		}
	}
}

func TestComposite_SoilNPK(t *testing.T) {
	c, err := LookupComposite(KindSoil, "npk")
	if err != nil {
		t.Fatalf("LookupComposite err=%v", err)
	}
	if c.Start != SoilNitrogen || c.Words != 3 {
		t.Fatalf("npk geometry: start=%d words=%d", c.Start, c.Words)
	}

	values, err := c.Parse([]uint16{120, 45, 200})
	if err != nil {
		t.Fatalf("Parse err=%v", err)
	}
	if values[FieldNitrogen] != 120 || values[FieldPhosphorus] != 45 || values[FieldPotassium] != 200 {
		t.Fatalf("npk values: got=%v", values)
	}
}

func TestComposite_AirAll(t *testing.T) {
	c, err := LookupComposite(KindAir, "all")
	if err != nil {
		t.Fatalf("LookupComposite err=%v", err)
	}
	if c.Words != 5 {
		t.Fatalf("air all words: got=%d want=5", c.Words)
	}

	values, err := c.Parse([]uint16{455, 0xFF9B, 800, 0x0001, 0x86A0})
	if err != nil {
		t.Fatalf("Parse err=%v", err)
	}
	if !almostEqual(values[FieldHumidity], 45.5) {
		t.Fatalf("humidity: got=%v want=45.5", values[FieldHumidity])
	}
	if !almostEqual(values[FieldTemperature], -10.1) {
		t.Fatalf("temperature: got=%v want=-10.1", values[FieldTemperature])
	}
	if values[FieldCO2] != 800 {
		t.Fatalf("co2: got=%v want=800", values[FieldCO2])
	}
	if values[FieldLight] != 165536 {
		t.Fatalf("light: got=%v want=165536", values[FieldLight])
	}
}

func TestComposite_WordCountMismatch(t *testing.T) {
	c, err := LookupComposite(KindSoil, "all")
	if err != nil {
		t.Fatalf("LookupComposite err=%v", err)
	}

	if _, err := c.Parse([]uint16{1, 2, 3}); !errors.Is(err, ErrWordCount) {
		t.Fatalf("expected ErrWordCount, got %v", err)
	}
}

func TestComposite_UnknownName(t *testing.T) {
	if _, err := LookupComposite(KindAir, "npk"); !errors.Is(err, ErrUnknownComposite) {
		t.Fatalf("expected ErrUnknownComposite, got %v", err)
	}
}
