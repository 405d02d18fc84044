// internal/sensor/soil.go
package sensor

import (
	"fmt"

	"github.com/tamzrod/agrisense/internal/registers"
	"github.com/tamzrod/agrisense/internal/transport"
)

// SoilSensor reads a soil moisture/temperature/EC/pH/NPK probe.
type SoilSensor struct {
	*Sensor
}

// NewSoil creates a soil sensor at unit over tr.
func NewSoil(tr transport.Transport, unit uint8) (*SoilSensor, error) {
	s, err := New(registers.KindSoil, tr, unit)
	if err != nil {
		return nil, err
	}
	return &SoilSensor{Sensor: s}, nil
}

// Moisture reads volumetric moisture in %.
func (s *SoilSensor) Moisture() (float64, error) {
	return s.ReadField(registers.FieldMoisture)
}

// Temperature reads soil temperature in °C.
func (s *SoilSensor) Temperature() (float64, error) {
	return s.ReadField(registers.FieldTemperature)
}

// Conductivity reads electrical conductivity in us/cm.
func (s *SoilSensor) Conductivity() (float64, error) {
	return s.ReadField(registers.FieldEC)
}

// PH reads soil pH.
func (s *SoilSensor) PH() (float64, error) {
	return s.ReadField(registers.FieldPH)
}

// All reads moisture, temperature, EC, and pH in one exchange.
func (s *SoilSensor) All() (map[string]float64, error) {
	return s.ReadComposite("all")
}

// NPK reads nitrogen, phosphorus, and potassium in one exchange.
func (s *SoilSensor) NPK() (map[string]float64, error) {
	return s.ReadComposite("npk")
}

// CalibrateTemperature writes a temperature offset (device stores value x10).
func (s *SoilSensor) CalibrateTemperature(value float64) error {
	return s.WriteRegister(registers.SoilTempCal, uint16(int16(value*10)))
}

// CalibrateMoisture writes a moisture offset (device stores value x10).
func (s *SoilSensor) CalibrateMoisture(value float64) error {
	return s.WriteRegister(registers.SoilMoistureCal, uint16(int16(value*10)))
}

// CalibrateEC writes an EC offset.
func (s *SoilSensor) CalibrateEC(value float64) error {
	return s.WriteRegister(registers.SoilECCal, uint16(int16(value)))
}

// CalibratePH writes a pH offset (device stores value x10).
func (s *SoilSensor) CalibratePH(value float64) error {
	return s.WriteRegister(registers.SoilPHCal, uint16(int16(value*10)))
}

// SetAddress changes the probe's bus address.
func (s *SoilSensor) SetAddress(address uint8) error {
	if address < 1 || address > 254 {
		return fmt.Errorf("sensor: address %d out of range 1-254", address)
	}
	return s.WriteRegister(registers.SoilDeviceAddress, uint16(address))
}

// SetBaudRate changes the probe's serial baud rate.
func (s *SoilSensor) SetBaudRate(baud int) error {
	code, err := baudCode(baud)
	if err != nil {
		return err
	}
	return s.WriteRegister(registers.SoilBaudRate, code)
}
