// internal/sensor/air.go
package sensor

import (
	"fmt"

	"github.com/tamzrod/agrisense/internal/registers"
	"github.com/tamzrod/agrisense/internal/transport"
)

// AirSensor reads an air humidity/temperature/CO2/light probe.
type AirSensor struct {
	*Sensor
}

// NewAir creates an air sensor at unit over tr.
func NewAir(tr transport.Transport, unit uint8) (*AirSensor, error) {
	s, err := New(registers.KindAir, tr, unit)
	if err != nil {
		return nil, err
	}
	return &AirSensor{Sensor: s}, nil
}

// Humidity reads relative humidity in %.
func (s *AirSensor) Humidity() (float64, error) {
	return s.ReadField(registers.FieldHumidity)
}

// Temperature reads air temperature in °C.
func (s *AirSensor) Temperature() (float64, error) {
	return s.ReadField(registers.FieldTemperature)
}

// CO2 reads CO2 concentration in ppm.
func (s *AirSensor) CO2() (float64, error) {
	return s.ReadField(registers.FieldCO2)
}

// Light reads light intensity in lux. The value spans two registers,
// high word first, for the 0-200000 range.
func (s *AirSensor) Light() (float64, error) {
	return s.ReadField(registers.FieldLight)
}

// All reads humidity, temperature, CO2, and light in one exchange.
func (s *AirSensor) All() (map[string]float64, error) {
	return s.ReadComposite("all")
}

// CalibrateTemperature writes a temperature offset (device stores value x10).
func (s *AirSensor) CalibrateTemperature(value float64) error {
	if value < -40.0 || value > 100.0 {
		return fmt.Errorf("sensor: temperature calibration %v out of range -40..100", value)
	}
	return s.WriteRegister(registers.AirTempCal, uint16(int16(value*10)))
}

// CalibrateHumidity writes a humidity offset (device stores value x10).
func (s *AirSensor) CalibrateHumidity(value float64) error {
	if value < 0 || value > 100 {
		return fmt.Errorf("sensor: humidity calibration %v out of range 0..100", value)
	}
	return s.WriteRegister(registers.AirHumidityCal, uint16(int16(value*10)))
}

// CalibrateCO2 writes a CO2 offset.
func (s *AirSensor) CalibrateCO2(value float64) error {
	if value < -2000 || value > 2000 {
		return fmt.Errorf("sensor: co2 calibration %v out of range -2000..2000", value)
	}
	return s.WriteRegister(registers.AirCO2Cal, uint16(int16(value)))
}

// CalibrateLight writes a light offset across the high/low register pair.
func (s *AirSensor) CalibrateLight(value int) error {
	if value < -32768 || value > 32767 {
		return fmt.Errorf("sensor: light calibration %d out of range -32768..32767", value)
	}

	high := uint16(uint32(value) >> 16)
	low := uint16(uint32(value) & 0xFFFF)

	if err := s.WriteRegister(registers.AirLightCal, high); err != nil {
		return err
	}
	return s.WriteRegister(registers.AirLightCalLow, low)
}

// SetAddress changes the probe's bus address.
func (s *AirSensor) SetAddress(address uint8) error {
	if address < 1 || address > 254 {
		return fmt.Errorf("sensor: address %d out of range 1-254", address)
	}
	return s.WriteRegister(registers.AirDeviceAddress, uint16(address))
}

// SetBaudRate changes the probe's serial baud rate.
func (s *AirSensor) SetBaudRate(baud int) error {
	code, err := baudCode(baud)
	if err != nil {
		return err
	}
	return s.WriteRegister(registers.AirBaudRate, code)
}
