// internal/registers/air.go
package registers

// Air sensor register addresses.

// ---- MEASUREMENTS ----

const (
	AirHumidity    uint16 = 0x0000
	AirTemperature uint16 = 0x0001
	AirCO2         uint16 = 0x0002
	AirLight       uint16 = 0x0003 // high 16 bits
	AirLightLow    uint16 = 0x0004 // low 16 bits
)

// ---- CALIBRATION ----

const (
	AirTempCal     uint16 = 0x0050
	AirHumidityCal uint16 = 0x0051
	AirCO2Cal      uint16 = 0x0052
	AirLightCal    uint16 = 0x0053 // high 16 bits
	AirLightCalLow uint16 = 0x0054 // low 16 bits
)

// ---- DEVICE SETTINGS ----

const (
	AirDeviceAddress uint16 = 0x07D0
	AirBaudRate      uint16 = 0x07D1
)

// Air field names.
const (
	FieldHumidity = "humidity"
	FieldCO2      = "co2"
	FieldLight    = "light"
)

var airRegisters = map[string]Spec{
	FieldHumidity:    {Address: AirHumidity, Words: 1, Type: U16, Scale: 0.1, Unit: "%"},
	FieldTemperature: {Address: AirTemperature, Words: 1, Type: I16, Scale: 0.1, Signed: true, Unit: "°C"},
	FieldCO2:         {Address: AirCO2, Words: 1, Type: U16, Scale: 1.0, Unit: "ppm"},
	FieldLight:       {Address: AirLight, Words: 2, Type: U32, Scale: 1.0, Unit: "lux"},
}

var airComposites = map[string]Composite{
	// humidity, temperature, co2, light high, light low.
	"all": {
		Start:  AirHumidity,
		Words:  5,
		Fields: []string{FieldHumidity, FieldTemperature, FieldCO2, FieldLight},
		parse:  parseAirAll,
	},
}

func parseAirAll(words []uint16) map[string]float64 {
	return map[string]float64{
		FieldHumidity:    airRegisters[FieldHumidity].Physical(words[0]),
		FieldTemperature: airRegisters[FieldTemperature].Physical(words[1]),
		FieldCO2:         airRegisters[FieldCO2].Physical(words[2]),
		FieldLight:       float64(U32From(words[3], words[4])) * airRegisters[FieldLight].Scale,
	}
}
