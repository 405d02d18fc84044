// internal/registers/soil.go
package registers

// Soil sensor register addresses.
// These values match the sensor's holding register layout and MUST NOT change.

// ---- MEASUREMENTS ----

const (
	SoilMoisture    uint16 = 0x0000
	SoilTemperature uint16 = 0x0001
	SoilEC          uint16 = 0x0002
	SoilPH          uint16 = 0x0003
	SoilNitrogen    uint16 = 0x0004
	SoilPhosphorus  uint16 = 0x0005
	SoilPotassium   uint16 = 0x0006
	SoilSalinity    uint16 = 0x0007
	SoilTDS         uint16 = 0x0008
)

// ---- COEFFICIENTS ----

const (
	SoilECTempCoef   uint16 = 0x0022
	SoilSalinityCoef uint16 = 0x0023
	SoilTDSCoef      uint16 = 0x0024
)

// ---- CALIBRATION ----

const (
	SoilTempCal     uint16 = 0x0050
	SoilMoistureCal uint16 = 0x0051
	SoilECCal       uint16 = 0x0052
	SoilPHCal       uint16 = 0x0053
)

// ---- DEVICE SETTINGS ----

const (
	SoilDeviceAddress uint16 = 0x07D0
	SoilBaudRate      uint16 = 0x07D1
)

// Soil field names.
const (
	FieldMoisture    = "moisture"
	FieldTemperature = "temperature"
	FieldEC          = "ec"
	FieldPH          = "ph"
	FieldNitrogen    = "nitrogen"
	FieldPhosphorus  = "phosphorus"
	FieldPotassium   = "potassium"
	FieldSalinity    = "salinity"
	FieldTDS         = "tds"
)

var soilRegisters = map[string]Spec{
	FieldMoisture:    {Address: SoilMoisture, Words: 1, Type: I16, Scale: 0.1, Signed: true, Unit: "%"},
	FieldTemperature: {Address: SoilTemperature, Words: 1, Type: I16, Scale: 0.1, Signed: true, Unit: "°C"},
	FieldEC:          {Address: SoilEC, Words: 1, Type: U16, Scale: 1.0, Unit: "us/cm"},
	FieldPH:          {Address: SoilPH, Words: 1, Type: U16, Scale: 0.1, Unit: "pH"},
	FieldNitrogen:    {Address: SoilNitrogen, Words: 1, Type: U16, Scale: 1.0, Unit: "mg/kg"},
	FieldPhosphorus:  {Address: SoilPhosphorus, Words: 1, Type: U16, Scale: 1.0, Unit: "mg/kg"},
	FieldPotassium:   {Address: SoilPotassium, Words: 1, Type: U16, Scale: 1.0, Unit: "mg/kg"},
	FieldSalinity:    {Address: SoilSalinity, Words: 1, Type: U16, Scale: 1.0, Unit: "ppt"},
	FieldTDS:         {Address: SoilTDS, Words: 1, Type: U16, Scale: 1.0, Unit: "ppm"},
}

var soilComposites = map[string]Composite{
	// moisture, temperature, ec, ph — fixed word order.
	"all": {
		Start:  SoilMoisture,
		Words:  4,
		Fields: []string{FieldMoisture, FieldTemperature, FieldEC, FieldPH},
		parse:  parseSoilAll,
	},
	"npk": {
		Start:  SoilNitrogen,
		Words:  3,
		Fields: []string{FieldNitrogen, FieldPhosphorus, FieldPotassium},
		parse:  parseSoilNPK,
	},
}

func parseSoilAll(words []uint16) map[string]float64 {
	return map[string]float64{
		FieldMoisture:    soilRegisters[FieldMoisture].Physical(words[0]),
		FieldTemperature: soilRegisters[FieldTemperature].Physical(words[1]),
		FieldEC:          soilRegisters[FieldEC].Physical(words[2]),
		FieldPH:          soilRegisters[FieldPH].Physical(words[3]),
	}
}

func parseSoilNPK(words []uint16) map[string]float64 {
	return map[string]float64{
		FieldNitrogen:   soilRegisters[FieldNitrogen].Physical(words[0]),
		FieldPhosphorus: soilRegisters[FieldPhosphorus].Physical(words[1]),
		FieldPotassium:  soilRegisters[FieldPotassium].Physical(words[2]),
	}
}
