// internal/config/config.go
package config

type Config struct {
	Agrisense AgrisenseConfig `yaml:"agrisense"`
}

type AgrisenseConfig struct {
	Sensors []SensorConfig `yaml:"sensors"`
}

// ---- SENSOR ----

type SensorConfig struct {
	ID        string          `yaml:"id"`
	Kind      string          `yaml:"kind"` // soil | air
	UnitID    uint8           `yaml:"unit_id"`
	TimeoutMs int             `yaml:"timeout_ms"`
	Transport TransportConfig `yaml:"transport"`
	Poll      PollConfig      `yaml:"poll"`
}

// ---- TRANSPORT ----

type TransportConfig struct {
	Type   string        `yaml:"type"` // serial | tcp | mqtt
	Serial *SerialConfig `yaml:"serial"`
	TCP    *TCPConfig    `yaml:"tcp"`
	MQTT   *MQTTConfig   `yaml:"mqtt"`
}

type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
	DataBits int    `yaml:"data_bits"`
	Parity   string `yaml:"parity"` // N | E | O
	StopBits int    `yaml:"stop_bits"`
}

type TCPConfig struct {
	Endpoint string `yaml:"endpoint"`
}

type MQTTConfig struct {
	Broker        string `yaml:"broker"`
	ClientID      string `yaml:"client_id"`
	RequestTopic  string `yaml:"request_topic"`
	ResponseTopic string `yaml:"response_topic"`
	Username      string `yaml:"username"`
	Password      string `yaml:"password"`
	QoS           *byte  `yaml:"qos"` // nil => default
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs int      `yaml:"interval_ms"`
	Composites []string `yaml:"composites"`
}
