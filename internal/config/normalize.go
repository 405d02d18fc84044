// internal/config/normalize.go
package config

// Default values applied by Normalize.
const (
	DefaultBaudRate   = 4800
	DefaultDataBits   = 8
	DefaultParity     = "N"
	DefaultStopBits   = 1
	DefaultTimeoutMs  = 10000
	DefaultIntervalMs = 60000
	DefaultQoS        = 1
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	for si := range cfg.Agrisense.Sensors {
		s := &cfg.Agrisense.Sensors[si]

		if s.TimeoutMs == 0 {
			s.TimeoutMs = DefaultTimeoutMs
		}

		// ------------------------------------------------------------
		// SERIAL LINE DEFAULTS (4800 8N1)
		// ------------------------------------------------------------

		if sc := s.Transport.Serial; sc != nil {
			if sc.BaudRate == 0 {
				sc.BaudRate = DefaultBaudRate
			}
			if sc.DataBits == 0 {
				sc.DataBits = DefaultDataBits
			}
			if sc.Parity == "" {
				sc.Parity = DefaultParity
			}
			if sc.StopBits == 0 {
				sc.StopBits = DefaultStopBits
			}
		}

		// ------------------------------------------------------------
		// MQTT DEFAULTS
		// ------------------------------------------------------------

		if mc := s.Transport.MQTT; mc != nil {
			if mc.QoS == nil {
				qos := byte(DefaultQoS)
				mc.QoS = &qos
			}
			if mc.ClientID == "" {
				mc.ClientID = "agrisense-" + s.ID
			}
		}

		// ------------------------------------------------------------
		// POLL DEFAULTS
		// ------------------------------------------------------------

		if s.Poll.IntervalMs == 0 {
			s.Poll.IntervalMs = DefaultIntervalMs
		}
		if len(s.Poll.Composites) == 0 {
			s.Poll.Composites = []string{"all"}
		}
	}
}
