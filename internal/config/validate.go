// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/tamzrod/agrisense/internal/registers"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if len(cfg.Agrisense.Sensors) == 0 {
		return fmt.Errorf("config: at least one sensor required")
	}

	seen := make(map[string]struct{})

	for _, s := range cfg.Agrisense.Sensors {
		if s.ID == "" {
			return fmt.Errorf("config: sensor id required")
		}
		if _, exists := seen[s.ID]; exists {
			return fmt.Errorf("config: duplicate sensor id %q", s.ID)
		}
		seen[s.ID] = struct{}{}

		// ------------------------------------------------------------
		// SENSOR KIND + UNIT
		// ------------------------------------------------------------

		kind := registers.Kind(s.Kind)
		if _, err := registers.Map(kind); err != nil {
			return fmt.Errorf("sensor %q: unknown kind %q", s.ID, s.Kind)
		}

		if s.UnitID < 1 || s.UnitID > 254 {
			return fmt.Errorf("sensor %q: unit_id %d out of range 1-254", s.ID, s.UnitID)
		}

		if s.TimeoutMs < 0 {
			return fmt.Errorf("sensor %q: timeout_ms must be >= 0", s.ID)
		}

		// ------------------------------------------------------------
		// TRANSPORT SECTION
		// ------------------------------------------------------------

		switch s.Transport.Type {
		case "serial":
			if s.Transport.Serial == nil {
				return fmt.Errorf("sensor %q: transport type serial but no serial section", s.ID)
			}
			if s.Transport.Serial.Port == "" {
				return fmt.Errorf("sensor %q: serial port required", s.ID)
			}
			switch s.Transport.Serial.Parity {
			case "", "N", "E", "O":
			default:
				return fmt.Errorf("sensor %q: parity must be N, E, or O", s.ID)
			}

		case "tcp":
			if s.Transport.TCP == nil {
				return fmt.Errorf("sensor %q: transport type tcp but no tcp section", s.ID)
			}
			if s.Transport.TCP.Endpoint == "" {
				return fmt.Errorf("sensor %q: tcp endpoint required", s.ID)
			}

		case "mqtt":
			if s.Transport.MQTT == nil {
				return fmt.Errorf("sensor %q: transport type mqtt but no mqtt section", s.ID)
			}
			m := s.Transport.MQTT
			if m.Broker == "" {
				return fmt.Errorf("sensor %q: mqtt broker required", s.ID)
			}
			if m.RequestTopic == "" || m.ResponseTopic == "" {
				return fmt.Errorf("sensor %q: mqtt request and response topics required", s.ID)
			}
			if m.RequestTopic == m.ResponseTopic {
				return fmt.Errorf("sensor %q: mqtt request and response topics must differ", s.ID)
			}

		default:
			return fmt.Errorf("sensor %q: unknown transport type %q", s.ID, s.Transport.Type)
		}

		// ------------------------------------------------------------
		// POLL GEOMETRY
		// ------------------------------------------------------------

		if s.Poll.IntervalMs < 0 {
			return fmt.Errorf("sensor %q: interval_ms must be >= 0", s.ID)
		}

		for _, name := range s.Poll.Composites {
			if _, err := registers.LookupComposite(kind, name); err != nil {
				return fmt.Errorf("sensor %q: composite %q not defined for kind %q", s.ID, name, s.Kind)
			}
		}
	}

	return nil
}
