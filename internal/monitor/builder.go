// internal/monitor/builder.go
package monitor

import (
	"fmt"
	"time"

	cfg "github.com/tamzrod/agrisense/internal/config"
	"github.com/tamzrod/agrisense/internal/registers"
	"github.com/tamzrod/agrisense/internal/sensor"
	"github.com/tamzrod/agrisense/internal/transport"
	"github.com/tamzrod/agrisense/internal/transport/mqttrtu"
	"github.com/tamzrod/agrisense/internal/transport/serialrtu"
	"github.com/tamzrod/agrisense/internal/transport/tcp"
)

// Build constructs a Poller for one configured sensor and connects its
// transport. Fail fast at startup: no retries, no reconnect loops.
func Build(sc cfg.SensorConfig) (*Poller, func() error, error) {
	tr, err := buildTransport(sc)
	if err != nil {
		return nil, nil, err
	}

	sn, err := sensor.New(registers.Kind(sc.Kind), tr, sc.UnitID)
	if err != nil {
		return nil, nil, err
	}

	if err := sn.Connect(); err != nil {
		return nil, nil, fmt.Errorf("monitor: connect sensor %q: %w", sc.ID, err)
	}

	p, err := New(
		Config{
			SensorID:   sc.ID,
			Interval:   time.Duration(sc.Poll.IntervalMs) * time.Millisecond,
			Composites: sc.Poll.Composites,
		},
		sn,
	)
	if err != nil {
		_ = sn.Close()
		return nil, nil, err
	}

	return p, sn.Close, nil
}

func buildTransport(sc cfg.SensorConfig) (transport.Transport, error) {
	timeout := time.Duration(sc.TimeoutMs) * time.Millisecond

	switch sc.Transport.Type {
	case "serial":
		c := sc.Transport.Serial
		return serialrtu.New(serialrtu.Config{
			Port:     c.Port,
			BaudRate: c.BaudRate,
			DataBits: c.DataBits,
			Parity:   c.Parity,
			StopBits: c.StopBits,
			Timeout:  timeout,
		})

	case "tcp":
		return tcp.New(tcp.Config{
			Endpoint: sc.Transport.TCP.Endpoint,
			Timeout:  timeout,
		})

	case "mqtt":
		c := sc.Transport.MQTT
		qos := byte(cfg.DefaultQoS)
		if c.QoS != nil {
			qos = *c.QoS
		}
		return mqttrtu.New(mqttrtu.Config{
			Broker:        c.Broker,
			ClientID:      c.ClientID,
			RequestTopic:  c.RequestTopic,
			ResponseTopic: c.ResponseTopic,
			Username:      c.Username,
			Password:      c.Password,
			QoS:           qos,
			Timeout:       timeout,
		})
	}

	return nil, fmt.Errorf("monitor: unknown transport type %q", sc.Transport.Type)
}
