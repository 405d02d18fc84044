// internal/monitor/poller.go
package monitor

import (
	"errors"
	"time"
)

// Reader abstracts the composite read the poller depends on.
type Reader interface {
	ReadComposite(name string) (map[string]float64, error)
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	SensorID   string
	Interval   time.Duration
	Composites []string
}

// Poller is a dumb, clock-driven reader.
type Poller struct {
	cfg    Config
	reader Reader
}

// New creates a poller with immutable config.
func New(cfg Config, reader Reader) (*Poller, error) {
	if cfg.SensorID == "" {
		return nil, errors.New("monitor: sensor id required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("monitor: interval must be > 0")
	}
	if len(cfg.Composites) == 0 {
		return nil, errors.New("monitor: at least one composite required")
	}
	if reader == nil {
		return nil, errors.New("monitor: reader required")
	}
	return &Poller{cfg: cfg, reader: reader}, nil
}

// PollOnce performs exactly one poll cycle.
// All-or-nothing: any failure aborts the cycle.
func (p *Poller) PollOnce() Result {
	res := Result{
		SensorID: p.cfg.SensorID,
		At:       time.Now(),
	}

	values := make(map[string]float64)

	for _, name := range p.cfg.Composites {
		fields, err := p.reader.ReadComposite(name)
		if err != nil {
			res.Err = err
			return res
		}
		for field, v := range fields {
			values[field] = v
		}
	}

	// Commit only if all reads succeeded
	res.Values = values
	return res
}
