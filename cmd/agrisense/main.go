// cmd/agrisense/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/tamzrod/agrisense/internal/config"
	"github.com/tamzrod/agrisense/internal/monitor"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: agrisense <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	config.Normalize(cfg)

	ctx := context.Background()

	// --------------------
	// Build per-sensor pipelines
	// --------------------

	for _, sc := range cfg.Agrisense.Sensors {
		p, closeSensor, err := monitor.Build(sc)
		if err != nil {
			log.Fatalf("sensor build failed (sensor=%s): %v", sc.ID, err)
		}
		defer closeSensor()

		// ---- channel between poller and logger ----
		out := make(chan monitor.Result)

		go func(sensorID string) {
			for {
				select {
				case <-ctx.Done():
					return

				case res := <-out:
					if res.Err != nil {
						log.Printf("read failed (sensor=%s code=%d): %v",
							sensorID, errorCode(res.Err), res.Err)
						continue
					}
					log.Printf("sensor=%s %s", sensorID, formatValues(res.Values))
				}
			}
		}(sc.ID)

		// poller producer
		go p.Run(ctx, out)
	}

	// --------------------
	// Block forever (daemon-safe, no deadlock)
	// --------------------
	for {
		time.Sleep(time.Hour)
	}
}

// formatValues renders a field map in stable field order.
func formatValues(values map[string]float64) string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%.1f", name, values[name]))
	}
	return strings.Join(parts, " ")
}

// errorCode extracts a best-effort uint16 code from an error without assuming concrete types.
// Modbus exceptions expose their exception code this way; anything else maps to 1.
func errorCode(err error) uint16 {
	if err == nil {
		return 0
	}

	type coder interface{ Code() uint16 }

	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}

	return 1
}
