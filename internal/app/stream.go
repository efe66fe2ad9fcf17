// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/magnetometer/internal/sensors"
)

// streamPayload is the JSON line schema. Axes are calibrated µT.
type streamPayload struct {
	Index       int      `json:"index"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Z           float64  `json:"z"`
	Mag         float64  `json:"mag"`
	Scale       int      `json:"scale"`
	Temperature *float64 `json:"temperature,omitempty"`
	Time        string   `json:"time"`
}

// StreamOpts configures the headless loop.
type StreamOpts struct {
	Interval    time.Duration
	Count       int  // stop after this many samples, 0 runs until ctx ends
	JSON        bool // one JSON object per line instead of text columns
	Temperature bool // also read the die temperature when the driver has one
	OLED        *OLED
}

// RunStream samples at a fixed interval and writes one line per reading
// to w. It returns nil when ctx is cancelled.
func RunStream(ctx context.Context, s *Session, w io.Writer, o StreamOpts) error {
	var thermo sensors.Thermometer
	if o.Temperature {
		t, ok := s.Driver().(sensors.Thermometer)
		if !ok {
			return fmt.Errorf("%s has no temperature sensor", s.Sensor())
		}
		thermo = t
	}

	ticker := time.NewTicker(o.Interval)
	defer ticker.Stop()

	enc := json.NewEncoder(w)
	log.WithField("sensor", s.Sensor()).Info("stream: started")
	for n := 0; o.Count == 0 || n < o.Count; n++ {
		if n > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}

		// Step may move the controller; report the scale the read used.
		scale := s.Scale()
		e, err := s.Step(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		now := time.Now()

		var temp *float64
		if thermo != nil {
			c, err := thermo.Temperature(ctx)
			switch {
			case errors.Is(err, sensors.ErrContinuousMode):
				log.Warnf("stream: %v, temperature disabled", err)
				thermo = nil
			case err != nil:
				return err
			default:
				temp = &c
			}
		}

		if o.OLED != nil {
			if err := o.OLED.Update(now, e, s.Sensor()); err != nil {
				log.Printf("display: update failed: %v", err)
			}
		}

		if o.JSON {
			p := streamPayload{
				Index:       e.Index,
				X:           e.X,
				Y:           e.Y,
				Z:           e.Z,
				Mag:         e.Mag,
				Scale:       scale,
				Temperature: temp,
				Time:        now.UTC().Format(time.RFC3339Nano),
			}
			if err := enc.Encode(p); err != nil {
				return fmt.Errorf("stream: write: %w", err)
			}
			continue
		}
		line := fmt.Sprintf("X=%9.2f  Y=%9.2f  Z=%9.2f  MAG=%9.2f µT  scale=%d", e.X, e.Y, e.Z, e.Mag, scale)
		if temp != nil {
			line += fmt.Sprintf("  T=%5.1f°C", *temp)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("stream: write: %w", err)
		}
	}
	return nil
}
