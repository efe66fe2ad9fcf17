// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"image"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/magnetometer/internal/chart"
	"github.com/relabs-tech/magnetometer/internal/config"
	"github.com/relabs-tech/magnetometer/internal/history"
)

// ssd1306Addr is the address the driver always talks to.
const ssd1306Addr = 0x3C

// screen is the part of *ssd1306.Dev the mirror uses.
type screen interface {
	Bounds() image.Rectangle
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
	Halt() error
}

// OLED mirrors the latest reading on a 128x64 SSD1306, at most once per
// interval.
type OLED struct {
	dev      screen
	closer   func() error
	interval time.Duration
	last     time.Time
}

// readdress moves transactions for the driver's fixed address to addr.
type readdress struct {
	i2c.Bus
	addr uint16
}

func (b readdress) Tx(addr uint16, w, r []byte) error {
	if addr == ssd1306Addr {
		addr = b.addr
	}
	return b.Bus.Tx(addr, w, r)
}

// OpenOLED initializes the display described by cfg and shows a splash.
func OpenOLED(cfg config.DisplayConfig, interval time.Duration) (*OLED, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph: %w", err)
	}
	bus, err := i2creg.Open(cfg.Bus)
	if err != nil {
		return nil, fmt.Errorf("failed to open I2C bus: %w", err)
	}
	dev, err := ssd1306.NewI2C(readdress{Bus: bus, addr: cfg.Address}, &ssd1306.DefaultOpts)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("failed to initialize display: %w", err)
	}
	log.Printf("display: initialized at 0x%02X", cfg.Address)

	o := newOLED(dev, bus.Close, interval)
	if err := o.draw([]string{"", "  Magnetometer", "", "  starting..."}); err != nil {
		log.Printf("display: error showing splash: %v", err)
	}
	return o, nil
}

func newOLED(dev screen, closer func() error, interval time.Duration) *OLED {
	return &OLED{dev: dev, closer: closer, interval: interval}
}

// Update redraws when at least interval has passed since the last redraw.
func (o *OLED) Update(now time.Time, e history.Entry, sensor string) error {
	if !o.last.IsZero() && now.Sub(o.last) < o.interval {
		return nil
	}
	o.last = now
	return o.draw(readoutLines(e, sensor))
}

// readoutLines formats an entry for the 7x13 font. It only has ASCII, so
// µ is written as u.
func readoutLines(e history.Entry, sensor string) []string {
	if !e.Valid() {
		return []string{sensor, "Waiting..."}
	}
	c, unit := chart.Convert(e)
	unit = strings.Replace(unit, "µ", "u", 1)
	return []string{
		fmt.Sprintf("%s  %s", sensor, unit),
		fmt.Sprintf("X: %9.2f", c.X),
		fmt.Sprintf("Y: %9.2f", c.Y),
		fmt.Sprintf("Z: %9.2f", c.Z),
		fmt.Sprintf("|B|%9.2f", c.Mag),
	}
}

func (o *OLED) draw(lines []string) error {
	img := image1bit.NewVerticalLSB(o.dev.Bounds())
	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}
	for i, l := range lines {
		drawer.Dot = fixed.P(0, 12*(i+1))
		drawer.DrawString(l)
	}
	return o.dev.Draw(o.dev.Bounds(), img, image.Point{})
}

// Close blanks the display and releases the bus.
func (o *OLED) Close() error {
	err := o.dev.Halt()
	if o.closer != nil {
		if cerr := o.closer(); err == nil {
			err = cerr
		}
	}
	return err
}
