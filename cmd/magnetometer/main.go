// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// magnetometer draws a live, auto-ranging chart of a 3-axis magnetometer.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/fang"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/relabs-tech/magnetometer/internal/app"
	"github.com/relabs-tech/magnetometer/internal/bus"
	"github.com/relabs-tech/magnetometer/internal/config"
	"github.com/relabs-tech/magnetometer/internal/logging"
	"github.com/relabs-tech/magnetometer/internal/sensors"
)

var version = "dev"

type flags struct {
	config   string
	sensor   string
	bus      string
	backend  string
	addr     uint16
	log      string
	logLevel string
	samples  int
	interval int

	// stream only
	count       int
	json        bool
	temperature bool

	// registers only
	init   bool
	fields bool
	set    []string
}

func main() {
	if err := fang.Execute(context.Background(), newRootCmd()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:   "magnetometer",
		Short: "Live magnetometer chart",
		Long: `magnetometer reads a 3-axis magnetic field sensor over I2C and draws a
real-time chart of X, Y, Z and magnitude, switching the sensor range as the
field grows or shrinks.

Keys: x/y/z zero one axis, a zeroes all three, q quits.`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, &f, func(ctx context.Context, s *app.Session, cfg *config.Config, oled *app.OLED) error {
				return app.RunChart(ctx, s, app.ChartOpts{Version: version, Interval: cfg.Interval(), OLED: oled})
			})
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&f.config, "config", "", "YAML configuration file")
	pf.StringVar(&f.sensor, "sensor", "", "sensor type: "+strings.Join(sensors.Names(), ", ")+" (default "+sensors.DefaultSensor+")")
	pf.StringVar(&f.bus, "bus", "", "I2C bus name or number")
	pf.StringVar(&f.backend, "backend", "", "bus backend: "+strings.Join(bus.Backends(), ", "))
	pf.Uint16Var(&f.addr, "addr", 0, "device I2C address (default: the sensor's)")
	pf.StringVar(&f.log, "log", "", "file to append debugging logs to")
	pf.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	pf.IntVar(&f.samples, "samples", 0, "reads averaged per sample")
	pf.IntVar(&f.interval, "interval", 0, "sample interval in milliseconds")

	stream := &cobra.Command{
		Use:   "stream",
		Short: "Print one reading per line instead of drawing the chart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, &f, func(ctx context.Context, s *app.Session, cfg *config.Config, oled *app.OLED) error {
				return app.RunStream(ctx, s, cmd.OutOrStdout(), app.StreamOpts{
					Interval:    cfg.Interval(),
					Count:       f.count,
					JSON:        f.json,
					Temperature: f.temperature,
					OLED:        oled,
				})
			})
		},
	}
	stream.Flags().IntVarP(&f.count, "count", "n", 0, "stop after this many readings (0 runs until interrupted)")
	stream.Flags().BoolVar(&f.json, "json", false, "emit JSON lines")
	stream.Flags().BoolVar(&f.temperature, "temperature", false, "also report the die temperature (mmc5603 in single-shot mode)")

	list := &cobra.Command{
		Use:   "sensors",
		Short: "List supported sensors",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			for _, name := range sensors.Names() {
				v, _ := sensors.Lookup(name)
				addr := "-"
				if v.NeedsBus() {
					addr = fmt.Sprintf("0x%02X", v.Addr)
				}
				scales := v.New(nil, sensors.DefaultOpts).Scales()
				marker := " "
				if name == sensors.DefaultSensor {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-8s %-5s %v µT\n", marker, name, addr, scales)
			}
		},
	}

	regs := &cobra.Command{
		Use:   "registers",
		Short: "Dump the sensor's registers",
		Long: `registers reads every readable register of the selected sensor and prints
it next to its name and reset default. Write-only command registers show as
"--". --set writes registers marked writable before the dump.`,
		Example: "  magnetometer registers --sensor lis3mdl --fields\n" +
			"  magnetometer registers --sensor mmc5603 --init --json > mmc5603.json\n" +
			"  magnetometer registers --set 0x21=0x40",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			writes := make([]app.RegisterWrite, 0, len(f.set))
			for _, s := range f.set {
				w, err := app.ParseRegisterWrite(s)
				if err != nil {
					return err
				}
				writes = append(writes, w)
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			cfg, logs, err := prepare(cmd, &f)
			if err != nil {
				return err
			}
			defer logs.Close()
			return app.DumpRegisters(ctx, cfg, cmd.OutOrStdout(), app.RegisterOpts{
				Init:   f.init,
				JSON:   f.json,
				Fields: f.fields,
				Writes: writes,
			})
		},
	}
	regs.Flags().BoolVar(&f.init, "init", false, "run the sensor init sequence first")
	regs.Flags().BoolVar(&f.fields, "fields", false, "decode bit fields")
	regs.Flags().BoolVar(&f.json, "json", false, "export as JSON")
	regs.Flags().StringArrayVar(&f.set, "set", nil, "write ADDR=VALUE before reading (repeatable)")

	root.AddCommand(stream, list, regs)
	return root
}

type loop func(ctx context.Context, s *app.Session, cfg *config.Config, oled *app.OLED) error

func run(cmd *cobra.Command, f *flags, body loop) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, logs, err := prepare(cmd, f)
	if err != nil {
		return err
	}
	defer logs.Close()
	log.Printf("magnetometer %s: sensor %s", version, cfg.Sensor)

	drv, closer, err := app.OpenSensor(ctx, cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	var oled *app.OLED
	if cfg.Display.Enabled {
		oled, err = app.OpenOLED(cfg.Display, cfg.DisplayInterval())
		if err != nil {
			return err
		}
		defer oled.Close()
	}

	return body(ctx, app.NewSessionFromConfig(drv, cfg), cfg, oled)
}

// prepare loads the configuration, applies flag overrides and starts
// logging. The closer flushes the log file.
func prepare(cmd *cobra.Command, f *flags) (*config.Config, io.Closer, error) {
	cfg, err := config.Load(f.config)
	if err != nil {
		return nil, nil, err
	}
	applyFlags(cmd, f, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	logs, err := logging.Setup(cfg.Log.File, cfg.Log.Level, nil)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logs, nil
}

// applyFlags overrides cfg with every flag the user set explicitly.
func applyFlags(cmd *cobra.Command, f *flags, cfg *config.Config) {
	set := cmd.Flags().Changed
	if set("sensor") {
		cfg.Sensor = strings.ToLower(f.sensor)
	}
	if set("bus") {
		cfg.Bus.Name = f.bus
	}
	if set("backend") {
		cfg.Bus.Backend = f.backend
	}
	if set("addr") {
		cfg.Bus.Address = f.addr
	}
	if set("log") {
		cfg.Log.File = f.log
	}
	if set("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if set("samples") {
		cfg.Sampling.Oversample = f.samples
	}
	if set("interval") {
		cfg.Sampling.IntervalMS = f.interval
	}
}
