package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"periph.io/x/conn/v3/i2c/i2ctest"

	"github.com/relabs-tech/magnetometer/internal/bus"
	"github.com/relabs-tech/magnetometer/internal/codec"
	"github.com/relabs-tech/magnetometer/internal/config"
)

func TestParseRegisterWrite(t *testing.T) {
	w, err := ParseRegisterWrite("0x21 = 0x40")
	if err != nil {
		t.Fatal(err)
	}
	if w != (RegisterWrite{0x21, 0x40}) {
		t.Fatalf("got %+v", w)
	}
	for _, bad := range []string{"0x21", "0x21=0x100", "reg=1"} {
		if _, err := ParseRegisterWrite(bad); err == nil {
			t.Fatalf("%q: expected error", bad)
		}
	}
}

func mmcRegs(t *testing.T) []codec.RegisterInfo {
	t.Helper()
	regs, ok := codec.RegisterMap("mmc5603")
	if !ok {
		t.Fatal("no mmc5603 map")
	}
	return regs
}

func TestReadRegistersSkipsWriteOnly(t *testing.T) {
	var regs []codec.RegisterInfo
	for _, r := range mmcRegs(t) {
		if r.Address >= codec.MMC5603RegODR {
			regs = append(regs, r)
		}
	}
	pb := &i2ctest.Playback{Ops: []i2ctest.IO{
		{Addr: 0x30, W: []byte{0x1A}, R: []byte{0xFF}},
		{Addr: 0x30, W: []byte{0x39}, R: []byte{0x10}},
	}}
	values, err := ReadRegisters(bus.NewPeriph(pb, 0x30), regs)
	if err != nil {
		t.Fatal(err)
	}
	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
	if len(values) != 2 || values[0x1A] != 0xFF || values[0x39] != 0x10 {
		t.Fatalf("got %v", values)
	}
}

func TestWriteRegistersChecksAccess(t *testing.T) {
	regs, _ := codec.RegisterMap("lis3mdl")
	pb := &i2ctest.Playback{Ops: []i2ctest.IO{{Addr: 0x1C, W: []byte{0x21, 0x40}}}}
	tr := bus.NewPeriph(pb, 0x1C)
	if err := WriteRegisters(tr, regs, []RegisterWrite{{0x21, 0x40}}); err != nil {
		t.Fatal(err)
	}
	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
	for _, w := range []RegisterWrite{{0x0F, 0x00}, {0x7F, 0x00}} {
		if err := WriteRegisters(tr, regs, []RegisterWrite{w}); err == nil {
			t.Fatalf("0x%02X: expected error", w.Addr)
		}
	}
}

func TestPrintRegisters(t *testing.T) {
	regs, _ := codec.RegisterMap("lis3mdl")
	values := map[byte]byte{0x0F: 0x3D, 0x21: 0x40}

	var out bytes.Buffer
	if err := PrintRegisters(&out, "lis3mdl", regs[:3], values, false, true); err != nil {
		t.Fatal(err)
	}
	text := out.String()
	for _, want := range []string{
		"0x0F WHO_AM_I",
		"0x3D  Device identification\n",
		"0x20 CTRL_REG1       RW --",
		"0x40  Control register 2 (default 0x00)",
		"6:5   FS                 2",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in:\n%s", want, text)
		}
	}

	out.Reset()
	if err := PrintRegisters(&out, "lis3mdl", regs, values, true, false); err != nil {
		t.Fatal(err)
	}
	var f RegisterFile
	if err := json.Unmarshal(out.Bytes(), &f); err != nil {
		t.Fatal(err)
	}
	if f.Version != 1 || f.Sensor != "lis3mdl" || f.Registers["0x21"] != "0x40" || len(f.Registers) != 2 {
		t.Fatalf("got %+v", f)
	}
}

func TestDumpRegistersNoMap(t *testing.T) {
	cfg := config.Default()
	cfg.Sensor = "sin"
	err := DumpRegisters(t.Context(), cfg, &bytes.Buffer{}, RegisterOpts{})
	if !errors.Is(err, ErrNoRegisterMap) {
		t.Fatalf("got %v", err)
	}
}
