package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSensorsCommand(t *testing.T) {
	out, err := execute(t, "sensors")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"* lis3mdl  0x1C", "mmc5603  0x30", "sin      -", "[400 800 1200 1600]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestStreamSin(t *testing.T) {
	out, err := execute(t, "stream", "--sensor", "SIN", "--interval", "1", "-n", "3")
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(out, "\n"); n != 3 {
		t.Fatalf("got %d lines:\n%s", n, out)
	}
}

func TestRejectsUnknownSensor(t *testing.T) {
	if _, err := execute(t, "stream", "--sensor", "hmc5883", "-n", "1"); err == nil {
		t.Fatal("expected error")
	}
}

func TestRejectsBadSamples(t *testing.T) {
	_, err := execute(t, "stream", "--sensor", "sin", "--samples", "0", "-n", "1")
	if err == nil || !strings.Contains(err.Error(), "oversample") {
		t.Fatalf("got %v", err)
	}
}

func TestRegistersNeedsMap(t *testing.T) {
	_, err := execute(t, "registers", "--sensor", "sin")
	if err == nil || !strings.Contains(err.Error(), "register map") {
		t.Fatalf("got %v", err)
	}
}

func TestRegistersRejectsBadWrite(t *testing.T) {
	_, err := execute(t, "registers", "--sensor", "lis3mdl", "--set", "0x21")
	if err == nil || !strings.Contains(err.Error(), "ADDR=VALUE") {
		t.Fatalf("got %v", err)
	}
}
