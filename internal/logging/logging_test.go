package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestSetupWritesFileAndConsole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "magnetometer.log")
	var console bytes.Buffer
	c, err := Setup(path, "debug", &console)
	if err != nil {
		t.Fatal(err)
	}
	log.WithField("sensor", "sin").Debug("ready")
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, out := range []string{string(data), console.String()} {
		if !strings.Contains(out, "ready") || !strings.Contains(out, "sensor=sin") {
			t.Fatalf("missing entry in %q", out)
		}
	}
}

func TestSetupFiltersLevel(t *testing.T) {
	var console bytes.Buffer
	if _, err := Setup("", "warn", &console); err != nil {
		t.Fatal(err)
	}
	log.Info("hidden")
	log.Warn("shown")
	if strings.Contains(console.String(), "hidden") || !strings.Contains(console.String(), "shown") {
		t.Fatalf("got %q", console.String())
	}
}

func TestSetupRejectsLevel(t *testing.T) {
	if _, err := Setup("", "loud", nil); err == nil {
		t.Fatal("expected error")
	}
}
