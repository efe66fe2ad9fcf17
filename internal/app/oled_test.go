package app

import (
	"image"
	"testing"
	"time"

	"periph.io/x/devices/v3/ssd1306/image1bit"

	"github.com/relabs-tech/magnetometer/internal/history"
)

type fakeScreen struct {
	frames []image.Image
	halted bool
}

func (f *fakeScreen) Bounds() image.Rectangle { return image.Rect(0, 0, 128, 64) }
func (f *fakeScreen) Halt() error             { f.halted = true; return nil }
func (f *fakeScreen) Draw(_ image.Rectangle, src image.Image, _ image.Point) error {
	f.frames = append(f.frames, src)
	return nil
}

func lit(img image.Image) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.At(x, y) == image1bit.On {
				n++
			}
		}
	}
	return n
}

func TestOLEDThrottlesUpdates(t *testing.T) {
	scr := &fakeScreen{}
	closed := false
	o := newOLED(scr, func() error { closed = true; return nil }, 500*time.Millisecond)

	e := history.Entry{X: 1, Y: 2, Z: 3, Mag: 3.74}
	t0 := time.Now()
	for _, dt := range []time.Duration{0, 100 * time.Millisecond, 499 * time.Millisecond, 500 * time.Millisecond, 600 * time.Millisecond} {
		if err := o.Update(t0.Add(dt), e, "sin"); err != nil {
			t.Fatal(err)
		}
	}
	if len(scr.frames) != 2 {
		t.Fatalf("drew %d frames, want 2", len(scr.frames))
	}
	if lit(scr.frames[0]) == 0 {
		t.Fatal("frame is blank")
	}
	if err := o.Close(); err != nil || !scr.halted || !closed {
		t.Fatalf("close: err=%v halted=%v closed=%v", err, scr.halted, closed)
	}
}

func TestReadoutLines(t *testing.T) {
	got := readoutLines(history.Entry{X: 1500, Y: 0, Z: 0, Mag: 1500}, "lis2mdl")
	want := []string{"lis2mdl  mT", "X:      1.50", "Y:      0.00", "Z:      0.00", "|B|     1.50"}
	if len(got) != len(want) {
		t.Fatalf("got %q", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
	if w := readoutLines(history.Empty(), "sin"); w[1] != "Waiting..." {
		t.Fatalf("empty entry: %q", w)
	}
	if l := readoutLines(history.Entry{X: 1, Mag: 1}, "sin")[0]; l != "sin  uT" {
		t.Fatalf("micro unit: %q", l)
	}
}
