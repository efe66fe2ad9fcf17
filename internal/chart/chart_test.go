package chart

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/relabs-tech/magnetometer/internal/history"
	"github.com/relabs-tech/magnetometer/internal/mag"
)

func TestDraw(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name   string
		series [][]float64
		cfg    Config
		want   []string
	}{
		{
			name:   "rising",
			series: [][]float64{{0, 1, 2}},
			cfg:    Config{Height: 2, Offset: 2},
			want: []string{
				"    2.00 ┤ ╭",
				"    1.00 ┤╭╯",
				"    0.00 ┼╯",
			},
		},
		{
			name:   "falling with first value tick",
			series: [][]float64{{2, 0}},
			cfg:    Config{Height: 2, Offset: 2},
			want: []string{
				"    2.00 ┼╮",
				"    1.00 ┤│",
				"    0.00 ┼╰",
			},
		},
		{
			name:   "asymmetric range ticks the zero row",
			series: [][]float64{{3, -1}},
			cfg:    Config{Height: 4, Offset: 2},
			want: []string{
				"    3.00 ┼╮",
				"    2.00 ┤│",
				"    1.00 ┤│",
				"    0.00 ┼│",
				"   -1.00 ┤╰",
			},
		},
		{
			name:   "gaps",
			series: [][]float64{{nan, 1, 1, nan}},
			cfg:    Config{Height: 4, Offset: 2},
			want:   []string{"    1.00 ┤╶─╴"},
		},
		{
			name:   "all missing",
			series: [][]float64{{nan, nan}},
			cfg:    Config{Offset: 2},
			want:   []string{"    0.00 ┼"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Draw(tt.series, tt.cfg).String()
			if want := strings.Join(tt.want, "\n"); got != want {
				t.Fatalf("got\n%s\nwant\n%s", got, want)
			}
		})
	}
}

func TestPaintTagsSeries(t *testing.T) {
	p := Draw([][]float64{{0, 0}, {1, 1}}, Config{Height: 1, Offset: 2})
	got := p.Paint(func(s int, text string) string {
		if s == Axis {
			return text
		}
		return fmt.Sprintf("<%d%s>", s, text)
	})
	want := "    1.00 ┤<1─>\n    0.00 ┼<0─>"
	if got != want {
		t.Fatalf("got\n%s\nwant\n%s", got, want)
	}
}

func TestRendererNeedsSize(t *testing.T) {
	r := NewRenderer()
	if _, ok := r.Render([]history.Entry{{}}); ok {
		t.Fatal("rendered before resize")
	}
	r.Resize(80, 24)
	if r.Window() != 67 {
		t.Fatalf("window %d", r.Window())
	}
	r.Resize(10, 24)
	if _, ok := r.Render([]history.Entry{{}}); ok {
		t.Fatal("rendered into a terminal narrower than the labels")
	}
}

func TestRendererToleratesEmptyHead(t *testing.T) {
	ring := history.New(history.DefaultCapacity)
	ring.Record(mag.Reading{}, history.Offsets{})
	ring.Record(mag.Reading{X: 3, Y: 4}, history.Offsets{})

	r := NewRenderer()
	r.Resize(40, 20)
	f, ok := r.Render(ring.Tail(history.DefaultCapacity))
	if !ok {
		t.Fatal("no frame")
	}
	if f.Unit != UnitMicro || f.Latest.Mag != 5 {
		t.Fatalf("got %+v", f)
	}
	if f.Plot.Height() < 2 {
		t.Fatalf("plot has %d rows", f.Plot.Height())
	}
	for _, row := range f.Plot.Rows {
		if n := len(row); n != r.Window()+plotOffset {
			t.Fatalf("row width %d, want %d", n, r.Window()+plotOffset)
		}
	}
}

func TestRendererLeavesRoomForFrame(t *testing.T) {
	entries := []history.Entry{
		{X: -0.3, Y: 2.7, Z: 1.1, Mag: 3.1},
		{X: 0.4, Y: -1.6, Z: 0.2, Mag: 1.7},
		{X: 1.3, Y: 0.1, Z: -0.7, Mag: 1.5},
	}
	r := NewRenderer()
	for h := marginHeight + 1; h <= 40; h++ {
		r.Resize(40, h)
		f, ok := r.Render(entries)
		if !ok {
			t.Fatalf("height %d: no frame", h)
		}
		// Title border, bottom border, readout and footer.
		if rows := f.Plot.Height(); rows+4 > h {
			t.Fatalf("height %d: %d plot rows", h, rows)
		}
	}
}

func TestUnitSwitch(t *testing.T) {
	r := NewRenderer()
	r.Resize(13+3, 20)

	small := history.Entry{X: 600, Y: 0, Z: 800, Mag: 1000}
	big := history.Entry{X: 1200, Y: 0, Z: 1600, Mag: 2000}

	f, _ := r.Render([]history.Entry{history.Empty(), small, small})
	if f.Unit != UnitMicro || f.Latest.X != 600 {
		t.Fatalf("at exactly 1000: %+v", f)
	}

	f, _ = r.Render([]history.Entry{small, small, big})
	if f.Unit != UnitMilli {
		t.Fatalf("unit %q", f.Unit)
	}
	if f.Latest.X != 1.2 || f.Latest.Z != 1.6 || f.Latest.Mag != 2 {
		t.Fatalf("latest %+v", f.Latest)
	}
	if got := f.Readout()[0]; got != "X:   1.20 mT" {
		t.Fatalf("readout %q", got)
	}

	// big scrolled out of the three-entry window
	f, _ = r.Render([]history.Entry{big, small, small, small})
	if f.Unit != UnitMicro || f.Latest.X != 600 {
		t.Fatalf("after window moved: %+v", f)
	}
}

func TestReadout(t *testing.T) {
	f := Frame{Unit: UnitMicro, Latest: history.Entry{X: 1.5, Y: -20.126, Z: 0, Mag: 123.456}}
	want := [4]string{"X:   1.50 µT", "Y: -20.13 µT", "Z:   0.00 µT", "Mag: 123.46 µT"}
	if got := f.Readout(); got != want {
		t.Fatalf("got %q", got)
	}
	if got := TitleFor("1.2.0", "lis3mdl"); got != "Magnetometer v1.2.0 (lis3mdl)" {
		t.Fatalf("title %q", got)
	}
}
