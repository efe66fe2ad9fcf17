package autorange

import "testing"

var lis3mdl = []float64{400, 800, 1200, 1600}

func TestUpdateSteps(t *testing.T) {
	tests := []struct {
		name  string
		start int
		peak  float64
		want  int
	}{
		{"up from narrowest", 0, 361, 1},
		{"hold at boundary", 0, 360, 0},
		{"clamp at widest", 3, 5000, 3},
		{"down one band", 2, 700, 1},
		{"hold between bands", 2, 800, 2},
		{"clamp at zero", 0, 0, 0},
		{"only one step per call", 0, 1e6, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(lis3mdl, DefaultThreshold)
			c.index = tt.start
			if got := c.Update(tt.peak); got != tt.want {
				t.Fatalf("Update(%v) from %d = %d, want %d", tt.peak, tt.start, got, tt.want)
			}
		})
	}
}

func TestNeverLeavesTable(t *testing.T) {
	c := New(lis3mdl, DefaultThreshold)
	peaks := []float64{1e9, 1e9, 1e9, 1e9, 1e9, 0, 0, 0, 0, 0, 0, -5}
	for _, p := range peaks {
		i := c.Update(p)
		if i < 0 || i >= len(lis3mdl) {
			t.Fatalf("index %d out of table after peak %v", i, p)
		}
	}
	if c.Index() != 0 {
		t.Fatalf("got %d after sustained zero, want 0", c.Index())
	}
}

func TestNoOscillationAtThreshold(t *testing.T) {
	for i := range lis3mdl {
		c := New(lis3mdl, DefaultThreshold)
		c.index = i
		boundary := DefaultThreshold * lis3mdl[i]
		for n := 0; n < 10; n++ {
			if got := c.Update(boundary); got != i {
				t.Fatalf("index %d: call %d moved to %d", i, n, got)
			}
		}
	}
}

func TestSteadyFieldSettles(t *testing.T) {
	c := New(lis3mdl, DefaultThreshold)
	var seen []int
	for n := 0; n < 8; n++ {
		seen = append(seen, c.Update(1000))
	}
	// 1000 > 0.9*400 and > 0.9*800 but < 0.9*1200
	want := []int{1, 2, 2, 2, 2, 2, 2, 2}
	for n := range want {
		if seen[n] != want[n] {
			t.Fatalf("walk %v, want %v", seen, want)
		}
	}
}

func TestEmptyTable(t *testing.T) {
	c := New(nil, DefaultThreshold)
	if c.Update(1e9) != 0 || c.Index() != 0 || c.FullScale() != 0 {
		t.Fatal("empty table must stay at index 0")
	}
}

func TestThresholdFallback(t *testing.T) {
	if c := New(lis3mdl, 0); c.threshold != DefaultThreshold {
		t.Fatalf("threshold %v", c.threshold)
	}
	if c := New(lis3mdl, 0.5); c.Update(201) != 1 {
		t.Fatal("custom threshold ignored")
	}
}
