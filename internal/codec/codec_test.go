package codec

import (
	"math"
	"testing"

	"github.com/relabs-tech/magnetometer/internal/mag"
)

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b))
}

func assertReading(t *testing.T, got, want mag.Reading) {
	t.Helper()
	if !near(got.X, want.X) || !near(got.Y, want.Y) || !near(got.Z, want.Z) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestDecodeMMC5603(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want mag.Reading
	}{
		{
			name: "all zero",
			buf:  make([]byte, 9),
			want: mag.Reading{X: -(1 << 19) * 0.00625, Y: -(1 << 19) * 0.00625, Z: -(1 << 19) * 0.00625},
		},
		{
			name: "centered",
			buf:  []byte{0x80, 0x00, 0x80, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00},
			want: mag.Reading{},
		},
		{
			name: "mixed low nibbles",
			buf:  []byte{0x80, 0x01, 0x7F, 0xFF, 0x80, 0x00, 0x50, 0xF0, 0x0F},
			want: mag.Reading{X: 21 * 0.00625, Y: -1 * 0.00625, Z: 0},
		},
		{
			name: "full scale",
			buf:  []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xF0, 0xF0, 0xF0},
			want: mag.Reading{X: 524287 * 0.00625, Y: 524287 * 0.00625, Z: 524287 * 0.00625},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertReading(t, DecodeMMC5603(tt.buf), tt.want)
		})
	}
}

func TestDecodeMMC5603AllZeroIsExact(t *testing.T) {
	r := DecodeMMC5603(make([]byte, 9))
	want := -math.Pow(2, 19) * 0.00625
	if r.X != want || r.Y != want || r.Z != want {
		t.Fatalf("got %+v, want all axes %v", r, want)
	}
}

func TestDecodeMMC5603Temperature(t *testing.T) {
	if got := DecodeMMC5603Temperature(0); got != -75 {
		t.Errorf("raw 0: got %v", got)
	}
	if got := DecodeMMC5603Temperature(125); !near(got, 25) {
		t.Errorf("raw 125: got %v, want 25", got)
	}
}

func TestMMC5603ControlEncode(t *testing.T) {
	tests := []struct {
		c         MMC5603Control
		odr, ctl2 byte
	}{
		{MMC5603Control{DataRate: 1000}, 255, 0x80},
		{MMC5603Control{DataRate: 1000, Continuous: true}, 255, 0x90},
		{MMC5603Control{DataRate: 100, Continuous: true}, 100, 0x10},
		{MMC5603Control{}, 0, 0x00},
	}
	for _, tt := range tests {
		odr, ctrl2 := tt.c.Encode()
		if odr != tt.odr || ctrl2 != tt.ctl2 {
			t.Errorf("%+v: got odr=%#x ctrl2=%#x, want %#x %#x", tt.c, odr, ctrl2, tt.odr, tt.ctl2)
		}
	}
	for _, rate := range []int{-1, 256, 999, 1001} {
		if ValidMMC5603DataRate(rate) {
			t.Errorf("rate %d accepted", rate)
		}
	}
}

func TestDecodeWrongLengthPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on short buffer")
		}
	}()
	DecodeMMC5603(make([]byte, 8))
}

func TestDecodeTLV493D(t *testing.T) {
	read := make([]byte, TLV493DReadSize)
	read[0] = 0x7F // BX1
	read[1] = 0x80 // BY1
	read[2] = 0x00 // BZ1
	read[4] = 0x00 // BX2 | BY2
	read[5] = 0x01 // BZ2

	got := DecodeTLV493D(read)

	if !near(got.X, 2032*98) {
		t.Errorf("X: got %v, want %v", got.X, 2032*98)
	}
	if !near(got.Y, -2048*98) {
		t.Errorf("Y: got %v, want %v", got.Y, -2048*98)
	}
	if !near(got.Z, 98) {
		t.Errorf("Z: got %v, want 98", got.Z)
	}
}

func TestTLV493DNibbles(t *testing.T) {
	read := make([]byte, TLV493DReadSize)
	read[4] = 0xA5
	read[5] = 0x1C
	if got := TLV493DGet(read, TLVReadBX2); got != 0x0A {
		t.Errorf("BX2: got %#x", got)
	}
	if got := TLV493DGet(read, TLVReadBY2); got != 0x05 {
		t.Errorf("BY2: got %#x", got)
	}
	if got := TLV493DGet(read, TLVReadBZ2); got != 0x0C {
		t.Errorf("BZ2: got %#x", got)
	}
	if got := TLV493DGet(read, TLVReadPowerDownFlag); got != 1 {
		t.Errorf("PD flag: got %#x", got)
	}
}

func TestTLV493DSetClearsMaskOnly(t *testing.T) {
	write := []byte{0x00, 0xFF, 0x00, 0x00}
	TLV493DSet(write, TLVWriteFast, 0)
	if write[1] != 0xFD {
		t.Fatalf("got %#x, want 0xFD", write[1])
	}
	TLV493DSet(write, TLVWriteAddr, 0x01)
	if write[1] != 0xBD {
		t.Fatalf("got %#x, want 0xBD", write[1])
	}
}

func TestTLV493DInitWrite(t *testing.T) {
	read := make([]byte, TLV493DReadSize)
	read[7] = 0x18 | 0x07 // RES1 plus unrelated bits
	read[8] = 0xAB
	read[9] = 0xFF

	got := TLV493DInitWrite(read, 0)
	want := []byte{0x00, 0x80 | 0x18 | 0x02 | 0x01, 0xAB, 0x1F}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d: got %#x, want %#x (buffer % x)", i, got[i], want[i], got)
		}
	}
}

func TestDecodeLIS3MDL(t *testing.T) {
	buf := []byte{0xBA, 0x1A, 0x46, 0xE5, 0x00, 0x00} // 6842, -6842, 0
	assertReading(t, DecodeLIS3MDL(buf, 0), mag.Reading{X: 100, Y: -100})
	assertReading(t, DecodeLIS3MDL(buf, 1), mag.Reading{X: 200, Y: -200})
	if got := LIS3MDLCtrl2(3); got != 0x60 {
		t.Errorf("ctrl2 range 3: got %#x", got)
	}
}

func TestDecodeLIS2MDL(t *testing.T) {
	buf := []byte{0x64, 0x00, 0x9C, 0xFF, 0x01, 0x00} // 100, -100, 1
	assertReading(t, DecodeLIS2MDL(buf), mag.Reading{X: 15, Y: -15, Z: 0.15})

	cfg := LIS2MDLConfig{TempCompensation: true, Rate: LIS2MDLRate100Hz}
	if got := cfg.Encode(); got != 0x8C {
		t.Errorf("cfg A: got %#x, want 0x8C", got)
	}
}
