package bus

import (
	"bytes"
	"errors"
	"testing"

	"periph.io/x/conn/v3/i2c/i2ctest"
)

func TestPeriphTransport(t *testing.T) {
	pb := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x30, W: []byte{0x1C, 0x80}},
			{Addr: 0x30, W: []byte{0x39}, R: []byte{0x10}},
			{Addr: 0x30, R: []byte{1, 2, 3}},
		},
	}
	p := NewPeriph(pb, 0x30)

	if err := p.Write([]byte{0x1C, 0x80}); err != nil {
		t.Fatalf("write: %v", err)
	}
	id, err := p.WriteThenRead([]byte{0x39}, 1)
	if err != nil {
		t.Fatalf("write then read: %v", err)
	}
	if id[0] != 0x10 {
		t.Fatalf("id: got %#x", id[0])
	}
	r, err := p.Read(3)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(r, []byte{1, 2, 3}) {
		t.Fatalf("read: got % x", r)
	}
	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
}

type loopback struct {
	written bytes.Buffer
	toRead  *bytes.Reader
}

func (l *loopback) Write(p []byte) (int, error) { return l.written.Write(p) }
func (l *loopback) Read(p []byte) (int, error)  { return l.toRead.Read(p) }

func TestGobotTransport(t *testing.T) {
	lb := &loopback{toRead: bytes.NewReader([]byte{0xAA, 0xBB})}
	g := NewGobot(lb)
	r, err := g.WriteThenRead([]byte{0x0F}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(lb.written.Bytes(), []byte{0x0F}) || !bytes.Equal(r, []byte{0xAA, 0xBB}) {
		t.Fatalf("wrote % x, read % x", lb.written.Bytes(), r)
	}
	if _, err := g.Read(1); err == nil {
		t.Fatal("expected short read error")
	}
}

func TestOpenRejectsBadOptions(t *testing.T) {
	if _, err := Open(Opts{Backend: "spi", Addr: 0x1C}); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("got %v, want ErrUnknownBackend", err)
	}
	if _, err := Open(Opts{Backend: "periph", Addr: 0}); err == nil {
		t.Fatal("address 0 accepted")
	}
}

func TestBusNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"", 1, false},
		{"0", 0, false},
		{"3", 3, false},
		{"I2C1", 0, true},
		{"-1", 0, true},
	}
	for _, tt := range tests {
		got, err := busNumber(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("busNumber(%q) = %d, %v", tt.in, got, err)
		}
	}
}

func TestBackends(t *testing.T) {
	got := Backends()
	want := []string{"embd", "gobot", "periph"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
