package mcp3008

import (
	"errors"
	"testing"
)

// fakeSPI scripts the bytes clocked back for each transaction and records
// what was clocked out.
type fakeSPI struct {
	reply [3]byte
	err   error
	sent  [][]byte
}

func (f *fakeSPI) Tx(w, r []byte) error {
	f.sent = append(f.sent, append([]byte(nil), w...))
	if f.err != nil {
		return f.err
	}
	copy(r, f.reply[:])
	return nil
}

func (f *fakeSPI) Transfer(b byte) (byte, error) { return 0, nil }

// fakeCS records chip-select activity.
type fakeCS struct {
	level      bool
	configured bool
}

func (p *fakeCS) ConfigureOutput(initial bool) error {
	p.configured = true
	p.level = initial
	return nil
}

func (p *fakeCS) Set(level bool) { p.level = level }

func newUnderTest(t *testing.T, spi *fakeSPI) (*Device, *fakeCS) {
	t.Helper()
	cs := &fakeCS{}
	d := New(spi, cs)
	if err := d.Configure(); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	return d, cs
}

func TestReadRequestEncoding(t *testing.T) {
	spi := &fakeSPI{}
	d, _ := newUnderTest(t, spi)

	for ch := 0; ch < NumChannels; ch++ {
		if _, err := d.Read(ch); err != nil {
			t.Fatalf("Read(%d): %v", ch, err)
		}
		got := spi.sent[len(spi.sent)-1]
		want := []byte{0x01, 0x80 | byte(ch)<<4, 0x00}
		if got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
			t.Errorf("ch %d request = %#v, want %#v", ch, got, want)
		}
	}
}

func TestReadDecodesTenBits(t *testing.T) {
	cases := []struct {
		hi, lo byte
		want   uint16
	}{
		{0x00, 0x00, 0},
		{0x00, 0xFF, 255},
		{0x02, 0x00, 512},
		{0x03, 0xFF, Max},
	}
	for _, c := range cases {
		spi := &fakeSPI{reply: [3]byte{0x00, c.hi, c.lo}}
		d, _ := newUnderTest(t, spi)
		got, err := d.Read(0)
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if got != c.want {
			t.Errorf("hi=%#x lo=%#x: got %d, want %d", c.hi, c.lo, got, c.want)
		}
	}
}

func TestReadBadChannel(t *testing.T) {
	d, _ := newUnderTest(t, &fakeSPI{})
	if _, err := d.Read(-1); err != ErrBadChannel {
		t.Errorf("Read(-1) err = %v", err)
	}
	if _, err := d.Read(NumChannels); err != ErrBadChannel {
		t.Errorf("Read(8) err = %v", err)
	}
}

func TestReadNullBitHigh(t *testing.T) {
	spi := &fakeSPI{reply: [3]byte{0x00, 0x04, 0x00}}
	d, _ := newUnderTest(t, spi)
	if _, err := d.Read(0); err != ErrProtocol {
		t.Errorf("err = %v, want ErrProtocol", err)
	}
}

func TestReadBusError(t *testing.T) {
	busErr := errors.New("spi down")
	spi := &fakeSPI{err: busErr}
	d, cs := newUnderTest(t, spi)
	if _, err := d.Read(0); err != busErr {
		t.Errorf("err = %v, want bus error", err)
	}
	// Chip select must be released even on failure.
	if !cs.level {
		t.Error("chip select left asserted after error")
	}
}

func TestChipSelectIdlesHigh(t *testing.T) {
	_, cs := newUnderTest(t, &fakeSPI{})
	if !cs.level {
		t.Error("chip select not idle high after Configure")
	}
	if !cs.configured {
		t.Error("chip select not configured as output")
	}
}
