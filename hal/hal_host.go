// hal/hal_host.go
//go:build !rp2040 && !rp2350

package hal

import (
	"os"
	"sync"
)

// ----------------------------- GPIO (host) -----------------------------------

// FakePin implements GPIOPin for host-side tests. Tests drive levels with Set
// and inspect the configured pull.
type FakePin struct {
	mu      sync.RWMutex
	number  int
	level   bool
	modeOut bool
	pull    Pull
}

func (p *FakePin) ConfigureInput(pull Pull) error {
	p.mu.Lock()
	p.modeOut = false
	p.pull = pull
	// Pull-up inputs idle HIGH, pull-down idle LOW.
	switch pull {
	case PullUp:
		p.level = true
	case PullDown:
		p.level = false
	}
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.modeOut = true
	p.level = initial
	p.mu.Unlock()
	return nil
}

func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	p.level = level
	p.mu.Unlock()
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	v := p.level
	p.mu.RUnlock()
	return v
}

func (p *FakePin) Number() int { return p.number }

// Pull exposes the configured bias for tests.
func (p *FakePin) Pull() Pull {
	p.mu.RLock()
	v := p.pull
	p.mu.RUnlock()
	return v
}

// IsOutput exposes the configured direction for tests.
func (p *FakePin) IsOutput() bool {
	p.mu.RLock()
	v := p.modeOut
	p.mu.RUnlock()
	return v
}

// HostPinFactory returns stable *FakePin instances per number.
type HostPinFactory struct {
	mu   sync.Mutex
	pins map[int]*FakePin
	// Max bounds the accepted pin numbers; zero means unbounded.
	Max int
}

func (f *HostPinFactory) ByNumber(n int) (GPIOPin, bool) {
	if n < 0 || (f.Max > 0 && n > f.Max) {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pins == nil {
		f.pins = make(map[int]*FakePin)
	}
	p, ok := f.pins[n]
	if !ok {
		p = &FakePin{number: n}
		f.pins[n] = p
	}
	return p, true
}

// Pin exposes the underlying *FakePin for tests (e.g. to drive switch levels).
func (f *HostPinFactory) Pin(n int) (*FakePin, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pins[n]
	return p, ok
}

// ----------------------------- ADC (host) ------------------------------------

// FakeADC implements ADCPin with a settable value and error injection.
type FakeADC struct {
	mu     sync.RWMutex
	number int
	value  uint16
	err    error
}

func (a *FakeADC) Configure() error { return nil }

func (a *FakeADC) Get() (uint16, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.err != nil {
		return 0, a.err
	}
	return a.value, nil
}

func (a *FakeADC) Number() int { return a.number }

// SetValue sets the magnitude returned by Get.
func (a *FakeADC) SetValue(v uint16) {
	a.mu.Lock()
	a.value = v
	a.mu.Unlock()
}

// Fail makes Get return err until cleared with Fail(nil).
func (a *FakeADC) Fail(err error) {
	a.mu.Lock()
	a.err = err
	a.mu.Unlock()
}

// HostADCFactory returns stable *FakeADC instances per number.
type HostADCFactory struct {
	mu   sync.Mutex
	adcs map[int]*FakeADC
	Max  int
}

func (f *HostADCFactory) ByNumber(n int) (ADCPin, bool) {
	if n < 0 || (f.Max > 0 && n > f.Max) {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.adcs == nil {
		f.adcs = make(map[int]*FakeADC)
	}
	a, ok := f.adcs[n]
	if !ok {
		a = &FakeADC{number: n}
		f.adcs[n] = a
	}
	return a, true
}

// ADC exposes the underlying *FakeADC for tests.
func (f *HostADCFactory) ADC(n int) (*FakeADC, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.adcs[n]
	return a, ok
}

// ----------------------------- Transport (host) -------------------------------

// CaptureWriter records written lines for tests. Err, when set, is returned
// from WriteLine after recording the attempt.
type CaptureWriter struct {
	mu    sync.Mutex
	lines [][]byte
	Err   error
}

func (w *CaptureWriter) WriteLine(line []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Err != nil {
		return w.Err
	}
	w.lines = append(w.lines, append([]byte(nil), line...))
	return nil
}

// Lines returns a copy of everything written so far.
func (w *CaptureWriter) Lines() [][]byte {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([][]byte, len(w.lines))
	copy(out, w.lines)
	return out
}

type stdoutWriter struct{}

func (stdoutWriter) WriteLine(line []byte) error {
	_, err := os.Stdout.Write(line)
	return err
}

// ----------------------------- Defaults ---------------------------------------

// DefaultPinFactory provides a host GPIO factory (28 pins, RP2-shaped).
func DefaultPinFactory() PinFactory { return &HostPinFactory{Max: 28} }

// DefaultADCFactory provides a host ADC factory (8 channels, expander-shaped).
func DefaultADCFactory() ADCFactory { return &HostADCFactory{Max: 7} }

// DefaultTransport writes wire lines to stdout on host builds.
func DefaultTransport() (LineWriter, error) { return stdoutWriter{}, nil }
