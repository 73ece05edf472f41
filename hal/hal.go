// hal/hal.go
package hal

// Hardware abstractions for the deck. Concrete providers are selected by
// build tag: machine-backed on RP2 targets, fakes on host builds.

// WireBaud is the serial rate the host expects.
const WireBaud = 9600

// Pull selects the input bias for a digital pin.
type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// GPIOPin is one digital pin.
type GPIOPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Number() int
}

// ADCPin is one analog input. Get returns a 10-bit magnitude (0..1023),
// the deck's wire-contract range.
type ADCPin interface {
	Configure() error
	Get() (uint16, error)
	Number() int
}

// PinFactory supplies GPIO pins by the configured number scheme.
type PinFactory interface {
	ByNumber(n int) (GPIOPin, bool)
}

// ADCFactory supplies analog inputs by channel/pin number.
type ADCFactory interface {
	ByNumber(n int) (ADCPin, bool)
}

// LineWriter is the outbound serial transport: single writer, unbuffered,
// fire-and-forget. The line must already carry its terminator.
type LineWriter interface {
	WriteLine(line []byte) error
}
