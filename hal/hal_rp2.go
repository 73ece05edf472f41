// hal/hal_rp2.go
//go:build rp2040 || rp2350

package hal

import (
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"mixdeck-go/drivers/mcp3008"
)

// Pico deck wiring. The RP2 exposes only three native analog pins (GP26-28),
// so the five sliders sit on an MCP3008 expander on SPI0.
const (
	spiFreqHz = 1_000_000
	csPinN    = 17

	uartTXPinN = 0
	uartRXPinN = 1
)

// ---- GPIO ----

type rp2PinFactory struct{}

// DefaultPinFactory maps logical numbers directly to machine.Pin(n),
// matching Pico/Pico 2 GP numbering.
func DefaultPinFactory() PinFactory { return rp2PinFactory{} }

func (rp2PinFactory) ByNumber(n int) (GPIOPin, bool) {
	// Constrain to RP2's user GPIOs (GP0..GP28).
	if n < 0 || n > 28 {
		return nil, false
	}
	return &rp2Pin{p: machine.Pin(n), n: n}, true
}

type rp2Pin struct {
	p machine.Pin
	n int
}

func (r *rp2Pin) ConfigureInput(pull Pull) error {
	var mode machine.PinMode
	switch pull {
	case PullUp:
		mode = machine.PinInputPullup
	case PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(level bool) { r.p.Set(level) }
func (r *rp2Pin) Get() bool      { return r.p.Get() }
func (r *rp2Pin) Number() int    { return r.n }

// ---- ADC (MCP3008 expander) ----

type expanderADCFactory struct {
	dev *mcp3008.Device
}

// DefaultADCFactory configures SPI0 and the MCP3008 and maps channel numbers
// 0..7 to the expander's inputs.
func DefaultADCFactory() ADCFactory {
	spi := machine.SPI0
	_ = spi.Configure(machine.SPIConfig{
		Frequency: spiFreqHz,
		Mode:      0,
	})
	cs := &rp2Pin{p: machine.Pin(csPinN), n: csPinN}
	dev := mcp3008.New(spi, cs)
	_ = dev.Configure()
	return &expanderADCFactory{dev: dev}
}

func (f *expanderADCFactory) ByNumber(n int) (ADCPin, bool) {
	if n < 0 || n >= mcp3008.NumChannels {
		return nil, false
	}
	return &expanderADC{dev: f.dev, ch: n}, true
}

// expanderADC shares one Device across channels. The deck loop is the sole
// caller, so conversions never overlap.
type expanderADC struct {
	dev *mcp3008.Device
	ch  int
}

func (a *expanderADC) Configure() error     { return nil }
func (a *expanderADC) Get() (uint16, error) { return a.dev.Read(a.ch) }
func (a *expanderADC) Number() int          { return a.ch }

// ---- Transport ----

type uartLineWriter struct {
	u *uartx.UART
}

// DefaultTransport configures UART0 for the device-to-host wire.
// The RX pin is claimed by the UART block but nothing reads from it.
func DefaultTransport() (LineWriter, error) {
	hw := uartx.UART0
	err := hw.Configure(uartx.UARTConfig{
		BaudRate: WireBaud,
		TX:       machine.Pin(uartTXPinN),
		RX:       machine.Pin(uartRXPinN),
	})
	if err != nil {
		return nil, err
	}
	return &uartLineWriter{u: hw}, nil
}

func (w *uartLineWriter) WriteLine(line []byte) error {
	_, err := w.u.Write(line)
	return err
}
