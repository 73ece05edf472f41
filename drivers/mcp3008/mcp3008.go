// Package mcp3008 provides a driver for the MCP3008 8-channel 10-bit SPI ADC.
// Conversions return magnitudes in 0..1023.
//
// The transaction is three bytes in SPI mode 0: a start byte, a config byte
// selecting single-ended mode and the channel, and one clocking byte. The
// reply carries a null bit followed by the 10 result bits.
//
// Chip select is handled by the driver so a conversion is one atomic
// transaction; the SPI bus must already be configured.
package mcp3008

import (
	"errors"

	"tinygo.org/x/drivers"
)

// Channels on the package.
const NumChannels = 8

// Max is the largest magnitude a conversion can return.
const Max = 1023

// Errors returned by the driver.
var (
	ErrBadChannel = errors.New("mcp3008: channel out of range")
	ErrProtocol   = errors.New("mcp3008: protocol error")
)

// CSPin is the chip-select line. Satisfied by any GPIO output abstraction.
type CSPin interface {
	ConfigureOutput(initial bool) error
	Set(level bool)
}

// Device wraps an SPI connection and a chip-select pin.
type Device struct {
	bus drivers.SPI
	cs  CSPin

	tx [3]byte
	rx [3]byte
}

// New creates a new MCP3008 connection. The SPI bus must already be
// configured; this only creates the Device object.
func New(bus drivers.SPI, cs CSPin) *Device {
	return &Device{bus: bus, cs: cs}
}

// Configure claims the chip-select line (idle high).
func (d *Device) Configure() error {
	return d.cs.ConfigureOutput(true)
}

// Read converts channel ch (0..7) single-ended and returns the 10-bit result.
func (d *Device) Read(ch int) (uint16, error) {
	if ch < 0 || ch >= NumChannels {
		return 0, ErrBadChannel
	}

	d.tx[0] = 0x01               // start bit
	d.tx[1] = 0x80 | byte(ch)<<4 // single-ended, channel select
	d.tx[2] = 0x00               // clock out the low result bits
	d.rx[0], d.rx[1], d.rx[2] = 0, 0, 0

	d.cs.Set(false)
	err := d.bus.Tx(d.tx[:], d.rx[:])
	d.cs.Set(true)
	if err != nil {
		return 0, err
	}

	// rx[1] bit 2 is the null bit and must read low.
	if d.rx[1]&0x04 != 0 {
		return 0, ErrProtocol
	}
	return uint16(d.rx[1]&0x03)<<8 | uint16(d.rx[2]), nil
}
