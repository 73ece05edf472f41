// services/deck/debounce.go
package deck

import (
	"time"

	"mixdeck-go/hal"
)

// Debouncer tracks one switch's stable logical level and suppresses contact
// chatter with a timestamp window instead of a blocking blanking delay, so
// the loop keeps sampling while a switch settles.
type Debouncer struct {
	pin    hal.GPIOPin
	window time.Duration
	stable bool // true = HIGH
	last   time.Time
}

// NewDebouncer snapshots the pin's current level as the initial stable state,
// so a switch held at boot does not fire a spurious event.
func NewDebouncer(pin hal.GPIOPin, window time.Duration) *Debouncer {
	return &Debouncer{
		pin:    pin,
		window: window,
		stable: pin.Get(),
	}
}

// Poll samples the switch once and reports whether a clean LOW->HIGH
// transition was observed. Inside the window after a transition the pin is
// not read at all, mirroring a blanking interval. HIGH->LOW updates state
// silently; an unchanged level is a no-op.
func (d *Debouncer) Poll(now time.Time) bool {
	if !d.last.IsZero() && now.Sub(d.last) < d.window {
		return false
	}
	raw := d.pin.Get()
	if raw == d.stable {
		return false
	}
	d.stable = raw
	d.last = now
	return raw // rising edge only
}

// Stable returns the current debounced level.
func (d *Debouncer) Stable() bool { return d.stable }
