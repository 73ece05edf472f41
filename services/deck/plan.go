// services/deck/plan.go
package deck

import (
	"time"

	"mixdeck-go/errcode"
	"mixdeck-go/hal"
	"mixdeck-go/x/conv"
)

// NumChannels is fixed at build time; the host correlates frame position to a
// volume target purely by position, so it must know this count out-of-band.
const NumChannels = 5

// NumSwitches is the number of debounced switch slots.
const NumSwitches = 2

// ADCMax is the largest raw magnitude a channel can report.
const ADCMax = 1023

// Timing holds the cycle delays.
type Timing struct {
	// Settle is the wait between sampling and frame emission.
	Settle time.Duration
	// Idle is the tail wait of each cycle.
	Idle time.Duration
	// Debounce is the switch blanking window.
	Debounce time.Duration
}

// DefaultTiming gives the ~120 ms frame cadence the host is tuned for.
func DefaultTiming() Timing {
	return Timing{
		Settle:   20 * time.Millisecond,
		Idle:     100 * time.Millisecond,
		Debounce: 50 * time.Millisecond,
	}
}

// SwitchSpec wires one switch slot.
type SwitchSpec struct {
	Pin int
	// Label is the exact wire literal for this slot, without terminator.
	Label string
}

// Plan specifies the deck's wiring and operating parameters. It is an owned
// value handed to Run; nothing mutates it afterwards.
type Plan struct {
	// ChannelPins maps channel index to analog input, in frame order.
	ChannelPins [NumChannels]int
	Switches    [NumSwitches]SwitchSpec
	Timing      Timing
}

// DefaultPlan is the shipped deck wiring: sliders on expander inputs 0-4,
// switches on GP2/GP3.
//
// GP2 reports "WORKS 2" and GP3 reports "WORKS 1". The host matches these
// strings byte-for-byte; re-pairing them breaks deployed configs.
func DefaultPlan() Plan {
	return Plan{
		ChannelPins: [NumChannels]int{0, 1, 2, 3, 4},
		Switches: [NumSwitches]SwitchSpec{
			{Pin: 2, Label: "WORKS 2"},
			{Pin: 3, Label: "WORKS 1"},
		},
		Timing: DefaultTiming(),
	}
}

// Validate checks the plan against the factories before any pin is touched.
func (p *Plan) Validate(adcs hal.ADCFactory, pins hal.PinFactory) error {
	seen := make(map[int]bool, NumChannels)
	for i, n := range p.ChannelPins {
		if seen[n] {
			return &errcode.E{C: errcode.PinInUse, Op: "plan", Msg: "channel " + conv.Itoa(i) + " reuses input " + conv.Itoa(n)}
		}
		seen[n] = true
		if _, ok := adcs.ByNumber(n); !ok {
			return &errcode.E{C: errcode.UnknownInput, Op: "plan", Msg: "channel " + conv.Itoa(i) + " input " + conv.Itoa(n)}
		}
	}

	seen = make(map[int]bool, NumSwitches)
	for i, sw := range p.Switches {
		if seen[sw.Pin] {
			return &errcode.E{C: errcode.PinInUse, Op: "plan", Msg: "switch " + conv.Itoa(i) + " reuses pin " + conv.Itoa(sw.Pin)}
		}
		seen[sw.Pin] = true
		if _, ok := pins.ByNumber(sw.Pin); !ok {
			return &errcode.E{C: errcode.UnknownPin, Op: "plan", Msg: "switch " + conv.Itoa(i) + " pin " + conv.Itoa(sw.Pin)}
		}
		if sw.Label == "" {
			return &errcode.E{C: errcode.InvalidPlan, Op: "plan", Msg: "switch " + conv.Itoa(i) + " has no label"}
		}
	}

	t := p.Timing
	if t.Settle <= 0 || t.Idle <= 0 || t.Debounce <= 0 {
		return &errcode.E{C: errcode.InvalidPlan, Op: "plan", Msg: "non-positive timing"}
	}
	return nil
}
