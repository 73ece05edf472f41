// cmd/hostfeed/synth.go
package main

import (
	"context"
	"time"

	"mixdeck-go/hal"
	"mixdeck-go/services/deck"
)

const sweepStep = 20 * time.Millisecond

// synth animates the fake inputs: every slider sweeps a phase-staggered
// triangle wave and the switches get a press-and-release in turn, so the far
// end of the serial port sees the same traffic a fiddled-with deck produces.
type synth struct {
	cfg  SynthConfig
	adcs *hal.HostADCFactory
	pins *hal.HostPinFactory
	plan deck.Plan
}

func (s *synth) run(ctx context.Context) {
	tick := time.NewTicker(sweepStep)
	defer tick.Stop()

	var pressC <-chan time.Time
	if s.cfg.PressEvery > 0 {
		press := time.NewTicker(s.cfg.PressEvery)
		defer press.Stop()
		pressC = press.C
	}

	start := time.Now()
	slot := 0
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-tick.C:
			s.sweep(now.Sub(start))
		case <-pressC:
			s.press(ctx, slot)
			slot = (slot + 1) % deck.NumSwitches
		}
	}
}

// sweep sets each channel to its point on a triangle wave. Channels are
// offset by period/N so no two sliders ever track each other.
func (s *synth) sweep(elapsed time.Duration) {
	period := s.cfg.SweepPeriod
	for i, n := range s.plan.ChannelPins {
		in, ok := s.adcs.ByNumber(n)
		if !ok {
			continue
		}
		offset := time.Duration(i) * period / deck.NumChannels
		phase := float64((elapsed+offset)%period) / float64(period)
		frac := 2 * phase
		if phase >= 0.5 {
			frac = 2 - 2*phase
		}
		in.(*hal.FakeADC).SetValue(uint16(frac * deck.ADCMax))
	}
}

// press holds the slot's pin LOW for HoldFor, then releases it. The deck
// reports the release, not the press.
func (s *synth) press(ctx context.Context, slot int) {
	in, ok := s.pins.ByNumber(s.plan.Switches[slot].Pin)
	if !ok {
		return
	}
	pin := in.(*hal.FakePin)
	pin.Set(false)
	select {
	case <-ctx.Done():
	case <-time.After(s.cfg.HoldFor):
	}
	pin.Set(true)
}
