// cmd/boardtest/main.go
//
// Bring-up check for a freshly wired deck. Dumps raw channel magnitudes and
// switch levels once a second so pot wiring, expander channels and pull-ups
// can be verified before flashing the real firmware.
package main

import (
	"time"

	"mixdeck-go/hal"
	"mixdeck-go/services/deck"
	"mixdeck-go/x/conv"
)

const dumpPeriod = time.Second

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boardtest: starting")

	plan := deck.DefaultPlan()
	adcs := hal.DefaultADCFactory()
	pins := hal.DefaultPinFactory()

	var chans [deck.NumChannels]hal.ADCPin
	for i, n := range plan.ChannelPins {
		a, ok := adcs.ByNumber(n)
		if !ok {
			println("Error: no analog input", n)
			return
		}
		if err := a.Configure(); err != nil {
			println("Error: configure input", n, ":", err.Error())
			return
		}
		chans[i] = a
	}

	var switches [deck.NumSwitches]hal.GPIOPin
	for i, spec := range plan.Switches {
		p, ok := pins.ByNumber(spec.Pin)
		if !ok {
			println("Error: no pin", spec.Pin)
			return
		}
		if err := p.ConfigureInput(hal.PullUp); err != nil {
			println("Error: configure pin", spec.Pin, ":", err.Error())
			return
		}
		switches[i] = p
	}

	buf := make([]byte, 0, 96)
	for {
		buf = buf[:0]
		buf = append(buf, "ch"...)
		for _, a := range chans {
			buf = append(buf, ' ')
			v, err := a.Get()
			if err != nil {
				buf = append(buf, "ERR"...)
				continue
			}
			buf = conv.AppendUint(buf, uint(v))
		}
		buf = append(buf, " sw"...)
		for _, p := range switches {
			if p.Get() {
				buf = append(buf, " H"...)
			} else {
				buf = append(buf, " L"...)
			}
		}
		println(string(buf))
		time.Sleep(dumpPeriod)
	}
}
