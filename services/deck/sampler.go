// services/deck/sampler.go
package deck

import (
	"mixdeck-go/errcode"
	"mixdeck-go/hal"
	"mixdeck-go/x/conv"
)

// Channel is one slider: an analog input plus its last sampled magnitude.
type Channel struct {
	pin   hal.ADCPin
	value uint16
}

// Value returns the last sampled raw magnitude.
func (c *Channel) Value() uint16 { return c.value }

// Bank owns the ordered channel set. Index order is the frame order and never
// changes after construction.
type Bank struct {
	chans [NumChannels]Channel
}

// NewBank resolves and configures every channel input in index order.
func NewBank(adcs hal.ADCFactory, pins [NumChannels]int) (*Bank, error) {
	b := &Bank{}
	for i, n := range pins {
		pin, ok := adcs.ByNumber(n)
		if !ok {
			return nil, &errcode.E{C: errcode.UnknownInput, Op: "bank", Msg: "channel " + conv.Itoa(i)}
		}
		if err := pin.Configure(); err != nil {
			return nil, &errcode.E{C: errcode.UnknownInput, Op: "bank", Msg: "channel " + conv.Itoa(i), Err: err}
		}
		b.chans[i].pin = pin
	}
	return b, nil
}

// SampleAll reads every channel in index order and overwrites the stored
// magnitudes in place. No filtering or smoothing: each call reflects the
// instantaneous reading, noise included.
//
// A channel whose read fails keeps its previous value; the remaining channels
// are still sampled and the first failure is reported so the stream never
// loses its fixed shape.
func (b *Bank) SampleAll() error {
	var first error
	for i := range b.chans {
		v, err := b.chans[i].pin.Get()
		if err != nil {
			if first == nil {
				first = &errcode.E{C: errcode.SampleFailed, Op: "sample", Msg: "channel " + conv.Itoa(i), Err: err}
			}
			continue
		}
		b.chans[i].value = v
	}
	return first
}

// Values appends the stored magnitudes to dst in frame order.
func (b *Bank) Values(dst []uint16) []uint16 {
	for i := range b.chans {
		dst = append(dst, b.chans[i].value)
	}
	return dst
}
