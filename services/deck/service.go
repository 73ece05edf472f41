// services/deck/service.go
package deck

import (
	"context"
	"time"

	"mixdeck-go/bus"
	"mixdeck-go/errcode"
	"mixdeck-go/hal"
	"mixdeck-go/types"
	"mixdeck-go/x/timex"
)

// Bus topics.
var (
	// TopicTX carries finished wire lines ([]byte, terminator included), in
	// emit order. Exactly one transport bridge should consume it.
	TopicTX = bus.T("deck", "tx")
	// TopicFrame retains the latest sampled snapshot.
	TopicFrame = bus.T("deck", "frame")
	// TopicEvent carries switch release events.
	TopicEvent = bus.T("deck", "event")
	// TopicInfo retains the deck's fixed shape.
	TopicInfo = bus.T("deck", "info")
)

type switchSlot struct {
	spec SwitchSpec
	deb  *Debouncer
}

// Service runs the sampling/debounce/reporting cycle.
type Service struct {
	plan     Plan
	conn     *bus.Connection
	bank     *Bank
	switches [NumSwitches]switchSlot

	lineBuf []byte
	valBuf  []uint16
}

// New validates the plan, claims and configures every pin, and snapshots the
// switches' initial levels. No frame is emitted until Run.
func New(conn *bus.Connection, adcs hal.ADCFactory, pins hal.PinFactory, plan Plan) (*Service, error) {
	if err := plan.Validate(adcs, pins); err != nil {
		return nil, err
	}

	bank, err := NewBank(adcs, plan.ChannelPins)
	if err != nil {
		return nil, err
	}

	s := &Service{
		plan:    plan,
		conn:    conn,
		bank:    bank,
		lineBuf: make([]byte, 0, 64),
		valBuf:  make([]uint16, 0, NumChannels),
	}
	for i, spec := range plan.Switches {
		pin, ok := pins.ByNumber(spec.Pin)
		if !ok {
			return nil, &errcode.E{C: errcode.UnknownPin, Op: "deck", Msg: spec.Label}
		}
		// Pull-up: idle reads HIGH, a closed switch reads LOW.
		if err := pin.ConfigureInput(hal.PullUp); err != nil {
			return nil, &errcode.E{C: errcode.UnknownPin, Op: "deck", Msg: spec.Label, Err: err}
		}
		s.switches[i] = switchSlot{spec: spec, deb: NewDebouncer(pin, plan.Timing.Debounce)}
	}
	return s, nil
}

// Run publishes retained deck info and enters the cycle. It returns when ctx
// is cancelled; there is no other exit.
func (s *Service) Run(ctx context.Context) error {
	s.conn.Retain(TopicInfo, types.DeckInfo{
		Channels: NumChannels,
		Switches: NumSwitches,
		ADCMax:   ADCMax,
		Baud:     hal.WireBaud,
	})

	for {
		s.cycle(ctx)

		if !sleep(ctx, s.plan.Timing.Idle) {
			return ctx.Err()
		}
	}
}

// cycle is one pass: sample, settle, emit the frame unconditionally, then
// poll both switches.
func (s *Service) cycle(ctx context.Context) {
	if err := s.bank.SampleAll(); err != nil {
		// The frame is still emitted: the host tolerates stale magnitudes
		// but not a missing position.
		println("Error: deck:", err.Error())
	}

	if !sleep(ctx, s.plan.Timing.Settle) {
		return
	}

	s.valBuf = s.bank.Values(s.valBuf[:0])
	s.lineBuf = AppendFrame(s.lineBuf[:0], s.valBuf)
	s.transmit(s.lineBuf)
	s.conn.Retain(TopicFrame, types.FrameSnapshot{
		Values: append([]uint16(nil), s.valBuf...),
		TsMs:   timex.NowMs(),
	})

	now := time.Now()
	for i := range s.switches {
		sl := &s.switches[i]
		if !sl.deb.Poll(now) {
			continue
		}
		s.lineBuf = AppendEventLine(s.lineBuf[:0], sl.spec.Label)
		s.transmit(s.lineBuf)
		s.conn.Send(TopicEvent, types.SwitchEvent{
			Slot:  i,
			Pin:   sl.spec.Pin,
			Label: sl.spec.Label,
			TsMs:  timex.NowMs(),
		})
	}
}

// transmit hands one wire line to the transport bridge. The payload is copied
// because the bridge consumes it asynchronously.
func (s *Service) transmit(line []byte) {
	s.conn.Send(TopicTX, append([]byte(nil), line...))
}

// Run validates, builds and runs a deck service in one call.
func Run(ctx context.Context, conn *bus.Connection, adcs hal.ADCFactory, pins hal.PinFactory, plan Plan) error {
	s, err := New(conn, adcs, pins, plan)
	if err != nil {
		return err
	}
	return s.Run(ctx)
}

// sleep waits for d unless ctx ends first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
