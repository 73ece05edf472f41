// services/serialtx/service.go
package serialtx

import (
	"context"
	"sync/atomic"

	"mixdeck-go/bus"
	"mixdeck-go/hal"
	"mixdeck-go/services/deck"
	"mixdeck-go/types"
)

// TopicState retains the transport's counters.
var TopicState = bus.T("serialtx", "state")

// Service bridges the deck's wire-line stream onto the serial transport.
// Fire-and-forget: a failed write is counted and logged, never retried, and
// nothing upstream is stalled.
type Service struct {
	conn *bus.Connection
	w    hal.LineWriter
	sub  *bus.Subscription

	lines     uint32
	writeErrs uint32
	lastErr   string
}

// New subscribes to deck/tx immediately so no line published after
// construction is lost.
func New(conn *bus.Connection, w hal.LineWriter) *Service {
	return &Service{conn: conn, w: w, sub: conn.Subscribe(deck.TopicTX)}
}

// Run consumes deck/tx until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	sub := s.sub
	defer s.conn.Unsubscribe(sub)

	s.publishState()

	for {
		select {
		case <-ctx.Done():
			println("Info: serialtx stopping")
			return
		case msg := <-sub.Channel():
			line, ok := msg.Payload.([]byte)
			if !ok {
				continue
			}
			if err := s.w.WriteLine(line); err != nil {
				atomic.AddUint32(&s.writeErrs, 1)
				s.lastErr = err.Error()
				println("Error: serialtx:", s.lastErr)
				s.publishState()
			} else {
				atomic.AddUint32(&s.lines, 1)
			}
		}
	}
}

// Start runs the bridge in its own goroutine.
func Start(ctx context.Context, conn *bus.Connection, w hal.LineWriter) *Service {
	s := New(conn, w)
	go s.Run(ctx)
	return s
}

// Lines reports successfully written lines.
func (s *Service) Lines() uint32 { return atomic.LoadUint32(&s.lines) }

// WriteErrs reports failed writes.
func (s *Service) WriteErrs() uint32 { return atomic.LoadUint32(&s.writeErrs) }

func (s *Service) publishState() {
	s.conn.Retain(TopicState, types.TransportState{
		Lines:     atomic.LoadUint32(&s.lines),
		WriteErrs: atomic.LoadUint32(&s.writeErrs),
		LastErr:   s.lastErr,
	})
}
