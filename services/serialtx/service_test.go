// services/serialtx/service_test.go
package serialtx

import (
	"context"
	"errors"
	"testing"
	"time"

	"mixdeck-go/bus"
	"mixdeck-go/hal"
	"mixdeck-go/services/deck"
	"mixdeck-go/types"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached")
}

func TestBridgeWritesLinesInOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := bus.NewBus(16)
	w := &hal.CaptureWriter{}
	svc := Start(ctx, b.NewConnection("serialtx"), w)

	producer := b.NewConnection("deck")
	producer.Send(deck.TopicTX, []byte("1|2|3\n"))
	producer.Send(deck.TopicTX, []byte("WORKS 2\n"))
	producer.Send(deck.TopicTX, []byte("4|5|6\n"))

	waitFor(t, func() bool { return svc.Lines() == 3 })

	lines := w.Lines()
	want := []string{"1|2|3\n", "WORKS 2\n", "4|5|6\n"}
	for i, l := range lines {
		if string(l) != want[i] {
			t.Errorf("line %d = %q, want %q", i, l, want[i])
		}
	}
}

func TestBridgeCountsWriteErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := bus.NewBus(16)
	w := &hal.CaptureWriter{Err: errors.New("port gone")}
	svc := Start(ctx, b.NewConnection("serialtx"), w)

	producer := b.NewConnection("deck")
	producer.Send(deck.TopicTX, []byte("1\n"))
	producer.Send(deck.TopicTX, []byte("2\n"))

	waitFor(t, func() bool { return svc.WriteErrs() == 2 })
	if svc.Lines() != 0 {
		t.Errorf("lines = %d, want 0", svc.Lines())
	}

	// State is retained for late observers.
	sub := b.NewConnection("obs").Subscribe(TopicState)
	select {
	case m := <-sub.Channel():
		st := m.Payload.(types.TransportState)
		if st.WriteErrs == 0 || st.LastErr == "" {
			t.Errorf("state = %+v", st)
		}
	case <-time.After(time.Second):
		t.Fatal("no retained transport state")
	}
}

func TestBridgeIgnoresForeignPayloads(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := bus.NewBus(16)
	w := &hal.CaptureWriter{}
	svc := Start(ctx, b.NewConnection("serialtx"), w)

	producer := b.NewConnection("deck")
	producer.Send(deck.TopicTX, "not bytes")
	producer.Send(deck.TopicTX, []byte("ok\n"))

	waitFor(t, func() bool { return svc.Lines() == 1 })
	if got := len(w.Lines()); got != 1 {
		t.Errorf("written = %d, want 1", got)
	}
}
