// cmd/hostfeed/main.go
//
// Development stand-in for the deck hardware: runs the real control loop
// against synthetic sliders and switches and feeds the genuine wire stream
// into a real serial port, so host-side mixer software can be exercised
// without a board on the desk.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.bug.st/serial"

	"mixdeck-go/bus"
	"mixdeck-go/hal"
	"mixdeck-go/services/deck"
	"mixdeck-go/services/serialtx"
)

// portWriter adapts an open serial port to the deck's transport contract.
type portWriter struct {
	port serial.Port
}

func (w portWriter) WriteLine(line []byte) error {
	_, err := w.port.Write(line)
	return err
}

func main() {
	cfgPath := flag.String("config", "hostfeed.yaml", "path to YAML config")
	flag.Parse()

	cfg, err := Load(*cfgPath)
	if err != nil {
		println("Error: hostfeed:", err.Error())
		os.Exit(1)
	}

	port, err := serial.Open(cfg.Serial.Port, &serial.Mode{BaudRate: cfg.Serial.Baud})
	if err != nil {
		println("Error: hostfeed: open", cfg.Serial.Port, ":", err.Error())
		os.Exit(1)
	}
	defer port.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b := bus.NewBus(64)
	serialtx.Start(ctx, b.NewConnection("serialtx"), portWriter{port: port})

	adcs := &hal.HostADCFactory{Max: 7}
	pins := &hal.HostPinFactory{Max: 28}
	plan := deck.DefaultPlan()

	go (&synth{cfg: cfg.Synth, adcs: adcs, pins: pins, plan: plan}).run(ctx)

	println("Info: hostfeed: streaming to", cfg.Serial.Port)
	err = deck.Run(ctx, b.NewConnection("deck"), adcs, pins, plan)
	if err != nil && err != context.Canceled {
		println("Error: hostfeed: deck:", err.Error())
		os.Exit(1)
	}
}
