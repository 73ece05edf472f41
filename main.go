package main

import (
	"context"
	"time"

	"mixdeck-go/bus"
	"mixdeck-go/hal"
	"mixdeck-go/services/deck"
	"mixdeck-go/services/serialtx"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	ctx := context.Background()
	b := bus.NewBus(16)

	w, err := hal.DefaultTransport()
	if err != nil {
		println("Error: transport:", err.Error())
		return
	}
	serialtx.Start(ctx, b.NewConnection("serialtx"), w)

	err = deck.Run(ctx, b.NewConnection("deck"),
		hal.DefaultADCFactory(), hal.DefaultPinFactory(), deck.DefaultPlan())
	if err != nil {
		println("Error: deck:", err.Error())
	}
}
