// services/deck/plan_test.go
package deck

import (
	"errors"
	"testing"

	"mixdeck-go/errcode"
	"mixdeck-go/hal"
)

func testFactories() (*hal.HostADCFactory, *hal.HostPinFactory) {
	return &hal.HostADCFactory{Max: 7}, &hal.HostPinFactory{Max: 28}
}

func TestDefaultPlanValidates(t *testing.T) {
	adcs, pins := testFactories()
	p := DefaultPlan()
	if err := p.Validate(adcs, pins); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestDefaultPlanLabels(t *testing.T) {
	p := DefaultPlan()
	// The pairing is deliberate: GP2 -> "WORKS 2", GP3 -> "WORKS 1".
	if p.Switches[0].Pin != 2 || p.Switches[0].Label != "WORKS 2" {
		t.Errorf("slot 0 = %+v", p.Switches[0])
	}
	if p.Switches[1].Pin != 3 || p.Switches[1].Label != "WORKS 1" {
		t.Errorf("slot 1 = %+v", p.Switches[1])
	}
}

func TestValidateDuplicateChannelPin(t *testing.T) {
	adcs, pins := testFactories()
	p := DefaultPlan()
	p.ChannelPins[4] = p.ChannelPins[0]
	err := p.Validate(adcs, pins)
	if errcode.Of(err) != errcode.PinInUse {
		t.Errorf("err = %v, want pin_in_use", err)
	}
}

func TestValidateUnknownChannelInput(t *testing.T) {
	adcs, pins := testFactories()
	p := DefaultPlan()
	p.ChannelPins[2] = 99
	err := p.Validate(adcs, pins)
	if errcode.Of(err) != errcode.UnknownInput {
		t.Errorf("err = %v, want unknown_input", err)
	}
}

func TestValidateDuplicateSwitchPin(t *testing.T) {
	adcs, pins := testFactories()
	p := DefaultPlan()
	p.Switches[1].Pin = p.Switches[0].Pin
	err := p.Validate(adcs, pins)
	if errcode.Of(err) != errcode.PinInUse {
		t.Errorf("err = %v, want pin_in_use", err)
	}
}

func TestValidateUnknownSwitchPin(t *testing.T) {
	adcs, pins := testFactories()
	p := DefaultPlan()
	p.Switches[0].Pin = 99
	err := p.Validate(adcs, pins)
	if errcode.Of(err) != errcode.UnknownPin {
		t.Errorf("err = %v, want unknown_pin", err)
	}
}

func TestValidateEmptyLabel(t *testing.T) {
	adcs, pins := testFactories()
	p := DefaultPlan()
	p.Switches[1].Label = ""
	err := p.Validate(adcs, pins)
	if errcode.Of(err) != errcode.InvalidPlan {
		t.Errorf("err = %v, want invalid_plan", err)
	}
}

func TestValidateTiming(t *testing.T) {
	adcs, pins := testFactories()
	p := DefaultPlan()
	p.Timing.Debounce = 0
	err := p.Validate(adcs, pins)
	if errcode.Of(err) != errcode.InvalidPlan {
		t.Errorf("err = %v, want invalid_plan", err)
	}
}

func TestValidateErrorsUnwrap(t *testing.T) {
	adcs, pins := testFactories()
	p := DefaultPlan()
	p.ChannelPins[0] = -1
	err := p.Validate(adcs, pins)
	var e *errcode.E
	if !errors.As(err, &e) {
		t.Fatalf("err %T is not *errcode.E", err)
	}
	if e.Op != "plan" {
		t.Errorf("Op = %q", e.Op)
	}
}
