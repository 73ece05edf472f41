package types

// Bus-facing payload types. Keep them small and JSON-serialisable so host
// tooling can log or forward them unchanged.

// DeckInfo is retained on deck/info at startup.
type DeckInfo struct {
	Channels int    `json:"channels"`
	Switches int    `json:"switches"`
	ADCMax   uint16 `json:"adc_max"`
	Baud     uint32 `json:"baud"`
}

// FrameSnapshot is published on deck/frame alongside the wire line.
// Values are 10-bit raw magnitudes in channel index order.
type FrameSnapshot struct {
	Values []uint16 `json:"values"`
	TsMs   int64    `json:"ts_ms"`
}

// SwitchEvent is published on deck/event when a switch releases
// (LOW -> HIGH after the debounce window).
type SwitchEvent struct {
	Slot  int    `json:"slot"`
	Pin   int    `json:"pin"`
	Label string `json:"label"`
	TsMs  int64  `json:"ts_ms"`
}

// TransportState is retained on serialtx/state.
type TransportState struct {
	Lines     uint32 `json:"lines"`
	WriteErrs uint32 `json:"write_errs"`
	LastErr   string `json:"last_err,omitempty"`
}
