package translate

import (
	"gipsim/internal/gip"
	"gipsim/pkg/mapping"
)

// buttonBinding ties a wire button bit to its configured keycode. The slice
// order is the emission order for transitions: fixed, so a given snapshot
// pair always yields the same event sequence.
type buttonBinding struct {
	mask uint16
	code uint16
}

// Translator turns decoded input packets into sink events. It is not safe
// for concurrent use; the read loop is its only caller.
type Translator struct {
	cfg     mapping.Mapping
	sink    Sink
	buttons []buttonBinding
	filter  *motionFilter
	st      state
}

// New creates a translator for one immutable mapping. The initial state is
// everything-released.
func New(cfg mapping.Mapping, sink Sink) *Translator {
	b := cfg.Buttons
	return &Translator{
		cfg:  cfg,
		sink: sink,
		buttons: []buttonBinding{
			{gip.ButtonA, b.A},
			{gip.ButtonB, b.B},
			{gip.ButtonX, b.X},
			{gip.ButtonY, b.Y},
			{gip.ButtonLB, b.LB},
			{gip.ButtonRB, b.RB},
			{gip.ButtonLS, b.LS},
			{gip.ButtonRS, b.RS},
			{gip.ButtonView, b.View},
			{gip.ButtonMenu, b.Menu},
			{gip.ButtonDPadUp, b.DPadUp},
			{gip.ButtonDPadDown, b.DPadDown},
			{gip.ButtonDPadLeft, b.DPadLeft},
			{gip.ButtonDPadRight, b.DPadRight},
		},
		filter: newMotionFilter(cfg.Sticks.Smoothing),
	}
}

// Apply processes one accepted input packet: button and trigger transitions,
// then both sticks, then a single pointer-delta flush.
func (t *Translator) Apply(in gip.InputPacket) {
	t.processButtons(in.Buttons)
	t.processTriggers(in.LT, in.RT)
	t.processSticks(in.LX, in.LY, in.RX, in.RY)
}

// processButtons diffs the 16-bit button mask against the previous snapshot
// bit by bit. The previous snapshot's bit, not the held-keycode table, is the
// source of truth per button slot: two buttons may map to the same keycode.
func (t *Translator) processButtons(buttons uint16) {
	for _, b := range t.buttons {
		isPressed := buttons&b.mask != 0
		wasPressed := t.st.prevButtons&b.mask != 0
		if isPressed == wasPressed {
			continue
		}
		t.sink.EmitKey(b.code, isPressed)
		t.st.keys[b.code] = isPressed
	}
	t.st.prevButtons = buttons
}

// processTriggers handles threshold edge detection. The device reports the
// trigger analog values in swapped wire positions: the byte in the "left
// trigger" field carries the physical right trigger and vice versa. That is
// hardware behavior and is corrected here, before any comparison.
func (t *Translator) processTriggers(wireLT, wireRT uint8) {
	physRight := wireLT
	physLeft := wireRT
	thr := t.cfg.Triggers.Threshold

	// Strictly greater-than: a pull exactly at the threshold does not fire.
	rightPressed := physRight > thr
	rightWasPressed := t.st.prevRightTrigger > thr
	if rightPressed != rightWasPressed {
		t.emitTrigger(t.cfg.Triggers.RightMode, PointerRight, t.cfg.Triggers.RightKey, rightPressed)
	}

	leftPressed := physLeft > thr
	leftWasPressed := t.st.prevLeftTrigger > thr
	if leftPressed != leftWasPressed {
		t.emitTrigger(t.cfg.Triggers.LeftMode, PointerLeft, t.cfg.Triggers.LeftKey, leftPressed)
	}

	t.st.prevRightTrigger = physRight
	t.st.prevLeftTrigger = physLeft
}

func (t *Translator) emitTrigger(mode mapping.TriggerMode, button PointerButton, code uint16, pressed bool) {
	switch mode {
	case mapping.TriggerMouse:
		t.sink.EmitPointerButton(button, pressed)
		t.st.setPointerHeld(button, pressed)
	case mapping.TriggerKey:
		t.sink.EmitKey(code, pressed)
		t.st.keys[code] = pressed
	case mapping.TriggerDisabled:
	}
}

// ReleaseAll emits a release for every keycode and pointer button currently
// held, then resets the translator to its initial state. It runs on every
// termination path so the host never observes a stuck key.
func (t *Translator) ReleaseAll() {
	for code, held := range t.st.keys {
		if held {
			t.sink.EmitKey(uint16(code), false)
		}
	}
	for _, b := range []PointerButton{PointerLeft, PointerRight, PointerMiddle} {
		if t.st.pointerHeld(b) {
			t.sink.EmitPointerButton(b, false)
		}
	}
	t.st = state{}
	t.filter.reset()
}
