// Package translate converts successive decoded controller snapshots into a
// minimal, deterministically ordered stream of key/button transitions and
// pointer deltas. It owns the only mutable cross-call state in the core: the
// previous snapshot and the table of keycodes currently held on the host.
package translate

import "fmt"

// PointerButton identifies a mouse button at the sink boundary.
type PointerButton int

const (
	PointerLeft PointerButton = iota
	PointerRight
	PointerMiddle
)

func (b PointerButton) String() string {
	switch b {
	case PointerLeft:
		return "left"
	case PointerRight:
		return "right"
	case PointerMiddle:
		return "middle"
	}
	return fmt.Sprintf("PointerButton(%d)", int(b))
}

// Sink receives the synthetic input events the translator produces. The
// translator only ever emits relative pointer deltas; whether a sink turns
// them into relative motion or absolute repositioning is the sink's business.
//
// Calls arrive from a single goroutine, in emission order.
type Sink interface {
	EmitKey(code uint16, pressed bool)
	EmitPointerButton(button PointerButton, pressed bool)
	EmitPointerDelta(dx, dy float32)
}
