package translate

import "gipsim/pkg/mapping"

// state is the previous-snapshot and hold-state record. It is created once,
// zeroed (everything released), and mutated only by the translator between
// reads; there is no concurrent access.
type state struct {
	// keys tracks which keycodes this process currently holds pressed on the
	// host, indexed by raw keycode. Dense array: the domain is small and
	// bounded.
	keys [mapping.MaxKeycode + 1]bool

	mouseLeft   bool
	mouseRight  bool
	mouseMiddle bool

	prevButtons uint16

	// Previous physical trigger values (already swap-corrected).
	prevLeftTrigger  uint8
	prevRightTrigger uint8

	// Pointer delta accumulator, flushed once per cycle.
	dx, dy float64
}

func (s *state) pointerHeld(b PointerButton) bool {
	switch b {
	case PointerLeft:
		return s.mouseLeft
	case PointerRight:
		return s.mouseRight
	case PointerMiddle:
		return s.mouseMiddle
	}
	return false
}

func (s *state) setPointerHeld(b PointerButton, held bool) {
	switch b {
	case PointerLeft:
		s.mouseLeft = held
	case PointerRight:
		s.mouseRight = held
	case PointerMiddle:
		s.mouseMiddle = held
	}
}
