package translate

import (
	"math"

	"golang.org/x/exp/constraints"

	"gipsim/pkg/mapping"
)

// maxStick is the maximum representable stick displacement magnitude.
const maxStick = 32767.0

// digitalThreshold is the normalized deflection a direction must exceed to
// count as active in keys/arrows mode. Directions are decided independently,
// so diagonals register as two active directions.
const digitalThreshold = 0.3

// pointerBase is the base pointer speed multiplier applied before the
// user-configured sensitivity.
const pointerBase = 15.0

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// applyDeadzone zeroes a stick vector whose Euclidean magnitude is inside
// the deadzone, and proportionally rescales vectors beyond the representable
// maximum back onto the boundary so the direction survives clamping.
func applyDeadzone(x, y int16, deadzone int16) (int16, int16) {
	mag := math.Hypot(float64(x), float64(y))
	if mag < float64(deadzone) {
		return 0, 0
	}
	if mag > maxStick {
		scale := maxStick / mag
		return int16(float64(x) * scale), int16(float64(y) * scale)
	}
	return x, y
}

// processSticks runs both sticks through their configured modes and performs
// the single per-cycle pointer flush.
func (t *Translator) processSticks(lx, ly, rx, ry int16) {
	dz := t.cfg.Sticks.Deadzone
	lx, ly = applyDeadzone(lx, ly, dz)
	rx, ry = applyDeadzone(rx, ry, dz)

	t.processStick(lx, ly, t.cfg.Sticks.LeftMode, t.cfg.Sticks.LeftKeys)
	t.processStick(rx, ry, t.cfg.Sticks.RightMode, t.cfg.Sticks.RightKeys)

	t.flushPointer()
}

func (t *Translator) processStick(x, y int16, mode mapping.StickMode, keys mapping.DirectionKeys) {
	switch mode {
	case mapping.StickKeys:
		t.stickAsKeys(x, y, keys)
	case mapping.StickArrows:
		t.stickAsKeys(x, y, mapping.ArrowKeys())
	case mapping.StickMouse:
		t.stickAsPointer(x, y)
	case mapping.StickDisabled:
	}
}

// stickAsKeys translates stick deflection into four direction key holds.
//
// The device reports each stick's axes swapped: physical up/down arrives in
// the wire X field and physical left/right in the wire Y field. That is
// hardware behavior; swap back before any further math.
func (t *Translator) stickAsKeys(x, y int16, keys mapping.DirectionKeys) {
	x, y = y, x

	normX := clamp(float64(x)/maxStick, -1.0, 1.0)
	normY := clamp(float64(y)/maxStick, -1.0, 1.0)

	up := normY > digitalThreshold
	down := normY < -digitalThreshold
	left := normX < -digitalThreshold
	right := normX > digitalThreshold

	t.setDirectionKey(keys.Up, up)
	t.setDirectionKey(keys.Down, down)
	t.setDirectionKey(keys.Left, left)
	t.setDirectionKey(keys.Right, right)
}

// setDirectionKey diffs a direction boolean against that keycode's hold
// state, so holding the stick deflected does not repeat events.
func (t *Translator) setDirectionKey(code uint16, active bool) {
	if t.st.keys[code] == active {
		return
	}
	t.sink.EmitKey(code, active)
	t.st.keys[code] = active
}

// stickAsPointer translates stick deflection into pointer motion and adds it
// to the shared per-cycle accumulator. Both sticks may contribute.
func (t *Translator) stickAsPointer(x, y int16) {
	// Same wire axis swap as stickAsKeys.
	x, y = y, x

	normX := clamp(float64(x)/maxStick, -1.0, 1.0)
	// Invert vertical: pushing the stick away from the user moves the
	// pointer up in screen coordinates.
	normY := clamp(float64(-y)/maxStick, -1.0, 1.0)

	curvedX := math.Copysign(math.Pow(math.Abs(normX), t.cfg.Sticks.Curve), normX)
	curvedY := math.Copysign(math.Pow(math.Abs(normY), t.cfg.Sticks.Curve), normY)

	t.st.dx += curvedX * t.cfg.Sticks.Sensitivity * pointerBase
	t.st.dy += curvedY * t.cfg.Sticks.Sensitivity * pointerBase
}

// flushPointer emits the accumulated delta exactly once per cycle. A cycle
// that accumulated exactly (0,0) emits nothing; any other value, including
// sub-pixel motion, is forwarded so rounding at the sink never loses input.
func (t *Translator) flushPointer() {
	if t.st.dx == 0 && t.st.dy == 0 {
		return
	}
	dx, dy := t.filter.apply(t.st.dx, t.st.dy)
	t.sink.EmitPointerDelta(float32(dx), float32(dy))
	t.st.dx = 0
	t.st.dy = 0
}
