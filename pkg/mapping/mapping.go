// Package mapping defines the user-editable controller mapping: which
// keyboard key each button produces, how each stick and trigger behaves, and
// the tuning values for pointer motion.
//
// A mapping is loaded once at startup and is immutable for the lifetime of
// the process. All numeric fields are treated as pre-validated by the
// translation core.
package mapping

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// StickMode selects how an analog stick is translated.
type StickMode string

const (
	// StickKeys maps the stick to that stick's four configured direction keys.
	StickKeys StickMode = "keys"
	// StickArrows is the fixed arrow-key preset.
	StickArrows StickMode = "arrows"
	// StickMouse turns stick deflection into pointer motion.
	StickMouse StickMode = "mouse"
	// StickDisabled ignores the stick entirely.
	StickDisabled StickMode = "disabled"
)

// TriggerMode selects how an analog trigger is translated.
type TriggerMode string

const (
	// TriggerMouse maps the trigger to a pointer button (left trigger to the
	// left button, right trigger to the right button).
	TriggerMouse TriggerMode = "mouse"
	// TriggerKey maps the trigger to its configured keycode.
	TriggerKey TriggerMode = "key"
	// TriggerDisabled ignores the trigger entirely.
	TriggerDisabled TriggerMode = "disabled"
)

// Buttons maps each of the 14 digital buttons to a keycode.
type Buttons struct {
	A    uint16 `toml:"a" comment:"Face buttons"`
	B    uint16 `toml:"b"`
	X    uint16 `toml:"x"`
	Y    uint16 `toml:"y"`
	LB   uint16 `toml:"lb" comment:"Bumpers"`
	RB   uint16 `toml:"rb"`
	LS   uint16 `toml:"ls" comment:"Stick clicks"`
	RS   uint16 `toml:"rs"`
	View uint16 `toml:"view" comment:"View / Menu"`
	Menu uint16 `toml:"menu"`

	DPadUp    uint16 `toml:"dpad_up" comment:"D-pad"`
	DPadDown  uint16 `toml:"dpad_down"`
	DPadLeft  uint16 `toml:"dpad_left"`
	DPadRight uint16 `toml:"dpad_right"`
}

// DirectionKeys are the four keycodes a stick produces in keys mode.
type DirectionKeys struct {
	Up    uint16 `toml:"up"`
	Down  uint16 `toml:"down"`
	Left  uint16 `toml:"left"`
	Right uint16 `toml:"right"`
}

// ArrowKeys is the preset used by StickArrows mode.
func ArrowKeys() DirectionKeys {
	return DirectionKeys{Up: KeyUp, Down: KeyDown, Left: KeyLeft, Right: KeyRight}
}

// Sticks configures both analog sticks and the shared pointer tuning.
type Sticks struct {
	LeftMode  StickMode     `toml:"left_mode" comment:"Stick modes: keys, arrows, mouse, disabled"`
	LeftKeys  DirectionKeys `toml:"left_keys"`
	RightMode StickMode     `toml:"right_mode"`
	RightKeys DirectionKeys `toml:"right_keys"`

	// Sensitivity scales pointer speed; Curve is the power-law response
	// exponent (1.0 = linear); Smoothing is the exponential moving average
	// factor applied to flushed deltas (0 = off).
	Sensitivity float64 `toml:"mouse_sensitivity" comment:"Pointer tuning (mouse mode only)"`
	Curve       float64 `toml:"mouse_curve"`
	Smoothing   float64 `toml:"mouse_smoothing"`

	// Deadzone is the minimum Euclidean stick displacement, 0..32767.
	Deadzone int16 `toml:"deadzone" comment:"Minimum stick displacement before input registers (0-32767)"`
}

// Triggers configures both analog triggers.
type Triggers struct {
	LeftMode  TriggerMode `toml:"left_mode" comment:"Trigger modes: mouse, key, disabled"`
	RightMode TriggerMode `toml:"right_mode"`
	LeftKey   uint16      `toml:"left_key" comment:"Keycodes used in key mode"`
	RightKey  uint16      `toml:"right_key"`

	// Threshold is the pull depth (0-255) a trigger must strictly exceed to
	// count as pressed.
	Threshold uint8 `toml:"threshold" comment:"Pull depth (0-255) a trigger must exceed to register"`
}

// Mapping is the complete, read-only controller configuration.
type Mapping struct {
	Buttons  Buttons  `toml:"buttons"`
	Sticks   Sticks   `toml:"sticks"`
	Triggers Triggers `toml:"triggers"`

	// StreamingMode favors relative pointer deltas over absolute
	// repositioning; the event sink decides what to do with it.
	StreamingMode bool `toml:"streaming_mode" comment:"Prefer relative pointer deltas (for Moonlight/Parsec style remote display)"`
}

// Default returns the built-in mapping: left stick WASD-style movement, right
// stick pointer, triggers as mouse buttons, d-pad as arrows.
func Default() Mapping {
	return Mapping{
		Buttons: Buttons{
			A:    KeySpace,
			B:    KeyC,
			X:    KeyR,
			Y:    KeyF,
			LB:   KeyQ,
			RB:   KeyE,
			LS:   KeyLeftShift,
			RS:   KeyLeftCtrl,
			View: KeyTab,
			Menu: KeyEsc,

			DPadUp:    KeyUp,
			DPadDown:  KeyDown,
			DPadLeft:  KeyLeft,
			DPadRight: KeyRight,
		},
		Sticks: Sticks{
			LeftMode:  StickKeys,
			LeftKeys:  DirectionKeys{Up: KeyW, Down: KeyS, Left: KeyA, Right: KeyD},
			RightMode: StickMouse,
			RightKeys: DirectionKeys{Up: KeyI, Down: KeyK, Left: KeyJ, Right: KeyL},

			Sensitivity: 1.5,
			Curve:       1.8,
			Smoothing:   0.3,
			Deadzone:    8000,
		},
		Triggers: Triggers{
			LeftMode:  TriggerMouse,
			RightMode: TriggerMouse,
			LeftKey:   KeyZ,
			RightKey:  KeyX,
			Threshold: 127,
		},
		StreamingMode: false,
	}
}

// Load reads a mapping file. A missing file is not an error: the built-in
// default mapping is returned so the simulator works out of the box.
func Load(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Mapping{}, fmt.Errorf("read mapping file: %w", err)
	}
	m := Default()
	if err := toml.Unmarshal(data, &m); err != nil {
		return Mapping{}, fmt.Errorf("parse mapping file %s: %w", path, err)
	}
	return m, nil
}

// Save writes a mapping as commented TOML.
func Save(path string, m Mapping) error {
	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode mapping: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write mapping file: %w", err)
	}
	return nil
}
