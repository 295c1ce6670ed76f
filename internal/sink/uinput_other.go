//go:build !linux

package sink

import (
	"errors"
	"log/slog"

	"gipsim/internal/translate"
)

// UinputSink is only available on Linux.
type UinputSink struct{}

// NewUinput is unsupported on this platform.
func NewUinput(_ *slog.Logger, _ bool) (*UinputSink, error) {
	return nil, errors.New("sink: uinput injection requires linux")
}

func (s *UinputSink) EmitKey(uint16, bool)                            {}
func (s *UinputSink) EmitPointerButton(translate.PointerButton, bool) {}
func (s *UinputSink) EmitPointerDelta(float32, float32)               {}

func (s *UinputSink) Close() error { return nil }
