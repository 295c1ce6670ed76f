// Package sink provides event sink adapters: implementations of
// translate.Sink that inject the translator's synthetic events into the host
// input stream, or record them for inspection.
package sink

import (
	"log/slog"

	"gipsim/internal/translate"
)

// Null returns a sink that discards every event. Used by dry runs.
func Null() translate.Sink { return nullSink{} }

type nullSink struct{}

func (nullSink) EmitKey(uint16, bool) {}

func (nullSink) EmitPointerButton(translate.PointerButton, bool) {}

func (nullSink) EmitPointerDelta(float32, float32) {}

// Debug wraps another sink and logs every event at debug level before
// forwarding it.
func Debug(next translate.Sink, logger *slog.Logger) translate.Sink {
	return &debugSink{next: next, logger: logger}
}

type debugSink struct {
	next   translate.Sink
	logger *slog.Logger
}

func (s *debugSink) EmitKey(code uint16, pressed bool) {
	s.logger.Debug("key", "code", code, "pressed", pressed)
	s.next.EmitKey(code, pressed)
}

func (s *debugSink) EmitPointerButton(button translate.PointerButton, pressed bool) {
	s.logger.Debug("pointer button", "button", button, "pressed", pressed)
	s.next.EmitPointerButton(button, pressed)
}

func (s *debugSink) EmitPointerDelta(dx, dy float32) {
	s.logger.Debug("pointer delta", "dx", dx, "dy", dy)
	s.next.EmitPointerDelta(dx, dy)
}
