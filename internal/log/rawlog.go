package log

import (
	"fmt"
	"io"
	"time"
)

// RawLogger records raw protocol frames. Implementations must tolerate a nil
// destination; Dump on a disabled logger is a no-op, so callers never guard.
type RawLogger interface {
	// Enabled reports whether dumps will be written anywhere, so hot paths
	// can skip formatting work.
	Enabled() bool

	// Dump writes one frame. Direction is "in" or "out".
	Dump(direction string, frame []byte)
}

// NewRaw creates a RawLogger writing hex dumps to w. A nil writer yields a
// disabled logger.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w}
}

type rawLogger struct {
	w io.Writer
}

func (l *rawLogger) Enabled() bool { return l.w != nil }

func (l *rawLogger) Dump(direction string, frame []byte) {
	if l.w == nil {
		return
	}
	ts := time.Now().Format("15:04:05.000000")
	fmt.Fprintf(l.w, "%s %-3s % x\n", ts, direction, frame)
}
