// Package simulator runs the steady-state read loop: one timeout-bounded
// interrupt read per cycle, synchronous decode and translation, then the next
// read. Everything happens on the caller's goroutine; the read timeout bounds
// how long a cancellation can go unnoticed.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"gipsim/internal/gip"
	"gipsim/internal/log"
	"gipsim/internal/translate"
)

// readTimeout keeps steady-state reads short so pointer motion stays smooth
// and cancellation is observed promptly.
const readTimeout = 10 * time.Millisecond

// ErrDeviceLost reports that the controller disappeared mid-session. The
// release pass has already run by the time it is returned.
var ErrDeviceLost = errors.New("simulator: controller disconnected")

// Simulator owns one controller session after handshake completion.
type Simulator struct {
	tr         gip.Transport
	translator *translate.Translator
	logger     *slog.Logger
	raw        log.RawLogger

	paused atomic.Bool
}

func New(tr gip.Transport, translator *translate.Translator, logger *slog.Logger, rawLogger log.RawLogger) *Simulator {
	return &Simulator{
		tr:         tr,
		translator: translator,
		logger:     logger,
		raw:        rawLogger,
	}
}

// SetPaused suspends or resumes translation. It may be called from another
// goroutine (the tray menu); the loop itself applies the change between
// cycles. Entering pause releases everything currently held.
func (s *Simulator) SetPaused(paused bool) {
	s.paused.Store(paused)
}

// Run executes the read loop until ctx is cancelled or the device goes away.
// On every exit path the translator's release pass runs, so the host never
// keeps a stuck key or button. A nil return is a clean shutdown;
// ErrDeviceLost means the transport failed.
func (s *Simulator) Run(ctx context.Context) error {
	defer s.translator.ReleaseAll()

	buf := make([]byte, 64)
	inputCount := 0
	wasPaused := false

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down", "frames", inputCount)
			return nil
		default:
		}

		if paused := s.paused.Load(); paused != wasPaused {
			if paused {
				s.translator.ReleaseAll()
				s.logger.Info("translation paused")
			} else {
				s.logger.Info("translation resumed")
			}
			wasPaused = paused
		}

		n, err := s.tr.Read(buf, readTimeout)
		if errors.Is(err, gip.ErrTimeout) {
			// No frame this cycle.
			continue
		}
		if err != nil {
			s.logger.Error("controller read failed", "error", err)
			return fmt.Errorf("%w: %v", ErrDeviceLost, err)
		}
		if s.raw.Enabled() {
			s.raw.Dump("in", buf[:n])
		}

		header, err := gip.DecodeHeader(buf[:n])
		if err != nil {
			s.logger.Debug("dropping malformed frame", "error", err)
			continue
		}

		switch header.Command {
		case gip.CmdInput:
			var pkt gip.InputPacket
			if err := pkt.UnmarshalFrame(buf[:n]); err != nil {
				s.logger.Debug("dropping partial input frame", "error", err)
				continue
			}
			if wasPaused {
				continue
			}
			inputCount++
			s.translator.Apply(pkt)
			if s.logger.Enabled(ctx, slog.LevelDebug) {
				s.logger.Debug("input",
					"n", inputCount,
					"buttons", fmt.Sprintf("0x%04x", pkt.Buttons),
					"lt", pkt.LT, "rt", pkt.RT,
					"ls", fmt.Sprintf("(%d,%d)", pkt.LX, pkt.LY),
					"rs", fmt.Sprintf("(%d,%d)", pkt.RX, pkt.RY))
			}
		case gip.CmdGuideButton:
			s.logger.Debug("guide button frame", "sequence", header.Sequence)
		default:
			// Unrecognized commands are dropped for forward compatibility.
			s.logger.Debug("ignoring frame", "command", header.Command)
		}
	}
}
