package gip

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gipsim/internal/log"
)

// HandshakeState is the bring-up state machine position. Once Ready is
// reached there is no transition back.
type HandshakeState int

const (
	StateAwaitAnnounce HandshakeState = iota
	StateAcknowledging
	StatePowerOn
	StateReady
)

func (s HandshakeState) String() string {
	switch s {
	case StateAwaitAnnounce:
		return "await-announce"
	case StateAcknowledging:
		return "acknowledging"
	case StatePowerOn:
		return "power-on"
	case StateReady:
		return "ready"
	}
	return fmt.Sprintf("HandshakeState(%d)", int(s))
}

const (
	// announceAttempts bounds the announce-drain phase; the device normally
	// announces once, immediately.
	announceAttempts = 5

	announceReadTimeout = 2 * time.Second
	writeTimeout        = time.Second

	// settleDelay gives the device time to finish its own boot sequence after
	// power-on before steady-state reads begin. Empirical.
	settleDelay = 500 * time.Millisecond
)

// Handshake drives the device from cold to streaming input.
type Handshake struct {
	tr     Transport
	logger *slog.Logger
	raw    log.RawLogger

	state HandshakeState
	sleep func(time.Duration)
}

// NewHandshake creates a handshake controller over tr. rawLogger may be a
// disabled logger but must not be nil.
func NewHandshake(tr Transport, logger *slog.Logger, rawLogger log.RawLogger) *Handshake {
	return &Handshake{
		tr:     tr,
		logger: logger,
		raw:    rawLogger,
		state:  StateAwaitAnnounce,
		sleep:  time.Sleep,
	}
}

// State returns the current state machine position.
func (h *Handshake) State() HandshakeState { return h.state }

// Run performs the announce/acknowledge/power-on sequence and blocks through
// the settle delay. Announce timeouts and write failures are logged and the
// machine proceeds, since the device may already be initialized from an
// earlier session. Only a non-timeout read error aborts, surfaced as
// ErrNoDevice.
func (h *Handshake) Run() error {
	buf := make([]byte, 64)

	for attempt := 0; attempt < announceAttempts; attempt++ {
		n, err := h.tr.Read(buf, announceReadTimeout)
		if errors.Is(err, ErrTimeout) {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: handshake read: %v", ErrNoDevice, err)
		}
		if h.raw.Enabled() {
			h.raw.Dump("in", buf[:n])
		}

		header, err := DecodeHeader(buf[:n])
		if err != nil {
			h.logger.Debug("dropping malformed handshake frame", "error", err)
			continue
		}
		h.logger.Debug("handshake frame received",
			"command", header.Command, "sequence", header.Sequence)

		if header.Command == CmdAnnounce {
			h.state = StateAcknowledging
			h.acknowledge(header.Sequence)
		}
	}

	h.state = StatePowerOn
	frame := PowerOnFrame()
	if h.raw.Enabled() {
		h.raw.Dump("out", frame)
	}
	if _, err := h.tr.Write(frame, writeTimeout); err != nil {
		h.logger.Warn("power-on write failed, continuing", "error", err)
	} else {
		h.logger.Debug("controller powered on")
	}

	h.sleep(settleDelay)
	h.state = StateReady
	return nil
}

// acknowledge sends the ack frame echoing the announce's sequence number.
// Sequence numbers are matched per received frame; they are not monotonic
// across the session. A write failure is reported but does not stop bring-up.
func (h *Handshake) acknowledge(sequence uint8) {
	frame := AcknowledgeFrame(sequence)
	if h.raw.Enabled() {
		h.raw.Dump("out", frame)
	}
	if _, err := h.tr.Write(frame, writeTimeout); err != nil {
		h.logger.Warn("acknowledge write failed, continuing",
			"sequence", sequence, "error", err)
		return
	}
	h.logger.Debug("acknowledged announce", "sequence", sequence)
}
