package simulator_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gipsim/internal/gip"
	"gipsim/internal/log"
	"gipsim/internal/simulator"
	"gipsim/internal/translate"
	"gipsim/pkg/mapping"
)

// scriptedTransport replays a fixed sequence of read results. Once the script
// is exhausted it fails the read, which ends the loop under test.
type scriptedTransport struct {
	reads []readResult
	pos   int
}

type readResult struct {
	data []byte
	err  error
}

func (t *scriptedTransport) Read(buf []byte, _ time.Duration) (int, error) {
	if t.pos >= len(t.reads) {
		return 0, gip.ErrNoDevice
	}
	r := t.reads[t.pos]
	t.pos++
	if r.err != nil {
		return 0, r.err
	}
	return copy(buf, r.data), nil
}

func (t *scriptedTransport) Write(data []byte, _ time.Duration) (int, error) {
	return len(data), nil
}

// keySink records key transitions only; pointer events are not exercised here.
type keySink struct {
	presses  []uint16
	releases []uint16
}

func (s *keySink) EmitKey(code uint16, pressed bool) {
	if pressed {
		s.presses = append(s.presses, code)
	} else {
		s.releases = append(s.releases, code)
	}
}

func (s *keySink) EmitPointerButton(translate.PointerButton, bool) {}

func (s *keySink) EmitPointerDelta(float32, float32) {}

// inputFrame builds a complete input report with the given button mask and
// everything else centered.
func inputFrame(seq uint8, buttons uint16) []byte {
	frame := make([]byte, gip.InputPacketSize)
	frame[0] = byte(gip.CmdInput)
	frame[1] = gip.FlagClient
	frame[2] = seq
	frame[3] = gip.InputPacketSize - gip.HeaderSize
	frame[4] = byte(buttons)
	frame[5] = byte(buttons >> 8)
	return frame
}

func buttonOnlyMapping() mapping.Mapping {
	m := mapping.Default()
	m.Sticks.LeftMode = mapping.StickDisabled
	m.Sticks.RightMode = mapping.StickDisabled
	m.Triggers.LeftMode = mapping.TriggerDisabled
	m.Triggers.RightMode = mapping.TriggerDisabled
	return m
}

func newTestSimulator(tr gip.Transport, cfg mapping.Mapping) (*simulator.Simulator, *keySink) {
	sink := &keySink{}
	translator := translate.New(cfg, sink)
	sim := simulator.New(tr, translator, slog.New(slog.NewTextHandler(io.Discard, nil)), log.NewRaw(nil))
	return sim, sink
}

func TestRunTranslatesInputFrames(t *testing.T) {
	cfg := buttonOnlyMapping()
	tr := &scriptedTransport{reads: []readResult{
		{data: inputFrame(1, gip.ButtonA)},
		{data: inputFrame(2, 0)},
	}}
	sim, sink := newTestSimulator(tr, cfg)

	err := sim.Run(context.Background())
	require.ErrorIs(t, err, simulator.ErrDeviceLost)

	assert.Equal(t, []uint16{cfg.Buttons.A}, sink.presses)
	assert.Equal(t, []uint16{cfg.Buttons.A}, sink.releases)
}

func TestRunSkipsTimeouts(t *testing.T) {
	cfg := buttonOnlyMapping()
	tr := &scriptedTransport{reads: []readResult{
		{err: gip.ErrTimeout},
		{err: gip.ErrTimeout},
		{data: inputFrame(1, gip.ButtonB)},
	}}
	sim, sink := newTestSimulator(tr, cfg)

	err := sim.Run(context.Background())
	require.ErrorIs(t, err, simulator.ErrDeviceLost)
	assert.Equal(t, []uint16{cfg.Buttons.B}, sink.presses)
}

func TestRunDropsMalformedAndUnknownFrames(t *testing.T) {
	cfg := buttonOnlyMapping()
	tr := &scriptedTransport{reads: []readResult{
		{data: []byte{0x20}},                               // truncated header
		{data: []byte{0x20, 0x20, 0x01, 0x02, 0x00, 0x00}}, // partial input payload
		{data: []byte{0x7f, 0x20, 0x01, 0x00}},             // unknown command
		{data: []byte{byte(gip.CmdGuideButton), 0x20, 0x01, 0x00}},
		{data: inputFrame(2, gip.ButtonX)},
	}}
	sim, sink := newTestSimulator(tr, cfg)

	err := sim.Run(context.Background())
	require.ErrorIs(t, err, simulator.ErrDeviceLost)
	assert.Equal(t, []uint16{cfg.Buttons.X}, sink.presses)
}

func TestRunReleasesHeldKeysOnDeviceLoss(t *testing.T) {
	// The device disappears while A is held; the release pass must still run.
	cfg := buttonOnlyMapping()
	tr := &scriptedTransport{reads: []readResult{
		{data: inputFrame(1, gip.ButtonA)},
		{err: gip.ErrNoDevice},
	}}
	sim, sink := newTestSimulator(tr, cfg)

	err := sim.Run(context.Background())
	require.ErrorIs(t, err, simulator.ErrDeviceLost)

	assert.Equal(t, []uint16{cfg.Buttons.A}, sink.presses)
	assert.Equal(t, []uint16{cfg.Buttons.A}, sink.releases)
}

func TestRunReturnsNilOnCancellation(t *testing.T) {
	cfg := buttonOnlyMapping()
	tr := &scriptedTransport{}
	sim, _ := newTestSimulator(tr, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, sim.Run(ctx))
}

func TestRunPausedSkipsTranslation(t *testing.T) {
	cfg := buttonOnlyMapping()
	tr := &scriptedTransport{reads: []readResult{
		{data: inputFrame(1, gip.ButtonA)},
		{data: inputFrame(2, gip.ButtonA | gip.ButtonB)},
	}}
	sim, sink := newTestSimulator(tr, cfg)
	sim.SetPaused(true)

	err := sim.Run(context.Background())
	require.ErrorIs(t, err, simulator.ErrDeviceLost)
	assert.Empty(t, sink.presses)
	assert.Empty(t, sink.releases)
}

func TestPauseReleasesHeldKeys(t *testing.T) {
	// Pausing between frames releases what the first frame pressed, and the
	// frame arriving during the pause is ignored.
	cfg := buttonOnlyMapping()
	sink := &keySink{}
	translator := translate.New(cfg, sink)

	pausing := &pauseAfterFirstRead{
		inner: &scriptedTransport{reads: []readResult{
			{data: inputFrame(1, gip.ButtonA)},
			{data: inputFrame(2, gip.ButtonB)},
		}},
	}
	sim := simulator.New(pausing, translator, slog.New(slog.NewTextHandler(io.Discard, nil)), log.NewRaw(nil))
	pausing.sim = sim

	err := sim.Run(context.Background())
	require.ErrorIs(t, err, simulator.ErrDeviceLost)

	assert.Equal(t, []uint16{cfg.Buttons.A}, sink.presses)
	assert.Equal(t, []uint16{cfg.Buttons.A}, sink.releases)
}

// pauseAfterFirstRead flips the simulator into pause right after the first
// successful read, so the next loop iteration observes the transition.
type pauseAfterFirstRead struct {
	inner *scriptedTransport
	sim   *simulator.Simulator
	done  bool
}

func (t *pauseAfterFirstRead) Read(buf []byte, timeout time.Duration) (int, error) {
	n, err := t.inner.Read(buf, timeout)
	if err == nil && !t.done {
		t.done = true
		t.sim.SetPaused(true)
	}
	return n, err
}

func (t *pauseAfterFirstRead) Write(data []byte, timeout time.Duration) (int, error) {
	return t.inner.Write(data, timeout)
}
