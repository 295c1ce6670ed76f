package translate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gipsim/internal/gip"
	"gipsim/internal/translate"
	"gipsim/pkg/mapping"
)

func triggerMapping() mapping.Mapping {
	m := mapping.Default()
	m.Sticks.LeftMode = mapping.StickDisabled
	m.Sticks.RightMode = mapping.StickDisabled
	return m
}

func TestTriggerWireSwap(t *testing.T) {
	// The byte in the wire left-trigger field carries the physical right
	// trigger. Wire LT 200 with threshold 127 fires the physical right
	// trigger only.
	cfg := triggerMapping()
	sink := &recordSink{}
	tr := translate.New(cfg, sink)

	tr.Apply(gip.InputPacket{LT: 200, RT: 50})

	require.Len(t, sink.events, 1)
	assert.Equal(t, "button", sink.events[0].kind)
	assert.Equal(t, translate.PointerRight, sink.events[0].button)
	assert.True(t, sink.events[0].pressed)

	// Releasing the wire left trigger releases the same physical trigger.
	sink.reset()
	tr.Apply(gip.InputPacket{LT: 0, RT: 50})
	require.Len(t, sink.events, 1)
	assert.Equal(t, translate.PointerRight, sink.events[0].button)
	assert.False(t, sink.events[0].pressed)
}

func TestTriggerThresholdIsExclusive(t *testing.T) {
	cfg := triggerMapping()
	cfg.Triggers.Threshold = 127
	sink := &recordSink{}
	tr := translate.New(cfg, sink)

	// Exactly at the threshold: no press.
	tr.Apply(gip.InputPacket{LT: 127})
	assert.Empty(t, sink.events)

	// One above: press.
	tr.Apply(gip.InputPacket{LT: 128})
	require.Len(t, sink.events, 1)
	assert.True(t, sink.events[0].pressed)

	// Dropping back to the threshold value releases.
	sink.reset()
	tr.Apply(gip.InputPacket{LT: 127})
	require.Len(t, sink.events, 1)
	assert.False(t, sink.events[0].pressed)
}

func TestTriggerHeldEmitsOnce(t *testing.T) {
	cfg := triggerMapping()
	sink := &recordSink{}
	tr := translate.New(cfg, sink)

	tr.Apply(gip.InputPacket{LT: 255})
	require.Len(t, sink.events, 1)

	// Analog wobble above the threshold is not a transition.
	sink.reset()
	tr.Apply(gip.InputPacket{LT: 200})
	tr.Apply(gip.InputPacket{LT: 255})
	assert.Empty(t, sink.events)
}

func TestTriggerKeyMode(t *testing.T) {
	cfg := triggerMapping()
	cfg.Triggers.RightMode = mapping.TriggerKey
	cfg.Triggers.RightKey = mapping.KeyF
	sink := &recordSink{}
	tr := translate.New(cfg, sink)

	tr.Apply(gip.InputPacket{LT: 200})
	require.Len(t, sink.events, 1)
	assert.Equal(t, sinkEvent{kind: "key", code: mapping.KeyF, pressed: true}, sink.events[0])

	sink.reset()
	tr.Apply(gip.InputPacket{LT: 0})
	require.Len(t, sink.events, 1)
	assert.Equal(t, sinkEvent{kind: "key", code: mapping.KeyF, pressed: false}, sink.events[0])
}

func TestTriggerDisabledMode(t *testing.T) {
	cfg := triggerMapping()
	cfg.Triggers.LeftMode = mapping.TriggerDisabled
	cfg.Triggers.RightMode = mapping.TriggerDisabled
	sink := &recordSink{}
	tr := translate.New(cfg, sink)

	tr.Apply(gip.InputPacket{LT: 255, RT: 255})
	tr.Apply(gip.InputPacket{LT: 0, RT: 0})
	assert.Empty(t, sink.events)
}

func TestBothTriggersIndependent(t *testing.T) {
	cfg := triggerMapping()
	sink := &recordSink{}
	tr := translate.New(cfg, sink)

	tr.Apply(gip.InputPacket{LT: 200, RT: 200})
	require.Len(t, sink.events, 2)
	// Physical right (wire LT) is evaluated before physical left (wire RT).
	assert.Equal(t, translate.PointerRight, sink.events[0].button)
	assert.Equal(t, translate.PointerLeft, sink.events[1].button)

	// Release only the physical left side.
	sink.reset()
	tr.Apply(gip.InputPacket{LT: 200, RT: 0})
	require.Len(t, sink.events, 1)
	assert.Equal(t, translate.PointerLeft, sink.events[0].button)
	assert.False(t, sink.events[0].pressed)
}
