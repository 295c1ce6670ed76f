package mapping_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gipsim/pkg/mapping"
)

func TestDefault(t *testing.T) {
	m := mapping.Default()

	assert.Equal(t, mapping.StickKeys, m.Sticks.LeftMode)
	assert.Equal(t, mapping.StickMouse, m.Sticks.RightMode)
	assert.Equal(t, mapping.TriggerMouse, m.Triggers.LeftMode)
	assert.Equal(t, mapping.TriggerMouse, m.Triggers.RightMode)

	assert.Equal(t, mapping.KeySpace, m.Buttons.A)
	assert.Equal(t, mapping.KeyUp, m.Buttons.DPadUp)
	assert.Equal(t, mapping.KeyW, m.Sticks.LeftKeys.Up)

	assert.Equal(t, int16(8000), m.Sticks.Deadzone)
	assert.Equal(t, uint8(127), m.Triggers.Threshold)
	assert.InDelta(t, 1.5, m.Sticks.Sensitivity, 0.0001)
	assert.InDelta(t, 1.8, m.Sticks.Curve, 0.0001)
	assert.False(t, m.StreamingMode)
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	m, err := mapping.Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, mapping.Default(), m)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.toml")

	want := mapping.Default()
	want.Buttons.A = mapping.KeyEnter
	want.Sticks.LeftMode = mapping.StickArrows
	want.Sticks.Sensitivity = 2.25
	want.Sticks.Deadzone = 4000
	want.Triggers.RightMode = mapping.TriggerKey
	want.Triggers.RightKey = mapping.KeyX
	want.Triggers.Threshold = 200
	want.StreamingMode = true

	require.NoError(t, mapping.Save(path, want))

	got, err := mapping.Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	// A file that only overrides one table leaves everything else at the
	// built-in values.
	path := filepath.Join(t.TempDir(), "mapping.toml")
	content := "[sticks]\ndeadzone = 1234\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	m, err := mapping.Load(path)
	require.NoError(t, err)
	assert.Equal(t, int16(1234), m.Sticks.Deadzone)
	assert.Equal(t, mapping.Default().Buttons, m.Buttons)
	assert.Equal(t, mapping.Default().Triggers, m.Triggers)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0o644))

	_, err := mapping.Load(path)
	assert.Error(t, err)
}

func TestArrowKeysPreset(t *testing.T) {
	keys := mapping.ArrowKeys()
	assert.Equal(t, mapping.KeyUp, keys.Up)
	assert.Equal(t, mapping.KeyDown, keys.Down)
	assert.Equal(t, mapping.KeyLeft, keys.Left)
	assert.Equal(t, mapping.KeyRight, keys.Right)
}
