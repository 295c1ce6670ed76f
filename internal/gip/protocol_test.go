package gip_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gipsim/internal/gip"
)

func TestDecodeHeader(t *testing.T) {
	type testCase struct {
		name    string
		buf     []byte
		want    gip.Header
		wantErr error
	}

	cases := []testCase{
		{
			name: "input frame",
			buf:  []byte{0x20, 0x00, 0x07, 0x0c, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			want: gip.Header{Command: gip.CmdInput, Flags: 0x00, Sequence: 0x07, Length: 0x0c},
		},
		{
			name: "announce frame",
			buf:  []byte{0x02, 0x20, 0x01, 0x00},
			want: gip.Header{Command: gip.CmdAnnounce, Flags: 0x20, Sequence: 0x01, Length: 0x00},
		},
		{
			name: "unknown command is still decodable",
			buf:  []byte{0xf3, 0x00, 0x00, 0x00},
			want: gip.Header{Command: gip.Command(0xf3)},
		},
		{
			name:    "empty buffer",
			buf:     nil,
			wantErr: gip.ErrFrameTooShort,
		},
		{
			name:    "three bytes",
			buf:     []byte{0x20, 0x00, 0x01},
			wantErr: gip.ErrFrameTooShort,
		},
		{
			name:    "declared payload exceeds buffer",
			buf:     []byte{0x20, 0x00, 0x00, 0x0c, 0x00, 0x00},
			wantErr: gip.ErrFrameTooShort,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, err := gip.DecodeHeader(tc.buf)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, h)
		})
	}
}

func TestInputPacketUnmarshalFrame(t *testing.T) {
	frame := []byte{
		0x20, 0x00, 0x01, 0x0c, // header
		0x01, 0x00, // buttons: A
		200, 50, // LT, RT (wire order)
		0x00, 0x00, // LX = 0
		0x20, 0x4e, // LY = 20000
		0xff, 0x7f, // RX = 32767
		0x00, 0x80, // RY = -32768
	}

	var pkt gip.InputPacket
	require.NoError(t, pkt.UnmarshalFrame(frame))

	assert.Equal(t, gip.ButtonA, pkt.Buttons)
	assert.Equal(t, uint8(200), pkt.LT)
	assert.Equal(t, uint8(50), pkt.RT)
	assert.Equal(t, int16(0), pkt.LX)
	assert.Equal(t, int16(20000), pkt.LY)
	assert.Equal(t, int16(32767), pkt.RX)
	assert.Equal(t, int16(-32768), pkt.RY)
}

func TestInputPacketPartialFrameDropped(t *testing.T) {
	// One byte short of a full input frame.
	frame := make([]byte, gip.InputPacketSize-1)
	frame[0] = byte(gip.CmdInput)

	var pkt gip.InputPacket
	assert.ErrorIs(t, pkt.UnmarshalFrame(frame), gip.ErrFrameTooShort)
}

func TestAcknowledgeFrame(t *testing.T) {
	frame := gip.AcknowledgeFrame(0x2a)

	want := []byte{
		0x01, 0x20, 0x2a, 0x09,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	assert.Equal(t, want, frame)
}

func TestPowerOnFrame(t *testing.T) {
	assert.Equal(t, []byte{0x05, 0x20, 0x00, 0x01, 0x00}, gip.PowerOnFrame())
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "announce", gip.CmdAnnounce.String())
	assert.Equal(t, "input", gip.CmdInput.String())
	assert.Equal(t, "unknown(0xf3)", gip.Command(0xf3).String())
}
