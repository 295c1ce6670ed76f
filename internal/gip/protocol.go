// Package gip implements the framing and bring-up side of the vendor's Game
// Input Protocol as spoken by Xbox One controllers over USB interrupt
// transfers.
//
// A frame is a 4-byte header followed by a command-specific payload:
//
//	0: command
//	1: flags (0x20 for client-originated frames)
//	2: sequence
//	3: payload length
//
// There is no checksum. The device sends exactly one frame per transfer, so
// frames that arrive shorter than their command's payload are dropped rather
// than buffered for reassembly.
package gip

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Command identifies a GIP frame type.
type Command uint8

const (
	CmdAcknowledge Command = 0x01
	CmdAnnounce    Command = 0x02
	CmdPower       Command = 0x05
	CmdGuideButton Command = 0x07
	CmdInput       Command = 0x20
)

// FlagClient is the flags byte carried by every frame this side originates.
const FlagClient = 0x20

// HeaderSize is the fixed size of the GIP frame header.
const HeaderSize = 4

// InputPacketSize is the minimum transfer length of a full input frame:
// header plus the 12-byte input payload.
const InputPacketSize = HeaderSize + 12

func (c Command) String() string {
	switch c {
	case CmdAcknowledge:
		return "acknowledge"
	case CmdAnnounce:
		return "announce"
	case CmdPower:
		return "power"
	case CmdGuideButton:
		return "guide-button"
	case CmdInput:
		return "input"
	}
	return fmt.Sprintf("unknown(0x%02x)", uint8(c))
}

// ErrFrameTooShort is returned when a transfer is shorter than the frame
// header or the header's declared payload length.
var ErrFrameTooShort = errors.New("gip: frame too short")

// Header is the decoded GIP frame header.
type Header struct {
	Command  Command
	Flags    uint8
	Sequence uint8
	Length   uint8
}

// DecodeHeader parses the frame header from the start of a transfer buffer.
// The declared payload length must fit in the remaining buffer; otherwise the
// frame is rejected with ErrFrameTooShort.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes", ErrFrameTooShort, len(buf))
	}
	h := Header{
		Command:  Command(buf[0]),
		Flags:    buf[1],
		Sequence: buf[2],
		Length:   buf[3],
	}
	if int(h.Length) > len(buf)-HeaderSize {
		return Header{}, fmt.Errorf("%w: declared payload %d, have %d",
			ErrFrameTooShort, h.Length, len(buf)-HeaderSize)
	}
	return h, nil
}

// Button bit assignments within the input payload's 16-bit button mask.
const (
	ButtonA         uint16 = 0x0001
	ButtonB         uint16 = 0x0002
	ButtonX         uint16 = 0x0004
	ButtonY         uint16 = 0x0008
	ButtonLB        uint16 = 0x0010
	ButtonRB        uint16 = 0x0020
	ButtonLS        uint16 = 0x0040
	ButtonRS        uint16 = 0x0080
	ButtonView      uint16 = 0x0100
	ButtonMenu      uint16 = 0x0200
	ButtonDPadUp    uint16 = 0x0400
	ButtonDPadDown  uint16 = 0x0800
	ButtonDPadLeft  uint16 = 0x1000
	ButtonDPadRight uint16 = 0x2000
)

// InputPacket is the decoded payload of an input frame.
//
// Wire format (after the 4-byte header), little-endian:
//
//	Buttons: 2 bytes (u16 bitmask)
//	LT: 1 byte
//	RT: 1 byte
//	LX: 2 bytes (i16)
//	LY: 2 bytes (i16)
//	RX: 2 bytes (i16)
//	RY: 2 bytes (i16)
//
// Note the trigger and stick axis fields are stored exactly as the device
// reports them; the device swaps the trigger bytes relative to their physical
// position and reports each stick's vertical deflection in the X field. Those
// corrections belong to the translation layer, not the codec.
type InputPacket struct {
	Buttons uint16
	LT, RT  uint8
	LX, LY  int16
	RX, RY  int16
}

// UnmarshalFrame decodes an InputPacket from a complete transfer buffer
// (header included). Transfers shorter than InputPacketSize are partial and
// rejected with ErrFrameTooShort.
func (p *InputPacket) UnmarshalFrame(buf []byte) error {
	if len(buf) < InputPacketSize {
		return fmt.Errorf("%w: input frame needs %d bytes, have %d",
			ErrFrameTooShort, InputPacketSize, len(buf))
	}
	b := buf[HeaderSize:]
	p.Buttons = binary.LittleEndian.Uint16(b[0:2])
	p.LT = b[2]
	p.RT = b[3]
	p.LX = int16(binary.LittleEndian.Uint16(b[4:6]))
	p.LY = int16(binary.LittleEndian.Uint16(b[6:8]))
	p.RX = int16(binary.LittleEndian.Uint16(b[8:10]))
	p.RY = int16(binary.LittleEndian.Uint16(b[10:12]))
	return nil
}

// AcknowledgeFrame builds the acknowledge frame for a received announce,
// echoing the announce's own sequence number.
func AcknowledgeFrame(sequence uint8) []byte {
	return []byte{
		byte(CmdAcknowledge), FlagClient, sequence, 0x09,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
}

// PowerOnFrame builds the fixed power-on command frame.
func PowerOnFrame() []byte {
	return []byte{byte(CmdPower), FlagClient, 0x00, 0x01, 0x00}
}
