//go:build linux

package sink

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"gipsim/internal/translate"
	"gipsim/pkg/mapping"
)

// uinput ABI constants (linux/uinput.h, linux/input-event-codes.h).
const (
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502
	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565
	uiSetRelBit  = 0x40045566

	evSyn = 0x00
	evKey = 0x01
	evRel = 0x02

	relX = 0x00
	relY = 0x01

	synReport = 0

	btnLeft   = 0x110
	btnRight  = 0x111
	btnMiddle = 0x112

	busUSB = 0x03

	maxNameSize  = 80
	absArraySize = 64
)

type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

type userDev struct {
	Name         [maxNameSize]byte
	ID           inputID
	FfEffectsMax uint32
	Absmax       [absArraySize]int32
	Absmin       [absArraySize]int32
	Absfuzz      [absArraySize]int32
	Absflat      [absArraySize]int32
}

type inputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// UinputSink injects events through a virtual keyboard+mouse created via
// /dev/uinput. Pointer motion is always relative; the streaming flag is
// accepted for interface parity with sinks that can reposition absolutely.
type UinputSink struct {
	f      *os.File
	logger *slog.Logger

	// Fractional pointer remainders. uinput deltas are integers; carrying
	// the remainder across flushes keeps sub-pixel motion from being lost.
	fracX float64
	fracY float64
}

// NewUinput creates the virtual device. It requires write access to
// /dev/uinput (typically root or an input-group udev rule).
func NewUinput(logger *slog.Logger, streaming bool) (*UinputSink, error) {
	f, err := os.OpenFile("/dev/uinput", os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("open /dev/uinput: %w", err)
	}
	if streaming {
		logger.Debug("streaming mode requested; uinput pointer motion is relative either way")
	}

	if err := ioctl(f, uiSetEvBit, evKey); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("register key events: %w", err)
	}
	for code := 1; code <= mapping.MaxKeycode; code++ {
		if err := ioctl(f, uiSetKeyBit, uintptr(code)); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("register keycode %d: %w", code, err)
		}
	}
	for _, btn := range []int{btnLeft, btnRight, btnMiddle} {
		if err := ioctl(f, uiSetKeyBit, uintptr(btn)); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("register button %#x: %w", btn, err)
		}
	}

	if err := ioctl(f, uiSetEvBit, evRel); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("register relative events: %w", err)
	}
	for _, axis := range []int{relX, relY} {
		if err := ioctl(f, uiSetRelBit, uintptr(axis)); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("register relative axis %d: %w", axis, err)
		}
	}

	dev := userDev{
		ID: inputID{Bustype: busUSB, Vendor: 0x045e, Product: 0x02dd, Version: 1},
	}
	copy(dev.Name[:], "gipsim virtual input")
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, dev); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("encode device definition: %w", err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write device definition: %w", err)
	}
	if err := ioctl(f, uiDevCreate, 0); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create uinput device: %w", err)
	}

	// The device node takes a moment to appear before events are accepted.
	time.Sleep(200 * time.Millisecond)

	return &UinputSink{f: f, logger: logger}, nil
}

func (s *UinputSink) EmitKey(code uint16, pressed bool) {
	s.writeEvent(evKey, code, pressState(pressed))
	s.writeEvent(evSyn, synReport, 0)
}

func (s *UinputSink) EmitPointerButton(button translate.PointerButton, pressed bool) {
	var code uint16
	switch button {
	case translate.PointerLeft:
		code = btnLeft
	case translate.PointerRight:
		code = btnRight
	case translate.PointerMiddle:
		code = btnMiddle
	default:
		return
	}
	s.writeEvent(evKey, code, pressState(pressed))
	s.writeEvent(evSyn, synReport, 0)
}

func (s *UinputSink) EmitPointerDelta(dx, dy float32) {
	s.fracX += float64(dx)
	s.fracY += float64(dy)
	ix := int32(math.Trunc(s.fracX))
	iy := int32(math.Trunc(s.fracY))
	if ix == 0 && iy == 0 {
		return
	}
	s.fracX -= float64(ix)
	s.fracY -= float64(iy)

	if ix != 0 {
		s.writeEvent(evRel, relX, ix)
	}
	if iy != 0 {
		s.writeEvent(evRel, relY, iy)
	}
	s.writeEvent(evSyn, synReport, 0)
}

// Close destroys the virtual device.
func (s *UinputSink) Close() error {
	if err := ioctl(s.f, uiDevDestroy, 0); err != nil {
		_ = s.f.Close()
		return fmt.Errorf("destroy uinput device: %w", err)
	}
	return s.f.Close()
}

func (s *UinputSink) writeEvent(typ, code uint16, value int32) {
	ev := inputEvent{Type: typ, Code: code, Value: value}
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, ev); err != nil {
		s.logger.Error("encode input event", "error", err)
		return
	}
	if _, err := s.f.Write(buf.Bytes()); err != nil {
		s.logger.Error("write input event", "type", typ, "code", code, "error", err)
	}
}

func pressState(pressed bool) int32 {
	if pressed {
		return 1
	}
	return 0
}

func ioctl(f *os.File, request, arg uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), request, arg)
	if errno != 0 {
		return errno
	}
	return nil
}
