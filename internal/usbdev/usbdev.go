// Package usbdev opens an Xbox One controller over libusb and exposes its
// interrupt endpoints as a gip.Transport. It is the only package that knows
// about USB enumeration; everything above it speaks gip.Transport.
package usbdev

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/gousb"

	"gipsim/internal/gip"
)

const vendorMicrosoft = 0x045e

// Wired Xbox One controller revisions, in probe order.
var productIDs = []gousb.ID{
	0x02d1, // Xbox One
	0x02dd, // Xbox One S
	0x02ea, // Xbox One X
	0x02e3, // Xbox One Elite
}

// ErrNotFound reports that no compatible controller is plugged in.
var ErrNotFound = errors.New("usbdev: no compatible controller found")

// Device is an opened controller. It implements gip.Transport.
type Device struct {
	ctx  *gousb.Context
	dev  *gousb.Device
	cfg  *gousb.Config
	intf *gousb.Interface
	in   *gousb.InEndpoint
	out  *gousb.OutEndpoint
}

// Open probes the known product IDs and claims the first controller found:
// configuration 1, interface 0, interrupt endpoint 1 in each direction. The
// kernel driver, if any, is detached automatically.
func Open(logger *slog.Logger) (*Device, error) {
	ctx := gousb.NewContext()

	for _, pid := range productIDs {
		dev, err := ctx.OpenDeviceWithVIDPID(vendorMicrosoft, pid)
		if err != nil || dev == nil {
			continue
		}
		logger.Debug("found controller", "vid", fmt.Sprintf("%#4x", vendorMicrosoft), "pid", fmt.Sprintf("%#4x", uint16(pid)))

		if err := dev.SetAutoDetach(true); err != nil {
			logger.Warn("could not enable kernel driver auto-detach", "error", err)
		}

		cfg, err := dev.Config(1)
		if err != nil {
			dev.Close()
			continue
		}
		intf, err := cfg.Interface(0, 0)
		if err != nil {
			cfg.Close()
			dev.Close()
			continue
		}
		in, err := intf.InEndpoint(1)
		if err != nil {
			intf.Close()
			cfg.Close()
			dev.Close()
			continue
		}
		out, err := intf.OutEndpoint(1)
		if err != nil {
			intf.Close()
			cfg.Close()
			dev.Close()
			continue
		}

		return &Device{ctx: ctx, dev: dev, cfg: cfg, intf: intf, in: in, out: out}, nil
	}

	_ = ctx.Close()
	return nil, ErrNotFound
}

// Read performs one interrupt IN transfer bounded by timeout.
func (d *Device) Read(buf []byte, timeout time.Duration) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	n, err := d.in.ReadContext(ctx, buf)
	return n, mapTransferError(err)
}

// Write performs one interrupt OUT transfer bounded by timeout.
func (d *Device) Write(data []byte, timeout time.Duration) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	n, err := d.out.WriteContext(ctx, data)
	return n, mapTransferError(err)
}

// mapTransferError folds gousb's error space onto the two outcomes the
// protocol layer distinguishes: timed out, or device gone.
func mapTransferError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, gousb.ErrorTimeout) {
		return gip.ErrTimeout
	}
	return fmt.Errorf("%w: %v", gip.ErrNoDevice, err)
}

// Close releases the interface and all USB handles.
func (d *Device) Close() error {
	if d.intf != nil {
		d.intf.Close()
	}
	if d.cfg != nil {
		_ = d.cfg.Close()
	}
	if d.dev != nil {
		_ = d.dev.Close()
	}
	if d.ctx != nil {
		return d.ctx.Close()
	}
	return nil
}
