package gip

import (
	"errors"
	"time"
)

// ErrTimeout reports that a transfer did not complete within its timeout.
// During steady-state reads this is not a failure: it simply means no new
// frame arrived this cycle.
var ErrTimeout = errors.New("gip: transfer timed out")

// ErrNoDevice reports that the device is gone (unplugged, or the transfer
// failed in a way that is not a timeout). It is fatal to the session.
var ErrNoDevice = errors.New("gip: device unavailable")

// Transport is the synchronous, timeout-bounded byte transfer primitive the
// protocol layer runs on. Implementations map their native error space onto
// ErrTimeout and ErrNoDevice; any other error is treated like ErrNoDevice.
type Transport interface {
	// Read fills buf from the device's interrupt IN endpoint and returns the
	// number of bytes transferred.
	Read(buf []byte, timeout time.Duration) (int, error)

	// Write sends data to the device's interrupt OUT endpoint.
	Write(data []byte, timeout time.Duration) (int, error)
}
