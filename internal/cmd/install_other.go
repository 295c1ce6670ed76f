//go:build !linux && !windows

package cmd

import (
	"errors"
	"log/slog"
)

func install(_ *slog.Logger) error {
	return errors.New("install is not supported on this platform")
}

func uninstall(_ *slog.Logger) error {
	return errors.New("uninstall is not supported on this platform")
}
