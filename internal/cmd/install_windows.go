//go:build windows

package cmd

import (
	"fmt"
	"log/slog"

	"golang.org/x/sys/windows/registry"
)

const (
	runKeyPath  = `Software\Microsoft\Windows\CurrentVersion\Run`
	runValueKey = "gipsim"
)

func install(logger *slog.Logger) error {
	exePath, err := currentExecutable()
	if err != nil {
		return err
	}

	value := fmt.Sprintf("%q run --tray", exePath)
	key, _, err := registry.CreateKey(registry.CURRENT_USER, runKeyPath, registry.ALL_ACCESS)
	if err != nil {
		return err
	}
	defer key.Close()

	if err := key.SetStringValue(runValueKey, value); err != nil {
		return err
	}

	logger.Info("gipsim installed for Windows autorun", "exe", exePath)
	return nil
}

func uninstall(logger *slog.Logger) error {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		if err == registry.ErrNotExist {
			return nil
		}
		return err
	}
	defer key.Close()

	if err := key.DeleteValue(runValueKey); err != nil && err != registry.ErrNotExist {
		return err
	}

	logger.Info("gipsim autorun entry removed")
	return nil
}
