//go:build linux

package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const unitName = "gipsim.service"

const unitTemplate = `[Unit]
Description=gipsim controller to keyboard/mouse translation

[Service]
ExecStart=%s run --tray
Restart=on-failure
RestartSec=5

[Install]
WantedBy=default.target
`

func install(logger *slog.Logger) error {
	exePath, err := currentExecutable()
	if err != nil {
		return err
	}

	unitPath, err := userUnitPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(unitPath), 0o755); err != nil {
		return fmt.Errorf("create systemd user directory: %w", err)
	}

	unit := fmt.Sprintf(unitTemplate, exePath)
	if err := os.WriteFile(unitPath, []byte(unit), 0o644); err != nil {
		return fmt.Errorf("write unit file: %w", err)
	}

	if err := systemctl(logger, "daemon-reload"); err != nil {
		return err
	}
	if err := systemctl(logger, "enable", "--now", unitName); err != nil {
		return err
	}

	logger.Info("gipsim installed as systemd user service", "unit", unitPath)
	return nil
}

func uninstall(logger *slog.Logger) error {
	unitPath, err := userUnitPath()
	if err != nil {
		return err
	}

	// Best effort: the unit may never have been enabled.
	_ = systemctl(logger, "disable", "--now", unitName)

	if err := os.Remove(unitPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove unit file: %w", err)
	}
	_ = systemctl(logger, "daemon-reload")

	logger.Info("gipsim systemd user service removed")
	return nil
}

func userUnitPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "systemd", "user", unitName), nil
}

func systemctl(logger *slog.Logger, args ...string) error {
	cmd := exec.Command("systemctl", append([]string{"--user"}, args...)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("systemctl --user %s: %w: %s",
			strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}
