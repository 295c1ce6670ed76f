// Package config defines the CLI structure for gipsim.
package config

import (
	"gipsim/internal/cmd"
)

type Log struct {
	Level   string `help:"Log level: trace, debug, info, warn, error" default:"info" env:"GIPSIM_LOG_LEVEL"`
	File    string `help:"Log file path (default: none; logs only to console)" env:"GIPSIM_LOG_FILE"`
	RawFile string `help:"Raw GIP frame log file path (default: none)" env:"GIPSIM_LOG_RAW_FILE"`
}

// CLI is the root command structure for Kong CLI parsing.
type CLI struct {
	Log `embed:"" prefix:"log."`

	Run       cmd.Run       `cmd:"" default:"withargs" help:"Translate controller input to keyboard and mouse"`
	Mapping   cmd.Mapping   `cmd:"" help:"Inspect or create the controller mapping file"`
	Install   cmd.Install   `cmd:"" help:"Register gipsim to start at login"`
	Uninstall cmd.Uninstall `cmd:"" help:"Remove the login startup registration"`
}
