package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"gipsim/internal/configpaths"
	"gipsim/pkg/mapping"
)

// Mapping groups the mapping file subcommands.
type Mapping struct {
	Init MappingInit `cmd:"" help:"Write the default mapping file"`
	Show MappingShow `cmd:"" help:"Print the effective mapping as YAML"`
}

type MappingInit struct {
	Path  string `help:"Destination path (default: the per-user mapping file)" type:"path"`
	Force bool   `help:"Overwrite an existing file"`
}

func (c *MappingInit) Run(logger *slog.Logger) error {
	path := c.Path
	if path == "" {
		p, err := configpaths.DefaultMappingPath()
		if err != nil {
			return fmt.Errorf("resolve mapping path: %w", err)
		}
		path = p
	}

	if !c.Force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("mapping file %s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create mapping directory: %w", err)
	}

	if err := mapping.Save(path, mapping.Default()); err != nil {
		return err
	}
	logger.Info("default mapping written", "path", path)
	return nil
}

type MappingShow struct {
	Path string `help:"Mapping file to show (default: the per-user mapping file)" type:"path"`
}

func (c *MappingShow) Run(_ *slog.Logger) error {
	path := c.Path
	if path == "" {
		p, err := configpaths.DefaultMappingPath()
		if err != nil {
			return fmt.Errorf("resolve mapping path: %w", err)
		}
		path = p
	}

	m, err := mapping.Load(path)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode mapping: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}
