// Package configpaths resolves where CLI configuration and mapping files may
// live, per platform.
package configpaths

import (
	"os"
	"path/filepath"
)

// DefaultConfigDir returns the per-user configuration directory for gipsim.
func DefaultConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "gipsim"), nil
}

// ConfigCandidatePaths returns the CLI config file candidates grouped by
// format, lowest priority first. An explicit user path is appended last so it
// overrides the defaults, sorted into the matching format bucket by
// extension (unknown extensions are treated as JSON).
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	var dirs []string
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	if cfgDir, err := DefaultConfigDir(); err == nil {
		dirs = append(dirs, cfgDir)
	}

	for _, dir := range dirs {
		jsonPaths = append(jsonPaths, filepath.Join(dir, "config.json"))
		yamlPaths = append(yamlPaths,
			filepath.Join(dir, "config.yaml"),
			filepath.Join(dir, "config.yml"))
		tomlPaths = append(tomlPaths, filepath.Join(dir, "config.toml"))
	}

	if userPath != "" {
		switch filepath.Ext(userPath) {
		case ".yaml", ".yml":
			yamlPaths = append(yamlPaths, userPath)
		case ".toml":
			tomlPaths = append(tomlPaths, userPath)
		default:
			jsonPaths = append(jsonPaths, userPath)
		}
	}
	return jsonPaths, yamlPaths, tomlPaths
}

// DefaultMappingPath is where the controller mapping file lives unless
// overridden on the command line.
func DefaultMappingPath() (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "mapping.toml"), nil
}
