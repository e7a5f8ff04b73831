package config

import (
	"os"
	"path/filepath"
)

// ConfigExtensions are the file formats accepted for global and local config
var ConfigExtensions = []string{"yml", "yaml", "json", "toml"}

// FindLocalConfig finds local config file by walking up directories
func FindLocalConfig(dir string) string {
	for {
		for _, ext := range ConfigExtensions {
			path := filepath.Join(dir, ".jpack."+ext)

			if _, err := os.Stat(path); err == nil {
				return path
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	return ""
}

// FindGlobalConfig returns the first config.<ext> in dir, or ""
func FindGlobalConfig(dir string) string {
	if dir == "" {
		return ""
	}

	for _, ext := range ConfigExtensions {
		path := filepath.Join(dir, "config."+ext)

		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
