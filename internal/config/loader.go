package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Norgate-AV/jpack/internal/codes"
)

// Loader handles configuration loading from various sources
type Loader struct {
	// GlobalDir holds config.{yml,yaml,json,toml}. Empty disables global config.
	GlobalDir string

	// ConfigFile replaces the local config lookup when set (--config)
	ConfigFile string
}

// NewLoader creates a new configuration loader using <UserConfigDir>/jpack
func NewLoader() *Loader {
	l := &Loader{}

	if dir, err := os.UserConfigDir(); err == nil {
		l.GlobalDir = filepath.Join(dir, "jpack")
	}

	return l
}

// LoadForProject loads configuration for a command operating on projectRoot.
// Later sources override earlier ones: defaults, global, local, flags.
func (l *Loader) LoadForProject(cmd *cobra.Command, projectRoot string) (*Config, error) {
	l.setupViperDefaults()

	if err := l.loadGlobalConfig(); err != nil {
		return nil, err
	}

	if err := l.loadLocalConfig(projectRoot); err != nil {
		return nil, err
	}

	l.bindCommandFlags(cmd)

	return Load()
}

// setupViperDefaults sets up default values for viper
func (l *Loader) setupViperDefaults() {
	viper.SetDefault("javac_path", DefaultJavacPath)
	viper.SetDefault("java_path", DefaultJavaPath)
	viper.SetDefault("verbose", DefaultVerbose)
	viper.SetDefault("no_history", DefaultNoHistory)
}

// loadGlobalConfig loads the user-wide config file, if any
func (l *Loader) loadGlobalConfig() error {
	globalPath := FindGlobalConfig(l.GlobalDir)
	if globalPath == "" {
		return nil
	}

	return mergeConfigFile(globalPath)
}

// loadLocalConfig merges --config or the nearest .jpack.* above projectRoot
func (l *Loader) loadLocalConfig(projectRoot string) error {
	localPath := l.ConfigFile
	if localPath == "" && projectRoot != "" {
		abs, err := filepath.Abs(projectRoot)
		if err != nil {
			return nil // silently ignore, the project itself will fail to load
		}

		localPath = FindLocalConfig(abs)
	}

	if localPath == "" {
		return nil
	}

	return mergeConfigFile(localPath)
}

func mergeConfigFile(path string) error {
	viper.SetConfigFile(path)

	if err := viper.MergeInConfig(); err != nil {
		return fmt.Errorf("%w: failed to read %s: %v", codes.ErrInvalidConfig, path, err)
	}

	return nil
}

// bindCommandFlags binds command flags to viper
func (l *Loader) bindCommandFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	bind := func(key, flag string) {
		if f := cmd.Flags().Lookup(flag); f != nil {
			_ = viper.BindPFlag(key, f)
		}
	}

	bind("verbose", "verbose")
	bind("no_history", "no-history")
	bind("javac_path", "javac")
	bind("java_path", "java")
}
