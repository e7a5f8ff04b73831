package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Norgate-AV/jpack/internal/codes"
)

// Default configuration values
const (
	DefaultJavacPath = "javac"
	DefaultJavaPath  = "java"
	DefaultVerbose   = false
	DefaultNoHistory = false
)

// Holds the tool settings for jpack. Project settings live in jpack.toml.
type Config struct {
	// Path or name of the Java compiler
	JavacPath string

	// Path or name of the Java launcher used by run
	JavaPath string

	// Enable verbose output
	Verbose bool

	// Skip recording builds in output/history.db
	NoHistory bool
}

func Load() (*Config, error) {
	cfg := &Config{
		JavacPath: viper.GetString("javac_path"),
		JavaPath:  viper.GetString("java_path"),
		Verbose:   viper.GetBool("verbose"),
		NoHistory: viper.GetBool("no_history"),
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.JavacPath) == "" {
		return fmt.Errorf("%w: javac_path is empty", codes.ErrInvalidConfig)
	}

	if strings.TrimSpace(c.JavaPath) == "" {
		return fmt.Errorf("%w: java_path is empty", codes.ErrInvalidConfig)
	}

	// Bare names are looked up in PATH, anything else is resolved
	var err error
	if c.JavacPath, err = resolveTool(c.JavacPath); err != nil {
		return fmt.Errorf("%w: invalid javac_path: %v", codes.ErrInvalidConfig, err)
	}

	if c.JavaPath, err = resolveTool(c.JavaPath); err != nil {
		return fmt.Errorf("%w: invalid java_path: %v", codes.ErrInvalidConfig, err)
	}

	return nil
}

func resolveTool(path string) (string, error) {
	if !strings.ContainsAny(path, `/\`) {
		return path, nil
	}

	return filepath.Abs(path)
}
