package cmd

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Norgate-AV/jpack/internal/build"
	"github.com/Norgate-AV/jpack/internal/codes"
	"github.com/Norgate-AV/jpack/internal/config"
	"github.com/Norgate-AV/jpack/internal/layout"
	"github.com/Norgate-AV/jpack/internal/manifest"
)

// project is everything a command needs to operate on one jpack project
type project struct {
	root     string
	manifest *manifest.Manifest
	config   *config.Config
	build    build.Configuration
	logger   *log.Logger
}

// workDir returns --directory, or the current working directory
func workDir(cmd *cobra.Command) (string, error) {
	dir, _ := cmd.Flags().GetString("directory")
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", codes.FSError("determine", "working directory", err)
		}

		return wd, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", codes.FSError("resolve", dir, err)
	}

	return abs, nil
}

// loadToolConfig loads tool configuration for the project at root
func loadToolConfig(cmd *cobra.Command, root string) (*config.Config, error) {
	loader := config.NewLoader()
	loader.ConfigFile, _ = cmd.Flags().GetString("config")

	return loader.LoadForProject(cmd, root)
}

// loadProject reads tool config and jpack.toml for the working directory
func loadProject(cmd *cobra.Command) (*project, error) {
	root, err := workDir(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := loadToolConfig(cmd, root)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cmd, cfg.Verbose)

	m, err := manifest.Load(layout.New(root).Manifest())
	if err != nil {
		return nil, err
	}

	p := &project{
		root:     root,
		manifest: m,
		config:   cfg,
		build:    m.Configuration(root),
		logger:   logger,
	}

	logger.Debug("loaded project", "root", root, "name", m.Package.Name, "package", p.build.BasePackage)

	return p, nil
}

// reload re-reads jpack.toml, keeping the previous manifest on failure
func (p *project) reload() error {
	m, err := manifest.Load(layout.New(p.root).Manifest())
	if err != nil {
		return err
	}

	p.manifest = m
	p.build = m.Configuration(p.root)

	return nil
}

func newLogger(cmd *cobra.Command, verbose bool) *log.Logger {
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "jpack",
	})

	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	return logger
}
