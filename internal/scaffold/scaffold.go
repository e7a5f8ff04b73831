// Package scaffold creates new jpack projects.
package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Norgate-AV/jpack/internal/codes"
	"github.com/Norgate-AV/jpack/internal/layout"
	"github.com/Norgate-AV/jpack/internal/manifest"
)

var (
	// ErrProjectExists is returned by New when the destination already exists
	ErrProjectExists = errors.New("destination already exists")

	// ErrAlreadyInitialized is returned by Init when jpack.toml already exists
	ErrAlreadyInitialized = errors.New("jpack.toml already exists in current directory")
)

// Kind returns "lib" or "app" for status messages
func Kind(lib bool) string {
	if lib {
		return "lib"
	}

	return "app"
}

// New creates parent/name and scaffolds a project in it
func New(parent, name string, lib bool) (string, error) {
	if err := manifest.ValidateName(name); err != nil {
		return "", err
	}

	dir := filepath.Join(parent, name)
	if _, err := os.Stat(dir); err == nil {
		return "", fmt.Errorf("%w: %s", ErrProjectExists, name)
	}

	if err := os.Mkdir(dir, 0o755); err != nil {
		return "", codes.FSError("create directory", dir, err)
	}

	if err := Create(dir, name, lib); err != nil {
		return "", err
	}

	return dir, nil
}

// Init scaffolds a project in an existing directory named after the project
func Init(dir string, lib bool) (string, error) {
	if _, err := os.Stat(layout.New(dir).Manifest()); err == nil {
		return "", ErrAlreadyInitialized
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", codes.FSError("resolve", dir, err)
	}

	name := filepath.Base(abs)
	if err := manifest.ValidateName(name); err != nil {
		return "", err
	}

	if err := Create(abs, name, lib); err != nil {
		return "", err
	}

	return name, nil
}

// Create writes jpack.toml, src/, test/, sample sources and .gitignore into dir
func Create(dir, name string, lib bool) error {
	basePackage := manifest.DeriveBasePackage(name)

	m := manifest.NewApp(name)
	if lib {
		m = manifest.NewLib(name, basePackage)
	}

	data, err := m.Marshal()
	if err != nil {
		return err
	}

	l := layout.New(dir)
	if err := writeFile(l.Manifest(), string(data)); err != nil {
		return err
	}

	for _, d := range []string{l.Sources(), filepath.Join(dir, layout.TestDir)} {
		if err := os.Mkdir(d, 0o755); err != nil && !errors.Is(err, os.ErrExist) {
			return codes.FSError("create directory", d, err)
		}
	}

	files := map[string]string{
		filepath.Join(layout.SourceDir, "Main.java"):   mainJava(basePackage),
		filepath.Join(layout.TestDir, "MainTest.java"): mainTestJava(basePackage),
	}
	if lib {
		files = map[string]string{
			filepath.Join(layout.SourceDir, "Lib.java"):   libJava(basePackage, name),
			filepath.Join(layout.TestDir, "LibTest.java"): libTestJava(basePackage, name),
		}
	}
	files[".gitignore"] = layout.OutputDir + "/\n"

	// Existing files are left alone
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		if _, err := os.Stat(path); err == nil {
			continue
		}

		if err := writeFile(path, content); err != nil {
			return err
		}
	}

	return nil
}

func writeFile(path, content string) error {
	return codes.FSError("write", path, os.WriteFile(path, []byte(content), 0o644))
}
