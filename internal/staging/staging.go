// Package staging builds the synthetic package root handed to javac.
//
// Projects keep every source file flat in src/, but javac resolves a class
// com.example.Foo by looking for com/example/Foo.java under -sourcepath.
// Build recreates output/src-root and mounts src/ at the directory matching
// the base package, so output/src-root/com/example resolves to src/.
package staging

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Norgate-AV/jpack/internal/codes"
	"github.com/Norgate-AV/jpack/internal/layout"
	"github.com/Norgate-AV/jpack/internal/utils"
)

// Builder recreates the staged root for a project
type Builder struct {
	mounter Mounter
	logger  *log.Logger
}

// NewBuilder creates a staging builder. A nil mounter selects DefaultMounter.
func NewBuilder(mounter Mounter, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	if mounter == nil {
		m := DefaultMounter()
		m.OnFallback = func(err error) {
			logger.Debug("symlink unavailable, copying sources", "err", err)
		}
		mounter = m
	}

	return &Builder{mounter: mounter, logger: logger}
}

// Build tears down and recreates output/src-root for basePackage and returns
// the staged root path
func (b *Builder) Build(projectRoot, basePackage string) (string, error) {
	pkgPath, err := utils.PackagePath(basePackage)
	if err != nil {
		return "", err
	}

	l := layout.New(projectRoot)
	stagedRoot := l.Staging()

	if err := os.RemoveAll(stagedRoot); err != nil {
		return "", codes.FSError("remove", stagedRoot, err)
	}

	if err := os.MkdirAll(stagedRoot, 0o755); err != nil {
		return "", codes.FSError("create", stagedRoot, err)
	}

	leaf := filepath.Join(stagedRoot, pkgPath)
	if err := os.MkdirAll(filepath.Dir(leaf), 0o755); err != nil {
		return "", codes.FSError("create", filepath.Dir(leaf), err)
	}

	target, err := RelativeTarget(basePackage)
	if err != nil {
		return "", err
	}

	if err := b.mounter.Mount(target, leaf); err != nil {
		return "", err
	}

	b.logger.Debug("staged sources", "package", basePackage, "path", l.Rel(leaf))

	return stagedRoot, nil
}

// Build stages projectRoot with the default mounter
func Build(projectRoot, basePackage string) (string, error) {
	return NewBuilder(nil, nil).Build(projectRoot, basePackage)
}

// UpLevels is the number of ".." steps from the staged leaf back to the
// project root: one per package segment plus one for output/
func UpLevels(basePackage string) (int, error) {
	segments, err := utils.PackageSegments(basePackage)
	if err != nil {
		return 0, err
	}

	return len(segments) + 1, nil
}

// RelativeTarget is the link target from the staged leaf to src/,
// e.g. "../../../src" for com.example
func RelativeTarget(basePackage string) (string, error) {
	n, err := UpLevels(basePackage)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, n+1)
	for range n {
		parts = append(parts, "..")
	}
	parts = append(parts, layout.SourceDir)

	return strings.Join(parts, string(filepath.Separator)), nil
}
