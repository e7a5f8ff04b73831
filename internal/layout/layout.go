// Package layout names every path jpack reads or writes inside a project.
package layout

import "path/filepath"

const (
	ManifestFile = "jpack.toml"
	SourceDir    = "src"
	TestDir      = "test"
	ResourceDir  = "resources"
	OutputDir    = "output"
	ClassesDir   = "classes"
	StagingDir   = "src-root"
	ArgsFile     = "javac-args.txt"
	HistoryFile  = "history.db"
	ArchiveExt   = ".jar"
)

// Layout resolves project paths against a project root
type Layout struct {
	Root string
}

// New returns the layout for the project rooted at root
func New(root string) Layout {
	return Layout{Root: root}
}

func (l Layout) Manifest() string {
	return filepath.Join(l.Root, ManifestFile)
}

func (l Layout) Sources() string {
	return filepath.Join(l.Root, SourceDir)
}

func (l Layout) Resources() string {
	return filepath.Join(l.Root, ResourceDir)
}

func (l Layout) Output() string {
	return filepath.Join(l.Root, OutputDir)
}

func (l Layout) Classes() string {
	return filepath.Join(l.Root, OutputDir, ClassesDir)
}

func (l Layout) Staging() string {
	return filepath.Join(l.Root, OutputDir, StagingDir)
}

func (l Layout) Args() string {
	return filepath.Join(l.Root, OutputDir, ArgsFile)
}

func (l Layout) History() string {
	return filepath.Join(l.Root, OutputDir, HistoryFile)
}

// Archive returns output/<name>.jar
func (l Layout) Archive(name string) string {
	return filepath.Join(l.Root, OutputDir, name+ArchiveExt)
}

// Rel makes path relative to the root, falling back to path itself
func (l Layout) Rel(path string) string {
	rel, err := filepath.Rel(l.Root, path)
	if err != nil {
		return path
	}

	return rel
}
