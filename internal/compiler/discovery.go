package compiler

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/Norgate-AV/jpack/internal/codes"
	"github.com/Norgate-AV/jpack/internal/layout"
)

// SourcePattern matches every compilable file under src/
const SourcePattern = "**/*.java"

// DiscoverSources returns every .java file under src/, relative to
// projectRoot and sorted. A missing src/ is not an error: the caller decides
// what an empty set means.
func DiscoverSources(projectRoot string) ([]string, error) {
	srcDir := layout.New(projectRoot).Sources()

	info, err := os.Stat(srcDir)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, codes.FSError("stat", srcDir, err)
	}
	if !info.IsDir() {
		return []string{}, nil
	}

	sources := []string{}
	err = doublestar.GlobWalk(os.DirFS(srcDir), SourcePattern, func(path string, d fs.DirEntry) error {
		if !d.Type().IsRegular() {
			return nil
		}

		sources = append(sources, filepath.Join(layout.SourceDir, filepath.FromSlash(path)))
		return nil
	}, doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, codes.FSError("walk", srcDir, err)
	}

	sort.Strings(sources)

	return sources, nil
}
