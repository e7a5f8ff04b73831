package compiler

import (
	"path/filepath"
	"strings"

	"github.com/Norgate-AV/jpack/internal/layout"
	"github.com/Norgate-AV/jpack/internal/utils"
)

// sourcePrefix replaces the staged prefix in translated diagnostics
const sourcePrefix = layout.SourceDir + "/"

// Translator rewrites staged paths in javac output back to src/ paths.
// It is a literal substitution over text, not a diagnostic parser.
type Translator struct {
	prefixes []string
}

// NewTranslator builds the translator for output/src-root/<package path>/
func NewTranslator(basePackage string) (*Translator, error) {
	pkgPath, err := utils.PackagePath(basePackage)
	if err != nil {
		return nil, err
	}

	native := filepath.Join(layout.OutputDir, layout.StagingDir, pkgPath) + string(filepath.Separator)
	prefixes := []string{native}
	if slash := filepath.ToSlash(native); slash != native {
		prefixes = append(prefixes, slash)
	}

	return &Translator{prefixes: prefixes}, nil
}

// Prefixes returns the staged prefixes being replaced
func (t *Translator) Prefixes() []string {
	return t.prefixes
}

// Line translates a single diagnostic line
func (t *Translator) Line(line string) string {
	for _, p := range t.prefixes {
		line = replaceAtBoundary(line, p, sourcePrefix)
	}

	return line
}

// Lines translates every line, returning a new slice
func (t *Translator) Lines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = t.Line(line)
	}

	return out
}

// replaceAtBoundary replaces prefix only where it starts a path: at the start
// of the line or after a character that cannot be part of a path
func replaceAtBoundary(line, prefix, repl string) string {
	if !strings.Contains(line, prefix) {
		return line
	}

	var b strings.Builder
	start := 0

	for {
		i := strings.Index(line[start:], prefix)
		if i < 0 {
			b.WriteString(line[start:])
			break
		}
		i += start

		if i > 0 && isPathChar(line[i-1]) {
			b.WriteString(line[start : i+1])
			start = i + 1
			continue
		}

		b.WriteString(line[start:i])
		b.WriteString(repl)
		start = i + len(prefix)
	}

	return b.String()
}

func isPathChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '/', c == '\\', c == '.', c == '_', c == '-':
		return true
	}

	return false
}
