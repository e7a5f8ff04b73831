package history

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/Norgate-AV/jpack/internal/build"
)

// Fingerprint creates a hash of a build's inputs
// The hash is based on:
// - Source paths and contents (sorted for consistency)
// - Base package, Java version, kind and main class
func Fingerprint(cfg build.Configuration, sources []string) (string, error) {
	h := sha256.New()

	sorted := make([]string, len(sources))
	copy(sorted, sources)
	sort.Strings(sorted)

	for _, src := range sorted {
		path := src
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.ProjectRoot, src)
		}

		fmt.Fprintf(h, "%s\x00", filepath.ToSlash(src))
		if err := hashInto(h, path); err != nil {
			return "", err
		}
		h.Write([]byte{0})
	}

	fmt.Fprintf(h, "%s|%s|%s|%s", cfg.BasePackage, cfg.JavaVersion, cfg.Kind, cfg.MainClass)

	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashFile creates a hash of a file's content
func HashFile(path string) (string, error) {
	h := sha256.New()
	if err := hashInto(h, path); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

func hashInto(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to hash %s: %w", path, err)
	}

	return nil
}
