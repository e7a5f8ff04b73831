// Package archive assembles compiled classes into a JAR.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Norgate-AV/jpack/internal/codes"
	"github.com/Norgate-AV/jpack/internal/layout"
)

// ManifestPath is always the first entry of an assembled archive
const ManifestPath = "META-INF/MANIFEST.MF"

// Options describes one archive to assemble
type Options struct {
	ProjectRoot string
	Name        string

	// MainClass is the fully qualified entry point. Empty for libraries.
	MainClass string

	Logger *log.Logger
}

// Manifest renders the MANIFEST.MF contents for the given main class
func Manifest(mainClass string) []byte {
	var b strings.Builder
	b.WriteString("Manifest-Version: 1.0\n")
	if mainClass != "" {
		fmt.Fprintf(&b, "Main-Class: %s\n", mainClass)
	}

	return []byte(b.String())
}

// Assemble writes output/<name>.jar from output/classes and returns its path.
// The archive is written to a temporary file and renamed into place, so a
// failed run never leaves a partial archive under the final name.
func Assemble(opts Options) (string, error) {
	if opts.Name == "" {
		return "", fmt.Errorf("%w: archive name is empty", codes.ErrInvalidConfig)
	}

	l := layout.New(opts.ProjectRoot)
	final := l.Archive(opts.Name)
	tmp := filepath.Join(l.Output(), "."+opts.Name+layout.ArchiveExt+".tmp")

	if err := os.MkdirAll(l.Output(), 0o755); err != nil {
		return "", codes.FSError("create", l.Output(), err)
	}

	count, err := writeArchive(tmp, l.Classes(), opts.MainClass)
	if err != nil {
		_ = os.Remove(tmp)
		return "", err
	}

	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return "", codes.FSError("rename", tmp, err)
	}

	if opts.Logger != nil {
		opts.Logger.Debug("archive written", "path", final, "entries", count+1)
	}

	return final, nil
}

func writeArchive(path, classesDir, mainClass string) (count int, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, codes.FSError("create", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = codes.FSError("close", path, closeErr)
		}
	}()

	zw := zip.NewWriter(f)
	defer func() {
		if closeErr := zw.Close(); closeErr != nil && err == nil {
			err = codes.FSError("finalize", path, closeErr)
		}
	}()

	if err := writeManifest(zw, mainClass); err != nil {
		return 0, codes.FSError("write manifest to", path, err)
	}

	walkErr := filepath.WalkDir(classesDir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if p == classesDir && errors.Is(walkErr, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return codes.FSError("read", p, walkErr)
		}

		if !d.Type().IsRegular() {
			return nil
		}

		rel, relErr := filepath.Rel(classesDir, p)
		if relErr != nil {
			return codes.FSError("resolve", p, relErr)
		}

		name := filepath.ToSlash(rel)
		if name == ManifestPath {
			return nil
		}

		if addErr := addFile(zw, p, name); addErr != nil {
			return addErr
		}

		count++
		return nil
	})
	if walkErr != nil {
		return count, walkErr
	}

	return count, nil
}

func writeManifest(zw *zip.Writer, mainClass string) error {
	header := &zip.FileHeader{
		Name:     ManifestPath,
		Method:   zip.Deflate,
		Modified: time.Now(),
	}
	header.SetMode(0o644)

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = w.Write(Manifest(mainClass))
	return err
}

func addFile(zw *zip.Writer, path, name string) (err error) {
	info, err := os.Stat(path)
	if err != nil {
		return codes.FSError("stat", path, err)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return codes.FSError("create header for", path, err)
	}
	header.Name = name
	header.Method = zip.Deflate
	header.SetMode(0o644)

	w, err := zw.CreateHeader(header)
	if err != nil {
		return codes.FSError("add", name, err)
	}

	src, err := os.Open(path)
	if err != nil {
		return codes.FSError("open", path, err)
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil && err == nil {
			err = codes.FSError("close", path, closeErr)
		}
	}()

	if _, err := io.Copy(w, src); err != nil {
		return codes.FSError("compress", path, err)
	}

	return nil
}

// Entries lists the entry names of an archive in stored order
func Entries(path string) (names []string, err error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, codes.FSError("open", path, err)
	}
	defer func() {
		if closeErr := r.Close(); closeErr != nil && err == nil {
			err = codes.FSError("close", path, closeErr)
		}
	}()

	names = make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}

	return names, nil
}

// ReadEntry returns the contents of a single archive entry
func ReadEntry(path, name string) (data []byte, err error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, codes.FSError("open", path, err)
	}
	defer r.Close()

	rc, err := r.Open(name)
	if err != nil {
		return nil, codes.FSError("read "+name+" from", path, err)
	}
	defer rc.Close()

	data, err = io.ReadAll(rc)
	if err != nil {
		return nil, codes.FSError("read "+name+" from", path, err)
	}

	return data, nil
}
