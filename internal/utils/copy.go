package utils

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Norgate-AV/jpack/internal/codes"
)

// CopyFile copies a file from src to dst, creating parent directories and
// replacing any existing dst
func CopyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return codes.FSError("open", src, err)
	}
	defer srcFile.Close()

	// Create parent directory if needed
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return codes.FSError("create directory", filepath.Dir(dst), err)
	}

	dstFile, err := os.Create(dst)
	if err != nil {
		return codes.FSError("create", dst, err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return codes.FSError("copy", src, err)
	}

	// Preserve file permissions
	srcInfo, err := srcFile.Stat()
	if err != nil {
		return codes.FSError("stat", src, err)
	}

	return codes.FSError("chmod", dst, os.Chmod(dst, srcInfo.Mode().Perm()))
}

// CopyDir merges the contents of src into dst, preserving relative structure.
// Existing files in dst with the same name are overwritten.
func CopyDir(src, dst string) error {
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return codes.FSError("create directory", dst, err)
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return codes.FSError("read", path, err)
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return codes.FSError("resolve", path, err)
		}

		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return codes.FSError("create directory", target, os.MkdirAll(target, 0o755))
		}

		return CopyFile(path, target)
	})
}

// IsDir reports whether path exists and is a directory
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
