package staging

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/jpack/internal/codes"
	"github.com/Norgate-AV/jpack/internal/utils"
)

func newProject(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "util"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "Main.java"), []byte("package com.example;"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "util", "Helper.java"), []byte("package com.example.util;"), 0o644))

	return root
}

// snapshot lists every path under dir with its type and, for links, its target
func snapshot(t *testing.T, dir string) []string {
	t.Helper()

	var out []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		require.NoError(t, err)
		rel, _ := filepath.Rel(dir, path)
		entry := d.Type().String() + " " + filepath.ToSlash(rel)
		if d.Type()&fs.ModeSymlink != 0 {
			target, err := os.Readlink(path)
			require.NoError(t, err)
			entry += " -> " + filepath.ToSlash(target)
		}
		out = append(out, entry)
		return nil
	})
	require.NoError(t, err)

	return out
}

func TestUpLevels(t *testing.T) {
	tests := []struct {
		pkg  string
		want int
	}{
		{"myapp", 2},
		{"com.example", 3},
		{"com.example.app", 4},
		{"a.b.c.d.e", 6},
	}

	for _, tt := range tests {
		t.Run(tt.pkg, func(t *testing.T) {
			got, err := UpLevels(tt.pkg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRelativeTarget(t *testing.T) {
	tests := []struct {
		pkg  string
		want string
	}{
		{"myapp", "../../src"},
		{"com.example.app", "../../../../src"},
	}

	for _, tt := range tests {
		t.Run(tt.pkg, func(t *testing.T) {
			got, err := RelativeTarget(tt.pkg)
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}

func TestBuild_InvalidPackage(t *testing.T) {
	root := newProject(t)

	for _, pkg := range []string{"", "com..example", "com."} {
		_, err := Build(root, pkg)
		assert.ErrorIs(t, err, utils.ErrInvalidPackage, "package %q", pkg)
	}

	assert.NoDirExists(t, filepath.Join(root, "output", "src-root"))
}

func TestBuild_Symlink(t *testing.T) {
	root := newProject(t)

	b := NewBuilder(SymlinkMounter{}, nil)
	staged, err := b.Build(root, "com.example")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "output", "src-root"), staged)

	leaf := filepath.Join(staged, "com", "example")
	target, err := os.Readlink(leaf)
	require.NoError(t, err)

	want, err := RelativeTarget("com.example")
	require.NoError(t, err)
	assert.Equal(t, want, target)

	// Sources resolve through the staged package path
	data, err := os.ReadFile(filepath.Join(leaf, "util", "Helper.java"))
	require.NoError(t, err)
	assert.Equal(t, "package com.example.util;", string(data))
}

func TestBuild_Idempotent(t *testing.T) {
	root := newProject(t)
	b := NewBuilder(SymlinkMounter{}, nil)

	staged, err := b.Build(root, "com.example.app")
	require.NoError(t, err)
	first := snapshot(t, staged)

	staged, err = b.Build(root, "com.example.app")
	require.NoError(t, err)
	second := snapshot(t, staged)

	assert.Equal(t, first, second)
}

func TestBuild_SwitchingPackageLeavesNoTrace(t *testing.T) {
	root := newProject(t)
	b := NewBuilder(SymlinkMounter{}, nil)

	staged, err := b.Build(root, "com.example")
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(staged, "com"))

	staged, err = b.Build(root, "org.other")
	require.NoError(t, err)

	assert.NoDirExists(t, filepath.Join(staged, "com"))
	entries, err := os.ReadDir(staged)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "org", entries[0].Name())
}

func TestBuild_CopyMounter(t *testing.T) {
	root := newProject(t)

	b := NewBuilder(CopyMounter{}, nil)
	staged, err := b.Build(root, "myapp")
	require.NoError(t, err)

	leaf := filepath.Join(staged, "myapp")
	info, err := os.Lstat(leaf)
	require.NoError(t, err)
	assert.True(t, info.IsDir(), "copy fallback should produce a real directory")
	assert.FileExists(t, filepath.Join(leaf, "Main.java"))
	assert.FileExists(t, filepath.Join(leaf, "util", "Helper.java"))
}

func TestBuild_CopyMounter_NoSources(t *testing.T) {
	root := t.TempDir()

	staged, err := NewBuilder(CopyMounter{}, nil).Build(root, "myapp")
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(staged, "myapp"))
}

type failingMounter struct{ err error }

func (m failingMounter) Mount(_, virtualPath string) error {
	// leave a partial result behind to prove it is cleaned up
	_ = os.MkdirAll(filepath.Join(virtualPath, "partial"), 0o755)
	return m.err
}

func TestFallbackMounter(t *testing.T) {
	root := newProject(t)
	linkErr := codes.FSError("create symlink", "leaf", &os.LinkError{Op: "symlink", Err: fs.ErrPermission})

	var seen error
	m := FallbackMounter{
		Primary:    failingMounter{err: linkErr},
		Fallback:   CopyMounter{},
		OnFallback: func(err error) { seen = err },
	}

	staged, err := NewBuilder(m, nil).Build(root, "com.example")
	require.NoError(t, err)
	assert.Equal(t, linkErr, seen)

	leaf := filepath.Join(staged, "com", "example")
	assert.FileExists(t, filepath.Join(leaf, "Main.java"))
	assert.NoDirExists(t, filepath.Join(leaf, "partial"))
}

func TestFallbackMounter_OtherErrorsDoNotFallBack(t *testing.T) {
	root := newProject(t)
	diskErr := codes.FSError("create symlink", "leaf", errors.New("input/output error"))

	called := false
	m := FallbackMounter{
		Primary:    failingMounter{err: diskErr},
		Fallback:   CopyMounter{},
		OnFallback: func(error) { called = true },
	}

	_, err := NewBuilder(m, nil).Build(root, "com.example")
	require.Error(t, err)

	var fsErr *codes.FilesystemError
	assert.ErrorAs(t, err, &fsErr)
	assert.ErrorIs(t, err, diskErr)
	assert.False(t, called)
}

func TestFallbackMounter_BothFail(t *testing.T) {
	root := newProject(t)
	copyErr := errors.New("disk full")

	m := FallbackMounter{
		Primary:  failingMounter{err: errors.ErrUnsupported},
		Fallback: failingMounter{err: copyErr},
	}

	_, err := NewBuilder(m, nil).Build(root, "com.example")
	assert.ErrorIs(t, err, copyErr)
}

func TestLinksRefused(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "permission", err: &os.LinkError{Op: "symlink", Err: fs.ErrPermission}, want: true},
		{name: "unsupported", err: fmt.Errorf("mount: %w", errors.ErrUnsupported), want: true},
		{name: "windows privilege", err: &os.LinkError{Op: "symlink", Err: errPrivilegeNotHeld}, want: true},
		{name: "exists", err: &os.LinkError{Op: "symlink", Err: fs.ErrExist}, want: false},
		{name: "other", err: errors.New("input/output error"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LinksRefused(tt.err))
		})
	}
}

type recordingMounter struct {
	realDir string
}

func (m *recordingMounter) Mount(realDir, virtualPath string) error {
	m.realDir = realDir
	return os.MkdirAll(virtualPath, 0o755)
}

func TestBuild_MountsRelativeTarget(t *testing.T) {
	root := newProject(t)
	m := &recordingMounter{}

	_, err := NewBuilder(m, nil).Build(root, "com.example.app")
	require.NoError(t, err)

	assert.Equal(t, filepath.FromSlash("../../../../src"), m.realDir)
}

func TestCopyMounter_RelativeTarget(t *testing.T) {
	root := newProject(t)
	leaf := filepath.Join(root, "output", "src-root", "com", "example")
	require.NoError(t, os.MkdirAll(filepath.Dir(leaf), 0o755))

	require.NoError(t, CopyMounter{}.Mount(filepath.FromSlash("../../../src"), leaf))
	assert.FileExists(t, filepath.Join(leaf, "Main.java"))
}
