package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, files ...string) {
	t.Helper()

	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("// "+f), 0o644))
	}
}

func TestDiscoverSources(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"src/Main.java",
		"src/util/Helper.java",
		"src/util/notes.txt",
		"src/a/Alpha.java",
		"src/README.md",
		"src/Main.java.bak",
		"resources/Other.java",
	)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "dir.java"), 0o755))

	sources, err := DiscoverSources(root)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join("src", "Main.java"),
		filepath.Join("src", "a", "Alpha.java"),
		filepath.Join("src", "util", "Helper.java"),
	}, sources)
}

func TestDiscoverSources_Deterministic(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "src/z/Z.java", "src/B.java", "src/a/A.java", "src/C.java")

	first, err := DiscoverSources(root)
	require.NoError(t, err)
	second, err := DiscoverSources(root)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.IsNonDecreasing(t, first)
}

func TestDiscoverSources_MissingDir(t *testing.T) {
	sources, err := DiscoverSources(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, sources)
}

func TestDiscoverSources_EmptyDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "nested"), 0o755))

	sources, err := DiscoverSources(root)
	require.NoError(t, err)
	assert.Empty(t, sources)
}
