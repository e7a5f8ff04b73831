package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/jpack/internal/codes"
	"github.com/Norgate-AV/jpack/internal/config"
	"github.com/Norgate-AV/jpack/internal/layout"
	"github.com/Norgate-AV/jpack/internal/manifest"
)

func loadTestProject(t *testing.T, dir string) *project {
	t.Helper()

	m, err := manifest.Load(layout.New(dir).Manifest())
	require.NoError(t, err)

	return &project{
		root:     dir,
		manifest: m,
		config:   &config.Config{JavacPath: "javac", JavaPath: "java", NoHistory: true},
		build:    m.Configuration(dir),
		logger:   log.New(io.Discard),
	}
}

func TestRebuild(t *testing.T) {
	dir := newApp(t, "demo", false)
	fake := &fakeCompiler{basePackage: "demo"}
	useFakeCompiler(t, fake)

	p := loadTestProject(t, dir)

	var stdout bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(io.Discard)

	require.NoError(t, rebuild(p, []string{"src/Main.java"}, cmd))
	assert.Equal(t, 1, fake.calls)
	assert.Contains(t, stdout.String(), "Finished")
	assert.FileExists(t, layout.New(dir).Archive("demo"))
}

func TestRebuild_PicksUpManifestChanges(t *testing.T) {
	dir := newApp(t, "demo", false)
	useFakeCompiler(t, &fakeCompiler{basePackage: "demo"})

	p := loadTestProject(t, dir)

	toml := "[package]\nname = \"demo\"\nversion = \"0.2.0\"\njava = \"17\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, layout.ManifestFile), []byte(toml), 0o644))

	var stdout bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(io.Discard)

	require.NoError(t, rebuild(p, []string{layout.ManifestFile}, cmd))
	assert.Contains(t, stdout.String(), "Compiling demo v0.2.0 (java 17)")
	assert.Equal(t, "0.2.0", p.manifest.Package.Version)
}

func TestRebuild_InvalidManifest(t *testing.T) {
	dir := newApp(t, "demo", false)
	fake := &fakeCompiler{basePackage: "demo"}
	useFakeCompiler(t, fake)

	p := loadTestProject(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, layout.ManifestFile), []byte("[package\n"), 0o644))

	var stdout bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(io.Discard)

	err := rebuild(p, []string{layout.ManifestFile}, cmd)
	require.Error(t, err)

	assert.Contains(t, stdout.String(), "Skipping")
	assert.Zero(t, fake.calls)
	// the previous manifest is kept
	assert.Equal(t, "0.1.0", p.manifest.Package.Version)
}

func TestRebuild_CompileFailure(t *testing.T) {
	dir := newApp(t, "demo", false)
	useFakeCompiler(t, &fakeCompiler{basePackage: "demo", diagnostics: []string{"1 error"}})

	p := loadTestProject(t, dir)

	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := rebuild(p, []string{"src/Main.java"}, cmd)
	require.Error(t, err)

	assert.Contains(t, stdout.String(), "Failed")
	assert.Contains(t, stderr.String(), "1 error")
}

func TestWatchCommand_ReportsFirstBuildFailure(t *testing.T) {
	dir := newApp(t, "demo", false)
	fake := &fakeCompiler{
		basePackage: "demo",
		err:         &codes.ToolchainMissingError{Tool: "javac", Err: errors.New("executable file not found in $PATH")},
	}
	useFakeCompiler(t, fake)

	// a cancelled context stops the watcher right after the first build
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stdout, _, err := executeCommandContext(t, ctx, "watch", "-C", dir)
	require.NoError(t, err)

	assert.Equal(t, 1, fake.calls)
	assert.Contains(t, stdout, "Failed")
	assert.Contains(t, stdout, "javac not found in PATH")
	assert.Contains(t, stdout, "Watching")
}

func TestWatchCommand_FirstBuild(t *testing.T) {
	dir := newApp(t, "demo", false)
	useFakeCompiler(t, &fakeCompiler{basePackage: "demo"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stdout, _, err := executeCommandContext(t, ctx, "watch", "-C", dir)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Finished")
	assert.NotContains(t, stdout, "Failed")
	assert.FileExists(t, layout.New(dir).Archive("demo"))
}
