package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/jpack/internal/codes"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newFlagCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().BoolP("verbose", "v", false, "")
	cmd.Flags().Bool("no-history", false, "")
	cmd.Flags().String("javac", "", "")
	cmd.Flags().String("java", "", "")
	return cmd
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	require.NotNil(t, loader)

	if dir, err := os.UserConfigDir(); err == nil {
		assert.Equal(t, filepath.Join(dir, "jpack"), loader.GlobalDir)
	}
}

func TestLoader_SetupViperDefaults(t *testing.T) {
	viper.Reset()
	loader := NewLoader()
	loader.setupViperDefaults()

	assert.Equal(t, "javac", viper.GetString("javac_path"))
	assert.Equal(t, "java", viper.GetString("java_path"))
	assert.Equal(t, false, viper.GetBool("verbose"))
	assert.Equal(t, false, viper.GetBool("no_history"))
}

func TestLoader_LoadGlobalConfig(t *testing.T) {
	t.Run("loads yaml config", func(t *testing.T) {
		viper.Reset()
		dir := t.TempDir()
		writeConfig(t, filepath.Join(dir, "config.yml"), `javac_path: "/opt/jdk/bin/javac"
verbose: true`)

		loader := &Loader{GlobalDir: dir}
		require.NoError(t, loader.loadGlobalConfig())

		assert.Equal(t, "/opt/jdk/bin/javac", viper.GetString("javac_path"))
		assert.Equal(t, true, viper.GetBool("verbose"))
	})

	t.Run("loads toml config", func(t *testing.T) {
		viper.Reset()
		dir := t.TempDir()
		writeConfig(t, filepath.Join(dir, "config.toml"), `java_path = "/opt/jdk/bin/java"`)

		loader := &Loader{GlobalDir: dir}
		require.NoError(t, loader.loadGlobalConfig())

		assert.Equal(t, "/opt/jdk/bin/java", viper.GetString("java_path"))
	})

	t.Run("handles missing global dir gracefully", func(t *testing.T) {
		viper.Reset()

		loader := &Loader{}
		assert.NotPanics(t, func() {
			assert.NoError(t, loader.loadGlobalConfig())
		})
	})

	t.Run("reports malformed config", func(t *testing.T) {
		viper.Reset()
		dir := t.TempDir()
		writeConfig(t, filepath.Join(dir, "config.json"), `{"verbose": `)

		loader := &Loader{GlobalDir: dir}
		err := loader.loadGlobalConfig()
		assert.ErrorIs(t, err, codes.ErrInvalidConfig)
	})
}

func TestLoader_LoadLocalConfig(t *testing.T) {
	t.Run("walks up directory tree to find config", func(t *testing.T) {
		viper.Reset()

		tempDir := t.TempDir()
		project := filepath.Join(tempDir, "workspace", "my-app")
		require.NoError(t, os.MkdirAll(project, 0o755))
		writeConfig(t, filepath.Join(tempDir, ".jpack.yml"), `no_history: true`)

		loader := &Loader{}
		require.NoError(t, loader.loadLocalConfig(project))

		assert.Equal(t, true, viper.GetBool("no_history"))
	})

	t.Run("explicit config file wins over lookup", func(t *testing.T) {
		viper.Reset()

		project := t.TempDir()
		writeConfig(t, filepath.Join(project, ".jpack.yml"), `javac_path: local-javac`)
		explicit := filepath.Join(t.TempDir(), "ci.yml")
		writeConfig(t, explicit, `javac_path: ci-javac`)

		loader := &Loader{ConfigFile: explicit}
		require.NoError(t, loader.loadLocalConfig(project))

		assert.Equal(t, "ci-javac", viper.GetString("javac_path"))
	})

	t.Run("missing explicit config file is an error", func(t *testing.T) {
		viper.Reset()

		loader := &Loader{ConfigFile: filepath.Join(t.TempDir(), "missing.yml")}
		assert.ErrorIs(t, loader.loadLocalConfig(t.TempDir()), codes.ErrInvalidConfig)
	})
}

func TestLoader_LoadForProject(t *testing.T) {
	t.Run("local overrides global and flags override both", func(t *testing.T) {
		viper.Reset()

		global := t.TempDir()
		writeConfig(t, filepath.Join(global, "config.yml"), `javac_path: global-javac
java_path: global-java
no_history: true`)

		project := t.TempDir()
		writeConfig(t, filepath.Join(project, ".jpack.yml"), `javac_path: local-javac`)

		cmd := newFlagCommand()
		require.NoError(t, cmd.Flags().Set("java", "flag-java"))

		loader := &Loader{GlobalDir: global}
		cfg, err := loader.LoadForProject(cmd, project)
		require.NoError(t, err)

		assert.Equal(t, "local-javac", cfg.JavacPath)
		assert.Equal(t, "flag-java", cfg.JavaPath)
		assert.True(t, cfg.NoHistory)
		assert.False(t, cfg.Verbose)
	})

	t.Run("defaults only", func(t *testing.T) {
		viper.Reset()

		loader := &Loader{}
		cfg, err := loader.LoadForProject(newFlagCommand(), t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, &Config{JavacPath: "javac", JavaPath: "java"}, cfg)
	})

	t.Run("verbose flag", func(t *testing.T) {
		viper.Reset()

		cmd := newFlagCommand()
		require.NoError(t, cmd.Flags().Set("verbose", "true"))

		loader := &Loader{}
		cfg, err := loader.LoadForProject(cmd, t.TempDir())
		require.NoError(t, err)

		assert.True(t, cfg.Verbose)
	})
}
