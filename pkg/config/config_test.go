package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/console/internal/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.True(t, cfg.Tasks.Concurrent)
	assert.Equal(t, DefaultTasksDir(), cfg.Tasks.Dir)
	assert.Equal(t, 100*time.Millisecond, cfg.Tasks.Interval)
	assert.Equal(t, "auto", cfg.Output.Color)
	assert.False(t, cfg.Output.PerformanceStats)
	assert.True(t, cfg.Prompt.Interactive)
	assert.Equal(t, 16, cfg.Log.MaxSize)
	assert.NoError(t, Validate(cfg))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)

	content := `
tasks:
  concurrent: false
  dir: ~/console-tasks
  interval: 250ms
output:
  color: never
  performance_stats: true
log:
  file: /tmp/console.log
  max_backups: 7
views:
  dir: ./views
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	assert.False(t, cfg.Tasks.Concurrent)
	assert.Equal(t, filepath.Join(home, "console-tasks"), cfg.Tasks.Dir)
	assert.Equal(t, 250*time.Millisecond, cfg.Tasks.Interval)
	assert.Equal(t, "never", cfg.Output.Color)
	assert.True(t, cfg.Output.PerformanceStats)
	assert.Equal(t, "/tmp/console.log", cfg.Log.File)
	assert.Equal(t, 7, cfg.Log.MaxBackups)
	// Unset keys keep their defaults.
	assert.Equal(t, 16, cfg.Log.MaxSize)
	assert.True(t, cfg.Prompt.Interactive)
	assert.Equal(t, "./views", cfg.Views.Dir)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), ".console.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "point CONSOLE_CONFIG at an existing file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("tasks: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("tasks:\n  concurrent: true\n"), 0o644))
	t.Setenv("CONSOLE_TASKS_CONCURRENT", "false")
	t.Setenv("CONSOLE_OUTPUT_PERFORMANCE_STATS", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Tasks.Concurrent)
	assert.True(t, cfg.Output.PerformanceStats)
}

func TestFind(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

		found, err := Find(path)
		require.NoError(t, err)
		assert.Equal(t, path, found)
	})

	t.Run("explicit path missing", func(t *testing.T) {
		_, err := Find(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("parent directory up to git root", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte(""), 0o644))
		nested := filepath.Join(root, "a", "b")
		require.NoError(t, os.MkdirAll(nested, 0o755))

		assert.Equal(t, filepath.Join(root, ConfigFileName), findUpward(nested))
	})

	t.Run("stops at git root", func(t *testing.T) {
		outer := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(outer, ConfigFileName), []byte(""), 0o644))
		repo := filepath.Join(outer, "repo")
		require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

		assert.Empty(t, findUpward(repo))
	})
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CONSOLE_TASKS_INTERVAL", "50ms")

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.True(t, cfg.Tasks.Concurrent)
	assert.Equal(t, 50*time.Millisecond, cfg.Tasks.Interval)
}

func TestWithOverrides(t *testing.T) {
	base := Default()

	out, err := base.WithOverrides(map[string]any{
		"tasks.concurrent":         false,
		"tasks.interval":           "20ms",
		"output.performance_stats": true,
	})
	require.NoError(t, err)

	assert.False(t, out.Tasks.Concurrent)
	assert.Equal(t, 20*time.Millisecond, out.Tasks.Interval)
	assert.True(t, out.Output.PerformanceStats)
	assert.Equal(t, base.Tasks.Dir, out.Tasks.Dir)

	// The receiver is untouched.
	assert.True(t, base.Tasks.Concurrent)
	assert.False(t, base.Output.PerformanceStats)
}

func TestWithOverrides_Empty(t *testing.T) {
	base := Default()
	out, err := base.WithOverrides(nil)
	require.NoError(t, err)
	assert.Equal(t, base, out)
	assert.NotSame(t, base, out)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{"defaults", func(*Settings) {}, ""},
		{"bad color", func(s *Settings) { s.Output.Color = "rainbow" }, "Unknown output.color"},
		{"zero interval", func(s *Settings) { s.Tasks.Interval = 0 }, "tasks.interval must be positive"},
		{"empty dir", func(s *Settings) { s.Tasks.Dir = "" }, "tasks.dir is empty"},
		{"empty dir without concurrency", func(s *Settings) { s.Tasks.Dir = ""; s.Tasks.Concurrent = false }, ""},
		{"negative rotation", func(s *Settings) { s.Log.MaxAge = -1 }, "can't be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "", ExpandTilde(""))
	assert.Equal(t, home, ExpandTilde("~"))
	assert.Equal(t, filepath.Join(home, "x"), ExpandTilde("~/x"))
	assert.Equal(t, "/abs/~", ExpandTilde("/abs/~"))
	assert.Equal(t, "~other/x", ExpandTilde("~other/x"))
}
