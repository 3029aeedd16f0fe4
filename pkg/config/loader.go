package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/console/internal/errors"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".console.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/console"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix namespaces environment overrides (CONSOLE_TASKS_CONCURRENT).
	EnvPrefix = "CONSOLE"
	// PathEnv names an explicit config file.
	PathEnv = EnvPrefix + "_CONFIG"
)

// Load reads config from the specified path. Environment variables override
// file values.
func Load(path string) (*Settings, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Create "+ConfigFileName+" or point "+PathEnv+" at an existing file")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseSettings(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (the console binary reads it from CONSOLE_CONFIG)
// 2. .console.yaml in current directory
// 3. .console.yaml in parent directories (stops at git root or home)
// 4. ~/.config/console/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	if found := findUpward(cwd); found != "" {
		return found, nil
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// findUpward checks dir and its parents for ConfigFileName, stopping at a
// git root or the home directory.
func findUpward(dir string) string {
	home, _ := os.UserHomeDir()
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return ""
		}

		parent := filepath.Dir(dir)
		if parent == dir || (home != "" && parent == home) {
			return ""
		}
		dir = parent
	}
}

// LoadOrDefault loads the config found for explicit, or defaults (still
// subject to environment overrides) when there is none.
func LoadOrDefault(explicit string) (*Settings, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}

	if path == "" {
		return parseSettings(newViper(), "environment")
	}

	return Load(path)
}

// WithOverrides returns a copy of s with dotted-key overrides applied
// ("tasks.concurrent": false). s is not modified.
func (s *Settings) WithOverrides(overrides map[string]any) (*Settings, error) {
	if len(overrides) == 0 {
		clone := *s
		return &clone, nil
	}

	raw, err := yaml.Marshal(s)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "Cannot encode settings", "")
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(raw)); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "Cannot decode settings", "")
	}
	for key, value := range overrides {
		v.Set(key, value)
	}

	out := &Settings{}
	if err := v.Unmarshal(out); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid settings override",
			"Check the override keys and value types")
	}
	out.Tasks.Dir = ExpandTilde(out.Tasks.Dir)
	return out, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// parseSettings converts viper config to Settings with defaults merged in.
func parseSettings(v *viper.Viper, source string) (*Settings, error) {
	cfg := Default()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+source)
	}

	cfg.Tasks.Dir = ExpandTilde(cfg.Tasks.Dir)
	cfg.Log.File = ExpandTilde(cfg.Log.File)
	cfg.Views.Dir = ExpandTilde(cfg.Views.Dir)

	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can see it during
// Unmarshal.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("tasks.concurrent", d.Tasks.Concurrent)
	v.SetDefault("tasks.dir", d.Tasks.Dir)
	v.SetDefault("tasks.interval", d.Tasks.Interval)
	v.SetDefault("output.color", d.Output.Color)
	v.SetDefault("output.performance_stats", d.Output.PerformanceStats)
	v.SetDefault("prompt.interactive", d.Prompt.Interactive)
	v.SetDefault("prompt.forms", d.Prompt.Forms)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.debug", d.Log.Debug)
	v.SetDefault("log.max_size", d.Log.MaxSize)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age", d.Log.MaxAge)
	v.SetDefault("log.compress", d.Log.Compress)
	v.SetDefault("views.dir", d.Views.Dir)
}
