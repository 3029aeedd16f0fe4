package config

import (
	"os"
	"path/filepath"
	"time"
)

// Settings is the complete .console.yaml configuration.
type Settings struct {
	Tasks  TasksConfig  `yaml:"tasks" mapstructure:"tasks"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Prompt PromptConfig `yaml:"prompt" mapstructure:"prompt"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
	Views  ViewsConfig  `yaml:"views" mapstructure:"views"`
}

// TasksConfig controls how background tasks run.
type TasksConfig struct {
	// Concurrent runs tasks in a worker with a spinner. When false every
	// task runs synchronously.
	Concurrent bool `yaml:"concurrent" mapstructure:"concurrent"`

	// Dir is the scratch directory for task flag and state artifacts.
	// Supports ~ expansion.
	Dir string `yaml:"dir" mapstructure:"dir"`

	// Interval between spinner frames, which is also how often the worker's
	// flag is polled.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// OutputConfig controls terminal output formatting.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`

	// PerformanceStats prints memory and execution time after each command.
	PerformanceStats bool `yaml:"performance_stats" mapstructure:"performance_stats"`
}

// PromptConfig controls interactive input.
type PromptConfig struct {
	// Interactive allows prompting; when false, asks for missing values fail.
	Interactive bool `yaml:"interactive" mapstructure:"interactive"`

	// Forms uses huh forms instead of plain line reads on a terminal.
	Forms bool `yaml:"forms" mapstructure:"forms"`
}

// LogConfig controls the diagnostic log.
type LogConfig struct {
	// File enables a rotating log file at this path. Empty logs to stderr,
	// debug lines only with CONSOLE_DEBUG set.
	File       string `yaml:"file" mapstructure:"file"`
	Debug      bool   `yaml:"debug" mapstructure:"debug"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"`
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
}

// ViewsConfig locates template views.
type ViewsConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// DefaultTasksDir is where task artifacts go unless configured.
func DefaultTasksDir() string {
	return filepath.Join(os.TempDir(), "console-tasks")
}

// Default returns Settings with sensible defaults.
func Default() *Settings {
	return &Settings{
		Tasks: TasksConfig{
			Concurrent: true,
			Dir:        DefaultTasksDir(),
			Interval:   100 * time.Millisecond,
		},
		Output: OutputConfig{
			Color: "auto",
		},
		Prompt: PromptConfig{
			Interactive: true,
		},
		Log: LogConfig{
			MaxSize:    16,
			MaxBackups: 3,
			MaxAge:     14,
		},
	}
}
