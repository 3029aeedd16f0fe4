package config

import (
	"fmt"

	"github.com/rileyhilliard/console/internal/errors"
)

var colorModes = map[string]bool{"auto": true, "always": true, "never": true}

// Validate checks settings for errors and returns structured error messages.
func Validate(cfg *Settings) error {
	if !colorModes[cfg.Output.Color] {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown output.color '%s'", cfg.Output.Color),
			"Use one of: auto, always, never")
	}

	if cfg.Tasks.Interval <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("tasks.interval must be positive, got %s", cfg.Tasks.Interval),
			"Try something like 100ms")
	}

	if cfg.Tasks.Concurrent && cfg.Tasks.Dir == "" {
		return errors.New(errors.ErrConfig,
			"tasks.dir is empty but concurrent tasks are enabled",
			"Set tasks.dir or disable tasks.concurrent")
	}

	if cfg.Log.MaxSize < 0 || cfg.Log.MaxBackups < 0 || cfg.Log.MaxAge < 0 {
		return errors.New(errors.ErrConfig,
			"log rotation limits can't be negative",
			"Check log.max_size, log.max_backups and log.max_age")
	}

	return nil
}
