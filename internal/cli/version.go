package cli

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rileyhilliard/console/pkg/console"
)

// Version information set via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type versionCommand struct{}

func (versionCommand) Definition() console.Definition {
	return console.Definition{
		Name:  "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of console.`,
		Options: []console.Option{
			{Name: "short", Description: "Print only the version number", Mode: console.ValueNone},
		},
	}
}

func (versionCommand) Handle(ctx context.Context, in *console.Invocation) (int, error) {
	if in.Bool("short") {
		in.Println(version)
		return 0, nil
	}

	in.Println(fmt.Sprintf("console %s", formatVersion(version)))
	in.Println(fmt.Sprintf("commit: %s", commit))
	in.Println(fmt.Sprintf("built: %s", date))
	in.Println(fmt.Sprintf("go: %s", runtime.Version()))
	in.Println(fmt.Sprintf("os/arch: %s/%s", runtime.GOOS, runtime.GOARCH))
	return 0, nil
}

// formatVersion ensures version has a 'v' prefix for display
func formatVersion(v string) string {
	if v == "" || v == "dev" {
		return v
	}
	if v[0] != 'v' {
		return "v" + v
	}
	return v
}

// SetVersionInfo sets the version information (called from main).
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// GetVersion returns the current version string.
func GetVersion() string {
	return version
}
