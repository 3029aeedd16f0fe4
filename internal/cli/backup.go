package cli

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cast"

	"github.com/rileyhilliard/console/internal/util"
	"github.com/rileyhilliard/console/pkg/console"
	"github.com/rileyhilliard/console/pkg/require"
	"github.com/rileyhilliard/console/pkg/task"
	"github.com/rileyhilliard/console/pkg/transform"
	"github.com/rileyhilliard/console/pkg/validation"
)

// backupCommand copies a directory tree in a background task and reports
// what it copied.
type backupCommand struct{}

func (backupCommand) Definition() console.Definition {
	return console.Definition{
		Name:  "backup",
		Short: "Copy a directory tree",
		Long: `Copy every regular file under source into destination, skipping
excluded directory names. The copy runs as a task with a spinner.

Examples:
  console backup ./src ./backup
  console backup ./src ./backup --exclude=.git --exclude=node_modules
  console backup ./src ./backup --dry-run`,
		Arguments: []console.Argument{
			{Name: "source", Description: "Directory to copy", Required: true},
			{Name: "destination", Description: "Directory to copy into", Required: true},
		},
		Options: []console.Option{
			{Name: "exclude", Shorthand: "x", Description: "Directory name to skip (repeatable)", Mode: console.ValueMulti},
			{Name: "dry-run", Description: "Count files without copying", Mode: console.ValueNone},
		},
	}
}

func (backupCommand) Requirements() []require.Requirement {
	return []require.Requirement{
		require.Func("temp dir", func(ctx context.Context) string {
			if info, err := os.Stat(os.TempDir()); err != nil || !info.IsDir() {
				return "This command requires a temporary directory."
			}
			return ""
		}),
	}
}

func (backupCommand) Rules() validation.RuleSet {
	return validation.RuleSet{
		"source":      validation.Must("required|directory_exists|readable"),
		"destination": validation.Must("required"),
	}
}

func (backupCommand) TransformersAfterValidation() transform.Map {
	return transform.Map{
		"source":      {transform.Pure(absPath)},
		"destination": {transform.Pure(absPath)},
	}
}

func (backupCommand) ShowPerformanceStats() bool { return true }

func (backupCommand) Handle(ctx context.Context, in *console.Invocation) (int, error) {
	src, dst := in.String("source"), in.String("destination")
	exclude := in.Strings("exclude")
	dryRun := in.Bool("dry-run")

	t, err := in.RunTask(ctx, "Copying "+filepath.Base(src), func(ctx context.Context, t *task.Task) error {
		files, size, err := copyTree(ctx, src, dst, exclude, dryRun)
		t.Remember(map[string]any{"files": files, "bytes": size})
		return err
	})
	if err != nil {
		return 1, err
	}
	if !t.Succeeded() {
		return 1, nil
	}

	data := t.Data()
	files := cast.ToInt(data["files"])
	in.Table([]string{"Files", "Size", "Destination", "Excluded"}, [][]string{{
		fmt.Sprintf("%d %s", files, util.Pluralize(files, "file", "files")),
		humanize.Bytes(cast.ToUint64(data["bytes"])),
		dst,
		util.JoinOrNone(exclude),
	}})
	if dryRun {
		in.Warn("Dry run: nothing was copied.")
	}
	return 0, nil
}

func absPath(v any) any {
	p, err := filepath.Abs(cast.ToString(v))
	if err != nil {
		return v
	}
	return p
}

// copyTree copies regular files from src to dst and returns how many it
// copied and their total size.
func copyTree(ctx context.Context, src, dst string, exclude []string, dryRun bool) (int64, int64, error) {
	var files, size int64
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path == dst || (path != src && slices.Contains(exclude, d.Name())) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		n, err := copyFile(path, filepath.Join(dst, rel), dryRun)
		if err != nil {
			return err
		}
		files++
		size += n
		return nil
	})
	return files, size, err
}

func copyFile(from, to string, dryRun bool) (int64, error) {
	in, err := os.Open(from)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	if dryRun {
		info, err := in.Stat()
		if err != nil {
			return 0, err
		}
		return info.Size(), nil
	}

	if err := os.MkdirAll(filepath.Dir(to), 0o755); err != nil {
		return 0, err
	}
	out, err := os.Create(to)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return n, err
}
