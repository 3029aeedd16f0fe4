package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/console/internal/errors"
	"github.com/rileyhilliard/console/pkg/console"
	"github.com/rileyhilliard/console/pkg/files"
	"github.com/rileyhilliard/console/pkg/validation"
)

// dataFileExt limits --data to the formats loadData understands.
var dataFileExt = func() validation.Rule {
	r, err := validation.Regex(`(?i)\.(json|ya?ml|toml|env)$`)
	if err != nil {
		panic(err)
	}
	return r
}()

// renderCommand renders a template file, or a named view from views.dir,
// against data from a file and any undeclared options.
type renderCommand struct{}

func (renderCommand) Definition() console.Definition {
	return console.Definition{
		Name:  "render",
		Short: "Render a template",
		Long: `Render a text/template file or a named view. Data comes from an
optional JSON, YAML, TOML or env file; undeclared options are added on top,
so --title=Report sets .title.

Examples:
  console render ./report.tmpl --data=report.yaml
  console render mail.welcome --name=Ada
  console render ./notes.tmpl --data=.env --title="Release notes"`,
		Arguments: []console.Argument{
			{Name: "template", Description: "Template file or view name", Required: true},
		},
		Options: []console.Option{
			{Name: "data", Shorthand: "d", Description: "Data file (.json, .yaml, .yml, .toml, .env)", Mode: console.ValueRequired},
		},
		ArbitraryOptions: true,
	}
}

func (renderCommand) Rules() validation.RuleSet {
	return validation.RuleSet{
		"template": validation.Must("required"),
		"data":     validation.Must("file_exists", dataFileExt),
	}
}

func (renderCommand) Handle(ctx context.Context, in *console.Invocation) (int, error) {
	data := map[string]any{}
	if path := in.String("data"); path != "" {
		loaded, err := loadData(path)
		if err != nil {
			return 0, console.Fail(err.Error())
		}
		data = loaded
	}

	extra := in.Arbitrary()
	for _, key := range extra.Keys() {
		data[key] = extra.Value(key)
	}

	name := in.String("template")
	if info, err := os.Stat(name); err == nil && info.Mode().IsRegular() {
		out, err := in.Compile(name, data)
		if err != nil {
			return 1, errors.WrapWithCode(err, errors.ErrExec, "Cannot render "+name, "Check the template syntax.")
		}
		in.Println(strings.TrimRight(out, "\n"))
		return 0, nil
	}

	if err := in.View(name, data); err != nil {
		return 1, errors.WrapWithCode(err, errors.ErrExec, "Cannot render view "+name,
			"Pass a template file, or set views.dir to a directory holding "+name+".tmpl.")
	}
	return 0, nil
}

// loadData picks a loader by extension.
func loadData(path string) (map[string]any, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return files.LoadJSONFile(path)
	case ".yaml", ".yml":
		return files.LoadYAMLFile(path)
	case ".toml":
		return files.LoadTOMLFile(path)
	}

	vars, err := files.EnvFileVariables(path)
	if err != nil {
		return nil, err
	}
	data := make(map[string]any, len(vars))
	for k, v := range vars {
		data[k] = v
	}
	return data, nil
}
