// Package files loads env, JSON, YAML and TOML files into plain maps.
package files

import (
	"bytes"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"
)

// EnvFileVariables parses an env file without touching the environment.
func EnvFileVariables(path string) (map[string]string, error) {
	raw, err := readKind("env", path)
	if err != nil {
		return nil, err
	}

	env, err := gotenv.StrictParse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse env file '%s': %w", path, err)
	}
	return env, nil
}

// LoadEnvFile sets the file's variables in the process environment and
// returns them. Variables that are already set keep their current value;
// the returned map reflects what the environment holds afterwards.
func LoadEnvFile(path string) (map[string]string, error) {
	env, err := EnvFileVariables(path)
	if err != nil {
		return nil, err
	}

	for key, value := range env {
		if current, ok := os.LookupEnv(key); ok {
			env[key] = current
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return nil, fmt.Errorf("set %s: %w", key, err)
		}
	}
	return env, nil
}

// LoadJSONFile decodes a JSON object file.
func LoadJSONFile(path string) (map[string]any, error) {
	raw, err := readKind("json", path)
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse json file '%s': %w", path, err)
	}
	return data, nil
}

// LoadYAMLFile decodes a YAML mapping file.
func LoadYAMLFile(path string) (map[string]any, error) {
	raw, err := readKind("yaml", path)
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse yaml file '%s': %w", path, err)
	}
	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}

// LoadTOMLFile decodes a TOML document.
func LoadTOMLFile(path string) (map[string]any, error) {
	raw, err := readKind("toml", path)
	if err != nil {
		return nil, err
	}

	data := map[string]any{}
	if err := toml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse toml file '%s': %w", path, err)
	}
	return data, nil
}

// readKind reads a regular file, reporting a missing one as
// "The <kind> file '<path>' does not exist."
func readKind(kind, path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, &NotFoundError{Kind: kind, Path: path}
	}
	return os.ReadFile(path)
}

// NotFoundError reports a missing input file.
type NotFoundError struct {
	Kind string
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("The %s file '%s' does not exist.", e.Kind, e.Path)
}
