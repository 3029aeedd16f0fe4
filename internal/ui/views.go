package ui

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/template"
	"unicode"
	"unicode/utf8"
)

// ViewExt is appended to view names looked up on disk.
const ViewExt = ".tmpl"

// Views renders named text templates. Names registered in memory win;
// anything else is read from dir as <name>.tmpl, with dots in the name
// mapping to subdirectories ("mail.welcome" -> mail/welcome.tmpl).
type Views struct {
	mu    sync.Mutex
	dir   string
	named map[string]*template.Template
}

// NewViews creates a view set reading from dir ("" disables disk lookup).
func NewViews(dir string) *Views {
	return &Views{dir: dir, named: make(map[string]*template.Template)}
}

// Register parses text as the view name.
func (v *Views) Register(name, text string) error {
	tpl, err := newTemplate(name).Parse(text)
	if err != nil {
		return fmt.Errorf("parse view %s: %w", name, err)
	}
	v.mu.Lock()
	v.named[name] = tpl
	v.mu.Unlock()
	return nil
}

// Render executes the named view against data.
func (v *Views) Render(name string, data any) (string, error) {
	v.mu.Lock()
	tpl, ok := v.named[name]
	v.mu.Unlock()
	if ok {
		return execute(tpl, data)
	}

	if v.dir == "" {
		return "", fmt.Errorf("view %q is not registered", name)
	}
	path := filepath.Join(v.dir, filepath.FromSlash(strings.ReplaceAll(name, ".", "/"))+ViewExt)
	return Compile(path, data)
}

// Compile renders the template file at path against data.
func Compile(path string, data any) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read template: %w", err)
	}
	tpl, err := newTemplate(filepath.Base(path)).Parse(string(raw))
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", path, err)
	}
	return execute(tpl, data)
}

func newTemplate(name string) *template.Template {
	return template.New(name).Option("missingkey=zero").Funcs(template.FuncMap{
		"upper":   strings.ToUpper,
		"lower":   strings.ToLower,
		"trim":    strings.TrimSpace,
		"ucfirst": ucfirst,
		"join":    strings.Join,
		"default": func(fallback, value any) any {
			if value == nil || value == "" {
				return fallback
			}
			return value
		},
	})
}

func execute(tpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", tpl.Name(), err)
	}
	return buf.String(), nil
}

func ucfirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
