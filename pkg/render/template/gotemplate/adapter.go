// Package gotemplate implements the template seam with a pongo2 template set,
// the engine behind github.com/goliatone/go-template.
package gotemplate

import (
	"bytes"
	"encoding/json"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-modelgen/pkg/render/template"
)

// DefaultExtension is appended to template names that carry none.
const DefaultExtension = ".tpl"

// FilterFunc is a template filter: the piped value and the optional argument.
type FilterFunc func(input any, param any) (any, error)

// Option configures the engine before construction.
type Option func(*settings)

type settings struct {
	dir       string
	files     fs.FS
	extension string
	globals   map[string]any
	filters   map[string]FilterFunc
}

// WithBaseDir loads templates from a directory on disk.
func WithBaseDir(dir string) Option {
	return func(s *settings) {
		s.dir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from files. It is consulted after WithBaseDir.
func WithFS(files fs.FS) Option {
	return func(s *settings) {
		s.files = files
	}
}

// WithExtension overrides DefaultExtension. The leading dot is optional.
func WithExtension(ext string) Option {
	return func(s *settings) {
		if ext = strings.TrimSpace(ext); ext != "" {
			s.extension = "." + strings.TrimPrefix(ext, ".")
		}
	}
}

// WithGlobalData seeds values visible to every template.
func WithGlobalData(data map[string]any) Option {
	return func(s *settings) {
		for key, value := range data {
			s.globals[key] = value
		}
	}
}

// WithFilters registers filters when the engine is built.
func WithFilters(filters map[string]FilterFunc) Option {
	return func(s *settings) {
		for name, fn := range filters {
			s.filters[name] = fn
		}
	}
}

// WithGoTemplateOptions accepts go-template engine options so callers can
// share one option list. The pongo2 set is configured here directly, so they
// have no effect.
func WithGoTemplateOptions(_ ...gotemplatepkg.Option) Option {
	return func(*settings) {}
}

// Engine renders pongo2 templates and caches parsed files.
type Engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	parsed    map[string]*pongo2.Template
	extension string
}

var _ template.TemplateRenderer = (*Engine)(nil)

var builtinFilters sync.Once

// New builds an engine. At least one of WithBaseDir or WithFS is required.
func New(options ...Option) (*Engine, error) {
	s := &settings{
		extension: DefaultExtension,
		globals:   make(map[string]any),
		filters:   make(map[string]FilterFunc),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	var loaders []pongo2.TemplateLoader
	if s.dir != "" {
		local, err := pongo2.NewLocalFileSystemLoader(s.dir)
		if err != nil {
			return nil, errors.Wrapf(err, "gotemplate: templates dir %s", s.dir)
		}
		loaders = append(loaders, local)
	}
	if s.files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(s.files))
	}
	if len(loaders) == 0 {
		return nil, errors.New("gotemplate: a templates dir or fs.FS is required")
	}

	builtinFilters.Do(func() {
		if !pongo2.FilterExists("trim") {
			_ = pongo2.RegisterFilter("trim", trimFilter)
		}
	})

	e := &Engine{
		set:       pongo2.NewSet("modelgen", loaders...),
		parsed:    make(map[string]*pongo2.Template),
		extension: s.extension,
	}
	if err := e.GlobalContext(s.globals); err != nil {
		return nil, err
	}
	for name, fn := range s.filters {
		if err := e.RegisterFilter(name, fn); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Render treats name as inline template source when it contains template
// delimiters, and as a template name otherwise.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate renders a named template. The extension is added when
// missing.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if !strings.HasSuffix(name, e.extension) {
		name += e.extension
	}
	tmpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, name, data, out)
}

// RenderString renders inline template source. The result is not cached.
func (e *Engine) RenderString(source string, data any, out ...io.Writer) (string, error) {
	tmpl, err := e.set.FromString(source)
	if err != nil {
		return "", errors.Wrap(err, "gotemplate: parse inline template")
	}
	return e.execute(tmpl, "inline template", data, out)
}

// RegisterFilter adds a filter. pongo2 filters are process wide, so a name
// that is already registered is rejected.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("gotemplate: filter name and function are required")
	}
	if pongo2.FilterExists(name) {
		return errors.Newf("gotemplate: filter %q already registered", name)
	}
	return pongo2.RegisterFilter(name, func(in, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

// GlobalContext merges data into the values every template sees.
func (e *Engine) GlobalContext(data any) error {
	if data == nil {
		return nil
	}
	values, err := contextFrom(data)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = pongo2.Context{}
	}
	e.set.Globals.Update(values)
	return nil
}

func (e *Engine) lookup(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.parsed[name]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.parsed[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, errors.Wrapf(err, "gotemplate: load %s", name)
	}
	e.parsed[name] = tmpl
	return tmpl, nil
}

func (e *Engine) execute(tmpl *pongo2.Template, label string, data any, out []io.Writer) (string, error) {
	values, err := contextFrom(data)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(values, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", errors.Wrapf(err, "gotemplate: execute %s", label)
	}

	rendered := buf.String()
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", errors.Wrap(err, "gotemplate: write output")
		}
	}
	return rendered, nil
}

// contextFrom converts template data through its JSON form, so struct values
// are addressed by their json field names.
func contextFrom(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Wrapf(err, "gotemplate: encode %T", data)
	}
	var values map[string]any
	if err := json.Unmarshal(encoded, &values); err != nil || values == nil {
		return nil, errors.Newf("gotemplate: data of type %T is not an object", data)
	}
	return pongo2.Context(values), nil
}

func trimFilter(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}
