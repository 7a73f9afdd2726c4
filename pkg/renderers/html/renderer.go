// Package html formats token streams as a highlighted <pre> block. Every
// non-whitespace token becomes a span whose class is chosen per category and
// can be overridden by theme tokens (code.keyword, code.type, code.standard).
package html

import (
	"context"
	"io/fs"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-modelgen/pkg/render"
	rendertemplate "github.com/goliatone/go-modelgen/pkg/render/template"
	"github.com/goliatone/go-modelgen/pkg/render/template/gotemplate"
)

// Name is the registry name of the html renderer.
const Name = "html"

// Default classes per category.
const (
	ContainerClass = "modelgen-code"
	KeywordClass   = "dm-kwd"
	TypeClass      = "dm-typ"
	StandardClass  = "dm-std"
)

var defaultClasses = map[render.Category]string{
	render.CategoryKeyword:  KeywordClass,
	render.CategoryType:     TypeClass,
	render.CategoryStandard: StandardClass,
}

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	standalone       bool
	title            string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must provide templates/code.tmpl and templates/page.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStandalone wraps the code block in a complete HTML page that embeds the
// default stylesheet.
func WithStandalone(title string) Option {
	return func(cfg *config) {
		cfg.standalone = true
		cfg.title = title
	}
}

type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	standalone bool
	title      string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the html renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, errors.Wrap(err, "html renderer: configure template renderer")
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, standalone: cfg.standalone, title: cfg.title}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

type spanToken struct {
	Class string `json:"class,omitempty"`
	Text  string `json:"text"`
}

func (r *Renderer) Render(ctx context.Context, tokens render.Tokens, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, errors.New("html renderer: template renderer is nil")
	}

	spans := make([]spanToken, 0, len(tokens))
	for _, token := range tokens.Compact() {
		spans = append(spans, spanToken{Class: classFor(token.Category, options), Text: token.Text})
	}

	code, err := r.templates.RenderTemplate("templates/code.tmpl", map[string]any{
		"container": options.Token("code.container", ContainerClass),
		"tokens":    spans,
	})
	if err != nil {
		return nil, errors.Wrap(err, "html renderer: render template")
	}
	code = codeSanitizer().Sanitize(code)

	if !r.standalone {
		return []byte(code), nil
	}

	page, err := r.templates.RenderTemplate("templates/page.tmpl", map[string]any{
		"title":      r.title,
		"stylesheet": Stylesheet(),
		"code":       code,
	})
	if err != nil {
		return nil, errors.Wrap(err, "html renderer: render page")
	}
	return []byte(page), nil
}

func classFor(category render.Category, options render.RenderOptions) string {
	fallback, ok := defaultClasses[category]
	if !ok {
		return ""
	}
	return options.Token(render.CategoryToken(category, ""), fallback)
}
