// Package ansi formats token streams with terminal colours. Colours per
// category default to blue keywords and cyan types and can be overridden
// with theme tokens such as code.keyword.color.
package ansi

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"

	"github.com/goliatone/go-modelgen/pkg/render"
)

// Name is the registry name of the ansi renderer.
const Name = "ansi"

var defaultColors = map[render.Category]string{
	render.CategoryKeyword:  "blue",
	render.CategoryType:     "cyan",
	render.CategoryStandard: "none",
}

type Option func(*Renderer)

// WithColor overrides the default colour of a category.
func WithColor(category render.Category, name string) Option {
	return func(r *Renderer) {
		r.defaults[category] = name
	}
}

// Renderer colours tokens by category.
type Renderer struct {
	defaults map[render.Category]string
}

var _ render.Renderer = (*Renderer)(nil)

// New returns an ansi renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{defaults: make(map[render.Category]string, len(defaultColors))}
	for category, name := range defaultColors {
		r.defaults[category] = name
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, tokens render.Tokens, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	palette := make(map[render.Category]colorFunc, len(r.defaults))
	for category, fallback := range r.defaults {
		name := options.Token(render.CategoryToken(category, "color"), fallback)
		fn, ok := lookupColor(name)
		if !ok {
			return nil, errors.Newf("ansi renderer: unknown colour %q for %s", name, category)
		}
		palette[category] = fn
	}

	var b strings.Builder
	for _, token := range tokens.Compact() {
		if fn := palette[token.Category]; fn != nil && token.Category != render.CategoryWhitespace {
			b.WriteString(fn(token.Text))
			continue
		}
		b.WriteString(token.Text)
	}
	return []byte(b.String()), nil
}

// Strip removes colour sequences from rendered output.
func Strip(out []byte) string {
	return pterm.RemoveColorFromString(string(out))
}
