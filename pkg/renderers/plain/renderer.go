// Package plain formats token streams as unstyled text.
package plain

import (
	"context"

	"github.com/goliatone/go-modelgen/pkg/render"
)

// Name is the registry name of the plain renderer.
const Name = "plain"

// Renderer concatenates token text.
type Renderer struct{}

var _ render.Renderer = (*Renderer)(nil)

// New returns a plain renderer.
func New() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, tokens render.Tokens, _ render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []byte(tokens.String()), nil
}
