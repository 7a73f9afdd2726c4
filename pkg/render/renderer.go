package render

import (
	"context"
)

// Renderer formats a token stream into a presentation (plain text, HTML,
// ANSI, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, tokens Tokens, options RenderOptions) ([]byte, error)
}
