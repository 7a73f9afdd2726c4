package modelgen

import (
	"io/fs"

	"github.com/goliatone/go-modelgen/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in html renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// Stylesheet returns the CSS matching the html renderer's default classes.
func Stylesheet() string {
	return html.Stylesheet()
}
