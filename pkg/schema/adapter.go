package schema

import "context"

// FormatAdapter turns a raw document of one format (native catalog, OpenAPI)
// into a Catalog provider.
type FormatAdapter interface {
	Name() string
	Detect(src Source, raw []byte) bool
	Load(ctx context.Context, src Source) (Document, error)
	Normalize(ctx context.Context, doc Document) (*Catalog, error)
}
