package schema

import "context"

// Parser converts a raw schema document into a Catalog provider.
type Parser interface {
	Parse(ctx context.Context, doc Document) (*Catalog, error)
}
