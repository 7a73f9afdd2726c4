// Package catalog exposes the native catalog document format (JSON or YAML)
// as a schema.FormatAdapter.
package catalog

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-modelgen/internal/schema/parser"
	"github.com/goliatone/go-modelgen/pkg/schema"
)

// DefaultAdapterName is the registry name of the catalog adapter.
const DefaultAdapterName = "catalog"

// Adapter wraps the loader/parser flow behind the schema adapter interface.
type Adapter struct {
	loader schema.Loader
	parser schema.Parser
}

var _ schema.FormatAdapter = (*Adapter)(nil)

// NewAdapter constructs a catalog adapter. A nil parser selects the built-in
// catalog parser.
func NewAdapter(loader schema.Loader, p schema.Parser) *Adapter {
	if p == nil {
		p = parser.New()
	}
	return &Adapter{loader: loader, parser: p}
}

// Name returns the adapter registry identifier.
func (a *Adapter) Name() string {
	return DefaultAdapterName
}

// Detect reports whether the payload declares a contentTypes list.
func (a *Adapter) Detect(_ schema.Source, raw []byte) bool {
	return parser.DetectCatalog(raw)
}

// Load fetches the raw catalog document.
func (a *Adapter) Load(ctx context.Context, src schema.Source) (schema.Document, error) {
	if a == nil || a.loader == nil {
		return schema.Document{}, errors.New("catalog adapter: loader is nil")
	}
	return a.loader.Load(ctx, src)
}

// Normalize parses the document into a Catalog provider.
func (a *Adapter) Normalize(ctx context.Context, doc schema.Document) (*schema.Catalog, error) {
	if a == nil || a.parser == nil {
		return nil, errors.New("catalog adapter: parser is nil")
	}
	return a.parser.Parse(ctx, doc)
}
