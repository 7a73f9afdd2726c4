package modelgen

import (
	"github.com/cockroachdb/errors"

	internalLoader "github.com/goliatone/go-modelgen/internal/schema/loader"
	catalogparser "github.com/goliatone/go-modelgen/internal/schema/parser"
	"github.com/goliatone/go-modelgen/pkg/catalog"
	"github.com/goliatone/go-modelgen/pkg/openapi"
	"github.com/goliatone/go-modelgen/pkg/schema"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...schema.LoaderOption) schema.Loader {
	return internalLoader.New(schema.NewLoaderOptions(options...))
}

// NewParser returns the parser for a document format ("catalog" or
// "openapi").
func NewParser(format string) (schema.Parser, error) {
	switch format {
	case catalog.DefaultAdapterName, "":
		return catalogparser.New(), nil
	case openapi.DefaultAdapterName:
		return openapi.NewParser(), nil
	default:
		return nil, errors.Newf("modelgen: unknown format %q", format)
	}
}
