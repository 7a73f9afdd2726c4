package openapi

import (
	"bytes"
	"context"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-modelgen/internal/openapi/parser"
	"github.com/goliatone/go-modelgen/pkg/schema"
)

// DefaultAdapterName is the registry name of the OpenAPI adapter.
const DefaultAdapterName = "openapi"

// Adapter wraps the OpenAPI loader/parser flow behind the schema adapter interface.
type Adapter struct {
	loader schema.Loader
	parser schema.Parser
}

var _ schema.FormatAdapter = (*Adapter)(nil)

// NewAdapter constructs an OpenAPI adapter with the supplied loader and
// parser. A nil parser selects the kin-openapi backed parser.
func NewAdapter(loader schema.Loader, p schema.Parser) *Adapter {
	if p == nil {
		p = parser.New()
	}
	return &Adapter{
		loader: loader,
		parser: p,
	}
}

// NewParser returns the default OpenAPI parser.
func NewParser(options ...parser.Option) schema.Parser {
	return parser.New(options...)
}

// Name returns the adapter registry identifier.
func (a *Adapter) Name() string {
	return DefaultAdapterName
}

// Detect reports whether the raw payload appears to be OpenAPI.
func (a *Adapter) Detect(_ schema.Source, raw []byte) bool {
	return detectOpenAPI(raw)
}

// Load fetches the raw OpenAPI document.
func (a *Adapter) Load(ctx context.Context, src schema.Source) (schema.Document, error) {
	if a == nil || a.loader == nil {
		return schema.Document{}, errors.New("openapi adapter: loader is nil")
	}
	return a.loader.Load(ctx, src)
}

// Normalize maps the component schemas into a Catalog provider.
func (a *Adapter) Normalize(ctx context.Context, doc schema.Document) (*schema.Catalog, error) {
	if a == nil || a.parser == nil {
		return nil, errors.New("openapi adapter: parser is nil")
	}
	return a.parser.Parse(ctx, doc)
}

// detectOpenAPI looks for a top-level openapi or swagger version key. JSON
// payloads decode as YAML too.
func detectOpenAPI(raw []byte) bool {
	if len(bytes.TrimSpace(raw)) == 0 {
		return false
	}
	var head struct {
		OpenAPI any `yaml:"openapi"`
		Swagger any `yaml:"swagger"`
	}
	if err := yaml.Unmarshal(raw, &head); err != nil {
		return false
	}
	return head.OpenAPI != nil || head.Swagger != nil
}
