// Package parser maps the component schemas of an OpenAPI 3 document onto a
// content type catalog using kin-openapi.
package parser

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/getkin/kin-openapi/openapi3"
	"go.uber.org/zap"

	"github.com/goliatone/go-modelgen/internal/logging"
	"github.com/goliatone/go-modelgen/pkg/schema"
)

// Parser implements schema.Parser for OpenAPI documents.
type Parser struct {
	logger       *zap.Logger
	validate     bool
	externalRefs bool
}

// Ensure the implementation satisfies the public interface.
var _ schema.Parser = (*Parser)(nil)

// Option configures the parser.
type Option func(*Parser)

// WithLogger sets the parser logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// WithValidation runs the kin-openapi document validation before mapping.
func WithValidation(enabled bool) Option {
	return func(p *Parser) {
		p.validate = enabled
	}
}

// WithExternalRefs allows $ref values pointing outside the document.
func WithExternalRefs(allowed bool) Option {
	return func(p *Parser) {
		p.externalRefs = allowed
	}
}

// New constructs a Parser with the given options.
func New(options ...Option) *Parser {
	p := &Parser{}
	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}
	p.logger = logging.Component(p.logger, "openapi-parser")
	return p
}

// Parse converts components.schemas into a Catalog. Every component schema
// becomes a content type.
func (p *Parser) Parse(ctx context.Context, doc schema.Document) (*schema.Catalog, error) {
	spec, err := p.load(ctx, doc)
	if err != nil {
		return nil, err
	}

	catalog, err := newMapper(spec.Components.Schemas, p.logger).build(ctx)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("openapi document mapped",
		zap.String(logging.FieldSource, doc.Location()),
		zap.Int(logging.FieldCount, catalog.Len()),
	)
	return catalog, nil
}

// load decodes the document and checks it carries component schemas.
func (p *Parser) load(ctx context.Context, doc schema.Document) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: p.externalRefs,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, errors.Wrap(err, "openapi parser: load document")
	}

	if p.validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, errors.Wrap(err, "openapi parser: validate")
		}
	}

	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, errors.New("openapi parser: document does not define components.schemas")
	}
	return spec, nil
}
