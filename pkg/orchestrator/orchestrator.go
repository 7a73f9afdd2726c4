package orchestrator

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/goliatone/go-modelgen/internal/logging"
	internalLoader "github.com/goliatone/go-modelgen/internal/schema/loader"
	"github.com/goliatone/go-modelgen/pkg/catalog"
	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/openapi"
	"github.com/goliatone/go-modelgen/pkg/render"
	"github.com/goliatone/go-modelgen/pkg/renderers/ansi"
	"github.com/goliatone/go-modelgen/pkg/renderers/html"
	"github.com/goliatone/go-modelgen/pkg/renderers/plain"
	"github.com/goliatone/go-modelgen/pkg/schema"
)

const (
	defaultRendererName = plain.Name
	defaultAdapterName  = catalog.DefaultAdapterName
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithProvider sets the provider used when a request names no source or
// document.
func WithProvider(provider schema.Provider) Option {
	return func(o *Orchestrator) {
		o.provider = provider
	}
}

// WithLoader injects the loader used for format detection and by the
// default adapters.
func WithLoader(loader schema.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithAdapterRegistry replaces the default adapter registry (catalog and
// openapi).
func WithAdapterRegistry(registry *AdapterRegistry) Option {
	return func(o *Orchestrator) {
		o.adapterRegistry = registry
	}
}

// WithDefaultAdapter names the adapter used when detection finds no match.
func WithDefaultAdapter(name string) Option {
	return func(o *Orchestrator) {
		o.defaultAdapter = name
	}
}

// WithModelBuilder injects a fixed model builder. It takes precedence over
// per-request providers.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithBuilderOptions configures the builders the orchestrator creates for
// each provider.
func WithBuilderOptions(options ...model.BuilderOption) Option {
	return func(o *Orchestrator) {
		o.builderOptions = append(o.builderOptions, options...)
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithThemeSelector enables theme resolution. Requests without a theme name
// fall back to the given defaults.
func WithThemeSelector(selector ThemeSelector, defaultTheme, defaultVariant string) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
		o.defaultTheme = defaultTheme
		o.defaultVariant = defaultVariant
	}
}

// WithDecorators registers decorators that run against the generated model
// before printing.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithLogger sets the orchestrator logger. It is also handed to the default
// builder.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator coordinates the pipeline from schema source to rendered model
// text. Missing dependencies are initialised with the built-in
// implementations.
type Orchestrator struct {
	provider        schema.Provider
	loader          schema.Loader
	adapterRegistry *AdapterRegistry
	defaultAdapter  string
	builder         model.Builder
	builderOptions  []model.BuilderOption
	registry        *render.Registry
	defaultRenderer string
	themeSelector   ThemeSelector
	defaultTheme    string
	defaultVariant  string
	decorators      []model.Decorator
	logger          *zap.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt != nil {
			opt(o)
		}
	}
	o.applyDefaults()
	return o
}

// Request describes one generation.
type Request struct {
	// ContentTypeID selects the content type to generate.
	ContentTypeID int

	// Source identifies a schema document. Optional when Document is set or
	// the orchestrator has a provider.
	Source schema.Source

	// Document bypasses the loader when the caller already holds the payload.
	Document *schema.Document

	// Format names the adapter for Source/Document. Empty means detect.
	Format string

	// Renderer names the renderer to use. Empty selects the default.
	Renderer string

	// ThemeName and ThemeVariant select a theme when a selector is configured.
	ThemeName    string
	ThemeVariant string

	// RenderOptions are passed through to the renderer. A Theme set here wins
	// over theme selection.
	RenderOptions render.RenderOptions
}

// Generate builds the model for req.ContentTypeID and formats it with the
// requested renderer.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	started := time.Now()

	root, err := o.Model(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	options := req.RenderOptions
	if options.Theme == nil {
		if options.Theme, err = o.resolveTheme(req.ThemeName, req.ThemeVariant); err != nil {
			return nil, err
		}
	}

	output, err := renderer.Render(ctx, render.Print(root), options)
	if err != nil {
		return nil, errors.Wrap(err, "orchestrator: render output")
	}

	o.logger.Debug("model generated",
		zap.Int(logging.FieldContentTypeID, req.ContentTypeID),
		zap.String(logging.FieldRenderer, renderer.Name()),
		zap.Int64(logging.FieldDurationMS, time.Since(started).Milliseconds()),
	)
	return output, nil
}

// GenerateModelText returns the plain model text for req.ContentTypeID. The
// Renderer and theme fields are ignored.
func (o *Orchestrator) GenerateModelText(ctx context.Context, req Request) (string, error) {
	root, err := o.Model(ctx, req)
	if err != nil {
		return "", err
	}
	return render.Render(root), nil
}

// Model builds and decorates the model tree for req.ContentTypeID.
func (o *Orchestrator) Model(ctx context.Context, req Request) (*model.GeneratedModel, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	builder, err := o.builderFor(ctx, req)
	if err != nil {
		return nil, err
	}

	root, err := builder.BuildRootModel(ctx, req.ContentTypeID)
	if err != nil {
		return nil, errors.Wrapf(err, "orchestrator: build model for content type %d", req.ContentTypeID)
	}

	if err := o.applyDecorators(root); err != nil {
		return nil, err
	}
	return root, nil
}

// Provider returns the provider a request resolves to: the catalog loaded
// from its source or document, or the configured provider.
func (o *Orchestrator) Provider(ctx context.Context, req Request) (schema.Provider, error) {
	if req.Document != nil || req.Source != nil {
		return o.loadCatalog(ctx, req)
	}
	if o.provider == nil {
		return nil, errors.Wrap(schema.ErrProviderUnavailable, "orchestrator: provider or source is required")
	}
	return o.provider, nil
}

// Catalog loads and normalises the request's source or document.
func (o *Orchestrator) Catalog(ctx context.Context, req Request) (*schema.Catalog, error) {
	return o.loadCatalog(ctx, req)
}

// List enumerates the content types of the request's provider.
func (o *Orchestrator) List(ctx context.Context, req Request) ([]schema.ContentTypeSummary, error) {
	provider, err := o.Provider(ctx, req)
	if err != nil {
		return nil, err
	}
	lister, ok := provider.(schema.Lister)
	if !ok {
		return nil, errors.New("orchestrator: provider cannot list content types")
	}
	return lister.ListContentTypes(ctx)
}

// Renderers returns the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

// Formats returns the registered document format names.
func (o *Orchestrator) Formats() []string {
	return o.adapterRegistry.List()
}

// DescribeRenderers returns name and content type of every renderer.
func (o *Orchestrator) DescribeRenderers() []render.Descriptor {
	if o.registry == nil {
		return nil
	}
	return o.registry.Describe()
}

func (o *Orchestrator) builderFor(ctx context.Context, req Request) (model.Builder, error) {
	if o.builder != nil {
		return o.builder, nil
	}
	provider, err := o.Provider(ctx, req)
	if err != nil {
		return nil, err
	}
	options := append([]model.BuilderOption{model.WithLogger(o.logger)}, o.builderOptions...)
	return model.NewBuilder(provider, options...), nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, errors.Wrap(err, "orchestrator")
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return o.registry.Get(names[0])
}

func (o *Orchestrator) applyDecorators(root *model.GeneratedModel) error {
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(root); err != nil {
			return errors.Wrap(err, "orchestrator: decorate model")
		}
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	o.logger = logging.Component(o.logger, "orchestrator")

	if o.loader == nil {
		o.loader = internalLoader.New(schema.NewLoaderOptions())
	}
	if o.adapterRegistry == nil {
		o.adapterRegistry = NewAdapterRegistry()
		o.adapterRegistry.MustRegister(catalog.NewAdapter(o.loader, nil))
		o.adapterRegistry.MustRegister(openapi.NewAdapter(o.loader, nil))
	}
	if o.defaultAdapter == "" {
		o.defaultAdapter = defaultAdapterName
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		o.registry.MustRegister(plain.New())
		o.registry.MustRegister(ansi.New())
		renderer, err := html.New()
		if err != nil {
			o.initialiseErr = errors.Wrap(err, "orchestrator: html renderer")
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
