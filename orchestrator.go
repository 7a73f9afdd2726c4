package modelgen

import (
	"context"

	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/orchestrator"
	"github.com/goliatone/go-modelgen/pkg/render"
	"github.com/goliatone/go-modelgen/pkg/schema"
)

// RenderOptions describes per-request renderer settings such as the theme.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request for callers that only import the root
// package.
type Request = orchestrator.Request

// Option aliases orchestrator.Option.
type Option = orchestrator.Option

// ThemeSelector resolves a go-theme selection.
type ThemeSelector = orchestrator.ThemeSelector

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateModelText builds the model for contentTypeID from provider and
// returns its plain text rendering.
func GenerateModelText(ctx context.Context, provider schema.Provider, contentTypeID int, options ...Option) (string, error) {
	options = append([]Option{orchestrator.WithProvider(provider)}, options...)
	return orchestrator.New(options...).GenerateModelText(ctx, Request{ContentTypeID: contentTypeID})
}

// Generate loads the schema document at source, builds the model for
// contentTypeID and formats it with the named renderer (plain when empty).
func Generate(ctx context.Context, source schema.Source, contentTypeID int, rendererName string, options ...Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, Request{
		ContentTypeID: contentTypeID,
		Source:        source,
		Renderer:      rendererName,
	})
}

// GenerateFromDocument is Generate for a pre-loaded document.
func GenerateFromDocument(ctx context.Context, doc schema.Document, contentTypeID int, rendererName string, options ...Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, Request{
		ContentTypeID: contentTypeID,
		Document:      &doc,
		Renderer:      rendererName,
	})
}

// WithProvider forwards orchestrator.WithProvider.
func WithProvider(provider schema.Provider) Option {
	return orchestrator.WithProvider(provider)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector ThemeSelector, defaultTheme, defaultVariant string) Option {
	return orchestrator.WithThemeSelector(selector, defaultTheme, defaultVariant)
}

// WithDecorators forwards orchestrator.WithDecorators.
func WithDecorators(decorators ...model.Decorator) Option {
	return orchestrator.WithDecorators(decorators...)
}

// WithBuilderOptions forwards orchestrator.WithBuilderOptions.
func WithBuilderOptions(options ...model.BuilderOption) Option {
	return orchestrator.WithBuilderOptions(options...)
}
