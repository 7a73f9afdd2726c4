package model

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-modelgen/internal/model"
	"github.com/goliatone/go-modelgen/pkg/schema"
)

// Builder converts content type schemas into model trees.
type Builder interface {
	BuildRootModel(ctx context.Context, contentTypeID int) (*GeneratedModel, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	sanitizer      func(string) string
	interfaceNamer func(string) string
	typeTable      map[string]string
	logger         *zap.Logger
}

// WithNameSanitizer overrides how display names become class names.
func WithNameSanitizer(sanitizer func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.sanitizer = sanitizer
	}
}

// WithInterfaceNamer overrides how composition interface names are derived
// from their class names.
func WithInterfaceNamer(namer func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.interfaceNamer = namer
	}
}

// WithTypeTable extends the primitive name table. Keys are fully qualified
// type names matched case-insensitively.
func WithTypeTable(table map[string]string) BuilderOption {
	return func(opts *builderOptions) {
		if len(table) == 0 {
			return
		}
		if opts.typeTable == nil {
			opts.typeTable = make(map[string]string, len(table))
		}
		for key, value := range table {
			opts.typeTable[key] = value
		}
	}
}

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(logger *zap.Logger) BuilderOption {
	return func(opts *builderOptions) {
		opts.logger = logger
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(provider schema.Provider, options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	return model.New(provider, model.Options{
		Sanitizer:      cfg.sanitizer,
		InterfaceNamer: cfg.interfaceNamer,
		TypeTable:      cfg.typeTable,
		Logger:         cfg.logger,
	})
}
