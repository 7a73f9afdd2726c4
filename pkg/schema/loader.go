package schema

import (
	"context"
	"io/fs"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DefaultMaxDocumentBytes caps the size of a schema document.
const DefaultMaxDocumentBytes int64 = 8 << 20

// Loader reads the raw bytes of a catalog or OpenAPI document.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions is the resolved loader configuration.
type LoaderOptions struct {
	// FileSystem serves SourceKindFS sources. They fail when it is nil.
	FileSystem fs.FS

	// HTTPClient serves SourceKindURL sources. When nil, URL sources are
	// rejected unless AllowHTTPFallback is set.
	HTTPClient *http.Client

	// AllowHTTPFallback builds a default client when HTTPClient is nil.
	AllowHTTPFallback bool

	// RequestTimeout bounds a remote fetch. Zero means no bound beyond ctx.
	RequestTimeout time.Duration

	// MaxDocumentBytes rejects larger documents. Zero selects
	// DefaultMaxDocumentBytes.
	MaxDocumentBytes int64

	Logger *zap.Logger
}

// LoaderOption mutates LoaderOptions.
type LoaderOption func(*LoaderOptions)

// WithFileSystem serves SourceKindFS sources from files.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient serves URL sources with client. A client without its own
// timeout inherits RequestTimeout.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables URL sources on a default client bounded by
// timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// WithMaxDocumentBytes overrides DefaultMaxDocumentBytes.
func WithMaxDocumentBytes(limit int64) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.MaxDocumentBytes = limit
	}
}

// WithLoaderLogger sets the loader logger.
func WithLoaderLogger(logger *zap.Logger) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Logger = logger
	}
}

// NewLoaderOptions applies options over the zero configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	var cfg LoaderOptions
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.MaxDocumentBytes <= 0 {
		cfg.MaxDocumentBytes = DefaultMaxDocumentBytes
	}
	return cfg
}
