// Package loader reads schema documents from disk, an fs.FS or HTTP.
package loader

import (
	"context"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/goliatone/go-modelgen/internal/logging"
	"github.com/goliatone/go-modelgen/pkg/schema"
)

// acceptHeader lists the media types catalogs and OpenAPI documents use.
const acceptHeader = "application/yaml, application/x-yaml, application/json;q=0.9, */*;q=0.5"

// Loader implements schema.Loader.
type Loader struct {
	files   fs.FS
	client  *http.Client
	timeout time.Duration
	limit   int64
	logger  *zap.Logger
}

var _ schema.Loader = (*Loader)(nil)

// New builds a Loader from resolved options.
func New(options schema.LoaderOptions) *Loader {
	l := &Loader{
		files:   options.FileSystem,
		timeout: options.RequestTimeout,
		limit:   options.MaxDocumentBytes,
		logger:  logging.Component(options.Logger, "loader"),
	}
	if l.limit <= 0 {
		l.limit = schema.DefaultMaxDocumentBytes
	}

	switch {
	case options.HTTPClient != nil:
		client := *options.HTTPClient
		if client.Timeout == 0 {
			client.Timeout = l.timeout
		}
		l.client = &client
	case options.AllowHTTPFallback:
		l.client = &http.Client{Timeout: l.timeout}
	}
	return l
}

// Load reads src and wraps the payload in a Document.
func (l *Loader) Load(ctx context.Context, src schema.Source) (schema.Document, error) {
	if src == nil {
		return schema.Document{}, errors.New("schema loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return schema.Document{}, err
	}

	started := time.Now()
	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case schema.SourceKindFile:
		data, err = l.readFile(src.Location())
	case schema.SourceKindFS:
		data, err = l.readFS(src.Location())
	case schema.SourceKindURL:
		data, err = l.fetch(ctx, src.Location())
	default:
		err = errors.Newf("schema loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return schema.Document{}, err
	}

	l.logger.Debug("document loaded",
		zap.String(logging.FieldSource, src.Location()),
		zap.Int("bytes", len(data)),
		zap.Int64(logging.FieldDurationMS, time.Since(started).Milliseconds()),
	)
	return schema.NewDocument(src, data)
}

func (l *Loader) readFile(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("schema loader: file path is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "schema loader: open %s", path)
	}
	defer f.Close()
	return l.read(f, path)
}

func (l *Loader) readFS(name string) ([]byte, error) {
	if l.files == nil {
		return nil, errors.New("schema loader: filesystem is not configured")
	}
	f, err := l.files.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "schema loader: open %s", name)
	}
	defer f.Close()
	return l.read(f, name)
}

// fetch downloads a remote document. Transport failures and non-2xx answers
// are marked schema.ErrProviderUnavailable.
func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	if l.client == nil {
		return nil, errors.New("schema loader: http support disabled")
	}
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "schema loader: request %s", url)
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, schema.Unavailable(err, "schema loader: fetch %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, schema.Unavailable(errors.Newf("unexpected status %s", resp.Status), "schema loader: fetch %s", url)
	}
	data, err := l.read(resp.Body, url)
	if err != nil {
		return nil, schema.Unavailable(err, "schema loader: fetch %s", url)
	}
	return data, nil
}

// read reads at most limit bytes and fails when r holds more.
func (l *Loader) read(r io.Reader, location string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.limit+1))
	if err != nil {
		return nil, errors.Wrapf(err, "schema loader: read %s", location)
	}
	if int64(len(data)) > l.limit {
		return nil, errors.Newf("schema loader: %s exceeds %d bytes", location, l.limit)
	}
	return data, nil
}
