package loader_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-modelgen/internal/schema/loader"
	"github.com/goliatone/go-modelgen/pkg/schema"
)

const payload = "contentTypes: []\n"

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	doc, err := loader.New(schema.NewLoaderOptions()).Load(context.Background(), schema.SourceFromFile(path))
	require.NoError(t, err)
	require.Equal(t, payload, string(doc.Raw()))
	require.Equal(t, schema.SourceKindFile, doc.Source().Kind())
}

func TestLoadFS(t *testing.T) {
	files := fstest.MapFS{"schemas/catalog.yaml": {Data: []byte(payload)}}
	l := loader.New(schema.NewLoaderOptions(schema.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), schema.SourceFromFS("schemas/catalog.yaml"))
	require.NoError(t, err)
	require.Equal(t, payload, string(doc.Raw()))

	_, err = loader.New(schema.NewLoaderOptions()).Load(context.Background(), schema.SourceFromFS("schemas/catalog.yaml"))
	require.Error(t, err)
}

func TestLoadHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	disabled := loader.New(schema.NewLoaderOptions())
	_, err := disabled.Load(context.Background(), schema.SourceFromURL(server.URL))
	require.Error(t, err)

	l := loader.New(schema.NewLoaderOptions(schema.WithHTTPFallback(0)))
	doc, err := l.Load(context.Background(), schema.SourceFromURL(server.URL+"/catalog.yaml"))
	require.NoError(t, err)
	require.Equal(t, payload, string(doc.Raw()))

	_, err = l.Load(context.Background(), schema.SourceFromURL(server.URL+"/missing"))
	require.True(t, errors.Is(err, schema.ErrProviderUnavailable), "got %v", err)
}

func TestLoadWithClientAndCancellation(t *testing.T) {
	l := loader.New(schema.NewLoaderOptions(schema.WithHTTPClient(http.DefaultClient)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Load(ctx, schema.SourceFromFile(filepath.Join(t.TempDir(), "x.yaml")))
	require.ErrorIs(t, err, context.Canceled)

	_, err = l.Load(context.Background(), nil)
	require.Error(t, err)
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := loader.New(schema.NewLoaderOptions()).Load(context.Background(), schema.SourceFromFile(path))
	require.Error(t, err)
}

func TestLoadRejectsOversizedDocument(t *testing.T) {
	files := fstest.MapFS{"big.yaml": {Data: []byte(payload)}}
	l := loader.New(schema.NewLoaderOptions(schema.WithFileSystem(files), schema.WithMaxDocumentBytes(4)))

	_, err := l.Load(context.Background(), schema.SourceFromFS("big.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "exceeds 4 bytes")
}

func TestLoadHTTPSendsAcceptHeader(t *testing.T) {
	var accept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	l := loader.New(schema.NewLoaderOptions(schema.WithHTTPClient(server.Client())))
	_, err := l.Load(context.Background(), schema.SourceFromURL(server.URL))
	require.NoError(t, err)
	require.Contains(t, accept, "application/yaml")
}
