package catalog_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-modelgen/internal/schema/loader"
	"github.com/goliatone/go-modelgen/pkg/catalog"
	"github.com/goliatone/go-modelgen/pkg/schema"
)

func TestAdapterLoadAndNormalize(t *testing.T) {
	files := fstest.MapFS{"site.yaml": {Data: []byte("contentTypes:\n  - {id: 1, alias: home, name: Home}\n")}}
	adapter := catalog.NewAdapter(loader.New(schema.NewLoaderOptions(schema.WithFileSystem(files))), nil)

	require.Equal(t, catalog.DefaultAdapterName, adapter.Name())

	doc, err := adapter.Load(context.Background(), schema.SourceFromFS("site.yaml"))
	require.NoError(t, err)
	require.True(t, adapter.Detect(doc.Source(), doc.Raw()))

	parsed, err := adapter.Normalize(context.Background(), doc)
	require.NoError(t, err)
	require.Equal(t, 1, parsed.Len())
}

func TestAdapterWithoutLoader(t *testing.T) {
	_, err := catalog.NewAdapter(nil, nil).Load(context.Background(), schema.SourceFromFS("x"))
	require.Error(t, err)
}
