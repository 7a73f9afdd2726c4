package orchestrator

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-modelgen/pkg/schema"
)

type stubAdapter struct {
	name    string
	detect  bool
	catalog *schema.Catalog
}

func (a stubAdapter) Name() string                       { return a.name }
func (a stubAdapter) Detect(schema.Source, []byte) bool { return a.detect }

func (a stubAdapter) Load(context.Context, schema.Source) (schema.Document, error) {
	return schema.NewDocument(schema.SourceFromFS("stub"), []byte("stub"))
}

func (a stubAdapter) Normalize(context.Context, schema.Document) (*schema.Catalog, error) {
	if a.catalog == nil {
		return schema.NewCatalog(), nil
	}
	return a.catalog, nil
}

func TestAdapterRegistry(t *testing.T) {
	registry := NewAdapterRegistry()
	require.NoError(t, registry.Register(stubAdapter{name: "Catalog"}))
	require.Error(t, registry.Register(stubAdapter{name: "catalog "}), "names are normalised before the duplicate check")
	require.Error(t, registry.Register(nil))
	require.Error(t, registry.Register(stubAdapter{name: "  "}))
	registry.MustRegister(stubAdapter{name: "openapi", detect: true})

	require.Equal(t, []string{"catalog", "openapi"}, registry.List())
	require.True(t, registry.Has("CATALOG"))
	require.False(t, registry.Has(""))

	adapter, err := registry.Get(" OpenAPI ")
	require.NoError(t, err)
	require.Equal(t, "openapi", adapter.Name())

	_, err = registry.Get("xml")
	require.True(t, errors.Is(err, ErrAdapterNotFound))

	matches := registry.Detect(schema.SourceFromFS("x"), []byte("x"))
	require.Len(t, matches, 1)
	require.Equal(t, "openapi", matches[0].Name())
}
