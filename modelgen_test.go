package modelgen_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-modelgen"
	"github.com/goliatone/go-modelgen/pkg/schema"
	"github.com/goliatone/go-modelgen/pkg/testsupport"
)

func TestGenerateModelText(t *testing.T) {
	text, err := modelgen.GenerateModelText(context.Background(), testsupport.SampleCatalog(), testsupport.MediaID)
	require.NoError(t, err)
	require.Equal(t, testsupport.MustReadGoldenString(t, "pkg/render/testdata/media.golden"), text)
}

func TestGenerateFromDocumentHTML(t *testing.T) {
	doc := schema.MustNewDocument(schema.SourceFromFS("site.yaml"), []byte(`contentTypes:
  - id: 1
    alias: page
    name: Page
    groups:
      - id: 1
        name: Content
        properties:
          - alias: count
            shape: { fullName: System.Int32 }
`))
	out, err := modelgen.GenerateFromDocument(context.Background(), doc, 1, "html")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(out), `<pre class="modelgen-code">`))
	require.Contains(t, string(out), `<span class="dm-kwd">int</span>`)
}

func TestNewParser(t *testing.T) {
	for _, format := range []string{"", "catalog", "openapi"} {
		p, err := modelgen.NewParser(format)
		require.NoError(t, err)
		require.NotNil(t, p)
	}
	_, err := modelgen.NewParser("xml")
	require.Error(t, err)
}

func TestEmbeddedAssets(t *testing.T) {
	_, err := fs.Stat(modelgen.EmbeddedTemplates(), "templates/code.tmpl")
	require.NoError(t, err)
	require.Contains(t, modelgen.Stylesheet(), ".modelgen-code")
}
