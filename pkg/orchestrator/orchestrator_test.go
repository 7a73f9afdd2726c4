package orchestrator

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/cockroachdb/errors"
	theme "github.com/goliatone/go-theme"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-modelgen/internal/schema/loader"
	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/render"
	"github.com/goliatone/go-modelgen/pkg/renderers/ansi"
	"github.com/goliatone/go-modelgen/pkg/schema"
	"github.com/goliatone/go-modelgen/pkg/testsupport"
)

const catalogDocument = `contentTypes:
  - id: 1
    alias: page
    name: Page
    groups:
      - id: 10
        name: Content
        properties:
          - alias: title
            mandatory: true
            shape: { fullName: System.String }
`

const openapiDocument = `openapi: 3.0.3
info: { title: t, version: "1" }
paths: {}
components:
  schemas:
    Page:
      type: object
      required: [title]
      properties:
        title:
          type: string
`

const pageText = "public class Page\n{\n    [Required]\n    public string Title { get; set; }\n\n}\n\n"

func TestGenerateFromProvider(t *testing.T) {
	orch := New(WithProvider(testsupport.SampleCatalog()))

	out, err := orch.Generate(context.Background(), Request{ContentTypeID: testsupport.NewsArticleID})
	require.NoError(t, err)

	want := testsupport.MustReadGoldenString(t, filepath.Join("..", "render", "testdata", "news_article.golden"))
	require.Equal(t, want, string(out))

	text, err := orch.GenerateModelText(context.Background(), Request{ContentTypeID: testsupport.NewsArticleID})
	require.NoError(t, err)
	require.Equal(t, want, text)
}

func TestGenerateDetectsDocumentFormat(t *testing.T) {
	for name, body := range map[string]string{"catalog": catalogDocument, "openapi": openapiDocument} {
		t.Run(name, func(t *testing.T) {
			doc := schema.MustNewDocument(schema.SourceFromFS("site.yaml"), []byte(body))
			text, err := New().GenerateModelText(context.Background(), Request{ContentTypeID: 1, Document: &doc})
			require.NoError(t, err)
			require.Equal(t, pageText, text)
		})
	}
}

func TestGenerateWithExplicitFormatLoadsThroughAdapter(t *testing.T) {
	files := fstest.MapFS{"api.yaml": {Data: []byte(openapiDocument)}}
	orch := New(WithLoader(loader.New(schema.NewLoaderOptions(schema.WithFileSystem(files)))))

	out, err := orch.Generate(context.Background(), Request{
		ContentTypeID: 1,
		Source:        schema.SourceFromFS("api.yaml"),
		Format:        "OpenAPI",
		Renderer:      ansi.Name,
	})
	require.NoError(t, err)
	require.Equal(t, pageText, ansi.Strip(out))
}

func TestGenerateErrors(t *testing.T) {
	_, err := New().Generate(context.Background(), Request{ContentTypeID: 1})
	require.True(t, errors.Is(err, schema.ErrProviderUnavailable))

	orch := New(WithProvider(testsupport.SampleCatalog()))
	_, err = orch.Generate(context.Background(), Request{ContentTypeID: 42})
	require.True(t, errors.Is(err, schema.ErrSchemaNotFound))

	_, err = orch.Generate(context.Background(), Request{ContentTypeID: testsupport.MediaID, Renderer: "pdf"})
	require.True(t, errors.Is(err, render.ErrRendererNotFound))

	doc := schema.MustNewDocument(schema.SourceFromFS("x.yaml"), []byte(catalogDocument))
	_, err = orch.Generate(context.Background(), Request{ContentTypeID: 1, Document: &doc, Format: "xml"})
	require.True(t, errors.Is(err, ErrAdapterNotFound))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = orch.Generate(ctx, Request{ContentTypeID: testsupport.MediaID})
	require.ErrorIs(t, err, context.Canceled)
}

func TestGenerateAmbiguousDetection(t *testing.T) {
	registry := NewAdapterRegistry()
	registry.MustRegister(stubAdapter{name: "a", detect: true})
	registry.MustRegister(stubAdapter{name: "b", detect: true})

	doc := schema.MustNewDocument(schema.SourceFromFS("x"), []byte("x"))
	_, err := New(WithAdapterRegistry(registry)).Generate(context.Background(), Request{ContentTypeID: 1, Document: &doc})
	require.Error(t, err)
	require.Contains(t, err.Error(), "multiple adapters matched payload (a, b)")
}

func TestGenerateFallsBackToDefaultAdapter(t *testing.T) {
	fallback := schema.NewCatalog().MustAddContentType(&schema.ContentType{ID: 1, Alias: "empty", Name: "Empty", ParentID: schema.NoParent})
	registry := NewAdapterRegistry()
	registry.MustRegister(stubAdapter{name: "fallback", catalog: fallback})

	doc := schema.MustNewDocument(schema.SourceFromFS("x"), []byte("x"))
	orch := New(WithAdapterRegistry(registry), WithDefaultAdapter("fallback"))
	text, err := orch.GenerateModelText(context.Background(), Request{ContentTypeID: 1, Document: &doc})
	require.NoError(t, err)
	require.Equal(t, "public class Empty\n{\n}\n\n", text)
}

func TestDecoratorsRunBeforePrinting(t *testing.T) {
	rename := model.DecoratorFunc(func(m *model.GeneratedModel) error {
		m.ClassName = "Renamed" + m.ClassName
		return nil
	})
	orch := New(WithProvider(testsupport.SampleCatalog()), WithDecorators(rename))

	text, err := orch.GenerateModelText(context.Background(), Request{ContentTypeID: testsupport.MediaID})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(text, "public class RenamedMedia\n"))

	failing := model.DecoratorFunc(func(*model.GeneratedModel) error { return errors.New("boom") })
	_, err = New(WithProvider(testsupport.SampleCatalog()), WithDecorators(failing)).
		Generate(context.Background(), Request{ContentTypeID: testsupport.MediaID})
	require.ErrorContains(t, err, "decorate model: boom")
}

func TestList(t *testing.T) {
	summaries, err := New(WithProvider(testsupport.SampleCatalog())).List(context.Background(), Request{})
	require.NoError(t, err)
	require.Len(t, summaries, 4)
	require.Equal(t, "Base Page", summaries[0].Name)
}

func TestDefaultRenderers(t *testing.T) {
	require.Equal(t, []string{"ansi", "html", "plain"}, New().Renderers())
}

type captureRenderer struct {
	options render.RenderOptions
}

func (r *captureRenderer) Name() string        { return "capture" }
func (r *captureRenderer) ContentType() string { return "text/plain" }

func (r *captureRenderer) Render(_ context.Context, tokens render.Tokens, options render.RenderOptions) ([]byte, error) {
	r.options = options
	return []byte(tokens.String()), nil
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}

func TestGeneratePassesThemeTokensToRenderer(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "solarized",
		Version: "1.0.0",
		Tokens: map[string]string{
			"code.keyword.color": "blue",
			"code.type.color":    "cyan",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{"code.keyword.color": "light-blue"},
			},
		},
	}
	selector := &stubThemeSelector{selection: &theme.Selection{Theme: "solarized", Variant: "dark", Manifest: manifest}}

	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(
		WithProvider(testsupport.SampleCatalog()),
		WithRegistry(registry),
		WithThemeSelector(selector, "default", "light"),
	)

	if _, err := orch.Generate(context.Background(), Request{ContentTypeID: testsupport.MediaID, ThemeVariant: "dark"}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(selector.calls) != 1 {
		t.Fatalf("expected selector called once, got %d", len(selector.calls))
	}
	if selector.calls[0] != (selectorCall{name: "default", variant: "dark"}) {
		t.Fatalf("unexpected selector args: %+v", selector.calls[0])
	}

	got := renderer.options.Theme
	if got == nil {
		t.Fatalf("expected theme passed to renderer")
	}
	if got.Name != "solarized" || got.Variant != "dark" {
		t.Fatalf("unexpected theme identity: %+v", got)
	}
	if got.Tokens["code.keyword.color"] != "light-blue" {
		t.Fatalf("variant tokens should override manifest tokens, got %q", got.Tokens["code.keyword.color"])
	}
	if got.Tokens["code.type.color"] != "cyan" {
		t.Fatalf("manifest tokens not propagated")
	}
}

func TestGenerateThemeSelectionFailure(t *testing.T) {
	selector := &stubThemeSelector{err: errors.New("unknown theme")}
	orch := New(WithProvider(testsupport.SampleCatalog()), WithThemeSelector(selector, "", ""))

	_, err := orch.Generate(context.Background(), Request{ContentTypeID: testsupport.MediaID, ThemeName: "missing"})
	require.ErrorContains(t, err, `select theme "missing"`)

	explicit := &render.Theme{Name: "inline"}
	selector.calls = nil
	_, err = orch.Generate(context.Background(), Request{
		ContentTypeID: testsupport.MediaID,
		RenderOptions: render.RenderOptions{Theme: explicit},
	})
	require.NoError(t, err)
	require.Empty(t, selector.calls)
}
