package html_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/render"
	"github.com/goliatone/go-modelgen/pkg/renderers/html"
)

func sampleTokens() render.Tokens {
	return render.Print(&model.GeneratedModel{
		ClassName: "Page",
		Properties: []model.ResolvedProperty{
			{Name: "Tags", Type: "IEnumerable<string>"},
			{Name: "Count", Type: "int", Mandatory: true},
		},
	})
}

func newRenderer(t *testing.T, options ...html.Option) *html.Renderer {
	t.Helper()
	renderer, err := html.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func TestRendererDefaultClasses(t *testing.T) {
	out, err := newRenderer(t).Render(context.Background(), sampleTokens(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(out)

	for _, fragment := range []string{
		`<pre class="modelgen-code">`,
		`<span class="dm-kwd">public</span> <span class="dm-kwd">class</span> <span class="dm-typ">Page</span>`,
		`<span class="dm-typ">IEnumerable</span><span class="dm-std">&lt;</span><span class="dm-typ">string</span><span class="dm-std">&gt;</span>`,
		`<span class="dm-kwd">int</span>`,
		`<span class="dm-typ">Required</span>`,
		`</pre>`,
	} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, got)
		}
	}
	if strings.Contains(got, "<html") {
		t.Fatalf("fragment output must not include a page wrapper")
	}
}

func TestRendererThemeClasses(t *testing.T) {
	opts := render.RenderOptions{Theme: &render.Theme{Name: "light", Tokens: map[string]string{
		"code.keyword":   "tok-kw",
		"code.container": "code-block",
	}}}

	out, err := newRenderer(t).Render(context.Background(), sampleTokens(), opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(out)
	if !strings.Contains(got, `<pre class="code-block">`) || !strings.Contains(got, `<span class="tok-kw">public</span>`) {
		t.Fatalf("theme classes not applied:\n%s", got)
	}
	if !strings.Contains(got, `<span class="dm-typ">Page</span>`) {
		t.Fatalf("categories without theme tokens keep defaults:\n%s", got)
	}
}

func TestRendererSanitizesClassInjection(t *testing.T) {
	opts := render.RenderOptions{Theme: &render.Theme{Tokens: map[string]string{
		"code.keyword": `x" onclick="alert(1)`,
	}}}

	out, err := newRenderer(t).Render(context.Background(), sampleTokens(), opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(out), "onclick") {
		t.Fatalf("unsafe attribute survived sanitization:\n%s", out)
	}
}

func TestRendererStandalonePage(t *testing.T) {
	out, err := newRenderer(t, html.WithStandalone("Page model")).Render(context.Background(), sampleTokens(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(out)
	for _, fragment := range []string{"<!DOCTYPE html>", "<title>Page model</title>", ".modelgen-code .dm-kwd", `<pre class="modelgen-code">`} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("expected %q in page:\n%s", fragment, got)
		}
	}
}

func TestRendererMetadata(t *testing.T) {
	renderer := newRenderer(t)
	if renderer.Name() != html.Name {
		t.Fatalf("unexpected name %q", renderer.Name())
	}
	if !strings.HasPrefix(renderer.ContentType(), "text/html") {
		t.Fatalf("unexpected content type %q", renderer.ContentType())
	}
	if html.Stylesheet() == "" {
		t.Fatalf("expected embedded stylesheet")
	}
}
