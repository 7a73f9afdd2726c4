package render_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelgen/pkg/render"
)

type namedRenderer string

func (n namedRenderer) Name() string        { return string(n) }
func (n namedRenderer) ContentType() string { return "text/plain" }
func (n namedRenderer) Render(_ context.Context, tokens render.Tokens, _ render.RenderOptions) ([]byte, error) {
	return []byte(tokens.String()), nil
}

func TestRegistry(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(namedRenderer("plain"))
	registry.MustRegister(namedRenderer("ansi"))

	if err := registry.Register(namedRenderer("plain")); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}
	if err := registry.Register(namedRenderer("")); err == nil {
		t.Fatalf("expected empty name error")
	}

	if diff := cmp.Diff([]string{"ansi", "plain"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("ANSI") || registry.Has("html") {
		t.Fatalf("unexpected Has results")
	}
	if err := registry.Register(namedRenderer(" Plain")); err == nil {
		t.Fatalf("expected duplicate error for differently cased name")
	}

	want := []render.Descriptor{{Name: "ansi", ContentType: "text/plain"}, {Name: "plain", ContentType: "text/plain"}}
	if diff := cmp.Diff(want, registry.Describe()); diff != "" {
		t.Fatalf("describe mismatch (-want +got):\n%s", diff)
	}
	if _, err := registry.Get(" Plain "); err != nil {
		t.Fatalf("expected case-insensitive lookup, got %v", err)
	}

	_, err := registry.Get("html")
	if !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRenderOptionsToken(t *testing.T) {
	var empty render.RenderOptions
	if got := empty.Token("code.keyword", "dm-kwd"); got != "dm-kwd" {
		t.Fatalf("expected fallback, got %q", got)
	}

	opts := render.RenderOptions{Theme: &render.Theme{Tokens: map[string]string{
		render.CategoryToken(render.CategoryKeyword, ""):      "kw",
		render.CategoryToken(render.CategoryType, "color"):    "cyan",
		render.CategoryToken(render.CategoryStandard, ""):      " ",
	}}}
	if got := opts.Token("code.keyword", "dm-kwd"); got != "kw" {
		t.Fatalf("expected theme token, got %q", got)
	}
	if got := opts.Token("code.type.color", "blue"); got != "cyan" {
		t.Fatalf("expected suffixed token, got %q", got)
	}
	if got := opts.Token("code.standard", "dm-std"); got != "dm-std" {
		t.Fatalf("blank theme values must fall back, got %q", got)
	}
}
