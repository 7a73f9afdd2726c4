package plain_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-modelgen/pkg/render"
	"github.com/goliatone/go-modelgen/pkg/renderers/plain"
)

func TestRendererConcatenatesTokens(t *testing.T) {
	tokens := render.Tokens{
		{Category: render.CategoryKeyword, Text: "public"},
		{Category: render.CategoryWhitespace, Text: " "},
		{Category: render.CategoryType, Text: "Page"},
	}

	out, err := plain.New().Render(context.Background(), tokens, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "public Page" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRendererHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := plain.New().Render(ctx, nil, render.RenderOptions{}); err == nil {
		t.Fatalf("expected cancellation error")
	}
}
