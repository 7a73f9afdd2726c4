package ansi_test

import (
	"context"
	"strings"
	"testing"

	"github.com/pterm/pterm"

	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/render"
	"github.com/goliatone/go-modelgen/pkg/renderers/ansi"
)

func sampleModel() *model.GeneratedModel {
	return &model.GeneratedModel{
		ClassName:  "Page",
		Properties: []model.ResolvedProperty{{Name: "Count", Type: "int", Mandatory: true}},
	}
}

func TestRendererStripsToPlainText(t *testing.T) {
	m := sampleModel()

	out, err := ansi.New().Render(context.Background(), render.Print(m), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := ansi.Strip(out); got != render.Render(m) {
		t.Fatalf("stripped output differs from plain text:\n%q\n%q", got, render.Render(m))
	}
	if !strings.Contains(string(out), pterm.Blue("public")) {
		t.Fatalf("expected keyword in blue")
	}
}

func TestRendererThemeColours(t *testing.T) {
	opts := render.RenderOptions{Theme: &render.Theme{Tokens: map[string]string{
		"code.keyword.color": "light-magenta",
		"code.type.color":    "Yellow",
	}}}

	out, err := ansi.New().Render(context.Background(), render.Print(sampleModel()), opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), pterm.LightMagenta("public")) {
		t.Fatalf("expected themed keyword colour")
	}
	if !strings.Contains(string(out), pterm.Yellow("Page")) {
		t.Fatalf("expected themed type colour")
	}
}

func TestRendererRejectsUnknownColour(t *testing.T) {
	renderer := ansi.New(ansi.WithColor(render.CategoryType, "ultraviolet"))

	if _, err := renderer.Render(context.Background(), render.Print(sampleModel()), render.RenderOptions{}); err == nil {
		t.Fatalf("expected unknown colour error")
	}
}
