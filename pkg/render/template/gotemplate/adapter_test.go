package gotemplate_test

import (
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-modelgen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-modelgen/pkg/testsupport"
)

func newEngine(t *testing.T, options ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()

	files := fstest.MapFS{
		"class.tpl":  {Data: []byte("public class {{ name }}")},
		"env.tpl":    {Data: []byte("env={{ settings.env }}")},
		"tokens.tpl": {Data: []byte("{% for token in tokens %}[{{ token.category }}:{{ token.text|trim }}]{% endfor %}")},
		"block.tmpl": {Data: []byte("<pre>{{ code }}</pre>")},
	}

	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(files)}, options...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngineRenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("class", map[string]any{"name": "NewsArticle"}, w)
	})

	if result != "public class NewsArticle" || written != result {
		t.Fatalf("unexpected output result=%q written=%q", result, written)
	}
}

func TestEngineCustomExtension(t *testing.T) {
	engine := newEngine(t, gotemplate.WithExtension("tmpl"))

	out, err := engine.RenderTemplate("block", map[string]any{"code": "x"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "<pre>x</pre>" {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := engine.RenderTemplate("class", nil); err == nil {
		t.Fatalf("expected missing template error for class.tmpl")
	}
}

func TestEngineConvertsStructData(t *testing.T) {
	type token struct {
		Category string `json:"category"`
		Text     string `json:"text"`
	}
	engine := newEngine(t)

	out, err := engine.RenderTemplate("tokens", struct {
		Tokens []token `json:"tokens"`
	}{Tokens: []token{{Category: "keyword", Text: " public "}, {Category: "type", Text: "Page"}}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "[keyword:public][type:Page]" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestEngineRejectsNonObjectData(t *testing.T) {
	if _, err := newEngine(t).RenderTemplate("class", []string{"a"}); err == nil {
		t.Fatalf("expected error for slice data")
	}
}

func TestEngineGlobalData(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGlobalData(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}))

	out, err := engine.Render("env", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "env=staging" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestEngineRenderString(t *testing.T) {
	out, err := newEngine(t).Render("{{ value|upper }}", map[string]any{"value": "modelgen"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if out != "MODELGEN" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestEngineFilters(t *testing.T) {
	engine := newEngine(t, gotemplate.WithFilters(map[string]gotemplate.FilterFunc{
		"modelgen_interface": func(input any, _ any) (any, error) {
			return "I" + input.(string), nil
		},
	}))
	if err := engine.RegisterFilter("modelgen_interface", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	out, err := engine.RenderString("{{ name|modelgen_interface }}", map[string]any{"name": "SeoTrait"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "ISeoTrait" {
		t.Fatalf("unexpected output %q", out)
	}

	if err := engine.RegisterFilter(" ", nil); err == nil || !strings.Contains(err.Error(), "required") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNewRequiresTemplateSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without templates")
	}
}
