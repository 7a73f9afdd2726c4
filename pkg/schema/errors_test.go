package schema_test

import (
	"io"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-modelgen/pkg/schema"
)

func TestPropertyResolutionError(t *testing.T) {
	var err error = &schema.PropertyResolutionError{ContentTypeAlias: "news", PropertyAlias: "title"}

	if !errors.Is(err, schema.ErrPropertyResolution) {
		t.Fatalf("expected error to match ErrPropertyResolution")
	}
	if got, want := err.Error(), "schema: property resolution failure: news.title"; got != want {
		t.Fatalf("message mismatch: want %q, got %q", want, got)
	}

	wrapped := errors.Wrap(err, "build")
	var target *schema.PropertyResolutionError
	if !errors.As(wrapped, &target) {
		t.Fatalf("expected errors.As to find PropertyResolutionError")
	}
	if target.PropertyAlias != "title" {
		t.Fatalf("unexpected property alias %q", target.PropertyAlias)
	}
}

func TestUnavailableMarksProviderFailures(t *testing.T) {
	err := schema.Unavailable(io.ErrUnexpectedEOF, "query content type %d", 3)
	if !errors.Is(err, schema.ErrProviderUnavailable) {
		t.Fatalf("expected provider unavailable mark")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected original cause to remain visible")
	}
	if schema.Unavailable(nil, "noop") != nil {
		t.Fatalf("expected nil passthrough")
	}
}

func TestParseSource(t *testing.T) {
	if src := schema.ParseSource(""); src != nil {
		t.Fatalf("expected nil source for empty input")
	}
	if src := schema.ParseSource("https://example.com/schema.yaml"); src.Kind() != schema.SourceKindURL {
		t.Fatalf("expected url source, got %s", src.Kind())
	}
	if src := schema.ParseSource("testdata/catalog.yaml"); src.Kind() != schema.SourceKindFile {
		t.Fatalf("expected file source, got %s", src.Kind())
	}
}
