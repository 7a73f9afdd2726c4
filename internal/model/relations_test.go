package model

import (
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-modelgen/pkg/schema"
)

func TestRelationTarget(t *testing.T) {
	cases := []struct {
		name   string
		config map[string]string
		want   string
	}{
		{name: "nil", config: nil, want: ""},
		{name: "filter", config: map[string]string{"filter": "news"}, want: "news"},
		{name: "filter trimmed", config: map[string]string{"filter": " news "}, want: "news"},
		{name: "filter with comma", config: map[string]string{"filter": "news,events"}, want: ""},
		{name: "content types array", config: map[string]string{"contentTypes": `[{"ncAlias":"blogPost","ncTabAlias":"Content"}]`}, want: "blogPost"},
		{name: "content types object", config: map[string]string{"contentTypes": `{"ncAlias":"blogPost"}`}, want: "blogPost"},
		{name: "content types empty alias", config: map[string]string{"contentTypes": `[{"ncAlias":""}]`}, want: ""},
		{name: "content types comma alias", config: map[string]string{"contentTypes": `[{"ncAlias":"a,b"}]`}, want: ""},
		{name: "blank payload", config: map[string]string{"contentTypes": "  "}, want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := relationTarget(tc.config)
			if err != nil {
				t.Fatalf("relation target: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestRelationTargetMarksParseFailures(t *testing.T) {
	_, err := relationTarget(map[string]string{"contentTypes": "[oops"})
	if !errors.Is(err, schema.ErrConfigurationParse) {
		t.Fatalf("expected configuration parse failure, got %v", err)
	}
}

func TestSubstituteRelationOnlyTouchesPlaceholder(t *testing.T) {
	got := substituteRelation("IEnumerable<IPublishedContent>", "news")
	if got != "IEnumerable<News>" {
		t.Fatalf("unexpected substitution %q", got)
	}
	if got := substituteRelation("IPublishedContent", ""); got != "IPublishedContent" {
		t.Fatalf("empty target must leave placeholder, got %q", got)
	}
}
