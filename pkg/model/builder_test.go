package model_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/schema"
)

func TestNewBuilderAppliesOptions(t *testing.T) {
	content := &schema.PropertyGroup{ID: 1, Name: "Content", Properties: []schema.PropertyDefinition{
		{Alias: "published", Name: "Published"},
	}}
	trait := &schema.PropertyGroup{ID: 2, Name: "Seo Meta", Properties: []schema.PropertyDefinition{
		{Alias: "title", Name: "Title"},
	}}
	catalog := schema.NewCatalog().MustAddContentType(&schema.ContentType{
		ID: 1, Alias: "event", Name: "Event Page", ParentID: schema.NoParent,
		Groups: []*schema.PropertyGroup{content}, CompositionGroups: []*schema.PropertyGroup{trait},
	})
	catalog.Publish("event", "published", schema.Scalar("System.DateTime"))
	catalog.Publish("event", "title", schema.Scalar("System.String"))

	builder := model.NewBuilder(catalog,
		model.WithNameSanitizer(func(name string) string { return strings.ReplaceAll(name, " ", "_") }),
		model.WithInterfaceNamer(func(name string) string { return name + "Contract" }),
		model.WithTypeTable(map[string]string{"System.DateTime": "DateTime"}),
		model.WithLogger(nil),
	)

	got, err := builder.BuildRootModel(context.Background(), 1)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got.ClassName != "Event_Page" {
		t.Fatalf("expected custom sanitizer, got %q", got.ClassName)
	}
	if names := got.InheritedInterfaceNames(); len(names) != 1 || names[0] != "Seo_MetaContract" {
		t.Fatalf("expected custom interface name, got %v", names)
	}
	if got.Properties[0].Type != "DateTime" {
		t.Fatalf("expected type table entry, got %q", got.Properties[0].Type)
	}
}

func TestDecoratorFunc(t *testing.T) {
	decorator := model.DecoratorFunc(func(m *model.GeneratedModel) error {
		m.ClassName = strings.ToUpper(m.ClassName)
		return nil
	})

	target := &model.GeneratedModel{ClassName: "page"}
	if err := decorator.Decorate(target); err != nil {
		t.Fatalf("decorate: %v", err)
	}
	if target.ClassName != "PAGE" {
		t.Fatalf("expected decorated class name, got %q", target.ClassName)
	}
}
