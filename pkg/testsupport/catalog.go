package testsupport

import "github.com/goliatone/go-modelgen/pkg/schema"

// Content type ids of the sample catalog.
const (
	BasePageID    = 1
	NewsListingID = 2
	NewsArticleID = 3
	MediaID       = 4
	SettingsID    = 5
)

// SampleCatalog returns a small site schema: a composed base page, a listing
// and an article inheriting from it, a self-shadowing media type, and a type
// without groups.
func SampleCatalog() *schema.Catalog {
	content := &schema.PropertyGroup{ID: 10, Name: "Content", Properties: []schema.PropertyDefinition{
		{Alias: "title", Name: "Title", Mandatory: true},
		{Alias: "body", Name: "Body"},
	}}
	seo := &schema.PropertyGroup{ID: 20, Name: "SEO", Properties: []schema.PropertyDefinition{
		{Alias: "metaTitle", Name: "Meta Title"},
		{Alias: "metaDescription", Name: "Meta Description"},
	}}
	navigation := &schema.PropertyGroup{ID: 21, Name: "Navigation", Properties: []schema.PropertyDefinition{
		{Alias: "hideInNav", Name: "Hide In Nav"},
	}}
	listing := &schema.PropertyGroup{ID: 30, Name: "Listing", Properties: []schema.PropertyDefinition{
		{Alias: "pageSize", Name: "Page Size", Mandatory: true},
		{Alias: "items", Name: "Items", DataTypeID: 100},
	}}
	article := &schema.PropertyGroup{ID: 40, Name: "Article", Properties: []schema.PropertyDefinition{
		{Alias: "publishDate", Name: "Publish Date", Mandatory: true},
		{Alias: "tags", Name: "Tags"},
		{Alias: "related", Name: "Related", DataTypeID: 101},
	}}
	media := &schema.PropertyGroup{ID: 50, Name: "Media & Info", Properties: []schema.PropertyDefinition{
		{Alias: "media", Name: "Media"},
		{Alias: "alt", Name: "Alt Text", Mandatory: true},
	}}

	catalog := schema.NewCatalog().
		MustAddContentType(&schema.ContentType{
			ID: BasePageID, Alias: "basePage", Name: "Base Page", ParentID: schema.NoParent,
			Groups:            []*schema.PropertyGroup{content},
			CompositionGroups: []*schema.PropertyGroup{content, seo, navigation},
		}).
		MustAddContentType(&schema.ContentType{
			ID: NewsListingID, Alias: "newsListing", Name: "News Listing", ParentID: BasePageID,
			Groups: []*schema.PropertyGroup{listing},
		}).
		MustAddContentType(&schema.ContentType{
			ID: NewsArticleID, Alias: "newsArticle", Name: "News Article", ParentID: NewsListingID,
			Groups: []*schema.PropertyGroup{article},
		}).
		MustAddContentType(&schema.ContentType{
			ID: MediaID, Alias: "media", Name: "Media", ParentID: schema.NoParent,
			Groups: []*schema.PropertyGroup{media},
		}).
		MustAddContentType(&schema.ContentType{
			ID: SettingsID, Alias: "settings", Name: "Settings", ParentID: schema.NoParent,
		})

	contentList := schema.Generic("IEnumerable", schema.Structural("Umbraco.Core.Models.PublishedContent.IPublishedContent"))

	catalog.Publish("basePage", "title", schema.Scalar("System.String"))
	catalog.Publish("basePage", "body", schema.Structural("System.Web.IHtmlString"))
	catalog.Publish("basePage", "metaTitle", schema.Scalar("System.String"))
	catalog.Publish("basePage", "metaDescription", schema.Scalar("System.String"))
	catalog.Publish("basePage", "hideInNav", schema.Scalar("System.Boolean"))
	catalog.Publish("newsListing", "pageSize", schema.Scalar("System.Int32"))
	catalog.Publish("newsListing", "items", contentList)
	catalog.Publish("newsArticle", "publishDate", schema.Scalar("System.DateTime"))
	catalog.Publish("newsArticle", "tags", schema.Generic("IEnumerable", schema.Scalar("System.String")))
	catalog.Publish("newsArticle", "related", contentList)
	catalog.Publish("media", "media", schema.Scalar("System.String"))
	catalog.Publish("media", "alt", schema.Scalar("System.String"))

	catalog.SetConfiguration(100, map[string]string{"filter": "news"})
	catalog.SetConfiguration(101, map[string]string{"contentTypes": `[{"ncAlias":"newsArticle"}]`})

	return catalog
}
