package schema

import (
	"context"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// Catalog is an in-memory Provider. It is populated once (by a document
// adapter or a test) and then only read.
type Catalog struct {
	types     map[int]*ContentType
	order     []int
	published map[publishedKey]PublishedProperty
	config    map[int]map[string]string
}

type publishedKey struct {
	contentType string
	property    string
}

func newPublishedKey(contentTypeAlias, propertyAlias string) publishedKey {
	return publishedKey{
		contentType: strings.ToLower(contentTypeAlias),
		property:    strings.ToLower(propertyAlias),
	}
}

// Ensure the catalog satisfies the provider contracts.
var (
	_ Provider = (*Catalog)(nil)
	_ Lister   = (*Catalog)(nil)
)

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		types:     make(map[int]*ContentType),
		published: make(map[publishedKey]PublishedProperty),
		config:    make(map[int]map[string]string),
	}
}

// AddContentType registers a content type. Ids must be unique and
// non-negative.
func (c *Catalog) AddContentType(ct *ContentType) error {
	if ct == nil {
		return errors.New("schema: content type is required")
	}
	if ct.ID < 0 {
		return errors.Newf("schema: content type %q has negative id %d", ct.Alias, ct.ID)
	}
	if _, exists := c.types[ct.ID]; exists {
		return errors.Newf("schema: duplicate content type id %d", ct.ID)
	}
	c.types[ct.ID] = ct
	c.order = append(c.order, ct.ID)
	return nil
}

// MustAddContentType panics when registration fails. Useful for fixtures.
func (c *Catalog) MustAddContentType(ct *ContentType) *Catalog {
	if err := c.AddContentType(ct); err != nil {
		panic(err)
	}
	return c
}

// Publish records published metadata for a property. Aliases are matched
// case-insensitively.
func (c *Catalog) Publish(contentTypeAlias, propertyAlias string, shape ValueShape) {
	c.published[newPublishedKey(contentTypeAlias, propertyAlias)] = PublishedProperty{
		ContentTypeAlias: contentTypeAlias,
		PropertyAlias:    propertyAlias,
		Shape:            shape,
	}
}

// SetConfiguration stores the configuration bag for a data type.
func (c *Catalog) SetConfiguration(dataTypeID int, values map[string]string) {
	bag := make(map[string]string, len(values))
	for key, value := range values {
		bag[key] = value
	}
	c.config[dataTypeID] = bag
}

// Len returns the number of registered content types.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.types)
}

// GetContentType implements Provider.
func (c *Catalog) GetContentType(ctx context.Context, id int) (*ContentType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ct, ok := c.types[id]
	if !ok {
		return nil, NotFound(id)
	}
	return ct, nil
}

// GetPublishedProperty implements Provider.
func (c *Catalog) GetPublishedProperty(ctx context.Context, contentTypeAlias, propertyAlias string) (*PublishedProperty, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	published, ok := c.published[newPublishedKey(contentTypeAlias, propertyAlias)]
	if !ok {
		return nil, errors.Wrapf(ErrPublishedPropertyNotFound, "%s.%s", contentTypeAlias, propertyAlias)
	}
	return &published, nil
}

// GetPropertyConfiguration implements Provider.
func (c *Catalog) GetPropertyConfiguration(ctx context.Context, dataTypeID int) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bag := c.config[dataTypeID]
	out := make(map[string]string, len(bag))
	for key, value := range bag {
		out[key] = value
	}
	return out, nil
}

// ListContentTypes implements Lister.
func (c *Catalog) ListContentTypes(ctx context.Context) ([]ContentTypeSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]ContentTypeSummary, 0, len(c.order))
	for _, id := range c.order {
		ct := c.types[id]
		if !ct.HasGroups() {
			continue
		}
		out = append(out, ct.Summary())
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// ContentTypes returns every registered content type in registration order.
func (c *Catalog) ContentTypes() []*ContentType {
	out := make([]*ContentType, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.types[id])
	}
	return out
}

// PublishedProperties returns the published metadata ordered by content type
// and property alias.
func (c *Catalog) PublishedProperties() []PublishedProperty {
	out := make([]PublishedProperty, 0, len(c.published))
	for _, published := range c.published {
		out = append(out, published)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := newPublishedKey(out[i].ContentTypeAlias, out[i].PropertyAlias), newPublishedKey(out[j].ContentTypeAlias, out[j].PropertyAlias)
		if a.contentType != b.contentType {
			return a.contentType < b.contentType
		}
		return a.property < b.property
	})
	return out
}

// Configurations returns a copy of every stored configuration bag keyed by
// data type id.
func (c *Catalog) Configurations() map[int]map[string]string {
	out := make(map[int]map[string]string, len(c.config))
	for id, bag := range c.config {
		copied := make(map[string]string, len(bag))
		for key, value := range bag {
			copied[key] = value
		}
		out[id] = copied
	}
	return out
}
