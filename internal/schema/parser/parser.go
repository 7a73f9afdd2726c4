// Package parser reads catalog documents (JSON or YAML) describing content
// types, their property groups and the published shape of every property.
package parser

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/goliatone/go-modelgen/internal/logging"
	"github.com/goliatone/go-modelgen/pkg/schema"
)

// Parser implements schema.Parser for catalog documents.
type Parser struct {
	logger *zap.Logger
}

var _ schema.Parser = (*Parser)(nil)

// Option configures the parser.
type Option func(*Parser)

// WithLogger sets the parser logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// New constructs a catalog parser.
func New(options ...Option) *Parser {
	p := &Parser{}
	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}
	p.logger = logging.Component(p.logger, "catalog-parser")
	return p
}

// Parse converts the document into a Catalog. Composition references to
// unknown group ids are skipped.
func (p *Parser) Parse(ctx context.Context, doc schema.Document) (*schema.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := parseDocument(doc.Raw(), doc.Location())
	if err != nil {
		return nil, err
	}

	groups := make(map[int]*schema.PropertyGroup)
	types := make([]*schema.ContentType, 0, len(file.ContentTypes))
	shapes := make(map[int]map[string]schema.ValueShape)

	for _, entry := range file.ContentTypes {
		ct, err := p.contentType(entry, groups, shapes)
		if err != nil {
			return nil, err
		}
		types = append(types, ct)
	}

	catalog := schema.NewCatalog()
	for i, ct := range types {
		for _, groupID := range file.ContentTypes[i].Compositions {
			group, ok := groups[groupID]
			if !ok {
				p.logger.Debug("composition group not found",
					zap.String(logging.FieldContentType, ct.Alias),
					zap.Int("group_id", groupID),
				)
				continue
			}
			ct.CompositionGroups = append(ct.CompositionGroups, group)
		}

		if err := catalog.AddContentType(ct); err != nil {
			return nil, errors.Wrap(err, "catalog parser")
		}
		for _, group := range append(append([]*schema.PropertyGroup(nil), ct.Groups...), ct.CompositionGroups...) {
			for _, prop := range group.Properties {
				if shape, ok := shapes[group.ID][prop.Alias]; ok {
					catalog.Publish(ct.Alias, prop.Alias, shape)
				}
			}
		}
	}

	for _, dataType := range file.DataTypes {
		catalog.SetConfiguration(dataType.ID, dataType.Config)
	}

	p.logger.Debug("catalog parsed",
		zap.String(logging.FieldSource, doc.Location()),
		zap.Int(logging.FieldCount, catalog.Len()),
	)
	return catalog, nil
}

func (p *Parser) contentType(entry contentTypeFile, groups map[int]*schema.PropertyGroup, shapes map[int]map[string]schema.ValueShape) (*schema.ContentType, error) {
	if strings.TrimSpace(entry.Alias) == "" {
		return nil, errors.Newf("catalog parser: content type %d: alias is required", entry.ID)
	}
	name := entry.Name
	if strings.TrimSpace(name) == "" {
		name = entry.Alias
	}

	parentID := schema.NoParent
	if entry.ParentID != nil {
		parentID = *entry.ParentID
	}

	ct := &schema.ContentType{
		ID:       entry.ID,
		Alias:    entry.Alias,
		Name:     name,
		ParentID: parentID,
	}

	for _, g := range entry.Groups {
		if _, exists := groups[g.ID]; exists {
			return nil, errors.Newf("catalog parser: content type %q: duplicate group id %d", entry.Alias, g.ID)
		}
		group := &schema.PropertyGroup{ID: g.ID, Name: g.Name}
		for _, prop := range g.Properties {
			if strings.TrimSpace(prop.Alias) == "" {
				return nil, errors.Newf("catalog parser: content type %q group %q: property alias is required", entry.Alias, g.Name)
			}
			displayName := prop.Name
			if displayName == "" {
				displayName = prop.Alias
			}
			group.Properties = append(group.Properties, schema.PropertyDefinition{
				Alias:      prop.Alias,
				Name:       displayName,
				Mandatory:  prop.Mandatory,
				DataTypeID: prop.DataTypeID,
			})
			if prop.Shape == nil {
				continue
			}
			shape, err := schema.NormalizeShape(*prop.Shape)
			if err != nil {
				return nil, errors.Wrapf(err, "catalog parser: %s.%s", entry.Alias, prop.Alias)
			}
			if shapes[g.ID] == nil {
				shapes[g.ID] = make(map[string]schema.ValueShape)
			}
			shapes[g.ID][prop.Alias] = shape
		}
		groups[g.ID] = group
		ct.Groups = append(ct.Groups, group)
	}

	return ct, nil
}
