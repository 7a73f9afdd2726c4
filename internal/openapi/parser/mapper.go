package parser

import (
	"context"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/getkin/kin-openapi/openapi3"
	"go.uber.org/zap"

	"github.com/goliatone/go-modelgen/internal/logging"
	"github.com/goliatone/go-modelgen/pkg/schema"
)

const (
	defaultGroupName   = "Properties"
	firstDataTypeID    = 1000
	relationFilterKey  = "filter"
	relationContentKey = "contentTypes"
)

type component struct {
	key          string
	value        *openapi3.Schema
	ct           *schema.ContentType
	trait        bool
	compositions []string
}

type mapper struct {
	schemas    openapi3.Schemas
	logger     *zap.Logger
	components map[string]*component
	order      []string
	shapes     map[int]map[string]schema.ValueShape
	catalog    *schema.Catalog

	nextGroupID    int
	nextDataTypeID int
}

func newMapper(schemas openapi3.Schemas, logger *zap.Logger) *mapper {
	return &mapper{
		schemas:        schemas,
		logger:         logging.OrNop(logger),
		components:     make(map[string]*component, len(schemas)),
		shapes:         make(map[int]map[string]schema.ValueShape),
		catalog:        schema.NewCatalog(),
		nextGroupID:    1,
		nextDataTypeID: firstDataTypeID,
	}
}

func (m *mapper) build(ctx context.Context) (*schema.Catalog, error) {
	if err := m.identify(); err != nil {
		return nil, err
	}
	for _, key := range m.order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := m.properties(m.components[key]); err != nil {
			return nil, err
		}
	}
	for _, key := range m.order {
		if err := m.link(m.components[key]); err != nil {
			return nil, err
		}
	}
	for _, key := range m.order {
		c := m.components[key]
		c.ct.CompositionGroups = m.compositionGroups(c, map[string]bool{c.key: true})
		if err := m.catalog.AddContentType(c.ct); err != nil {
			return nil, errors.Wrap(err, "openapi parser")
		}
		m.publish(c.ct)
	}
	return m.catalog, nil
}

// identify assigns ids and aliases. Explicit ids are kept; the remaining
// components are numbered after the largest explicit id in key order.
func (m *mapper) identify() error {
	keys := make([]string, 0, len(m.schemas))
	for key := range m.schemas {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	used := make(map[int]string)
	maxID := 0
	for _, key := range keys {
		ref := m.schemas[key]
		if ref == nil || ref.Value == nil {
			return errors.Newf("openapi parser: schema %q is unresolved", key)
		}
		c := &component{key: key, value: ref.Value}
		c.trait = boolExtension(ref.Value.Extensions, extTrait)
		c.ct = &schema.ContentType{
			ID:       -1,
			Alias:    componentAlias(key, ref.Value),
			Name:     componentName(key, ref.Value),
			ParentID: schema.NoParent,
		}

		id, ok, err := intExtension(ref.Value.Extensions, extID)
		if err != nil {
			return errors.Wrapf(err, "openapi parser: schema %q", key)
		}
		if ok {
			if id < 0 {
				return errors.Newf("openapi parser: schema %q: negative id %d", key, id)
			}
			if other, exists := used[id]; exists {
				return errors.Newf("openapi parser: schemas %q and %q share id %d", other, key, id)
			}
			used[id] = key
			c.ct.ID = id
			if id > maxID {
				maxID = id
			}
		}
		m.components[key] = c
		m.order = append(m.order, key)
	}

	next := maxID + 1
	for _, key := range m.order {
		if c := m.components[key]; c.ct.ID < 0 {
			c.ct.ID = next
			next++
		}
	}
	return nil
}

// properties builds the own groups of a component from its properties and
// any inline allOf members.
func (m *mapper) properties(c *component) error {
	props := make(openapi3.Schemas)
	required := make(map[string]bool)
	collect := func(src *openapi3.Schema) {
		for name, prop := range src.Properties {
			props[name] = prop
		}
		for _, name := range src.Required {
			required[name] = true
		}
	}
	collect(c.value)
	for _, member := range c.value.AllOf {
		if member == nil || member.Ref != "" || member.Value == nil {
			continue
		}
		collect(member.Value)
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	defaultGroup := stringExtension(c.value.Extensions, extGroup)
	if defaultGroup == "" {
		defaultGroup = defaultGroupName
	}

	groups := make(map[string]*schema.PropertyGroup)
	for _, alias := range names {
		ref := props[alias]
		def, shape, err := m.property(c, alias, ref, required[alias])
		if err != nil {
			return errors.Wrapf(err, "openapi parser: %s.%s", c.key, alias)
		}

		groupName := defaultGroup
		if ref != nil && ref.Ref == "" && ref.Value != nil {
			if name := stringExtension(ref.Value.Extensions, extGroup); name != "" {
				groupName = name
			}
		}
		group, ok := groups[groupName]
		if !ok {
			group = &schema.PropertyGroup{ID: m.nextGroupID, Name: groupName}
			m.nextGroupID++
			groups[groupName] = group
			c.ct.Groups = append(c.ct.Groups, group)
			m.shapes[group.ID] = make(map[string]schema.ValueShape)
		}
		group.Properties = append(group.Properties, def)
		m.shapes[group.ID][alias] = shape
	}
	return nil
}

func (m *mapper) property(c *component, alias string, ref *openapi3.SchemaRef, mandatory bool) (schema.PropertyDefinition, schema.ValueShape, error) {
	def := schema.PropertyDefinition{Alias: alias, Name: alias, Mandatory: mandatory}

	var ext map[string]any
	if ref != nil && ref.Ref == "" && ref.Value != nil {
		ext = ref.Value.Extensions
		if title := strings.TrimSpace(ref.Value.Title); title != "" {
			def.Name = title
		}
	}

	id, ok, err := intExtension(ext, extDataType)
	if err != nil {
		return def, schema.ValueShape{}, err
	}
	if !ok {
		id = m.nextDataTypeID
		m.nextDataTypeID++
	}
	def.DataTypeID = id

	config, err := configExtension(ext)
	if err != nil {
		return def, schema.ValueShape{}, err
	}

	shape, explicit, err := shapeExtension(ext)
	if err != nil {
		return def, schema.ValueShape{}, err
	}
	if !explicit {
		var target string
		shape, target = deriveShape(ref)
		if target != "" {
			config, err = m.relationConfig(c, target, config)
			if err != nil {
				return def, schema.ValueShape{}, err
			}
		}
	}

	if len(config) > 0 {
		m.catalog.SetConfiguration(def.DataTypeID, config)
	}
	return def, shape, nil
}

// relationConfig narrows a content relation to the referenced component
// unless the document configured the picker itself.
func (m *mapper) relationConfig(c *component, target string, config map[string]string) (map[string]string, error) {
	if _, ok := config[relationFilterKey]; ok {
		return config, nil
	}
	if _, ok := config[relationContentKey]; ok {
		return config, nil
	}
	related, ok := m.components[target]
	if !ok {
		return nil, errors.Newf("reference to unknown schema %q", target)
	}
	if config == nil {
		config = make(map[string]string, 1)
	}
	config[relationFilterKey] = related.ct.Alias
	m.logger.Debug("content relation inferred",
		zap.String(logging.FieldContentType, c.ct.Alias),
		zap.String("target", related.ct.Alias),
	)
	return config, nil
}

// link resolves the parent and composition references of a component. An
// explicit parent extension wins; otherwise the first allOf reference to a
// non-trait schema is the parent and every other reference a composition.
func (m *mapper) link(c *component) error {
	parent := stringExtension(c.value.Extensions, extParent)
	if parent != "" {
		parent = refName(strings.TrimPrefix(parent, componentRefPrefix))
	}

	for _, member := range c.value.AllOf {
		if member == nil || member.Ref == "" {
			continue
		}
		target := refName(member.Ref)
		related, ok := m.components[target]
		if !ok {
			return errors.Newf("openapi parser: schema %q: allOf references unknown schema %q", c.key, target)
		}
		if target == parent {
			continue
		}
		if parent == "" && !related.trait {
			parent = target
			continue
		}
		c.compositions = append(c.compositions, target)
	}

	if parent == "" {
		return nil
	}
	if parent == c.key {
		return errors.Newf("openapi parser: schema %q cannot be its own parent", c.key)
	}
	related, ok := m.components[parent]
	if !ok {
		return errors.Newf("openapi parser: schema %q: unknown parent %q", c.key, parent)
	}
	c.ct.ParentID = related.ct.ID
	return nil
}

// compositionGroups flattens the groups of every composed schema, including
// the schemas those compose.
func (m *mapper) compositionGroups(c *component, visited map[string]bool) []*schema.PropertyGroup {
	var out []*schema.PropertyGroup
	for _, key := range c.compositions {
		if visited[key] {
			continue
		}
		visited[key] = true
		related := m.components[key]
		out = append(out, related.ct.Groups...)
		out = append(out, m.compositionGroups(related, visited)...)
	}
	return out
}

func (m *mapper) publish(ct *schema.ContentType) {
	groups := append(append([]*schema.PropertyGroup(nil), ct.Groups...), ct.CompositionGroups...)
	for _, group := range groups {
		for _, prop := range group.Properties {
			if shape, ok := m.shapes[group.ID][prop.Alias]; ok {
				m.catalog.Publish(ct.Alias, prop.Alias, shape)
			}
		}
	}
}

func componentAlias(key string, value *openapi3.Schema) string {
	if alias := stringExtension(value.Extensions, extAlias); alias != "" {
		return alias
	}
	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError {
		return key
	}
	return string(unicode.ToLower(r)) + key[size:]
}

func componentName(key string, value *openapi3.Schema) string {
	if title := strings.TrimSpace(value.Title); title != "" {
		return title
	}
	return key
}
