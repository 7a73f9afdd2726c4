package parser

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-modelgen/pkg/schema"
)

// Violation is a misused x-modelgen extension.
type Violation struct {
	Location string
	Message  string
}

func (v Violation) String() string {
	return v.Location + " -> " + v.Message
}

var (
	schemaExtensions   = []string{extID, extAlias, extParent, extTrait, extGroup}
	propertyExtensions = []string{extGroup, extShape, extDataType, extConfig}
)

// Lint reports x-modelgen extensions that are unknown, used on the wrong kind
// of schema, or carry values Parse would reject. The document itself must
// load; structural problems are returned as an error.
func (p *Parser) Lint(ctx context.Context, doc schema.Document) ([]Violation, error) {
	spec, err := p.load(ctx, doc)
	if err != nil {
		return nil, err
	}

	l := &linter{schemas: spec.Components.Schemas}
	keys := make([]string, 0, len(l.schemas))
	for key := range l.schemas {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		ref := l.schemas[key]
		if ref == nil || ref.Value == nil {
			continue
		}
		path := []string{"components.schemas." + key}
		l.check(path, ref.Value.Extensions, schemaExtensions)
		l.properties(path, ref.Value)
		for i, member := range ref.Value.AllOf {
			if member == nil || member.Ref != "" || member.Value == nil {
				continue
			}
			l.properties(appendPath(path, fmt.Sprintf("allOf[%d]", i)), member.Value)
		}
	}
	return l.violations, nil
}

type linter struct {
	schemas    openapi3.Schemas
	violations []Violation
}

func (l *linter) properties(path []string, value *openapi3.Schema) {
	names := make([]string, 0, len(value.Properties))
	for name := range value.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prop := value.Properties[name]
		// Extensions next to a $ref belong to the referenced component.
		if prop == nil || prop.Ref != "" || prop.Value == nil {
			continue
		}
		l.check(appendPath(path, "properties."+name), prop.Value.Extensions, propertyExtensions)
	}
}

func (l *linter) check(path []string, ext map[string]any, allowed []string) {
	keys := make([]string, 0, len(ext))
	for key := range ext {
		if strings.HasPrefix(key, extensionNamespace) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !slices.Contains(allowed, key) {
			l.report(path, "unsupported extension %q here (supported: %s)", key, strings.Join(allowed, ", "))
			continue
		}
		if message := l.value(ext, key); message != "" {
			l.report(path, "%s", message)
		}
	}
}

// value checks an extension value the same way the mapper reads it.
func (l *linter) value(ext map[string]any, key string) string {
	switch key {
	case extID, extDataType:
		id, _, err := intExtension(ext, key)
		if err != nil {
			return err.Error()
		}
		if id < 0 {
			return fmt.Sprintf("%s: must not be negative", key)
		}
	case extAlias, extGroup:
		if stringExtension(ext, key) == "" {
			return fmt.Sprintf("%s: expected a non-empty string, got %v", key, ext[key])
		}
	case extParent:
		parent := stringExtension(ext, key)
		if parent == "" {
			return fmt.Sprintf("%s: expected a component name, got %v", key, ext[key])
		}
		if _, ok := l.schemas[refName(parent)]; !ok {
			return fmt.Sprintf("%s: unknown component %q", key, parent)
		}
	case extTrait:
		switch v := ext[key].(type) {
		case bool:
		case string:
			if _, err := strconv.ParseBool(strings.TrimSpace(v)); err != nil {
				return fmt.Sprintf("%s: expected a boolean, got %q", key, v)
			}
		default:
			return fmt.Sprintf("%s: expected a boolean, got %T", key, v)
		}
	case extShape:
		if _, _, err := shapeExtension(ext); err != nil {
			return err.Error()
		}
	case extConfig:
		if _, err := configExtension(ext); err != nil {
			return err.Error()
		}
	}
	return ""
}

func (l *linter) report(path []string, format string, args ...any) {
	l.violations = append(l.violations, Violation{
		Location: strings.Join(path, " > "),
		Message:  fmt.Sprintf(format, args...),
	})
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	return append(next, segment)
}

