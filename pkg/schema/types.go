package schema

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// NoParent is the ParentID sentinel for content types without a parent. Any
// negative identifier is treated the same way.
const NoParent = -1

// ContentType describes one kind of content item.
type ContentType struct {
	ID       int
	Alias    string
	Name     string
	ParentID int
	// Groups are the property groups declared directly on the type.
	Groups []*PropertyGroup
	// CompositionGroups are the groups inherited from composition traits.
	// Providers may include the declared groups here as well; consumers
	// filter them out by group identity.
	CompositionGroups []*PropertyGroup
}

// HasParent reports whether ParentID references another content type.
func (ct *ContentType) HasParent() bool {
	return ct != nil && ct.ParentID > NoParent
}

// HasGroups reports whether the type declares at least one property group.
func (ct *ContentType) HasGroups() bool {
	return ct != nil && len(ct.Groups) > 0
}

// Summary returns the listing view of the content type.
func (ct *ContentType) Summary() ContentTypeSummary {
	return ContentTypeSummary{ID: ct.ID, Alias: ct.Alias, Name: ct.Name}
}

// PropertyGroup is a named, ordered cluster of property definitions. ID is the
// identity used to tell declared groups apart from inherited ones.
type PropertyGroup struct {
	ID         int
	Name       string
	Properties []PropertyDefinition
}

// PropertyDefinition is a single declared property.
type PropertyDefinition struct {
	Alias      string
	Name       string
	Mandatory  bool
	DataTypeID int
}

// ShapeKind classifies a ValueShape.
type ShapeKind string

const (
	ShapeScalar     ShapeKind = "scalar"
	ShapeGeneric    ShapeKind = "generic"
	ShapeStructural ShapeKind = "structural"
)

// ValueShape is the statically declared description of a property's runtime
// value. Generic shapes carry their type arguments in Args.
type ValueShape struct {
	Kind     ShapeKind    `json:"kind" yaml:"kind"`
	Name     string       `json:"name" yaml:"name"`
	FullName string       `json:"fullName,omitempty" yaml:"fullName,omitempty"`
	Args     []ValueShape `json:"args,omitempty" yaml:"args,omitempty"`
}

// Scalar builds a scalar shape. The short name defaults to the last segment of
// the fully qualified name.
func Scalar(fullName string) ValueShape {
	return ValueShape{Kind: ShapeScalar, Name: shortName(fullName), FullName: fullName}
}

// Structural builds an opaque structural shape.
func Structural(fullName string) ValueShape {
	return ValueShape{Kind: ShapeStructural, Name: shortName(fullName), FullName: fullName}
}

// Generic builds a generic container shape such as IEnumerable<T>.
func Generic(name string, args ...ValueShape) ValueShape {
	return ValueShape{Kind: ShapeGeneric, Name: name, Args: append([]ValueShape(nil), args...)}
}

// IsGeneric reports whether the shape is a generic container with arguments.
func (s ValueShape) IsGeneric() bool {
	return s.Kind == ShapeGeneric && len(s.Args) > 0
}

// NormalizeShape fills in the kind and short name when a document omits them
// and validates the result. Arguments are normalized recursively.
func NormalizeShape(shape ValueShape) (ValueShape, error) {
	if shape.Kind == "" {
		if len(shape.Args) > 0 {
			shape.Kind = ShapeGeneric
		} else {
			shape.Kind = ShapeScalar
		}
	}
	switch shape.Kind {
	case ShapeScalar, ShapeStructural, ShapeGeneric:
	default:
		return ValueShape{}, errors.Newf("unknown shape kind %q", shape.Kind)
	}

	if shape.Name == "" {
		shape.Name = shortName(shape.FullName)
	}
	if shape.Name == "" {
		return ValueShape{}, errors.New("shape name or fullName is required")
	}

	if len(shape.Args) > 0 {
		args := make([]ValueShape, 0, len(shape.Args))
		for _, arg := range shape.Args {
			normalized, err := NormalizeShape(arg)
			if err != nil {
				return ValueShape{}, err
			}
			args = append(args, normalized)
		}
		shape.Args = args
	}
	return shape, nil
}

func shortName(fullName string) string {
	if idx := strings.LastIndex(fullName, "."); idx >= 0 {
		return fullName[idx+1:]
	}
	return fullName
}

// PublishedProperty is the runtime-queryable description of a declared
// property.
type PublishedProperty struct {
	ContentTypeAlias string
	PropertyAlias    string
	Shape            ValueShape
}

// ContentTypeSummary is the listing entry for a content type.
type ContentTypeSummary struct {
	ID    int    `json:"id"`
	Alias string `json:"alias"`
	Name  string `json:"name"`
}
