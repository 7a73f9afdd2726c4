package model

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-modelgen/internal/logging"
	"github.com/goliatone/go-modelgen/pkg/schema"
)

// ContentPlaceholder is the type name a content reference resolves to before
// configuration narrows it to a concrete content type.
const ContentPlaceholder = "IPublishedContent"

var primitiveNames = map[string]string{
	"newtonsoft.json.linq.jtoken": "string",
	"system.web.ihtmlstring":      "string",
	"string":                      "string",
	"system.int16":                "short",
	"system.int32":                "int",
	"system.int64":                "long",
	"system.string":               "string",
	"system.object":               "object",
	"system.boolean":              "bool",
	"system.void":                 "void",
	"system.char":                 "char",
	"system.byte":                 "byte",
	"system.uint16":               "ushort",
	"system.uint32":               "uint",
	"system.uint64":               "ulong",
	"system.sbyte":                "sbyte",
	"system.single":               "float",
	"system.double":               "double",
	"system.decimal":              "decimal",
}

var aliasTypes = map[string]struct{}{
	"string":  {},
	"int":     {},
	"long":    {},
	"object":  {},
	"bool":    {},
	"char":    {},
	"byte":    {},
	"float":   {},
	"double":  {},
	"decimal": {},
}

// LookupPrimitive returns the short name registered for a fully qualified
// type name. Lookups ignore case.
func LookupPrimitive(fullName string) (string, bool) {
	name, ok := primitiveNames[strings.ToLower(fullName)]
	return name, ok
}

// PrimitiveNames returns a copy of the default primitive table.
func PrimitiveNames() map[string]string {
	out := make(map[string]string, len(primitiveNames))
	for key, value := range primitiveNames {
		out[key] = value
	}
	return out
}

// IsAliasType reports whether expr is one of the language keyword aliases.
func IsAliasType(expr string) bool {
	_, ok := aliasTypes[expr]
	return ok
}

// ConfigurationSource supplies per data type configuration bags.
type ConfigurationSource interface {
	GetPropertyConfiguration(ctx context.Context, dataTypeID int) (map[string]string, error)
}

// Resolver maps value shapes to type expressions.
type Resolver struct {
	table  map[string]string
	config ConfigurationSource
	logger *zap.Logger
}

// NewResolver creates a resolver. Entries in extra extend or override the
// default primitive table. config may be nil, in which case content
// references are never narrowed.
func NewResolver(config ConfigurationSource, extra map[string]string, logger *zap.Logger) *Resolver {
	table := primitiveNames
	if len(extra) > 0 {
		table = PrimitiveNames()
		for key, value := range extra {
			table[strings.ToLower(key)] = value
		}
	}
	return &Resolver{
		table:  table,
		config: config,
		logger: logging.Component(logger, "resolver"),
	}
}

// Resolve returns the type expression for shape without consulting any
// configuration.
func (r *Resolver) Resolve(shape schema.ValueShape) string {
	if shape.IsGeneric() {
		args := make([]string, 0, len(shape.Args))
		for _, arg := range shape.Args {
			args = append(args, r.argument(arg))
		}
		return shape.Name + "<" + strings.Join(args, ",") + ">"
	}
	if name, ok := r.lookup(shape.FullName); ok {
		return name
	}
	if shape.Name == "" {
		return shape.FullName
	}
	return shape.Name
}

func (r *Resolver) argument(arg schema.ValueShape) string {
	if arg.IsGeneric() {
		return r.Resolve(arg)
	}
	if name, ok := r.lookup(arg.FullName); ok {
		return name
	}
	if name, ok := r.lookup(arg.Name); ok {
		return name
	}
	if arg.Name == "" {
		return arg.FullName
	}
	return arg.Name
}

func (r *Resolver) lookup(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	name, ok := r.table[strings.ToLower(key)]
	return name, ok
}

// ResolveProperty resolves shape and, when the result references arbitrary
// content, narrows it using the configuration of dataTypeID. Configuration
// lookup failures propagate; malformed configuration does not.
func (r *Resolver) ResolveProperty(ctx context.Context, shape schema.ValueShape, dataTypeID int) (string, error) {
	expr := r.Resolve(shape)
	if r.config == nil || !strings.Contains(expr, ContentPlaceholder) {
		return expr, nil
	}

	config, err := r.config.GetPropertyConfiguration(ctx, dataTypeID)
	if err != nil {
		return "", err
	}

	target, err := relationTarget(config)
	if err != nil {
		r.logger.Debug("content relation configuration ignored",
			zap.Int(logging.FieldDataTypeID, dataTypeID),
			zap.Error(err),
		)
		return expr, nil
	}
	return substituteRelation(expr, target), nil
}
