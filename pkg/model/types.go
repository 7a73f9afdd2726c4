package model

import internalmodel "github.com/goliatone/go-modelgen/internal/model"

// GeneratedModel re-exports the internal model node.
type GeneratedModel = internalmodel.GeneratedModel

// ResolvedProperty re-exports the internal property descriptor.
type ResolvedProperty = internalmodel.ResolvedProperty

// Compositions re-exports the ordered composition set.
type Compositions = internalmodel.Compositions

// ContentPlaceholder is the unresolved content reference type name.
const ContentPlaceholder = internalmodel.ContentPlaceholder

// SafeName strips characters that cannot appear in generated identifiers.
func SafeName(name string) string {
	return internalmodel.SafeName(name)
}

// DefaultInterfaceName derives the interface name of a composition.
func DefaultInterfaceName(className string) string {
	return internalmodel.DefaultInterfaceName(className)
}

// IsAliasType reports whether expr is a language keyword alias such as int.
func IsAliasType(expr string) bool {
	return internalmodel.IsAliasType(expr)
}

// LookupPrimitive returns the short name for a fully qualified primitive.
func LookupPrimitive(fullName string) (string, bool) {
	return internalmodel.LookupPrimitive(fullName)
}
