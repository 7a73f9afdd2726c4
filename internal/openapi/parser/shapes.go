package parser

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-modelgen/pkg/schema"
)

const (
	publishedContentType = "Umbraco.Core.Models.PublishedContent.IPublishedContent"
	enumerableType       = "System.Collections.Generic.IEnumerable"
)

// deriveShape infers the published shape of a property from its JSON schema.
// References to other components become content relations; the returned
// target names the referenced component.
func deriveShape(ref *openapi3.SchemaRef) (schema.ValueShape, string) {
	if target := relationRef(ref); target != "" {
		return schema.Structural(publishedContentType), target
	}
	if ref == nil || ref.Value == nil {
		return schema.Structural("System.Object"), ""
	}

	src := ref.Value
	switch schemaType(src.Type) {
	case openapi3.TypeString:
		switch src.Format {
		case "date-time", "date":
			return schema.Scalar("System.DateTime"), ""
		case "uuid":
			return schema.Scalar("System.Guid"), ""
		default:
			return schema.Scalar("System.String"), ""
		}
	case openapi3.TypeInteger:
		if src.Format == "int64" {
			return schema.Scalar("System.Int64"), ""
		}
		return schema.Scalar("System.Int32"), ""
	case openapi3.TypeNumber:
		switch src.Format {
		case "float":
			return schema.Scalar("System.Single"), ""
		case "double":
			return schema.Scalar("System.Double"), ""
		default:
			return schema.Scalar("System.Decimal"), ""
		}
	case openapi3.TypeBoolean:
		return schema.Scalar("System.Boolean"), ""
	case openapi3.TypeArray:
		item, target := deriveShape(src.Items)
		shape := schema.Generic("IEnumerable", item)
		shape.FullName = enumerableType
		return shape, target
	default:
		return schema.Structural("System.Object"), ""
	}
}

// relationRef reports the component a property points at, either directly or
// through a single-entry allOf wrapper.
func relationRef(ref *openapi3.SchemaRef) string {
	if ref == nil {
		return ""
	}
	if ref.Ref != "" {
		return refName(ref.Ref)
	}
	if ref.Value == nil || ref.Value.Type != nil || len(ref.Value.AllOf) != 1 {
		return ""
	}
	if inner := ref.Value.AllOf[0]; inner != nil && inner.Ref != "" {
		return refName(inner.Ref)
	}
	return ""
}

// schemaType returns the first non-null declared type.
func schemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		if value != "null" {
			return value
		}
	}
	return ""
}
