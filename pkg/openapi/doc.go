// Package openapi exposes OpenAPI 3 documents as a schema.FormatAdapter. Every
// schema under components.schemas becomes a content type; the kin-openapi
// mapping lives in internal/openapi/parser.
package openapi
