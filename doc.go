// Package modelgen generates strongly typed model class declarations from
// content type schemas. A schema comes from a catalog document, an OpenAPI
// document or any schema.Provider (such as the SQL store); the generated
// model is printed as C#-style class and interface text and formatted as
// plain text, ANSI colour or HTML.
//
// Quick start:
//
//	text, err := modelgen.GenerateModelText(ctx, provider, 1078)
package modelgen
