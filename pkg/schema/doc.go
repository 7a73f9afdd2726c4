// Package schema defines the read-only content-type contract consumed by the
// model builder: content types with ordered property groups, composition
// groups inherited from traits, published value shapes, and per data type
// configuration bags. Providers implement Provider; the in-memory Catalog is
// the provider produced by the document adapters and used throughout the
// tests. Loader, Source and FormatAdapter describe how catalog documents are
// fetched and normalised before a Catalog is available.
package schema
