// Package model exposes the generated model consumed by renderers. A
// GeneratedModel is one class: its properties, its parent class and the
// composition interfaces it implements. Builders live in internal/model and
// return the types re-exported here.
//
// Property types are resolved from the value shape the schema provider
// publishes. A shape is either a scalar looked up in the primitive table
// (System.Int32 becomes int), a structural type kept by its short name, or a
// generic container whose arguments are resolved recursively. References to
// arbitrary content (IPublishedContent) are narrowed to a concrete type when
// the data type configuration names exactly one target through its `filter`
// or `contentTypes` entries.
package model
