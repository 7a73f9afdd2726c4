package schema

import "context"

// Provider is the read-only registry the model builder queries. Every call is
// independent; implementations are not expected to offer snapshot isolation
// across calls.
type Provider interface {
	// GetContentType returns ErrSchemaNotFound when id is unknown.
	GetContentType(ctx context.Context, id int) (*ContentType, error)
	// GetPublishedProperty returns ErrPublishedPropertyNotFound when the
	// property has no published metadata.
	GetPublishedProperty(ctx context.Context, contentTypeAlias, propertyAlias string) (*PublishedProperty, error)
	// GetPropertyConfiguration returns the configuration bag for a data type.
	// Unknown data types yield an empty bag.
	GetPropertyConfiguration(ctx context.Context, dataTypeID int) (map[string]string, error)
}

// Lister is implemented by providers that can enumerate content types.
// Implementations return only types with at least one property group, ordered
// by display name.
type Lister interface {
	ListContentTypes(ctx context.Context) ([]ContentTypeSummary, error)
}
