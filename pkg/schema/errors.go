package schema

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrSchemaNotFound reports an unknown content type id.
	ErrSchemaNotFound = errors.New("schema: content type not found")

	// ErrPublishedPropertyNotFound is returned by providers when a declared
	// property has no published metadata.
	ErrPublishedPropertyNotFound = errors.New("schema: published property not found")

	// ErrPropertyResolution marks a schema/publish inconsistency detected while
	// building a model. See PropertyResolutionError.
	ErrPropertyResolution = errors.New("schema: property resolution failure")

	// ErrConfigurationParse marks a malformed content-relation configuration
	// payload. The resolver recovers from it locally.
	ErrConfigurationParse = errors.New("schema: configuration parse failure")

	// ErrProviderUnavailable marks I/O failures raised by a provider.
	ErrProviderUnavailable = errors.New("schema: provider unavailable")

	// ErrCyclicParentChain reports a content type that is its own ancestor.
	ErrCyclicParentChain = errors.New("schema: cyclic parent chain")
)

// PropertyResolutionError identifies the declared property whose published
// metadata could not be found.
type PropertyResolutionError struct {
	ContentTypeAlias string
	PropertyAlias    string
}

func (e *PropertyResolutionError) Error() string {
	return fmt.Sprintf("%s: %s.%s", ErrPropertyResolution.Error(), e.ContentTypeAlias, e.PropertyAlias)
}

// Unwrap exposes ErrPropertyResolution to errors.Is.
func (e *PropertyResolutionError) Unwrap() error {
	return ErrPropertyResolution
}

// Unavailable marks err as a provider I/O failure and adds context.
func Unavailable(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(errors.Mark(err, ErrProviderUnavailable), format, args...)
}

// NotFound wraps ErrSchemaNotFound with the offending id.
func NotFound(id int) error {
	return errors.Wrapf(ErrSchemaNotFound, "content type %d", id)
}
