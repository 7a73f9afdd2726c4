package schema

import "github.com/cockroachdb/errors"

// Document is a loaded schema payload together with where it came from. The
// payload is copied on the way in and on the way out.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument rejects a nil source and an empty payload.
func NewDocument(src Source, raw []byte) (Document, error) {
	switch {
	case src == nil:
		return Document{}, errors.New("schema: document source is required")
	case len(raw) == 0:
		return Document{}, errors.Newf("schema: document %s is empty", src.Location())
	}
	return Document{source: src, raw: append([]byte(nil), raw...)}, nil
}

// MustNewDocument is NewDocument for fixtures; it panics on error.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

func (d Document) Source() Source { return d.source }

// Raw returns a copy of the payload.
func (d Document) Raw() []byte { return append([]byte(nil), d.raw...) }

// Location is the source location, or "" for the zero Document.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}
