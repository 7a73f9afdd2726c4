package schema

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Source names a schema document: a path on disk, an entry of the loader's
// fs.FS, or a URL.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind selects how a loader reads a Source.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

type source struct {
	kind     SourceKind
	location string
}

func (s source) Kind() SourceKind { return s.kind }
func (s source) Location() string { return s.location }

func (s source) String() string {
	return string(s.kind) + ":" + s.location
}

// SourceFromFile names a document on disk.
func SourceFromFile(path string) Source {
	return source{kind: SourceKindFile, location: filepath.Clean(path)}
}

// SourceFromFS names an entry of the loader's fs.FS.
func SourceFromFS(name string) Source {
	return source{kind: SourceKindFS, location: name}
}

// SourceFromURL names a remote document. It panics on a malformed URL.
func SourceFromURL(raw string) Source {
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("schema: invalid URL %q: %v", raw, err))
	}
	return source{kind: SourceKindURL, location: raw}
}

// ParseSource maps a command line location onto a Source: http(s) URLs
// become URL sources and everything else a file path. Empty input yields nil.
func ParseSource(raw string) Source {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if u, err := url.Parse(raw); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return source{kind: SourceKindURL, location: raw}
	}
	return SourceFromFile(raw)
}
