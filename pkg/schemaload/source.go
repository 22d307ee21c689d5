package schemaload

import "strings"

// SourceKind enumerates where a full schema document can live.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Source identifies the origin of a full document-type schema.
type Source interface {
	Kind() SourceKind
	Location() string
}

type source struct {
	kind     SourceKind
	location string
}

func (s source) Kind() SourceKind { return s.kind }

func (s source) Location() string { return s.location }

// SourceFromFile points at a schema document on disk.
func SourceFromFile(path string) Source {
	return source{kind: SourceKindFile, location: strings.TrimSpace(path)}
}

// SourceFromFS points at a schema document inside the loader's fs.FS.
func SourceFromFS(path string) Source {
	return source{kind: SourceKindFS, location: strings.TrimSpace(path)}
}

// SourceFromURL points at a schema document served over HTTP(S).
func SourceFromURL(url string) Source {
	return source{kind: SourceKindURL, location: strings.TrimSpace(url)}
}
