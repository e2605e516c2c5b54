// Package codec converts diagram state to and from interchange formats:
// the JSON save document, its YAML rendering, device CSV and Ansible
// inventory.
package codec

import (
	"io"
	"time"
)

// clock is replaced in tests that need stable device ids
var clock = time.Now

// Importer reads a save document from a stream
type Importer interface {
	Parse(r io.Reader) (*Document, error)
	Format() string
}

// Exporter writes a save document to a stream
type Exporter interface {
	Export(doc *Document, w io.Writer) error
	Format() string
}

// Exporters returns every exporter keyed by format
func Exporters() map[string]Exporter {
	out := make(map[string]Exporter)
	for _, e := range []Exporter{NewJSONCodec(), NewYAMLCodec(), NewCSVCodec(), NewAnsibleCodec()} {
		out[e.Format()] = e
	}
	return out
}

// Importers returns every document importer keyed by format
func Importers() map[string]Importer {
	out := make(map[string]Importer)
	for _, i := range []Importer{NewJSONCodec(), NewYAMLCodec()} {
		out[i.Format()] = i
	}
	return out
}
