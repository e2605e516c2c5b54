package service

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"netdiagram/internal/codec"
	"netdiagram/internal/domain"
)

// ErrUnknownFormat is returned for an interchange format with no codec
var ErrUnknownFormat = errors.New("unknown format")

// Import reads a save document in format and replaces the diagram with it.
// The document labels become the session labels.
func (s *DiagramService) Import(format string, r io.Reader) (codec.Meta, error) {
	imp, ok := codec.Importers()[format]
	if !ok {
		return codec.Meta{}, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	doc, err := imp.Parse(r)
	if err != nil {
		return codec.Meta{}, err
	}
	meta := s.ImportDocument(doc)
	s.metrics.IncImport(format)
	return meta, nil
}

// ImportDocument replaces the diagram with a copy of doc
func (s *DiagramService) ImportDocument(doc *codec.Document) codec.Meta {
	s.mu.Lock()
	defer s.mu.Unlock()
	meta := codec.ImportState(s.state, doc)
	s.clientName, s.siteName = meta.ClientName, meta.SiteName
	_ = s.commit("import", nil, Event{Type: EventStateImported, Payload: meta})
	return meta
}

// Export writes the current diagram in format
func (s *DiagramService) Export(format string, w io.Writer) error {
	exp, ok := codec.Exporters()[format]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	// Encode into a buffer so a slow writer never holds the lock
	var buf bytes.Buffer
	s.mu.Lock()
	err := exp.Export(codec.ExportState(s.state, s.clientName, s.siteName), &buf)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to export %s: %w", format, err)
	}

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write %s: %w", format, err)
	}
	s.metrics.IncExport(format)
	return nil
}

// ImportCSV appends one device per CSV row and returns copies of them
func (s *DiagramService) ImportCSV(content string) []*domain.Device {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := codec.ImportCSV(s.state, content, s.opts.Import)
	out := make([]*domain.Device, len(added))
	for i, d := range added {
		out[i] = d.Clone()
	}

	_ = s.commit("import_csv", nil, Event{Type: EventStateImported, Payload: map[string]int{"devices": len(added)}})
	s.metrics.IncImport("csv")
	return out
}

// ImportCSVFrom reads CSV content from r and imports it
func (s *DiagramService) ImportCSVFrom(r io.Reader) ([]*domain.Device, error) {
	var sb strings.Builder
	if _, err := io.Copy(&sb, r); err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return s.ImportCSV(sb.String()), nil
}
