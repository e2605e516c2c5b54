package codec

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"

	"netdiagram/internal/domain"
	"netdiagram/internal/geometry"
)

// Document is the whole-diagram save format
type Document struct {
	Devices     []*domain.Device     `json:"devices" yaml:"devices"`
	Connections []*domain.Connection `json:"connections" yaml:"connections"`
	Zones       []*domain.Zone       `json:"zones" yaml:"zones"`
	VLANs       []domain.VLAN        `json:"vlans" yaml:"vlans"`
	SSIDs       []domain.SSID        `json:"ssids" yaml:"ssids"`
	Config      map[string]any       `json:"config" yaml:"config"`
	ClientName  string               `json:"clientName" yaml:"clientName"`
	SiteName    string               `json:"siteName" yaml:"siteName"`
	View        *View                `json:"view" yaml:"view"`
}

// View is the saved view transform
type View struct {
	Zoom float64 `json:"zoom" yaml:"zoom"`
	PanX float64 `json:"panX" yaml:"panX"`
	PanY float64 `json:"panY" yaml:"panY"`
}

// Meta carries the document labels returned by an import
type Meta struct {
	ClientName string `json:"clientName" yaml:"clientName"`
	SiteName   string `json:"siteName" yaml:"siteName"`
}

// ExportState builds a save document from s. The document references the
// state's entities; encode it before mutating s further.
func ExportState(s *domain.State, clientName, siteName string) *Document {
	return &Document{
		Devices:     s.Devices,
		Connections: s.Connections,
		Zones:       s.Zones,
		VLANs:       s.VLANs,
		SSIDs:       s.SSIDs,
		Config:      s.Config,
		ClientName:  clientName,
		SiteName:    siteName,
		View:        &View{Zoom: s.Zoom, PanX: s.PanX, PanY: s.PanY},
	}
}

// ImportState replaces the diagram content of s with copies of doc's
// content, so doc and s never share entities afterwards.
//
// Devices, connections and zones missing from doc become empty. VLANs, SSIDs
// and config missing from doc keep their current values. A present view with
// a zero zoom restores zoom 1; other zooms are clamped to the view limits.
// Selection is cleared.
func ImportState(s *domain.State, doc *Document) Meta {
	s.Devices = cloneAll(doc.Devices)
	s.Connections = cloneAll(doc.Connections)
	s.Zones = cloneAll(doc.Zones)

	if doc.VLANs != nil {
		s.VLANs = slices.Clone(doc.VLANs)
	}
	if doc.SSIDs != nil {
		s.SSIDs = slices.Clone(doc.SSIDs)
	}
	if doc.Config != nil {
		s.Config = maps.Clone(doc.Config)
	}

	if doc.View != nil {
		s.Zoom = doc.View.Zoom
		if s.Zoom == 0 {
			s.Zoom = 1
		}
		s.Zoom = geometry.ClampZoom(s.Zoom)
		s.PanX = doc.View.PanX
		s.PanY = doc.View.PanY
	}

	s.ClearSelection()

	return Meta{ClientName: doc.ClientName, SiteName: doc.SiteName}
}

// cloneAll deep-copies the non-nil entries and never returns a nil slice
func cloneAll[T interface {
	comparable
	Clone() T
}](in []T) []T {
	var zero T
	out := make([]T, 0, len(in))
	for _, v := range in {
		if v != zero {
			out = append(out, v.Clone())
		}
	}
	return out
}

// JSONCodec handles the JSON save document
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse decodes a save document
func (c *JSONCodec) Parse(r io.Reader) (*Document, error) {
	var doc Document
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return &doc, nil
}

// Export encodes a save document
func (c *JSONCodec) Export(doc *Document, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
