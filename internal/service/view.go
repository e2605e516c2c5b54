package service

import (
	"fmt"

	"netdiagram/internal/codec"
	"netdiagram/internal/domain"
	"netdiagram/internal/geometry"
)

// View returns the current zoom and pan
func (s *DiagramService) View() codec.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return codec.View{Zoom: s.state.Zoom, PanX: s.state.PanX, PanY: s.state.PanY}
}

// SetView replaces the view transform, clamping the zoom
func (s *DiagramService) SetView(v codec.View) codec.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Zoom = geometry.ClampZoom(v.Zoom)
	s.state.PanX, s.state.PanY = v.PanX, v.PanY
	return s.viewChangedLocked()
}

// ZoomAt changes the zoom while keeping the diagram point under the screen
// position (mouseX, mouseY) fixed
func (s *DiagramService) ZoomAt(zoom, mouseX, mouseY float64) codec.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	zoom = geometry.ClampZoom(zoom)
	s.state.PanX, s.state.PanY = geometry.ZoomPan(s.state.Zoom, zoom, mouseX, mouseY, s.state.PanX, s.state.PanY)
	s.state.Zoom = zoom
	return s.viewChangedLocked()
}

func (s *DiagramService) viewChangedLocked() codec.View {
	v := codec.View{Zoom: s.state.Zoom, PanX: s.state.PanX, PanY: s.state.PanY}
	_ = s.commit("set_view", nil, Event{Type: EventViewChanged, Payload: v})
	return v
}

// Bounds returns the box covering every device and zone. ok is false for an
// empty diagram.
func (s *DiagramService) Bounds() (b geometry.Bounds, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b = geometry.BoundingBox(s.state.Devices, s.state.Zones, s.deviceSize)
	return b, !b.Empty()
}

func (s *DiagramService) deviceSize(*domain.Device) geometry.Size {
	return s.opts.DeviceSize
}

// ConnectionPath returns the SVG path drawn for a connection
func (s *DiagramService) ConnectionPath(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var conn *domain.Connection
	for _, c := range s.state.Connections {
		if c.ID == id {
			conn = c
			break
		}
	}
	if conn == nil {
		return "", fmt.Errorf("connection %s: %w", id, domain.ErrNotFound)
	}

	from, to := s.state.Device(conn.From), s.state.Device(conn.To)
	if from == nil || to == nil {
		return "", fmt.Errorf("connection %s endpoint: %w", id, domain.ErrNotFound)
	}

	size := s.opts.DeviceSize
	start := geometry.ConnectionPoint(&geometry.Point{X: from.X, Y: from.Y}, geometry.Edge(conn.FromPos), size.Width, size.Height)
	end := geometry.ConnectionPoint(&geometry.Point{X: to.X, Y: to.Y}, geometry.Edge(conn.ToPos), size.Width, size.Height)
	return geometry.ConnectionPath(start, geometry.Edge(conn.FromPos), end), nil
}
