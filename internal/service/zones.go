package service

import (
	"fmt"

	"netdiagram/internal/domain"
	"netdiagram/internal/geometry"
)

// Zones returns copies of every zone
func (s *DiagramService) Zones() []*domain.Zone {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Zone, len(s.state.Zones))
	for i, z := range s.state.Zones {
		out[i] = z.Clone()
	}
	return out
}

// Zone returns a copy of one zone
func (s *DiagramService) Zone(id string) (*domain.Zone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	z := s.state.Zone(id)
	if z == nil {
		return nil, fmt.Errorf("zone %s: %w", id, domain.ErrNotFound)
	}
	return z.Clone(), nil
}

// CreateZone adds a zone of type t at (x, y)
func (s *DiagramService) CreateZone(t domain.ZoneType, x, y float64) (*domain.Zone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	z, err := s.state.CreateZone(t, x, y)
	if err != nil {
		return nil, s.commit("create_zone", err, Event{})
	}
	_ = s.commit("create_zone", nil, Event{
		Type:    EventZoneCreated,
		Payload: map[string]string{"zone_id": z.ID, "type": string(z.Type)},
	})
	return z.Clone(), nil
}

// DeleteZone removes a zone
func (s *DiagramService) DeleteZone(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.state.DeleteZone(id)
	return s.commit("delete_zone", err, Event{Type: EventZoneDeleted, Payload: map[string]string{"zone_id": id}})
}

// UpdateZone applies several property writes to one zone atomically
func (s *DiagramService) UpdateZone(id string, props map[string]string) (*domain.Zone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	z := s.state.Zone(id)
	if z == nil {
		return nil, s.commit("update_zone", fmt.Errorf("zone %s: %w", id, domain.ErrNotFound), Event{})
	}

	draft := z.Clone()
	for _, key := range sortedKeys(props) {
		if err := draft.SetProperty(key, props[key]); err != nil {
			return nil, s.commit("update_zone", err, Event{})
		}
	}
	*z = *draft

	_ = s.commit("update_zone", nil, Event{Type: EventZoneUpdated, Payload: map[string]string{"zone_id": id}})
	return z.Clone(), nil
}

// UpdateSelectedZone sets one property on the selected zone
func (s *DiagramService) UpdateSelectedZone(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.state.UpdateZoneProperty(key, value)
	return s.commit("update_selected_zone", err, Event{Type: EventZoneUpdated, Payload: map[string]string{"zone_id": s.state.SelectedZoneID}})
}

// MoveZone repositions a zone, snapping to the grid when enabled
func (s *DiagramService) MoveZone(id string, x, y float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := geometry.Snap(geometry.Point{X: x, Y: y}, s.opts.SnapToGrid)
	err := s.state.MoveZone(id, p.X, p.Y)
	return s.commit("move_zone", err, Event{Type: EventZoneUpdated, Payload: map[string]string{"zone_id": id}})
}

// ResizeZone changes a zone's size, snapping to the grid when enabled
func (s *DiagramService) ResizeZone(id string, width, height float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sz := geometry.Snap(geometry.Point{X: width, Y: height}, s.opts.SnapToGrid)
	err := s.state.ResizeZone(id, sz.X, sz.Y)
	return s.commit("resize_zone", err, Event{Type: EventZoneUpdated, Payload: map[string]string{"zone_id": id}})
}
