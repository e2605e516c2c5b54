package domain

import "fmt"

// CreateZone builds a zone of type t at (x, y) with the default size.
// Like CreateDevice, the zone counter advances even on an unknown type.
func (s *State) CreateZone(t ZoneType, x, y float64) (*Zone, error) {
	s.ZoneCounter++
	info, ok := ZoneTypes[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownZoneType, t)
	}

	z := &Zone{
		ID:     fmt.Sprintf("zone%d_%d", nowMillis(), s.ZoneCounter),
		Type:   t,
		Name:   fmt.Sprintf("%s %d", info.Name, s.ZoneCounter),
		X:      x,
		Y:      y,
		Width:  DefaultZoneWidth,
		Height: DefaultZoneHeight,
	}
	z.initDetails()

	s.Zones = append(s.Zones, z)
	return z, nil
}

// DeleteZone removes a zone. Devices inside it are not affected.
func (s *State) DeleteZone(id string) error {
	i := s.zoneIndex(id)
	if i < 0 {
		return fmt.Errorf("zone %s: %w", id, ErrNotFound)
	}
	s.Zones = append(s.Zones[:i], s.Zones[i+1:]...)
	if s.SelectedZoneID == id {
		s.SelectedZoneID = ""
	}
	return nil
}

// UpdateZoneProperty sets one field on the selected zone
func (s *State) UpdateZoneProperty(key, value string) error {
	z := s.SelectedZone()
	if z == nil {
		return ErrNoSelection
	}
	return z.SetProperty(key, value)
}

// MoveZone repositions a zone
func (s *State) MoveZone(id string, x, y float64) error {
	z := s.Zone(id)
	if z == nil {
		return fmt.Errorf("zone %s: %w", id, ErrNotFound)
	}
	z.X, z.Y = x, y
	return nil
}

// ResizeZone changes a zone's size. Non-positive dimensions are rejected.
func (s *State) ResizeZone(id string, width, height float64) error {
	z := s.Zone(id)
	if z == nil {
		return fmt.Errorf("zone %s: %w", id, ErrNotFound)
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("zone size %gx%g: %w", width, height, ErrMissingField)
	}
	z.Width, z.Height = width, height
	return nil
}
