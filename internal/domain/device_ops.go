package domain

import "fmt"

// CreateDevice builds a device of type t at (x, y) and appends it.
//
// The counter is advanced before the type lookup, so an unknown type still
// consumes a sequence number. Saved diagrams number their devices with this
// behaviour and it is kept as is.
func (s *State) CreateDevice(t DeviceType, x, y float64) (*Device, error) {
	s.Counter++
	info, ok := DeviceTypes[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDeviceType, t)
	}

	d := &Device{
		ID:     fmt.Sprintf("dev%d_%d", nowMillis(), s.Counter),
		Type:   t,
		Name:   fmt.Sprintf("%s %d", info.Name, s.Counter),
		Status: StatusOnline,
		X:      x,
		Y:      y,
	}
	if t == DeviceTypeVMHost {
		d.VMs = []VM{}
	}

	s.Devices = append(s.Devices, d)
	return d, nil
}

// AddDevice appends an already-built device, such as one mapped from CSV
func (s *State) AddDevice(d *Device) {
	s.Devices = append(s.Devices, d)
}

// DeleteDevice removes a device together with every connection touching it
func (s *State) DeleteDevice(id string) error {
	i := s.deviceIndex(id)
	if i < 0 {
		return fmt.Errorf("device %s: %w", id, ErrNotFound)
	}
	s.Devices = append(s.Devices[:i], s.Devices[i+1:]...)

	kept := make([]*Connection, 0, len(s.Connections))
	for _, c := range s.Connections {
		if !c.Involves(id) {
			kept = append(kept, c)
		}
	}
	s.Connections = kept

	if s.SelectedID == id {
		s.SelectedID = ""
	}
	return nil
}

// UpdateDeviceProperty sets one field on the selected device
func (s *State) UpdateDeviceProperty(key, value string) error {
	d := s.SelectedDevice()
	if d == nil {
		return ErrNoSelection
	}
	return d.SetProperty(key, value)
}

// SetDeviceStatus sets the status of the selected device
func (s *State) SetDeviceStatus(status Status) error {
	d := s.SelectedDevice()
	if d == nil {
		return ErrNoSelection
	}
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	d.Status = status
	return nil
}

// MoveDevice repositions a device, as after a drag
func (s *State) MoveDevice(id string, x, y float64) error {
	d := s.Device(id)
	if d == nil {
		return fmt.Errorf("device %s: %w", id, ErrNotFound)
	}
	d.X, d.Y = x, y
	return nil
}
