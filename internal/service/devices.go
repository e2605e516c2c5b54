package service

import (
	"fmt"
	"sort"

	"netdiagram/internal/domain"
	"netdiagram/internal/geometry"
)

// Devices returns copies of every device in insertion order
func (s *DiagramService) Devices() []*domain.Device {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Device, len(s.state.Devices))
	for i, d := range s.state.Devices {
		out[i] = d.Clone()
	}
	return out
}

// Device returns a copy of one device
func (s *DiagramService) Device(id string) (*domain.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.state.Device(id)
	if d == nil {
		return nil, fmt.Errorf("device %s: %w", id, domain.ErrNotFound)
	}
	return d.Clone(), nil
}

// CreateDevice adds a device of type t at (x, y)
func (s *DiagramService) CreateDevice(t domain.DeviceType, x, y float64) (*domain.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.state.CreateDevice(t, x, y)
	if err != nil {
		return nil, s.commit("create_device", err, Event{})
	}
	_ = s.commit("create_device", nil, Event{
		Type:    EventDeviceCreated,
		Payload: map[string]string{"device_id": d.ID, "type": string(d.Type)},
	})
	return d.Clone(), nil
}

// DeleteDevice removes a device and its connections
func (s *DiagramService) DeleteDevice(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.state.DeleteDevice(id)
	return s.commit("delete_device", err, Event{Type: EventDeviceDeleted, Payload: map[string]string{"device_id": id}})
}

// UpdateDevice applies several property writes to one device. Either every
// write succeeds or the device is left unchanged.
func (s *DiagramService) UpdateDevice(id string, props map[string]string) (*domain.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.state.Device(id)
	if d == nil {
		return nil, s.commit("update_device", fmt.Errorf("device %s: %w", id, domain.ErrNotFound), Event{})
	}

	draft := d.Clone()
	for _, key := range sortedKeys(props) {
		if err := draft.SetProperty(key, props[key]); err != nil {
			return nil, s.commit("update_device", err, Event{})
		}
	}
	*d = *draft

	_ = s.commit("update_device", nil, Event{Type: EventDeviceUpdated, Payload: map[string]string{"device_id": id}})
	return d.Clone(), nil
}

// UpdateSelectedDevice sets one property on the selected device
func (s *DiagramService) UpdateSelectedDevice(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.state.UpdateDeviceProperty(key, value)
	return s.commit("update_selected_device", err, Event{Type: EventDeviceUpdated, Payload: map[string]string{"device_id": s.state.SelectedID}})
}

// SetSelectedStatus sets the status of the selected device
func (s *DiagramService) SetSelectedStatus(status domain.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.state.SetDeviceStatus(status)
	return s.commit("set_status", err, Event{Type: EventDeviceUpdated, Payload: map[string]string{"device_id": s.state.SelectedID}})
}

// MoveDevice repositions a device, snapping to the grid when enabled
func (s *DiagramService) MoveDevice(id string, x, y float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := geometry.Snap(geometry.Point{X: x, Y: y}, s.opts.SnapToGrid)
	err := s.state.MoveDevice(id, p.X, p.Y)
	return s.commit("move_device", err, Event{Type: EventDeviceUpdated, Payload: map[string]string{"device_id": id}})
}

// ToggleVLAN toggles a VLAN assignment on a switch
func (s *DiagramService) ToggleVLAN(deviceID string, vlanID int) error {
	return s.withDevice("toggle_vlan", deviceID, func(d *domain.Device) error {
		return d.ToggleVLAN(vlanID)
	})
}

// ToggleSSID toggles an SSID on an access point
func (s *DiagramService) ToggleSSID(deviceID, ssid string) error {
	return s.withDevice("toggle_ssid", deviceID, func(d *domain.Device) error {
		return d.ToggleSSID(ssid)
	})
}

// AddVM adds a virtual machine to a vmhost
func (s *DiagramService) AddVM(deviceID, name string, status domain.Status) error {
	return s.withDevice("add_vm", deviceID, func(d *domain.Device) error {
		return d.AddVM(name, status)
	})
}

// RemoveVM removes the virtual machine at index from a vmhost
func (s *DiagramService) RemoveVM(deviceID string, index int) error {
	return s.withDevice("remove_vm", deviceID, func(d *domain.Device) error {
		return d.RemoveVM(index)
	})
}

// withDevice runs fn against one device under the lock
func (s *DiagramService) withDevice(op, id string, fn func(*domain.Device) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.state.Device(id)
	if d == nil {
		return s.commit(op, fmt.Errorf("device %s: %w", id, domain.ErrNotFound), Event{})
	}
	return s.commit(op, fn(d), Event{Type: EventDeviceUpdated, Payload: map[string]string{"device_id": id}})
}

// Connections returns copies of every connection
func (s *DiagramService) Connections() []*domain.Connection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneConnections(s.state.Connections)
}

// DeviceConnections returns copies of the connections touching a device
func (s *DiagramService) DeviceConnections(id string) ([]*domain.Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Device(id) == nil {
		return nil, fmt.Errorf("device %s: %w", id, domain.ErrNotFound)
	}
	return cloneConnections(s.state.DeviceConnections(id)), nil
}

// ConnectedDevices returns copies of the devices linked to id
func (s *DiagramService) ConnectedDevices(id string) ([]*domain.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Device(id) == nil {
		return nil, fmt.Errorf("device %s: %w", id, domain.ErrNotFound)
	}
	peers := s.state.ConnectedDevices(id)
	out := make([]*domain.Device, len(peers))
	for i, d := range peers {
		out[i] = d.Clone()
	}
	return out, nil
}

// AddConnection links two devices with the current default medium
func (s *DiagramService) AddConnection(fromID string, fromPos domain.Side, toID string, toPos domain.Side) (*domain.Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.state.AddConnection(fromID, fromPos, toID, toPos)
	if err != nil {
		return nil, s.commit("add_connection", err, Event{})
	}
	_ = s.commit("add_connection", nil, Event{Type: EventConnectionCreated, Payload: map[string]string{"connection_id": c.ID}})
	return c.Clone(), nil
}

// DeleteConnection removes one connection
func (s *DiagramService) DeleteConnection(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.state.DeleteConnection(id)
	return s.commit("delete_connection", err, Event{Type: EventConnectionDeleted, Payload: map[string]string{"connection_id": id}})
}

// ConnectionType returns the medium applied to new connections
func (s *DiagramService) ConnectionType() domain.ConnectionMedium {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ConnType
}

// SetConnectionType changes the medium applied to new connections
func (s *DiagramService) SetConnectionType(m domain.ConnectionMedium) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.state.SetConnectionType(m)
	return s.commit("set_connection_type", err, Event{Type: EventNetworkUpdated, Payload: map[string]string{"connection_type": string(m)}})
}

func cloneConnections(in []*domain.Connection) []*domain.Connection {
	out := make([]*domain.Connection, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
