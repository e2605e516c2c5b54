package service

import (
	"maps"

	"netdiagram/internal/domain"
)

// VLANs returns a copy of the VLAN list
func (s *DiagramService) VLANs() []domain.VLAN {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.VLAN{}, s.state.VLANs...)
}

// AddVLAN defines a VLAN
func (s *DiagramService) AddVLAN(v domain.VLAN) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.state.AddVLAN(v.ID, v.Name, v.Subnet, v.Gateway)
	return s.commit("add_vlan", err, Event{Type: EventNetworkUpdated, Payload: map[string]int{"vlan_id": v.ID}})
}

// DeleteVLAN removes the VLAN at index
func (s *DiagramService) DeleteVLAN(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.state.DeleteVLAN(index)
	return s.commit("delete_vlan", err, Event{Type: EventNetworkUpdated})
}

// SSIDs returns a copy of the SSID list
func (s *DiagramService) SSIDs() []domain.SSID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.SSID{}, s.state.SSIDs...)
}

// AddSSID defines an SSID
func (s *DiagramService) AddSSID(v domain.SSID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.state.AddSSID(v.Name, v.Security, v.VLAN)
	return s.commit("add_ssid", err, Event{Type: EventNetworkUpdated, Payload: map[string]string{"ssid": v.Name}})
}

// DeleteSSID removes the SSID at index and withdraws it from access points
func (s *DiagramService) DeleteSSID(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.state.DeleteSSID(index)
	return s.commit("delete_ssid", err, Event{Type: EventNetworkUpdated})
}

// NetworkConfig returns a copy of the network-wide settings
func (s *DiagramService) NetworkConfig() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.state.Config)
}

// UpdateNetworkConfig merges settings into the network-wide config
func (s *DiagramService) UpdateNetworkConfig(settings map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Config == nil {
		s.state.Config = make(map[string]any, len(settings))
	}
	maps.Copy(s.state.Config, settings)
	_ = s.commit("update_network_config", nil, Event{Type: EventNetworkUpdated})
}
