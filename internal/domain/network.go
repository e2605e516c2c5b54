package domain

import "fmt"

// VLAN is a network segment definition
type VLAN struct {
	ID      int    `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Subnet  string `json:"subnet" yaml:"subnet"`
	Gateway string `json:"gateway" yaml:"gateway"`
}

// SSID is a wireless network definition
type SSID struct {
	Name     string `json:"name" yaml:"name"`
	Security string `json:"security" yaml:"security"`
	VLAN     string `json:"vlan" yaml:"vlan"`
}

// AddVLAN appends a VLAN. id, name and subnet are required; gateway may be empty.
func (s *State) AddVLAN(id int, name, subnet, gateway string) error {
	if id == 0 || name == "" || subnet == "" {
		return fmt.Errorf("vlan id, name and subnet: %w", ErrMissingField)
	}
	for _, v := range s.VLANs {
		if v.ID == id {
			return fmt.Errorf("vlan %d: %w", id, ErrDuplicateVLAN)
		}
	}
	s.VLANs = append(s.VLANs, VLAN{ID: id, Name: name, Subnet: subnet, Gateway: gateway})
	return nil
}

// DeleteVLAN removes the VLAN at index
func (s *State) DeleteVLAN(index int) error {
	if index < 0 || index >= len(s.VLANs) {
		return fmt.Errorf("vlan index %d: %w", index, ErrIndexOutOfRange)
	}
	s.VLANs = append(s.VLANs[:index], s.VLANs[index+1:]...)
	return nil
}

// VLANName formats a VLAN for display, or returns "None" if id is unknown
func VLANName(vlans []VLAN, id int) string {
	for _, v := range vlans {
		if v.ID == id {
			return fmt.Sprintf("VLAN %d - %s", v.ID, v.Name)
		}
	}
	return "None"
}

// AddSSID appends an SSID. The name is required and must be unique.
func (s *State) AddSSID(name, security, vlan string) error {
	if name == "" {
		return fmt.Errorf("ssid name: %w", ErrMissingField)
	}
	for _, v := range s.SSIDs {
		if v.Name == name {
			return fmt.Errorf("ssid %q: %w", name, ErrDuplicateSSID)
		}
	}
	s.SSIDs = append(s.SSIDs, SSID{Name: name, Security: security, VLAN: vlan})
	return nil
}

// DeleteSSID removes the SSID at index and withdraws it from every access point
func (s *State) DeleteSSID(index int) error {
	if index < 0 || index >= len(s.SSIDs) {
		return fmt.Errorf("ssid index %d: %w", index, ErrIndexOutOfRange)
	}
	name := s.SSIDs[index].Name
	s.SSIDs = append(s.SSIDs[:index], s.SSIDs[index+1:]...)

	for _, d := range s.Devices {
		if d.Type == DeviceTypeAP {
			d.removeSSID(name)
		}
	}
	return nil
}
