package domain

import (
	"fmt"
	"time"
)

// clock is replaced in tests that need stable ids
var clock = time.Now

func nowMillis() int64 {
	return clock().UnixMilli()
}

// State is the complete in-memory diagram for one editing session
type State struct {
	Devices     []*Device
	Connections []*Connection
	Zones       []*Zone
	VLANs       []VLAN
	SSIDs       []SSID
	Config      map[string]any

	// SelectedID and SelectedZoneID reference entities by id; use
	// SelectedDevice and SelectedZone to resolve them.
	SelectedID     string
	SelectedZoneID string

	ConnType ConnectionMedium
	Zoom     float64
	PanX     float64
	PanY     float64

	Counter     int
	ZoneCounter int
}

// DefaultVLANs returns the VLANs seeded into every new state
func DefaultVLANs() []VLAN {
	return []VLAN{
		{ID: 1, Name: "Default", Subnet: "192.168.1.0/24", Gateway: "192.168.1.1"},
		{ID: 10, Name: "Management", Subnet: "192.168.10.0/24", Gateway: "192.168.10.1"},
		{ID: 20, Name: "Guest", Subnet: "192.168.20.0/24", Gateway: "192.168.20.1"},
	}
}

// DefaultNetworkConfig returns the network-wide settings of a new state
func DefaultNetworkConfig() map[string]any {
	return map[string]any{
		"primaryDns":   "8.8.8.8",
		"secondaryDns": "8.8.4.4",
		"dhcpStart":    "",
		"dhcpEnd":      "",
		"domain":       "",
	}
}

// NewState creates an empty state with seeded VLANs and default settings.
// States never share mutable substructure.
func NewState() *State {
	return &State{
		Devices:     make([]*Device, 0),
		Connections: make([]*Connection, 0),
		Zones:       make([]*Zone, 0),
		VLANs:       DefaultVLANs(),
		SSIDs:       make([]SSID, 0),
		Config:      DefaultNetworkConfig(),
		ConnType:    MediumWired,
		Zoom:        1,
	}
}

// Clear removes every device, zone and connection and resets selection,
// view and counters. VLANs, SSIDs and network settings are kept.
func (s *State) Clear() {
	s.Devices = make([]*Device, 0)
	s.Connections = make([]*Connection, 0)
	s.Zones = make([]*Zone, 0)
	s.SelectedID = ""
	s.SelectedZoneID = ""
	s.Zoom = 1
	s.PanX = 0
	s.PanY = 0
	s.Counter = 0
	s.ZoneCounter = 0
}

// Device returns the device with the given id, or nil
func (s *State) Device(id string) *Device {
	if i := s.deviceIndex(id); i >= 0 {
		return s.Devices[i]
	}
	return nil
}

func (s *State) deviceIndex(id string) int {
	for i, d := range s.Devices {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// Zone returns the zone with the given id, or nil
func (s *State) Zone(id string) *Zone {
	if i := s.zoneIndex(id); i >= 0 {
		return s.Zones[i]
	}
	return nil
}

func (s *State) zoneIndex(id string) int {
	for i, z := range s.Zones {
		if z.ID == id {
			return i
		}
	}
	return -1
}

// SelectDevice marks a device as the one being edited
func (s *State) SelectDevice(id string) error {
	if s.Device(id) == nil {
		return fmt.Errorf("device %s: %w", id, ErrNotFound)
	}
	s.SelectedID = id
	return nil
}

// SelectZone marks a zone as the one being edited
func (s *State) SelectZone(id string) error {
	if s.Zone(id) == nil {
		return fmt.Errorf("zone %s: %w", id, ErrNotFound)
	}
	s.SelectedZoneID = id
	return nil
}

// ClearSelection deselects both the device and the zone
func (s *State) ClearSelection() {
	s.SelectedID = ""
	s.SelectedZoneID = ""
}

// SelectedDevice resolves the selected device, or nil if none is selected or
// it no longer exists.
func (s *State) SelectedDevice() *Device {
	if s.SelectedID == "" {
		return nil
	}
	return s.Device(s.SelectedID)
}

// SelectedZone resolves the selected zone, or nil
func (s *State) SelectedZone() *Zone {
	if s.SelectedZoneID == "" {
		return nil
	}
	return s.Zone(s.SelectedZoneID)
}
